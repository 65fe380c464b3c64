package imaging

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Size is a fixed (height, width) output shape in pixels.
//
// Constructors normalize their size arguments into this struct once, instead
// of re-interpreting an int-or-pair parameter on every invocation.
type Size struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// Square returns a Size with equal height and width.
func Square(n int) Size {
	return Size{Height: n, Width: n}
}

// Interpolation selects the resampling kernel used by resize operations.
//
// The zero value is Bilinear, the default everywhere a resize happens.
type Interpolation int

const (
	// Bilinear weights the four nearest source pixels. The default.
	Bilinear Interpolation = iota
	// NearestNeighbor copies the closest source pixel. Fast, blocky.
	NearestNeighbor
	// Bicubic is Catmull-Rom cubic resampling.
	Bicubic
	// Box averages all source pixels under the destination pixel.
	Box
	// Lanczos is a high-quality windowed sinc kernel.
	Lanczos
)

var interpolationNames = map[Interpolation]string{
	Bilinear:        "bilinear",
	NearestNeighbor: "nearest",
	Bicubic:         "bicubic",
	Box:             "box",
	Lanczos:         "lanczos",
}

func (i Interpolation) String() string {
	if name, ok := interpolationNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// ParseInterpolation maps a configuration string ("bilinear", "nearest",
// "bicubic", "box", "lanczos") to an Interpolation. The empty string maps to
// Bilinear.
func ParseInterpolation(name string) (Interpolation, error) {
	if name == "" {
		return Bilinear, nil
	}
	for interp, n := range interpolationNames {
		if n == name {
			return interp, nil
		}
	}
	return Bilinear, fmt.Errorf("unknown interpolation %q", name)
}

// filter returns the resampling kernel backing this interpolation mode.
func (i Interpolation) filter() imaging.ResampleFilter {
	switch i {
	case NearestNeighbor:
		return imaging.NearestNeighbor
	case Bicubic:
		return imaging.CatmullRom
	case Box:
		return imaging.Box
	case Lanczos:
		return imaging.Lanczos
	default:
		return imaging.Linear
	}
}

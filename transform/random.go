package transform

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ironsheep/image-transforms/imaging"
)

// Default sampling ranges for RandomCropAndResize, matching the standard
// inception-style augmentation.
var (
	DefaultScale = [2]float64{0.08, 1.0}
	DefaultRatio = [2]float64{3.0 / 4.0, 4.0 / 3.0}
)

// newRand returns rng, or a fresh time-seeded source when rng is nil.
func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// RandomHorizontalFlip mirrors the image around its vertical axis with a
// fixed probability, and otherwise returns the image unchanged.
type RandomHorizontalFlip struct {
	p   float64
	rng *rand.Rand
}

// NewRandomHorizontalFlip builds a flip with probability p in [0, 1].
// p=1 always flips and p=0 never does. A nil rng gets a fresh time-seeded
// source.
func NewRandomHorizontalFlip(p float64, rng *rand.Rand) (*RandomHorizontalFlip, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("flip probability must be in [0, 1], got %g", p)
	}
	return &RandomHorizontalFlip{p: p, rng: newRand(rng)}, nil
}

func (t *RandomHorizontalFlip) Apply(v any) (any, error) {
	img, err := asImage(v)
	if err != nil {
		return nil, err
	}
	if t.rng.Float64() < t.p {
		return imaging.FlipH(img), nil
	}
	return img, nil
}

// RandomCrop extracts a fixed-size box at a uniformly random valid position.
type RandomCrop struct {
	size imaging.Size
	rng  *rand.Rand
}

// NewRandomCrop builds a random crop of the given size. A nil rng gets a
// fresh time-seeded source.
func NewRandomCrop(size imaging.Size, rng *rand.Rand) (*RandomCrop, error) {
	if size.Height <= 0 || size.Width <= 0 {
		return nil, fmt.Errorf("random crop size must be positive, got %dx%d", size.Height, size.Width)
	}
	return &RandomCrop{size: size, rng: newRand(rng)}, nil
}

// Apply selects the top-left offset uniformly over [0, H-h] x [0, W-w]. A
// source image smaller than the crop size in either dimension is an error.
func (t *RandomCrop) Apply(v any) (any, error) {
	img, err := asImage(v)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if t.size.Height > height || t.size.Width > width {
		return nil, fmt.Errorf("random crop size %dx%d exceeds source image %dx%d",
			t.size.Height, t.size.Width, height, width)
	}

	top := t.rng.Intn(height - t.size.Height + 1)
	left := t.rng.Intn(width - t.size.Width + 1)
	return imaging.Crop(img, top, left, t.size.Height, t.size.Width)
}

// RandomCropAndResize crops a random area of the image and resizes it to a
// fixed target size, the standard inception-style training augmentation.
type RandomCropAndResize struct {
	size   imaging.Size
	scale  [2]float64
	ratio  [2]float64
	interp imaging.Interpolation
	rng    *rand.Rand
}

// NewRandomCropAndResize builds the augmentation.
//
// scale is the range of the crop area as a fraction of the source area, and
// ratio the range of crop aspect ratios (width/height); DefaultScale and
// DefaultRatio give the usual (0.08, 1.0) and (3/4, 4/3). Both ranges must be
// positive and ordered. A nil rng gets a fresh time-seeded source.
func NewRandomCropAndResize(size imaging.Size, scale, ratio [2]float64, interp imaging.Interpolation, rng *rand.Rand) (*RandomCropAndResize, error) {
	if size.Height <= 0 || size.Width <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %dx%d", size.Height, size.Width)
	}
	if scale[0] <= 0 || scale[0] > scale[1] {
		return nil, fmt.Errorf("scale range must be positive and ordered, got (%g, %g)", scale[0], scale[1])
	}
	if ratio[0] <= 0 || ratio[0] > ratio[1] {
		return nil, fmt.Errorf("ratio range must be positive and ordered, got (%g, %g)", ratio[0], ratio[1])
	}
	return &RandomCropAndResize{
		size:   size,
		scale:  scale,
		ratio:  ratio,
		interp: interp,
		rng:    newRand(rng),
	}, nil
}

// Apply samples a crop box and resizes it to the target size.
//
// # Algorithm
//
// Up to 10 trials sample a crop box:
//
//  1. Draw a target area uniformly from scale[0]*A to scale[1]*A, where A is
//     the source area.
//  2. Draw an aspect ratio by sampling uniformly in log space between
//     log(ratio[0]) and log(ratio[1]).
//  3. Derive the box as w = round(sqrt(area*ratio)), h = round(sqrt(area/ratio)).
//
// The first box that fits within the source is placed at a uniformly random
// valid top-left offset. If no trial fits, a deterministic central crop is
// used instead: when the source aspect ratio falls below ratio[0] the crop
// spans the full width with height derived from ratio[0]; above ratio[1] it
// spans the full height with width derived from ratio[1]; otherwise the full
// image. The output always has exactly the configured target size.
func (t *RandomCropAndResize) Apply(v any) (any, error) {
	img, err := asImage(v)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	area := float64(width * height)
	logRatioLo, logRatioHi := math.Log(t.ratio[0]), math.Log(t.ratio[1])

	var top, left, h, w int
	found := false
	for trial := 0; trial < 10; trial++ {
		targetArea := uniform(t.rng, t.scale[0], t.scale[1]) * area
		aspect := math.Exp(uniform(t.rng, logRatioLo, logRatioHi))

		w = int(math.Round(math.Sqrt(targetArea * aspect)))
		h = int(math.Round(math.Sqrt(targetArea / aspect)))

		if 0 < w && w <= width && 0 < h && h <= height {
			top = t.rng.Intn(height - h + 1)
			left = t.rng.Intn(width - w + 1)
			found = true
			break
		}
	}

	if !found {
		// Central fallback clamped to the configured ratio range.
		inRatio := float64(width) / float64(height)
		switch {
		case inRatio < t.ratio[0]:
			w = width
			h = int(math.Round(float64(w) / t.ratio[0]))
		case inRatio > t.ratio[1]:
			h = height
			w = int(math.Round(float64(h) * t.ratio[1]))
		default:
			w = width
			h = height
		}
		top = (height - h) / 2
		left = (width - w) / 2
	}

	return imaging.CropAndResize(img, top, left, h, w, t.size, t.interp)
}

package imaging

import (
	"fmt"
	"image"
)

// Tensor is a channel-first numeric array: values are stored in (channels,
// height, width) order, the layout consumed by model training code.
type Tensor struct {
	Channels int
	Height   int
	Width    int

	// Data holds Channels*Height*Width values; the element at (c, y, x)
	// lives at index c*Height*Width + y*Width + x.
	Data []float32
}

// NewTensor allocates a zero-filled tensor with the given shape.
func NewTensor(channels, height, width int) *Tensor {
	return &Tensor{
		Channels: channels,
		Height:   height,
		Width:    width,
		Data:     make([]float32, channels*height*width),
	}
}

// At returns the value at channel c, row y, column x.
func (t *Tensor) At(c, y, x int) float32 {
	return t.Data[c*t.Height*t.Width+y*t.Width+x]
}

// Set stores v at channel c, row y, column x.
func (t *Tensor) Set(c, y, x int, v float32) {
	t.Data[c*t.Height*t.Width+y*t.Width+x] = v
}

// ToTensor converts a decoded image into a channel-first float32 tensor with
// pixel values scaled from 0-255 into [0, 1].
//
// Color images produce 3 channels (R, G, B) with any alpha channel dropped;
// *image.Gray produces a single channel. Values that are not images pass
// through unchanged, so a pipeline stage downstream of an earlier conversion
// is a no-op.
func ToTensor(v any) any {
	img, ok := v.(image.Image)
	if !ok {
		return v
	}
	return imageToTensor(img)
}

func imageToTensor(img image.Image) *Tensor {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		t := NewTensor(1, h, w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				t.Set(0, y, x, float32(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)/255)
			}
		}
		return t
	}

	t := NewTensor(3, h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			t.Set(0, y, x, float32(r>>8)/255)
			t.Set(1, y, x, float32(g>>8)/255)
			t.Set(2, y, x, float32(b>>8)/255)
		}
	}
	return t
}

// Normalize applies (x - mean) / std per channel and returns the result as a
// new tensor.
//
// The input may be a decoded image, which is first converted with ToTensor,
// or an already-converted *Tensor. In both cases mean and std are expressed
// in the scaled [0, 1] units. A single-element mean/std broadcasts across all
// channels; otherwise their length must equal the channel count. A zero std
// is an error.
func Normalize(v any, mean, std []float32) (*Tensor, error) {
	var t *Tensor
	switch x := v.(type) {
	case image.Image:
		t = imageToTensor(x)
	case *Tensor:
		t = x
	default:
		return nil, fmt.Errorf("normalize: unsupported input type %T", v)
	}
	return normalizeTensor(t, mean, std)
}

func normalizeTensor(t *Tensor, mean, std []float32) (*Tensor, error) {
	if len(mean) == 0 || len(std) == 0 {
		return nil, fmt.Errorf("normalize: mean and std must not be empty")
	}
	if len(mean) != len(std) {
		return nil, fmt.Errorf("normalize: mean has %d channels, std has %d", len(mean), len(std))
	}
	if len(mean) != 1 && len(mean) != t.Channels {
		return nil, fmt.Errorf("normalize: got %d mean/std channels for a %d-channel tensor", len(mean), t.Channels)
	}
	for i, s := range std {
		if s == 0 {
			return nil, fmt.Errorf("normalize: std[%d] is zero", i)
		}
	}

	out := NewTensor(t.Channels, t.Height, t.Width)
	plane := t.Height * t.Width
	for c := 0; c < t.Channels; c++ {
		m, s := mean[0], std[0]
		if len(mean) > 1 {
			m, s = mean[c], std[c]
		}
		for i := c * plane; i < (c+1)*plane; i++ {
			out.Data[i] = (t.Data[i] - m) / s
		}
	}
	return out, nil
}

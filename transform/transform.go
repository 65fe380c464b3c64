package transform

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-transforms/imaging"
)

// Transform is a single preprocessing step: a unit of work with parameters
// fixed at construction and one operation taking a value and returning the
// transformed value. Implementations never modify their input.
type Transform interface {
	Apply(v any) (any, error)
}

// Compose is an ordered pipeline of transforms.
type Compose struct {
	transforms []Transform
}

// NewCompose builds a pipeline that applies the given transforms in order.
func NewCompose(transforms ...Transform) *Compose {
	return &Compose{transforms: transforms}
}

// Apply threads v through every stage, passing each stage's output as the
// next stage's input. The first stage error aborts the pipeline and is
// returned unchanged. An empty pipeline returns v unmodified.
func (c *Compose) Apply(v any) (any, error) {
	var err error
	for _, t := range c.transforms {
		v, err = t.Apply(v)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Len reports the number of stages in the pipeline.
func (c *Compose) Len() int {
	return len(c.transforms)
}

// asImage rejects pipeline values that are not decoded images.
func asImage(v any) (image.Image, error) {
	img, ok := v.(image.Image)
	if !ok {
		return nil, fmt.Errorf("expected image.Image input, got %T", v)
	}
	return img, nil
}

// Crop extracts a fixed box from every input image.
type Crop struct {
	top, left, height, width int
}

// NewCrop builds a crop of the (height, width) box at (top, left).
// The box must be non-empty; whether it fits is checked against each input
// image at Apply time.
func NewCrop(top, left, height, width int) (*Crop, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("crop height and width must be positive, got %dx%d", height, width)
	}
	return &Crop{top: top, left: left, height: height, width: width}, nil
}

func (t *Crop) Apply(v any) (any, error) {
	img, err := asImage(v)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, t.top, t.left, t.height, t.width)
}

// Resize scales every input image to a fixed size.
type Resize struct {
	size   imaging.Size
	interp imaging.Interpolation
}

// NewResize builds a resize to exactly (size.Height, size.Width).
func NewResize(size imaging.Size, interp imaging.Interpolation) (*Resize, error) {
	if size.Height <= 0 || size.Width <= 0 {
		return nil, fmt.Errorf("resize target must be positive, got %dx%d", size.Height, size.Width)
	}
	return &Resize{size: size, interp: interp}, nil
}

func (t *Resize) Apply(v any) (any, error) {
	img, err := asImage(v)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, t.size, t.interp), nil
}

// ResizeShortEdge scales every input image so that its shorter edge equals a
// fixed length, preserving the aspect ratio. Typically followed by CenterCrop
// in evaluation pipelines.
type ResizeShortEdge struct {
	edge   int
	interp imaging.Interpolation
}

// NewResizeShortEdge builds an aspect-preserving resize of the shorter edge
// to edge pixels.
func NewResizeShortEdge(edge int, interp imaging.Interpolation) (*ResizeShortEdge, error) {
	if edge <= 0 {
		return nil, fmt.Errorf("short edge must be positive, got %d", edge)
	}
	return &ResizeShortEdge{edge: edge, interp: interp}, nil
}

func (t *ResizeShortEdge) Apply(v any) (any, error) {
	img, err := asImage(v)
	if err != nil {
		return nil, err
	}
	return imaging.ResizeShortEdge(img, t.edge, t.interp), nil
}

// CenterCrop extracts a centrally placed fixed-size box from every input
// image.
type CenterCrop struct {
	size imaging.Size
}

// NewCenterCrop builds a central crop of the given size.
func NewCenterCrop(size imaging.Size) (*CenterCrop, error) {
	if size.Height <= 0 || size.Width <= 0 {
		return nil, fmt.Errorf("center crop size must be positive, got %dx%d", size.Height, size.Width)
	}
	return &CenterCrop{size: size}, nil
}

func (t *CenterCrop) Apply(v any) (any, error) {
	img, err := asImage(v)
	if err != nil {
		return nil, err
	}
	return imaging.CenterCrop(img, t.size)
}

// Gray converts every input image to grayscale with 1 or 3 output channels.
type Gray struct {
	numOutputChannels int
}

// NewGray builds a grayscale conversion producing numOutputChannels channels
// (1 for a single luma channel, 3 for luma replicated across R, G, B).
func NewGray(numOutputChannels int) (*Gray, error) {
	if numOutputChannels != 1 && numOutputChannels != 3 {
		return nil, fmt.Errorf("gray output must have 1 or 3 channels, got %d", numOutputChannels)
	}
	return &Gray{numOutputChannels: numOutputChannels}, nil
}

func (t *Gray) Apply(v any) (any, error) {
	img, err := asImage(v)
	if err != nil {
		return nil, err
	}
	return imaging.Grayscale(img, t.numOutputChannels)
}

// ToTensor converts images to channel-first [0, 1] float32 tensors; values
// that are already tensors (or anything else) pass through unchanged.
type ToTensor struct{}

func (ToTensor) Apply(v any) (any, error) {
	return imaging.ToTensor(v), nil
}

// ImageNormalize applies per-channel (x - mean) / std, converting raw images
// with ToTensor first. Mean and std are in scaled [0, 1] units.
type ImageNormalize struct {
	mean, std []float32
}

// NewImageNormalize validates mean and std once at construction; length
// checks against the actual channel count happen per input.
func NewImageNormalize(mean, std []float32) (*ImageNormalize, error) {
	if len(mean) == 0 || len(std) == 0 {
		return nil, fmt.Errorf("normalize mean and std must not be empty")
	}
	if len(mean) != len(std) {
		return nil, fmt.Errorf("normalize mean has %d channels, std has %d", len(mean), len(std))
	}
	for i, s := range std {
		if s == 0 {
			return nil, fmt.Errorf("normalize std[%d] is zero", i)
		}
	}
	return &ImageNormalize{mean: mean, std: std}, nil
}

func (t *ImageNormalize) Apply(v any) (any, error) {
	return imaging.Normalize(v, t.mean, t.std)
}

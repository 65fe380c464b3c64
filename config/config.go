// Package config builds transform pipelines from declarative YAML documents,
// so an experiment's augmentation recipe lives next to the rest of its
// training configuration:
//
//	schema_version: v1
//	transforms:
//	  - name: random_crop_and_resize
//	    size: [224]
//	  - name: random_horizontal_flip
//	    p: 0.5
//	  - name: to_tensor
//	  - name: image_normalize
//	    mean: [0.485, 0.456, 0.406]
//	    std: [0.229, 0.224, 0.225]
package config

import (
	"fmt"
	"math/rand"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ironsheep/image-transforms/imaging"
	"github.com/ironsheep/image-transforms/transform"
)

// SupportedSchema is the only pipeline schema version this package accepts.
const SupportedSchema = "v1"

// Pipeline is the parsed form of a pipeline YAML document.
type Pipeline struct {
	SchemaVersion string `koanf:"schema_version"`
	Transforms    []Step `koanf:"transforms"`
}

// Step declares one transform. Name selects the transform; the remaining
// fields carry its parameters, and fields irrelevant to the named transform
// are ignored.
type Step struct {
	Name string `koanf:"name"`

	// Fixed crop box (name: crop).
	Top    int `koanf:"top"`
	Left   int `koanf:"left"`
	Height int `koanf:"height"`
	Width  int `koanf:"width"`

	// Output size: [n] for square, [h, w] otherwise.
	Size []int `koanf:"size"`

	// Resampling kernel: bilinear (default), nearest, bicubic, box, lanczos.
	Interpolation string `koanf:"interpolation"`

	// Area and aspect-ratio ranges (name: random_crop_and_resize).
	Scale []float64 `koanf:"scale"`
	Ratio []float64 `koanf:"ratio"`

	// Flip probability (name: random_horizontal_flip); defaults to 0.5.
	P *float64 `koanf:"p"`

	// Per-channel constants (name: image_normalize).
	Mean []float64 `koanf:"mean"`
	Std  []float64 `koanf:"std"`

	// Grayscale output channels (name: gray); defaults to 1.
	NumOutputChannels int `koanf:"num_output_channels"`
}

// Load reads a pipeline YAML file and builds the composed pipeline. Every
// random transform in the pipeline draws from rng; pass a seeded source for
// reproducible augmentation, or nil to let each random stage seed itself.
func Load(path string, rng *rand.Rand) (*transform.Compose, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load pipeline config: %w", err)
	}

	var p Pipeline
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	return Build(p, rng)
}

// Build constructs the composed pipeline from a parsed Pipeline.
func Build(p Pipeline, rng *rand.Rand) (*transform.Compose, error) {
	if p.SchemaVersion != "" && p.SchemaVersion != SupportedSchema {
		return nil, fmt.Errorf("pipeline schema_version %q not supported (want %q)", p.SchemaVersion, SupportedSchema)
	}

	steps := make([]transform.Transform, 0, len(p.Transforms))
	for i, s := range p.Transforms {
		t, err := buildStep(s, rng)
		if err != nil {
			return nil, fmt.Errorf("transforms[%d] %q: %w", i, s.Name, err)
		}
		steps = append(steps, t)
	}
	return transform.NewCompose(steps...), nil
}

func buildStep(s Step, rng *rand.Rand) (transform.Transform, error) {
	switch s.Name {
	case "crop":
		return transform.NewCrop(s.Top, s.Left, s.Height, s.Width)

	case "resize":
		size, err := parseSize(s.Size)
		if err != nil {
			return nil, err
		}
		interp, err := imaging.ParseInterpolation(s.Interpolation)
		if err != nil {
			return nil, err
		}
		return transform.NewResize(size, interp)

	case "resize_short_edge":
		if len(s.Size) != 1 {
			return nil, fmt.Errorf("size must be a single short-edge length, got %v", s.Size)
		}
		interp, err := imaging.ParseInterpolation(s.Interpolation)
		if err != nil {
			return nil, err
		}
		return transform.NewResizeShortEdge(s.Size[0], interp)

	case "center_crop":
		size, err := parseSize(s.Size)
		if err != nil {
			return nil, err
		}
		return transform.NewCenterCrop(size)

	case "gray":
		channels := s.NumOutputChannels
		if channels == 0 {
			channels = 1
		}
		return transform.NewGray(channels)

	case "to_tensor":
		return transform.ToTensor{}, nil

	case "image_normalize":
		return transform.NewImageNormalize(toFloat32(s.Mean), toFloat32(s.Std))

	case "random_crop":
		size, err := parseSize(s.Size)
		if err != nil {
			return nil, err
		}
		return transform.NewRandomCrop(size, rng)

	case "random_horizontal_flip":
		p := 0.5
		if s.P != nil {
			p = *s.P
		}
		return transform.NewRandomHorizontalFlip(p, rng)

	case "random_crop_and_resize":
		size, err := parseSize(s.Size)
		if err != nil {
			return nil, err
		}
		interp, err := imaging.ParseInterpolation(s.Interpolation)
		if err != nil {
			return nil, err
		}
		scale, err := parseRange(s.Scale, transform.DefaultScale)
		if err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		ratio, err := parseRange(s.Ratio, transform.DefaultRatio)
		if err != nil {
			return nil, fmt.Errorf("ratio: %w", err)
		}
		return transform.NewRandomCropAndResize(size, scale, ratio, interp, rng)

	case "":
		return nil, fmt.Errorf("transform name is required")

	default:
		return nil, fmt.Errorf("unknown transform %q", s.Name)
	}
}

// parseSize normalizes [n] or [h, w] into a Size.
func parseSize(v []int) (imaging.Size, error) {
	switch len(v) {
	case 1:
		return imaging.Square(v[0]), nil
	case 2:
		return imaging.Size{Height: v[0], Width: v[1]}, nil
	default:
		return imaging.Size{}, fmt.Errorf("size must be [n] or [h, w], got %v", v)
	}
}

// parseRange normalizes an optional two-element range, falling back to def.
func parseRange(v []float64, def [2]float64) ([2]float64, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 2:
		return [2]float64{v[0], v[1]}, nil
	default:
		return def, fmt.Errorf("range must have exactly two elements, got %v", v)
	}
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

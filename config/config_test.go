package config

import (
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-transforms/imaging"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func testImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func TestLoad_TrainingPipeline(t *testing.T) {
	path := writeConfig(t, `
schema_version: v1
transforms:
  - name: random_crop_and_resize
    size: [32]
    scale: [0.5, 1.0]
    ratio: [0.75, 1.3333]
    interpolation: bilinear
  - name: random_horizontal_flip
    p: 0.5
  - name: to_tensor
  - name: image_normalize
    mean: [0.485, 0.456, 0.406]
    std: [0.229, 0.224, 0.225]
`)

	pipeline, err := Load(path, rand.New(rand.NewSource(13)))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if pipeline.Len() != 4 {
		t.Fatalf("Len: got %d, want 4", pipeline.Len())
	}

	out, err := pipeline.Apply(testImage(128, 96))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	tensor, ok := out.(*imaging.Tensor)
	if !ok {
		t.Fatalf("expected *imaging.Tensor, got %T", out)
	}
	if tensor.Channels != 3 || tensor.Height != 32 || tensor.Width != 32 {
		t.Errorf("shape: got (%d,%d,%d), want (3,32,32)", tensor.Channels, tensor.Height, tensor.Width)
	}
}

func TestLoad_EvalPipeline(t *testing.T) {
	path := writeConfig(t, `
transforms:
  - name: resize_short_edge
    size: [36]
    interpolation: lanczos
  - name: center_crop
    size: [32]
  - name: gray
  - name: to_tensor
`)

	pipeline, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out, err := pipeline.Apply(testImage(120, 90))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	tensor, ok := out.(*imaging.Tensor)
	if !ok {
		t.Fatalf("expected *imaging.Tensor, got %T", out)
	}
	// gray defaults to a single output channel.
	if tensor.Channels != 1 || tensor.Height != 32 || tensor.Width != 32 {
		t.Errorf("shape: got (%d,%d,%d), want (1,32,32)", tensor.Channels, tensor.Height, tensor.Width)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestLoad_UnsupportedSchema(t *testing.T) {
	path := writeConfig(t, `
schema_version: v2
transforms:
  - name: to_tensor
`)
	if _, err := Load(path, nil); err == nil {
		t.Error("Load should reject an unsupported schema version")
	}
}

func TestBuild_Defaults(t *testing.T) {
	pipeline, err := Build(Pipeline{
		Transforms: []Step{
			{Name: "random_horizontal_flip"}, // p defaults to 0.5
			{Name: "random_crop_and_resize", Size: []int{16}}, // default scale/ratio
		},
	}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out, err := pipeline.Apply(testImage(64, 64))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	img, ok := out.(image.Image)
	if !ok {
		t.Fatalf("expected image.Image, got %T", out)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("dimensions: got %dx%d, want 16x16", b.Dx(), b.Dy())
	}
}

func TestBuild_CropStep(t *testing.T) {
	pipeline, err := Build(Pipeline{
		Transforms: []Step{
			{Name: "crop", Top: 2, Left: 4, Height: 8, Width: 16},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out, err := pipeline.Apply(testImage(64, 64))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	b := out.(image.Image).Bounds()
	if b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("dimensions: got %dx%d, want 16x8", b.Dx(), b.Dy())
	}
}

func TestBuild_RandomCropStep(t *testing.T) {
	pipeline, err := Build(Pipeline{
		Transforms: []Step{
			{Name: "random_crop", Size: []int{24, 48}},
		},
	}, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out, err := pipeline.Apply(testImage(100, 100))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	b := out.(image.Image).Bounds()
	if b.Dx() != 48 || b.Dy() != 24 {
		t.Errorf("dimensions: got %dx%d, want 48x24", b.Dx(), b.Dy())
	}
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{"unknown name", Step{Name: "rotate"}},
		{"missing name", Step{}},
		{"bad size length", Step{Name: "resize", Size: []int{1, 2, 3}}},
		{"short edge needs single size", Step{Name: "resize_short_edge", Size: []int{10, 20}}},
		{"missing size", Step{Name: "center_crop"}},
		{"bad interpolation", Step{Name: "resize", Size: []int{10}, Interpolation: "cubic"}},
		{"bad probability", Step{Name: "random_horizontal_flip", P: floatPtr(1.5)}},
		{"bad scale", Step{Name: "random_crop_and_resize", Size: []int{10}, Scale: []float64{0.5}}},
		{"bad normalize", Step{Name: "image_normalize", Mean: []float64{0}, Std: []float64{1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(Pipeline{Transforms: []Step{tt.step}}, nil); err == nil {
				t.Error("Build should fail")
			}
		})
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestBuild_Empty(t *testing.T) {
	pipeline, err := Build(Pipeline{}, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	in := "untouched"
	out, err := pipeline.Apply(in)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out != in {
		t.Error("empty pipeline should return its input unchanged")
	}
}

// Package transform composes image preprocessing steps into augmentation
// pipelines for training-loop data loading.
//
// Each transform binds its parameters at construction and exposes a single
// Apply operation; Compose chains transforms into an ordered pipeline that
// threads one value through every stage:
//
//	rng := rand.New(rand.NewSource(42))
//	crop, _ := transform.NewRandomCropAndResize(
//		imaging.Square(224), transform.DefaultScale, transform.DefaultRatio,
//		imaging.Bilinear, rng)
//	flip, _ := transform.NewRandomHorizontalFlip(0.5, rng)
//	normalize, _ := transform.NewImageNormalize(
//		[]float32{0.485, 0.456, 0.406}, []float32{0.229, 0.224, 0.225})
//
//	pipeline := transform.NewCompose(crop, flip, transform.ToTensor{}, normalize)
//	out, err := pipeline.Apply(img) // *imaging.Tensor, ready for the model
//
// Values flow through the pipeline untyped: geometric and color stages expect
// an image.Image, the tensor stages produce and consume *imaging.Tensor. The
// pipeline itself performs no type checking; ordering the stages so that each
// one's output matches the next one's input is the caller's responsibility,
// and a stage handed the wrong kind of value returns an error that aborts the
// pipeline for that sample.
//
// # Randomness
//
// Transforms that draw randomness (RandomCrop, RandomHorizontalFlip,
// RandomCropAndResize) take an explicit *rand.Rand so pipelines can be
// reproduced from a seed. Passing nil creates a fresh time-seeded source.
// A *rand.Rand is not safe for concurrent use: when running parallel
// data-loading workers, build one pipeline per worker, each with its own
// independently seeded source.
package transform

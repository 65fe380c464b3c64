// Package imaging provides the stateless image preprocessing primitives that
// feed a machine-learning training loop: cropping, resizing, flipping, color
// and intensity adjustment, grayscale conversion, tensor conversion, and
// per-channel normalization.
//
// Every function takes a decoded image (or, for the tensor stages, a *Tensor)
// and returns a new value; inputs are never modified in place. Pixel work is
// delegated to the backing libraries (disintegration/imaging for geometry,
// bild for scalar color adjustments, go-colorful for hue rotation); this
// package validates and derives parameters.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward. Crop boxes are given as
// (top, left, height, width).
//
// # Factor Semantics
//
// The scalar adjustment functions share one convention: a factor of 1 is the
// identity, 0 is the extreme (black image, solid gray, fully desaturated),
// and 2 doubles the effect. The hue factor is the exception: it is a cyclic
// shift in [-0.5, 0.5], where both endpoints rotate the hue channel halfway
// around the color wheel.
//
// # Tensor Values
//
// ToTensor converts a decoded image to a channel-first (channels, height,
// width) float32 array with pixel values scaled from 0-255 into [0, 1].
// Normalize then applies (x - mean) / std per channel. Mean and std are
// always expressed in the scaled [0, 1] units, regardless of whether the
// input is an image or an already-converted tensor.
//
// # Error Handling
//
// Malformed parameters (out-of-bounds crop boxes, negative factors, hue
// shifts outside [-0.5, 0.5], zero std) are reported as errors; nothing in
// this package panics. Decoding failures propagate unchanged from the
// standard library decoders.
package imaging

package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// FlipH returns the image mirrored around its vertical axis.
func FlipH(img image.Image) image.Image {
	return imaging.FlipH(img)
}

// FlipV returns the image mirrored around its horizontal axis.
func FlipV(img image.Image) image.Image {
	return imaging.FlipV(img)
}

// Crop extracts the (height, width) box whose top-left corner is at
// (top, left).
//
// The box must be non-empty and lie entirely within the source image;
// otherwise an error is returned. The output always has exactly the
// requested dimensions.
func Crop(img image.Image, top, left, height, width int) (image.Image, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid crop box: height and width must be positive, got %dx%d", height, width)
	}
	bounds := img.Bounds()
	if top < 0 || left < 0 || top+height > bounds.Dy() || left+width > bounds.Dx() {
		return nil, fmt.Errorf("crop box (top=%d,left=%d,%dx%d) outside image bounds %dx%d",
			top, left, height, width, bounds.Dy(), bounds.Dx())
	}

	rect := image.Rect(
		bounds.Min.X+left,
		bounds.Min.Y+top,
		bounds.Min.X+left+width,
		bounds.Min.Y+top+height,
	)
	return imaging.Crop(img, rect), nil
}

// CenterCrop extracts a centrally placed box of the given size.
//
// The top-left corner is computed as top = round((H-h)/2) and
// left = round((W-w)/2). A crop larger than the source yields the bounds
// error from Crop.
func CenterCrop(img image.Image, size Size) (image.Image, error) {
	bounds := img.Bounds()
	top := int(math.Round(float64(bounds.Dy()-size.Height) / 2))
	left := int(math.Round(float64(bounds.Dx()-size.Width) / 2))
	return Crop(img, top, left, size.Height, size.Width)
}

// Resize scales the image to exactly (size.Height, size.Width) using the
// given resampling kernel.
func Resize(img image.Image, size Size, interp Interpolation) image.Image {
	return imaging.Resize(img, size.Width, size.Height, interp.filter())
}

// ResizeShortEdge scales the image so that its shorter edge equals edge
// pixels, preserving the aspect ratio. This is the single-integer form of
// resize used to prepare images for a fixed-size center crop.
func ResizeShortEdge(img image.Image, edge int, interp Interpolation) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var size Size
	if w < h {
		size = Size{Width: edge, Height: h * edge / w}
	} else {
		size = Size{Height: edge, Width: w * edge / h}
	}
	return Resize(img, size, interp)
}

// CropAndResize crops the (height, width) box at (top, left) and scales the
// result to the target size. Random area crops use this as their final step.
func CropAndResize(img image.Image, top, left, height, width int, size Size, interp Interpolation) (image.Image, error) {
	cropped, err := Crop(img, top, left, height, width)
	if err != nil {
		return nil, err
	}
	return Resize(cropped, size, interp), nil
}

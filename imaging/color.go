package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// AdjustBrightness scales pixel intensities by factor.
//
// A factor of 0 gives a black image, 1 returns the image unchanged, and 2
// doubles the brightness. Negative factors are an error.
func AdjustBrightness(img image.Image, factor float64) (image.Image, error) {
	if factor < 0 {
		return nil, fmt.Errorf("brightness factor must be non-negative, got %g", factor)
	}
	return adjust.Brightness(img, factor-1), nil
}

// AdjustContrast scales the distance of each pixel from the mid-tone by
// factor.
//
// A factor of 0 gives a solid gray image, 1 returns the image unchanged, and
// 2 doubles the contrast. Negative factors are an error.
func AdjustContrast(img image.Image, factor float64) (image.Image, error) {
	if factor < 0 {
		return nil, fmt.Errorf("contrast factor must be non-negative, got %g", factor)
	}
	return adjust.Contrast(img, factor-1), nil
}

// AdjustSaturation scales color saturation by factor.
//
// A factor of 0 gives a fully desaturated (black and white) image, 1 returns
// the image unchanged, and 2 doubles the saturation. Negative factors are an
// error.
func AdjustSaturation(img image.Image, factor float64) (image.Image, error) {
	if factor < 0 {
		return nil, fmt.Errorf("saturation factor must be non-negative, got %g", factor)
	}
	return adjust.Saturation(img, factor-1), nil
}

// AdjustHue cyclically shifts the hue channel of every pixel.
//
// The image is converted to HSV, the hue channel is rotated by factor*360
// degrees, and the result converted back. factor must lie in [-0.5, 0.5]:
// 0 returns the image unchanged, and both -0.5 and 0.5 rotate the hue halfway
// around the wheel, producing complementary colors.
//
// Fully transparent pixels have no defined hue and pass through unchanged;
// alpha is preserved for all pixels.
func AdjustHue(img image.Image, factor float64) (image.Image, error) {
	if factor < -0.5 || factor > 0.5 {
		return nil, fmt.Errorf("hue factor must be in [-0.5, 0.5], got %g", factor)
	}

	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	shift := factor * 360

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c, ok := colorful.MakeColor(color.NRGBA{R: px.R, G: px.G, B: px.B, A: 255})
			if !ok {
				dst.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, px)
				continue
			}
			h, s, v := c.Hsv()
			h = math.Mod(h+shift+360, 360)
			r, g, b := colorful.Hsv(h, s, v).RGB255()
			dst.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.NRGBA{R: r, G: g, B: b, A: px.A})
		}
	}
	return dst, nil
}

// AdjustGamma applies the power-law transform
//
//	out = 255 * gain * (in/255)^gamma
//
// to each color channel, clamped to [0, 255]. A gamma above 1 darkens the
// shadows; below 1 lightens them. gamma must be non-negative.
func AdjustGamma(img image.Image, gamma, gain float64) (image.Image, error) {
	if gamma < 0 {
		return nil, fmt.Errorf("gamma must be non-negative, got %g", gamma)
	}

	var lut [256]uint8
	for i := range lut {
		v := 255 * gain * math.Pow(float64(i)/255, gamma)
		lut[i] = uint8(math.Min(math.Max(math.Round(v), 0), 255))
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
	}), nil
}

// Grayscale converts an image to its grayscale version.
//
// numOutputChannels selects the output representation:
//   - 1: a single-channel *image.Gray holding BT.601 luma
//   - 3: a color image with the luma replicated across R, G and B
//
// Any other channel count is an error.
func Grayscale(img image.Image, numOutputChannels int) (image.Image, error) {
	switch numOutputChannels {
	case 1:
		bounds := img.Bounds()
		dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				dst.Set(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(img.At(x, y)))
			}
		}
		return dst, nil
	case 3:
		return imaging.Grayscale(img), nil
	default:
		return nil, fmt.Errorf("grayscale output must have 1 or 3 channels, got %d", numOutputChannels)
	}
}

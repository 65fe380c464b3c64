package imaging

import (
	"fmt"
	"image"
	"math"
)

// ChannelStats holds per-channel pixel statistics in scaled [0, 1] units.
//
// Mean and Std are indexed R, G, B and can be passed directly to Normalize
// or transform.NewImageNormalize.
type ChannelStats struct {
	Mean []float32 `json:"mean"`
	Std  []float32 `json:"std"`
}

// ComputeChannelStats accumulates the per-channel mean and standard deviation
// over every pixel of the given images.
//
// This derives the normalization constants for a dataset: compute the stats
// once over (a sample of) the training images, then construct the pipeline's
// normalization stage from the result. The images may have differing sizes.
// An empty input is an error.
func ComputeChannelStats(images []image.Image) (*ChannelStats, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("channel stats require at least one image")
	}

	var sum, sumSq [3]float64
	var count float64

	for _, img := range images {
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				for ch, v := range [3]uint32{r, g, b} {
					f := float64(v>>8) / 255
					sum[ch] += f
					sumSq[ch] += f * f
				}
			}
		}
		count += float64(bounds.Dx() * bounds.Dy())
	}

	stats := &ChannelStats{
		Mean: make([]float32, 3),
		Std:  make([]float32, 3),
	}
	for ch := 0; ch < 3; ch++ {
		mean := sum[ch] / count
		variance := sumSq[ch]/count - mean*mean
		if variance < 0 {
			variance = 0
		}
		stats.Mean[ch] = float32(mean)
		stats.Std[ch] = float32(math.Sqrt(variance))
	}
	return stats, nil
}

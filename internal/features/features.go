// Package features computes per-image colour statistics from raw pixel data.
package features

import (
	"errors"
	"fmt"
	"math"

	"github.com/bagtoad/lutsuggest/internal/decode"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyBuffer is returned for buffers with no pixels or a length that
// does not match their dimensions.
var ErrEmptyBuffer = errors.New("empty or malformed pixel buffer")

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// ImageFeature holds the colour statistics of a single image. All channel
// values are normalized to [0, 1].
type ImageFeature struct {
	ID         string     `json:"id"`
	RGBMeans   [3]float64 `json:"rgbMeans"`
	WarmBias   float64    `json:"warmBias"`
	CoolBias   float64    `json:"coolBias"`
	GreenPush  float64    `json:"greenPush"`
	Contrast   float64    `json:"contrast"`
	Brightness float64    `json:"brightness"`
	Saturation float64    `json:"saturation"`
}

// Extract computes the ImageFeature of buf. The alpha channel is ignored.
func Extract(buf *decode.PixelBuffer, id string) (ImageFeature, error) {
	if buf == nil || buf.Width <= 0 || buf.Height <= 0 {
		return ImageFeature{}, fmt.Errorf("%s: %w", id, ErrEmptyBuffer)
	}
	n := buf.Len()
	if len(buf.Pix) != 4*n {
		return ImageFeature{}, fmt.Errorf("%s: %w: expected %d bytes, got %d", id, ErrEmptyBuffer, 4*n, len(buf.Pix))
	}

	var rSum, gSum, bSum, satSum float64
	luma := make([]float64, n)

	for i := 0; i < n; i++ {
		p := buf.Pix[4*i : 4*i+3 : 4*i+3]
		c := colorful.Color{
			R: float64(p[0]) / 255.0,
			G: float64(p[1]) / 255.0,
			B: float64(p[2]) / 255.0,
		}

		rSum += c.R
		gSum += c.G
		bSum += c.B

		luma[i] = lumaR*c.R + lumaG*c.G + lumaB*c.B

		_, s, _ := c.Hsv()
		satSum += s
	}

	count := float64(n)
	rMean := rSum / count
	gMean := gSum / count
	bMean := bSum / count

	brightness, variance := stat.PopMeanVariance(luma, nil)
	contrast := 0.0
	if n > 1 {
		contrast = math.Sqrt(max(variance, 0))
	}

	warm := rMean - bMean
	return ImageFeature{
		ID:         id,
		RGBMeans:   [3]float64{rMean, gMean, bMean},
		WarmBias:   warm,
		CoolBias:   -warm,
		GreenPush:  gMean - (rMean+bMean)/2,
		Contrast:   contrast,
		Brightness: brightness,
		Saturation: satSum / count,
	}, nil
}

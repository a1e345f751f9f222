// Package scorer rates how well a LUT fits the aggregate colour features of
// a batch of photos.
package scorer

import (
	"math"

	"github.com/bagtoad/lutsuggest/internal/analysis"
	"github.com/bagtoad/lutsuggest/internal/catalog"
)

// highContrast separates contrast-boosting from contrast-softening
// adjustment picks.
const highContrast = 0.25

// Score returns the affinity of entry for agg, clamped to [0, 1].
func Score(agg analysis.AggregateFeature, entry catalog.LutEntry) float64 {
	var s float64
	switch p := entry.Props.(type) {
	case catalog.BaseProps:
		s = scoreBase(agg, p)
	case catalog.AdjustmentProps:
		s = scoreAdjustment(agg, p)
	case catalog.EffectProps:
		s = scoreEffect(agg, p)
	default:
		return 0
	}
	return clamp(s)
}

// Warmth is centred on 0.5 so a neutral LUT matches a zero warm bias.
func scoreBase(agg analysis.AggregateFeature, p catalog.BaseProps) float64 {
	warm := 1 - math.Abs(agg.AvgWarmBias-(p.Warmth-0.5))
	contrast := 1 - math.Abs(agg.AvgContrast-p.Contrast)
	intensity := 1 - math.Abs(agg.AvgSaturation-p.Intensity)
	return 0.5*warm + 0.3*contrast + 0.2*intensity
}

func scoreAdjustment(agg analysis.AggregateFeature, p catalog.AdjustmentProps) float64 {
	clarity := 0.3 * p.Clarity * agg.AvgSaturation
	if agg.AvgContrast > highContrast {
		return 0.7*p.ContrastBoost + clarity
	}
	return 0.7*(1-p.ContrastBoost) + clarity
}

func scoreEffect(agg analysis.AggregateFeature, p catalog.EffectProps) float64 {
	potential := 0.4*agg.AvgSaturation + 0.3*(1-agg.AvgBrightness) + 0.3*agg.AvgContrast
	return 0.6*p.Creativity*potential + 0.4*p.Uniqueness
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

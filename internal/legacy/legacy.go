// Package legacy implements the original threshold-based LUT recommendation.
// It works directly on the aggregate features and does not consult the
// catalog, so its picks can differ from the scored recipes.
package legacy

import "github.com/bagtoad/lutsuggest/internal/analysis"

// Slot is a single recommended LUT with its suggested strength range.
type Slot struct {
	Lut   string `json:"lut"`
	Range string `json:"range"`
	Note  string `json:"note"`
}

// Pair is one step of a fixed combination recipe.
type Pair struct {
	Lut      string `json:"lut"`
	Strength string `json:"strength"`
}

// Recommendation is the three-slot result plus a concrete combination.
type Recommendation struct {
	Base        Slot   `json:"baseLut"`
	Adjustment  Slot   `json:"adjustmentLut"`
	FineTune    Slot   `json:"fineTuneLut"`
	Combination []Pair `json:"combination"`
}

// Recommend applies the threshold ladder to agg.
func Recommend(agg analysis.AggregateFeature) Recommendation {
	return Recommendation{
		Base:        baseSlot(agg.AvgWarmBias),
		Adjustment:  adjustmentSlot(agg.AvgContrast),
		FineTune:    fineTuneSlot(agg.AvgGreenPush),
		Combination: combination(agg.AvgWarmBias, agg.AvgContrast),
	}
}

func baseSlot(warm float64) Slot {
	switch {
	case warm > 0.08:
		return Slot{"Maverick.cube", "80-85%", "strong warm bias"}
	case warm > 0.04:
		return Slot{"F-PRO400H.cube", "75-80%", "moderate warmth"}
	case warm > 0:
		return Slot{"K-Chrome.cube", "70-75%", "gentle warmth"}
	default:
		return Slot{"Nolan.cube", "70-75%", "neutral to cool"}
	}
}

func adjustmentSlot(contrast float64) Slot {
	switch {
	case contrast > 0.15:
		return Slot{"clean contrast.cube", "40-50%", "keeps high contrast"}
	case contrast > 0.10:
		return Slot{"highland.cube", "30-40%", "medium contrast"}
	default:
		return Slot{"pastel-light.cube", "25-30%", "soft texture"}
	}
}

func fineTuneSlot(green float64) Slot {
	switch {
	case green > 0.02:
		return Slot{"L-green.cube", "15-25%", "green adjustment"}
	case green < -0.02:
		return Slot{"Smorky silversalt.cube", "15-20%", "magenta adjustment"}
	default:
		return Slot{"Blue sierra.cube", "10-20%", "adds blue depth"}
	}
}

func combination(warm, contrast float64) []Pair {
	switch {
	case warm > 0.06 && contrast > 0.12:
		return []Pair{
			{"Maverick.cube", "80%"},
			{"clean contrast.cube", "35%"},
			{"F-PRO400H.cube", "20%"},
		}
	case warm > 0.03:
		return []Pair{
			{"F-PRO400H.cube", "75%"},
			{"highland.cube", "30%"},
			{"Maverick.cube", "25%"},
		}
	default:
		return []Pair{
			{"K-Chrome.cube", "70%"},
			{"pastel-light.cube", "30%"},
			{"Blue sierra.cube", "15%"},
		}
	}
}

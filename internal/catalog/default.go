package catalog

import "sync"

// defaultEntries is the built-in LUT registry. Order within each category
// is the fallback scan order.
var defaultEntries = []LutEntry{
	// Base looks
	{Name: "Maverick.cube", Props: BaseProps{Warmth: 0.85, Contrast: 0.65, Intensity: 0.75, Mood: "bold warm"}, Range: Range{70, 90}},
	{Name: "F-PRO400H.cube", Props: BaseProps{Warmth: 0.65, Contrast: 0.45, Intensity: 0.55, Mood: "soft film"}, Range: Range{65, 85}},
	{Name: "K-Chrome.cube", Props: BaseProps{Warmth: 0.58, Contrast: 0.60, Intensity: 0.70, Mood: "vivid slide"}, Range: Range{60, 80}},
	{Name: "Nolan.cube", Props: BaseProps{Warmth: 0.30, Contrast: 0.70, Intensity: 0.45, Mood: "cool cinematic"}, Range: Range{60, 80}},
	{Name: "Kodak 2383.cube", Props: BaseProps{Warmth: 0.62, Contrast: 0.75, Intensity: 0.60, Mood: "print film"}, Range: Range{55, 75}},
	{Name: "Fuji Eterna.cube", Props: BaseProps{Warmth: 0.45, Contrast: 0.40, Intensity: 0.40, Mood: "muted cinema"}, Range: Range{60, 80}},

	// Adjustments
	{Name: "clean contrast.cube", Props: AdjustmentProps{ContrastBoost: 0.80, Clarity: 0.60, Strength: 0.60}, Range: Range{30, 50}},
	{Name: "highland.cube", Props: AdjustmentProps{ContrastBoost: 0.55, Clarity: 0.50, Strength: 0.50}, Range: Range{25, 40}},
	{Name: "pastel-light.cube", Props: AdjustmentProps{ContrastBoost: 0.20, Clarity: 0.30, Strength: 0.40}, Range: Range{20, 35}},
	{Name: "matte fade.cube", Props: AdjustmentProps{ContrastBoost: 0.10, Clarity: 0.25, Strength: 0.35}, Range: Range{20, 30}},
	{Name: "crisp detail.cube", Props: AdjustmentProps{ContrastBoost: 0.65, Clarity: 0.85, Strength: 0.55}, Range: Range{25, 45}},

	// Effects
	{Name: "L-green.cube", Props: EffectProps{Creativity: 0.45, Stylization: 0.40, Uniqueness: 0.35}, Range: Range{10, 25}},
	{Name: "Smorky silversalt.cube", Props: EffectProps{Creativity: 0.70, Stylization: 0.75, Uniqueness: 0.65}, Range: Range{10, 20}},
	{Name: "Blue sierra.cube", Props: EffectProps{Creativity: 0.55, Stylization: 0.50, Uniqueness: 0.45}, Range: Range{10, 20}},
	{Name: "Bleach bypass.cube", Props: EffectProps{Creativity: 0.80, Stylization: 0.85, Uniqueness: 0.75}, Range: Range{10, 25}},
	{Name: "Golden hour glow.cube", Props: EffectProps{Creativity: 0.60, Stylization: 0.55, Uniqueness: 0.50}, Range: Range{15, 25}},
	{Name: "Teal split.cube", Props: EffectProps{Creativity: 0.75, Stylization: 0.70, Uniqueness: 0.60}, Range: Range{10, 25}},
}

var defaultDirections = []DirectionTemplate{
	{
		Key:     "natural",
		Name:    "Natural",
		Concept: "Faithful colour on a gentle film base; keeps skin tones and foliage true.",
		Priority: [len(Categories)][]string{
			Base:       {"K-Chrome.cube", "F-PRO400H.cube", "Kodak 2383.cube"},
			Adjustment: {"highland.cube", "pastel-light.cube"},
			Effect:     {"Blue sierra.cube", "L-green.cube"},
		},
	},
	{
		Key:     "cinematic",
		Name:    "Cinematic",
		Concept: "Cool shadows, dense contrast and a split-toned finish.",
		Priority: [len(Categories)][]string{
			Base:       {"Nolan.cube", "Kodak 2383.cube", "Maverick.cube"},
			Adjustment: {"clean contrast.cube", "crisp detail.cube"},
			Effect:     {"Teal split.cube", "Bleach bypass.cube"},
		},
	},
	{
		Key:     "film",
		Name:    "Film",
		Concept: "Negative-film palette with lifted blacks and a silver-salt grain feel.",
		Priority: [len(Categories)][]string{
			Base:       {"F-PRO400H.cube", "Kodak 2383.cube", "K-Chrome.cube"},
			Adjustment: {"matte fade.cube", "highland.cube"},
			Effect:     {"Smorky silversalt.cube", "Golden hour glow.cube"},
		},
	},
	{
		Key:     "vivid",
		Name:    "Vivid",
		Concept: "Saturated warm colour with crisp micro-contrast.",
		Priority: [len(Categories)][]string{
			Base:       {"Maverick.cube", "K-Chrome.cube"},
			Adjustment: {"crisp detail.cube", "clean contrast.cube"},
			Effect:     {"Golden hour glow.cube", "L-green.cube"},
		},
	},
	{
		Key:     "moody",
		Name:    "Moody",
		Concept: "Desaturated, low-key grade with faded highlights.",
		Priority: [len(Categories)][]string{
			Base:       {"Nolan.cube", "Fuji Eterna.cube", "Maverick.cube"},
			Adjustment: {"matte fade.cube", "clean contrast.cube"},
			Effect:     {"Bleach bypass.cube", "Smorky silversalt.cube"},
		},
	},
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := New(defaultEntries, defaultDirections)
	if err != nil {
		panic("catalog: built-in catalog is invalid: " + err.Error())
	}
	return c
})

// Default returns the built-in catalog. It is built once and shared; the
// returned value must be treated as read-only.
func Default() *Catalog {
	return defaultCatalog()
}

// DefaultDirections returns a copy of the built-in direction templates.
func DefaultDirections() []DirectionTemplate {
	return cloneDirections(defaultDirections)
}

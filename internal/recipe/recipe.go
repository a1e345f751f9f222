// Package recipe assembles blend recipes: for each direction, one scored LUT
// per category with a concrete blend strength.
package recipe

import (
	"errors"
	"fmt"
	"math"

	"github.com/bagtoad/lutsuggest/internal/analysis"
	"github.com/bagtoad/lutsuggest/internal/catalog"
	"github.com/bagtoad/lutsuggest/internal/scorer"
)

// ErrMissingCandidate is returned when a category has no LUTs at all.
var ErrMissingCandidate = errors.New("no candidate LUT in category")

// BlendItem is one LUT applied at a given strength.
type BlendItem struct {
	Category catalog.Category `json:"category"`
	Lut      string           `json:"lut"`
	Strength int              `json:"strength"`
	Score    float64          `json:"score"`
}

// Percent renders the strength the way it is shown to users, e.g. "75%".
func (b BlendItem) Percent() string {
	return fmt.Sprintf("%d%%", b.Strength)
}

// Recipe is an ordered blend: base, adjustment, effect.
type Recipe struct {
	Key     string                             `json:"key"`
	Name    string                             `json:"name"`
	Concept string                             `json:"concept"`
	Blend   [len(catalog.Categories)]BlendItem `json:"blend"`
}

// Set maps direction keys to recipes. Order lists the keys in template order.
type Set struct {
	Order   []string          `json:"order"`
	Recipes map[string]Recipe `json:"recipes"`
}

// Ordered returns the recipes in template order.
func (s Set) Ordered() []Recipe {
	out := make([]Recipe, 0, len(s.Order))
	for _, k := range s.Order {
		out = append(out, s.Recipes[k])
	}
	return out
}

// Assemble builds one recipe per direction in c. It fails only when a
// category has no LUTs.
func Assemble(agg analysis.AggregateFeature, c *catalog.Catalog) (Set, error) {
	dirs := c.Directions()
	set := Set{
		Order:   make([]string, 0, len(dirs)),
		Recipes: make(map[string]Recipe, len(dirs)),
	}

	for _, d := range dirs {
		r := Recipe{Key: d.Key, Name: d.Name, Concept: d.Concept}
		for _, cat := range catalog.Categories {
			entry, score, err := pick(agg, c, cat, d.Priority[cat])
			if err != nil {
				return Set{}, fmt.Errorf("direction %s: %w", d.Key, err)
			}
			r.Blend[cat] = BlendItem{
				Category: cat,
				Lut:      entry.Name,
				Strength: Strength(entry.Range, score),
				Score:    score,
			}
		}
		set.Order = append(set.Order, d.Key)
		set.Recipes[d.Key] = r
	}
	return set, nil
}

// pick returns the best LUT for a category. The priority list is tried
// first; if nothing in it scores above zero, the whole category is scanned
// in declaration order. Ties keep the earlier entry. If every LUT scores
// zero, the first declared one is used.
func pick(agg analysis.AggregateFeature, c *catalog.Catalog, cat catalog.Category, priority []string) (catalog.LutEntry, float64, error) {
	var candidates []catalog.LutEntry
	for _, name := range priority {
		if e, ok := c.Lookup(cat, name); ok {
			candidates = append(candidates, e)
		}
	}
	if e, s, ok := best(agg, candidates); ok {
		return e, s, nil
	}

	all := c.Entries(cat)
	if e, s, ok := best(agg, all); ok {
		return e, s, nil
	}
	if len(all) == 0 {
		return catalog.LutEntry{}, 0, fmt.Errorf("%w: %s", ErrMissingCandidate, cat)
	}
	return all[0], 0, nil
}

func best(agg analysis.AggregateFeature, entries []catalog.LutEntry) (catalog.LutEntry, float64, bool) {
	var (
		winner    catalog.LutEntry
		bestScore float64
		found     bool
	)
	for _, e := range entries {
		if s := scorer.Score(agg, e); s > bestScore {
			winner, bestScore, found = e, s, true
		}
	}
	return winner, bestScore, found
}

// Strength maps a [0, 1] score linearly onto r, rounding half away from zero.
func Strength(r catalog.Range, score float64) int {
	v := int(math.Round(float64(r.Min) + score*float64(r.Max-r.Min)))
	return min(max(v, r.Min), r.Max)
}

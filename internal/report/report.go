// Package report renders analysis results for the terminal, JSON and CSV.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bagtoad/lutsuggest/internal/analysis"
	"github.com/bagtoad/lutsuggest/internal/legacy"
	"github.com/bagtoad/lutsuggest/internal/recipe"
	"github.com/jszwec/csvutil"
)

// Result is everything one analysis produced. Recipes and Legacy are nil
// when that recommender was not run.
type Result struct {
	Aggregate analysis.AggregateFeature
	Recipes   *recipe.Set
	Legacy    *legacy.Recommendation
	// Skipped is the number of inputs that were not images.
	Skipped int
}

// Print writes a human-readable summary to w.
func Print(w io.Writer, res Result) {
	agg := res.Aggregate

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Analysis ===")
	fmt.Fprintf(w, "Images analyzed:     %d\n", agg.ImageCount)
	if res.Skipped > 0 {
		fmt.Fprintf(w, "Non-image files:     %d\n", res.Skipped)
	}
	for _, f := range agg.Individual {
		fmt.Fprintf(w, "  %s: warm %+.4f, green %+.4f, contrast %.4f, brightness %.4f, saturation %.4f\n",
			f.ID, f.WarmBias, f.GreenPush, f.Contrast, f.Brightness, f.Saturation)
	}
	fmt.Fprintf(w, "Avg warm bias:       %+.4f\n", agg.AvgWarmBias)
	fmt.Fprintf(w, "Avg green push:      %+.4f\n", agg.AvgGreenPush)
	fmt.Fprintf(w, "Avg contrast:        %.4f\n", agg.AvgContrast)
	fmt.Fprintf(w, "Avg brightness:      %.4f\n", agg.AvgBrightness)
	fmt.Fprintf(w, "Avg saturation:      %.4f\n", agg.AvgSaturation)

	if res.Recipes != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Recipes ===")
		for _, r := range res.Recipes.Ordered() {
			fmt.Fprintf(w, "  %s (%s)\n", r.Name, r.Key)
			if r.Concept != "" {
				fmt.Fprintf(w, "    %s\n", r.Concept)
			}
			for i, item := range r.Blend {
				fmt.Fprintf(w, "    %d. %-11s %s @ %s (score %.3f)\n",
					i+1, item.Category, item.Lut, item.Percent(), item.Score)
			}
		}
	}

	if res.Legacy != nil {
		l := res.Legacy
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Classic Recommendation ===")
		fmt.Fprintf(w, "Base:                %s %s (%s)\n", l.Base.Lut, l.Base.Range, l.Base.Note)
		fmt.Fprintf(w, "Adjustment:          %s %s (%s)\n", l.Adjustment.Lut, l.Adjustment.Range, l.Adjustment.Note)
		fmt.Fprintf(w, "Fine tune:           %s %s (%s)\n", l.FineTune.Lut, l.FineTune.Range, l.FineTune.Note)
		fmt.Fprintln(w, "Combination:")
		for i, p := range l.Combination {
			fmt.Fprintf(w, "  %d. %s @ %s\n", i+1, p.Lut, p.Strength)
		}
	}
	fmt.Fprintln(w)
}

type document struct {
	Aggregate analysis.AggregateFeature `json:"aggregate"`
	Recipes   []recipe.Recipe           `json:"recipes,omitempty"`
	Legacy    *legacy.Recommendation    `json:"legacy,omitempty"`
}

// WriteJSON writes res as an indented JSON document. Recipes are listed in
// direction order.
func WriteJSON(w io.Writer, res Result) error {
	doc := document{Aggregate: res.Aggregate, Legacy: res.Legacy}
	if res.Recipes != nil {
		doc.Recipes = res.Recipes.Ordered()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type blendRow struct {
	Direction string  `csv:"direction"`
	Category  string  `csv:"category"`
	Lut       string  `csv:"lut"`
	Strength  string  `csv:"strength"`
	Score     float64 `csv:"score"`
}

// WriteCSV writes one row per blend item of every recipe in set.
func WriteCSV(w io.Writer, set recipe.Set) error {
	var rows []blendRow
	for _, r := range set.Ordered() {
		for _, item := range r.Blend {
			rows = append(rows, blendRow{
				Direction: r.Key,
				Category:  item.Category.String(),
				Lut:       item.Lut,
				Strength:  item.Percent(),
				Score:     item.Score,
			})
		}
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("cannot encode CSV: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Package catalog holds the registry of candidate LUTs and the direction
// templates used to build blend recipes.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Category is the slot a LUT fills in a blend recipe.
type Category int

const (
	Base Category = iota
	Adjustment
	Effect
)

// Categories lists every category in recipe order.
var Categories = [...]Category{Base, Adjustment, Effect}

var categoryNames = [...]string{"base", "adjustment", "effect"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory accepts the lowercase category names.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(s, name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Range is a recommended blend strength in percent.
type Range struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d%%", r.Min, r.Max)
}

// Props is the category-specific property vector of a LUT. The concrete
// type determines the LUT's category.
type Props interface {
	Category() Category
	values() []float64
}

// BaseProps describes a base look.
type BaseProps struct {
	Warmth    float64
	Contrast  float64
	Intensity float64
	Mood      string
}

func (BaseProps) Category() Category { return Base }

func (p BaseProps) values() []float64 { return []float64{p.Warmth, p.Contrast, p.Intensity} }

// AdjustmentProps describes a tonal adjustment LUT.
type AdjustmentProps struct {
	ContrastBoost float64
	Clarity       float64
	Strength      float64
}

func (AdjustmentProps) Category() Category { return Adjustment }

func (p AdjustmentProps) values() []float64 { return []float64{p.ContrastBoost, p.Clarity, p.Strength} }

// EffectProps describes a creative finishing LUT.
type EffectProps struct {
	Creativity  float64
	Stylization float64
	Uniqueness  float64
}

func (EffectProps) Category() Category { return Effect }

func (p EffectProps) values() []float64 { return []float64{p.Creativity, p.Stylization, p.Uniqueness} }

// LutEntry is one candidate LUT.
type LutEntry struct {
	Name  string
	Props Props
	Range Range
}

// Category returns the category implied by the entry's properties.
func (e LutEntry) Category() Category {
	return e.Props.Category()
}

// DirectionTemplate is a stylistic target with per-category priority lists
// of LUT names, tried in order before the whole category is scanned.
type DirectionTemplate struct {
	Key      string
	Name     string
	Concept  string
	Priority [len(Categories)][]string
}

// DirectionCount is the number of directions every catalog must define.
const DirectionCount = 5

// Catalog is an immutable, ordered set of LUTs and direction templates.
// Declaration order is preserved and is significant for tie-breaking.
type Catalog struct {
	entries    [len(Categories)][]LutEntry
	index      map[string]LutEntry
	directions []DirectionTemplate
}

// New validates and builds a catalog. Entries are grouped by category,
// keeping their relative order.
func New(entries []LutEntry, directions []DirectionTemplate) (*Catalog, error) {
	c := &Catalog{
		index:      make(map[string]LutEntry, len(entries)),
		directions: cloneDirections(directions),
	}
	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		if _, dup := c.index[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate LUT name %q", ErrInvalidCatalog, e.Name)
		}
		c.index[e.Name] = e
		cat := e.Category()
		c.entries[cat] = append(c.entries[cat], e)
	}
	if err := validateDirections(directions); err != nil {
		return nil, err
	}
	return c, nil
}

func validateEntry(e LutEntry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: LUT with empty name", ErrInvalidCatalog)
	}
	if e.Props == nil {
		return fmt.Errorf("%w: %s: missing properties", ErrInvalidCatalog, e.Name)
	}
	if c := e.Props.Category(); c < 0 || int(c) >= len(Categories) {
		return fmt.Errorf("%w: %s: unknown category %d", ErrInvalidCatalog, e.Name, int(c))
	}
	for _, v := range e.Props.values() {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s: property %v outside [0,1]", ErrInvalidCatalog, e.Name, v)
		}
	}
	if e.Range.Min < 0 || e.Range.Min > e.Range.Max || e.Range.Max > 100 {
		return fmt.Errorf("%w: %s: bad range %s", ErrInvalidCatalog, e.Name, e.Range)
	}
	return nil
}

func validateDirections(directions []DirectionTemplate) error {
	if len(directions) != DirectionCount {
		return fmt.Errorf("%w: expected %d directions, got %d", ErrInvalidCatalog, DirectionCount, len(directions))
	}
	seen := make(map[string]bool, len(directions))
	for _, d := range directions {
		if d.Key == "" {
			return fmt.Errorf("%w: direction with empty key", ErrInvalidCatalog)
		}
		if seen[d.Key] {
			return fmt.Errorf("%w: duplicate direction %q", ErrInvalidCatalog, d.Key)
		}
		seen[d.Key] = true
	}
	return nil
}

// Entries returns the LUTs of a category in declaration order.
func (c *Catalog) Entries(cat Category) []LutEntry {
	if cat < 0 || int(cat) >= len(c.entries) {
		return nil
	}
	return slices.Clone(c.entries[cat])
}

// Lookup finds a LUT by name within a category.
func (c *Catalog) Lookup(cat Category, name string) (LutEntry, bool) {
	e, ok := c.index[name]
	if !ok || e.Category() != cat {
		return LutEntry{}, false
	}
	return e, true
}

// Directions returns the direction templates in declaration order.
func (c *Catalog) Directions() []DirectionTemplate {
	return cloneDirections(c.directions)
}

func cloneDirections(in []DirectionTemplate) []DirectionTemplate {
	out := make([]DirectionTemplate, len(in))
	for i, d := range in {
		out[i] = d
		for j := range d.Priority {
			out[i].Priority[j] = slices.Clone(d.Priority[j])
		}
	}
	return out
}

// Len returns the total number of LUTs.
func (c *Catalog) Len() int {
	return len(c.index)
}

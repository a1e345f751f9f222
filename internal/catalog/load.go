package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileCatalog is the YAML shape of a catalog file.
type fileCatalog struct {
	Base       []fileBase      `yaml:"base"`
	Adjustment []fileAdjust    `yaml:"adjustment"`
	Effect     []fileEffect    `yaml:"effect"`
	Directions []fileDirection `yaml:"directions,omitempty"`
}

type fileBase struct {
	Name      string  `yaml:"name"`
	Warmth    float64 `yaml:"warmth"`
	Contrast  float64 `yaml:"contrast"`
	Intensity float64 `yaml:"intensity"`
	Mood      string  `yaml:"mood,omitempty"`
	Range     Range   `yaml:"range"`
}

type fileAdjust struct {
	Name          string  `yaml:"name"`
	ContrastBoost float64 `yaml:"contrastBoost"`
	Clarity       float64 `yaml:"clarity"`
	Strength      float64 `yaml:"strength"`
	Range         Range   `yaml:"range"`
}

type fileEffect struct {
	Name        string  `yaml:"name"`
	Creativity  float64 `yaml:"creativity"`
	Stylization float64 `yaml:"stylization"`
	Uniqueness  float64 `yaml:"uniqueness"`
	Range       Range   `yaml:"range"`
}

type fileDirection struct {
	Key        string   `yaml:"key"`
	Name       string   `yaml:"name"`
	Concept    string   `yaml:"concept"`
	Base       []string `yaml:"base"`
	Adjustment []string `yaml:"adjustment"`
	Effect     []string `yaml:"effect"`
}

// Parse reads a YAML catalog. When the document has no directions the
// built-in templates are used.
func Parse(r io.Reader) (*Catalog, error) {
	var fc fileCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	entries := make([]LutEntry, 0, len(fc.Base)+len(fc.Adjustment)+len(fc.Effect))
	for _, b := range fc.Base {
		entries = append(entries, LutEntry{
			Name:  b.Name,
			Props: BaseProps{Warmth: b.Warmth, Contrast: b.Contrast, Intensity: b.Intensity, Mood: b.Mood},
			Range: b.Range,
		})
	}
	for _, a := range fc.Adjustment {
		entries = append(entries, LutEntry{
			Name:  a.Name,
			Props: AdjustmentProps{ContrastBoost: a.ContrastBoost, Clarity: a.Clarity, Strength: a.Strength},
			Range: a.Range,
		})
	}
	for _, e := range fc.Effect {
		entries = append(entries, LutEntry{
			Name:  e.Name,
			Props: EffectProps{Creativity: e.Creativity, Stylization: e.Stylization, Uniqueness: e.Uniqueness},
			Range: e.Range,
		})
	}

	directions := defaultDirections
	if len(fc.Directions) > 0 {
		directions = make([]DirectionTemplate, len(fc.Directions))
		for i, d := range fc.Directions {
			directions[i] = DirectionTemplate{
				Key:     d.Key,
				Name:    d.Name,
				Concept: d.Concept,
				Priority: [len(Categories)][]string{
					Base:       d.Base,
					Adjustment: d.Adjustment,
					Effect:     d.Effect,
				},
			}
		}
	}

	return New(entries, directions)
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog file: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal renders c as a YAML document that Parse accepts.
func Marshal(c *Catalog) ([]byte, error) {
	var fc fileCatalog
	for _, e := range c.Entries(Base) {
		p := e.Props.(BaseProps)
		fc.Base = append(fc.Base, fileBase{Name: e.Name, Warmth: p.Warmth, Contrast: p.Contrast, Intensity: p.Intensity, Mood: p.Mood, Range: e.Range})
	}
	for _, e := range c.Entries(Adjustment) {
		p := e.Props.(AdjustmentProps)
		fc.Adjustment = append(fc.Adjustment, fileAdjust{Name: e.Name, ContrastBoost: p.ContrastBoost, Clarity: p.Clarity, Strength: p.Strength, Range: e.Range})
	}
	for _, e := range c.Entries(Effect) {
		p := e.Props.(EffectProps)
		fc.Effect = append(fc.Effect, fileEffect{Name: e.Name, Creativity: p.Creativity, Stylization: p.Stylization, Uniqueness: p.Uniqueness, Range: e.Range})
	}
	for _, d := range c.Directions() {
		fc.Directions = append(fc.Directions, fileDirection{
			Key:        d.Key,
			Name:       d.Name,
			Concept:    d.Concept,
			Base:       d.Priority[Base],
			Adjustment: d.Priority[Adjustment],
			Effect:     d.Priority[Effect],
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// configPath returns the path to the user's catalog override file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lutsuggest", "catalog.yaml"), nil
}

// Resolve returns the catalog to use.
// Priority: explicit path > ~/.lutsuggest/catalog.yaml > built-in catalog.
func Resolve(path string) (*Catalog, error) {
	if path != "" {
		return Load(path)
	}

	userPath, err := configPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(userPath); err == nil {
		return Load(userPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cannot access catalog file: %w", err)
	}

	return Default(), nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bagtoad/lutsuggest/internal/analysis"
)

func defaultOpts() options {
	return options{format: "text", mode: "both", workers: 1, limit: 5}
}

func writeSolidPNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	if err := validate(defaultOpts()); err != nil {
		t.Errorf("default options should be valid: %v", err)
	}

	bad := []func(*options){
		func(o *options) { o.format = "xml" },
		func(o *options) { o.mode = "all" },
		func(o *options) { o.format = "csv"; o.mode = "legacy" },
		func(o *options) { o.workers = 0 },
		func(o *options) { o.maxDimension = -1 },
	}
	for i, mutate := range bad {
		o := defaultOpts()
		mutate(&o)
		if err := validate(o); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, o)
		}
	}
}

func TestRunJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "red.png"), color.RGBA{R: 255, A: 255})
	writeSolidPNG(t, filepath.Join(dir, "sand.png"), color.RGBA{R: 210, G: 180, B: 140, A: 255})

	out := filepath.Join(t.TempDir(), "report.json")
	opts := defaultOpts()
	opts.format = "json"
	opts.out = out
	opts.workers = 2

	if err := run(context.Background(), []string{dir}, opts); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Aggregate struct {
			ImageCount int `json:"imageCount"`
		} `json:"aggregate"`
		Recipes []json.RawMessage `json:"recipes"`
		Legacy  *json.RawMessage  `json:"legacy"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Aggregate.ImageCount != 2 {
		t.Errorf("expected 2 images, got %d", doc.Aggregate.ImageCount)
	}
	if len(doc.Recipes) != 5 {
		t.Errorf("expected 5 recipes, got %d", len(doc.Recipes))
	}
	if doc.Legacy == nil {
		t.Error("expected legacy recommendation")
	}
}

func TestRunNoUsableImages(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := defaultOpts()
	opts.out = filepath.Join(t.TempDir(), "report.txt")
	err := run(context.Background(), []string{dir}, opts)
	if !errors.Is(err, analysis.ErrNoUsableImages) {
		t.Errorf("expected ErrNoUsableImages, got %v", err)
	}
	if _, statErr := os.Stat(opts.out); !os.IsNotExist(statErr) {
		t.Error("no report should be written for an empty batch")
	}
}

func TestPrintCatalog(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	if err := printCatalog(&buf, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"base:", "adjustment:", "effect:", "directions:", "Maverick.cube"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog output missing %q", want)
		}
	}
}

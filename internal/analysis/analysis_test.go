package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/bagtoad/lutsuggest/internal/decode"
	"github.com/bagtoad/lutsuggest/internal/features"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// fakeDecoder serves uniform buffers keyed by source ID. IDs without a
// colour fail to decode.
type fakeDecoder struct {
	colors map[string][3]uint8
	block  bool
	panics map[string]bool
}

func (d fakeDecoder) Decode(ctx context.Context, src decode.Source) (*decode.PixelBuffer, error) {
	if d.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if d.panics[src.ID] {
		panic("corrupt header")
	}
	c, ok := d.colors[src.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", decode.ErrDecode, src.ID)
	}
	pix := make([]uint8, 0, 4*4)
	for i := 0; i < 4; i++ {
		pix = append(pix, c[0], c[1], c[2], 255)
	}
	return &decode.PixelBuffer{Width: 2, Height: 2, Pix: pix}, nil
}

func sources(ids ...string) []decode.Source {
	out := make([]decode.Source, len(ids))
	for i, id := range ids {
		out[i] = decode.Source{ID: id, Path: "/fake/" + id}
	}
	return out
}

var palette = map[string][3]uint8{
	"red.png":   {255, 0, 0},
	"teal.png":  {20, 160, 170},
	"gray.png":  {128, 128, 128},
	"olive.png": {120, 140, 30},
	"navy.png":  {10, 20, 90},
}

func newAnalyzer(workers int) (*Analyzer, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	return &Analyzer{
		Decoder: fakeDecoder{colors: palette},
		Workers: workers,
		Log:     log,
	}, hook
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate(nil)
	if !errors.Is(err, ErrNoUsableImages) {
		t.Errorf("expected ErrNoUsableImages, got %v", err)
	}
}

func TestAggregateMeans(t *testing.T) {
	feats := []features.ImageFeature{
		{ID: "a", WarmBias: 0.1, Contrast: 0.2, GreenPush: -0.02, Brightness: 0.4, Saturation: 0.5},
		{ID: "b", WarmBias: 0.3, Contrast: 0.1, GreenPush: 0.04, Brightness: 0.6, Saturation: 0.1},
	}
	agg, err := Aggregate(feats)
	if err != nil {
		t.Fatal(err)
	}
	want := AggregateFeature{AvgWarmBias: 0.2, AvgContrast: 0.15, AvgGreenPush: 0.01, AvgBrightness: 0.5, AvgSaturation: 0.3}
	pairs := [][2]float64{
		{agg.AvgWarmBias, want.AvgWarmBias},
		{agg.AvgContrast, want.AvgContrast},
		{agg.AvgGreenPush, want.AvgGreenPush},
		{agg.AvgBrightness, want.AvgBrightness},
		{agg.AvgSaturation, want.AvgSaturation},
	}
	for i, p := range pairs {
		if math.Abs(p[0]-p[1]) > 1e-12 {
			t.Errorf("field %d: expected %v, got %v", i, p[1], p[0])
		}
	}
	if agg.ImageCount != 2 || len(agg.Individual) != 2 || agg.Individual[0].ID != "a" {
		t.Errorf("unexpected count/order: %d %+v", agg.ImageCount, agg.Individual)
	}
}

func TestAnalyzeSkipsFailures(t *testing.T) {
	a, hook := newAnalyzer(1)

	agg, err := a.Analyze(context.Background(), sources("red.png", "broken.jpg", "gray.png"))
	if err != nil {
		t.Fatal(err)
	}
	if agg.ImageCount != 2 {
		t.Fatalf("expected 2 images, got %d", agg.ImageCount)
	}
	if agg.Individual[0].ID != "red.png" || agg.Individual[1].ID != "gray.png" {
		t.Errorf("unexpected order: %s, %s", agg.Individual[0].ID, agg.Individual[1].ID)
	}

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
			if e.Data["image"] != "broken.jpg" {
				t.Errorf("warning for unexpected image %v", e.Data["image"])
			}
		}
	}
	if warnings != 1 {
		t.Errorf("expected 1 warning, got %d", warnings)
	}
}

func TestAnalyzeAllFail(t *testing.T) {
	a, _ := newAnalyzer(2)

	_, err := a.Analyze(context.Background(), sources("a.jpg", "b.jpg"))
	if !errors.Is(err, ErrNoUsableImages) {
		t.Errorf("expected ErrNoUsableImages, got %v", err)
	}

	_, err = a.Analyze(context.Background(), nil)
	if !errors.Is(err, ErrNoUsableImages) {
		t.Errorf("expected ErrNoUsableImages for empty batch, got %v", err)
	}
}

func TestAnalyzeOrderInsensitive(t *testing.T) {
	a, _ := newAnalyzer(1)

	x, err := a.Analyze(context.Background(), sources("red.png", "teal.png", "olive.png", "navy.png"))
	if err != nil {
		t.Fatal(err)
	}
	y, err := a.Analyze(context.Background(), sources("navy.png", "olive.png", "red.png", "teal.png"))
	if err != nil {
		t.Fatal(err)
	}

	const tol = 1e-12
	if math.Abs(x.AvgWarmBias-y.AvgWarmBias) > tol ||
		math.Abs(x.AvgContrast-y.AvgContrast) > tol ||
		math.Abs(x.AvgGreenPush-y.AvgGreenPush) > tol ||
		math.Abs(x.AvgBrightness-y.AvgBrightness) > tol ||
		math.Abs(x.AvgSaturation-y.AvgSaturation) > tol {
		t.Errorf("aggregate depends on order:\n%+v\n%+v", x, y)
	}
	if y.Individual[0].ID != "navy.png" {
		t.Errorf("individual results should follow input order, got %s first", y.Individual[0].ID)
	}
}

func TestAnalyzeWorkerCountIndependent(t *testing.T) {
	src := sources("red.png", "teal.png", "bad.gif", "gray.png", "olive.png")

	seq, _ := newAnalyzer(1)
	par, _ := newAnalyzer(4)

	x, err := seq.Analyze(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	y, err := par.Analyze(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	if x.AvgWarmBias != y.AvgWarmBias || x.AvgContrast != y.AvgContrast ||
		x.AvgGreenPush != y.AvgGreenPush || x.AvgBrightness != y.AvgBrightness ||
		x.AvgSaturation != y.AvgSaturation || x.ImageCount != y.ImageCount {
		t.Errorf("expected bit-identical aggregates:\n%+v\n%+v", x, y)
	}
	for i := range x.Individual {
		if x.Individual[i] != y.Individual[i] {
			t.Errorf("individual %d differs", i)
		}
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	a := &Analyzer{Decoder: fakeDecoder{block: true}, Workers: 2, Log: log}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg, err := a.Analyze(ctx, sources("red.png", "teal.png", "gray.png"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if agg.ImageCount != 0 || agg.Individual != nil {
		t.Errorf("cancelled analysis must not expose a partial aggregate: %+v", agg)
	}
}

func TestAnalyzeRecoversPanics(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	a := &Analyzer{
		Decoder: fakeDecoder{colors: palette, panics: map[string]bool{"teal.png": true}},
		Log:     log,
	}

	agg, err := a.Analyze(context.Background(), sources("teal.png", "red.png"))
	if err != nil {
		t.Fatal(err)
	}
	if agg.ImageCount != 1 || agg.Individual[0].ID != "red.png" {
		t.Errorf("expected only red.png to survive, got %+v", agg.Individual)
	}
}

func TestAnalyzeProgress(t *testing.T) {
	a, _ := newAnalyzer(3)
	var calls []int
	a.Progress = func(current, total int) {
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		calls = append(calls, current)
	}

	if _, err := a.Analyze(context.Background(), sources("red.png", "gray.png", "nope.png")); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 3 || calls[2] != 3 {
		t.Errorf("unexpected progress calls: %v", calls)
	}
}

// Package analysis runs feature extraction over a batch of images and
// reduces the results into one aggregate feature vector.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bagtoad/lutsuggest/internal/decode"
	"github.com/bagtoad/lutsuggest/internal/features"
	"github.com/sirupsen/logrus"
)

// ErrNoUsableImages is returned when every image in a batch failed.
var ErrNoUsableImages = errors.New("no usable images in batch")

// AggregateFeature is the unweighted mean of the per-image features of a
// batch. Individual keeps the contributing features in input order.
type AggregateFeature struct {
	AvgWarmBias   float64                 `json:"avgWarmBias"`
	AvgContrast   float64                 `json:"avgContrast"`
	AvgGreenPush  float64                 `json:"avgGreenPush"`
	AvgBrightness float64                 `json:"avgBrightness"`
	AvgSaturation float64                 `json:"avgSaturation"`
	ImageCount    int                     `json:"imageCount"`
	Individual    []features.ImageFeature `json:"individualResults"`
}

// Aggregate averages the given features. It never builds an aggregate from
// zero images.
func Aggregate(feats []features.ImageFeature) (AggregateFeature, error) {
	if len(feats) == 0 {
		return AggregateFeature{}, ErrNoUsableImages
	}

	var warm, contrast, green, brightness, saturation float64
	for _, f := range feats {
		warm += f.WarmBias
		contrast += f.Contrast
		green += f.GreenPush
		brightness += f.Brightness
		saturation += f.Saturation
	}

	n := float64(len(feats))
	return AggregateFeature{
		AvgWarmBias:   warm / n,
		AvgContrast:   contrast / n,
		AvgGreenPush:  green / n,
		AvgBrightness: brightness / n,
		AvgSaturation: saturation / n,
		ImageCount:    len(feats),
		Individual:    append([]features.ImageFeature(nil), feats...),
	}, nil
}

// Analyzer decodes and extracts features for a batch of sources.
type Analyzer struct {
	Decoder decode.Decoder
	// Workers bounds the number of images processed at once. Values below 1
	// mean one image at a time.
	Workers int
	Log     logrus.FieldLogger
	// Progress, if set, is called after each image settles.
	Progress func(current, total int)
}

type outcome struct {
	feature features.ImageFeature
	err     error
}

// Analyze processes every source and aggregates the successes. A failing
// image is logged and left out; only an all-failed batch is an error. If ctx
// is cancelled before every image settles, ctx.Err() is returned.
func (a *Analyzer) Analyze(ctx context.Context, sources []decode.Source) (AggregateFeature, error) {
	workers := a.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	outcomes := make([]outcome, len(sources))
	jobs := make(chan int)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		settled int
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = a.analyzeOne(ctx, sources[i])
				if a.Progress != nil {
					mu.Lock()
					settled++
					a.Progress(settled, len(sources))
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for i := range sources {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return AggregateFeature{}, err
	}

	feats := make([]features.ImageFeature, 0, len(sources))
	for i, o := range outcomes {
		if o.err != nil {
			a.logger().WithFields(logrus.Fields{
				"image": sources[i].ID,
				"error": o.err,
			}).Warn("skipping image")
			continue
		}
		feats = append(feats, o.feature)
	}

	agg, err := Aggregate(feats)
	if err != nil {
		return AggregateFeature{}, err
	}
	a.logger().WithFields(logrus.Fields{
		"images":  agg.ImageCount,
		"skipped": len(sources) - agg.ImageCount,
	}).Debug("batch analyzed")
	return agg, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, src decode.Source) (out outcome) {
	// Some decoders panic on corrupt input; keep that local to the image.
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("%s: panic during analysis: %v", src.ID, r)}
		}
	}()

	buf, err := a.Decoder.Decode(ctx, src)
	if err != nil {
		return outcome{err: err}
	}
	f, err := features.Extract(buf, src.ID)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{feature: f}
}

func (a *Analyzer) logger() logrus.FieldLogger {
	if a.Log != nil {
		return a.Log
	}
	return logrus.StandardLogger()
}

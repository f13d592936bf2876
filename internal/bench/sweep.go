// Package bench drives a model adapter across a sweep of
// regularization strengths and collects comparable accuracy and
// training-time series.
package bench

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/svmbench/internal/dataset"
	"github.com/cwbudde/svmbench/internal/model"
)

// TimingSource identifies where the time series of a Result came
// from. Self-reported figures exclude exchange-file I/O and process
// spawning; wall-clock figures include everything. The two are not
// apples-to-apples, so the source travels with the result instead of
// being erased.
type TimingSource string

const (
	TimingSelfReported TimingSource = "self-reported"
	TimingWallClock    TimingSource = "wall-clock"
)

// Result holds the two series of a sweep, in strict 1:1 order
// correspondence with Cs.
type Result struct {
	Name         string       `json:"name"`
	Cs           []float64    `json:"cs"`
	Accuracies   []float64    `json:"accuracies"`
	Times        []float64    `json:"times"` // seconds
	TimingSource TimingSource `json:"timingSource"`
}

// PointFunc observes each completed sweep point, in order.
type PointFunc func(index int, c, accuracy, seconds float64)

// Run sweeps the adapter over cs on the given dataset. For each value,
// in order: set C, fit, take the time (self-reported when the adapter
// offers it, wall-clock otherwise), then score against the training
// data (the comparison measures solver speed and optimization quality,
// not generalization). A failure at any point fails the whole sweep;
// there is no partial result.
func Run(name string, adapter model.Adapter, ds *dataset.Dataset, cs []float64) (*Result, error) {
	return RunWithProgress(name, adapter, ds, cs, nil)
}

// RunWithProgress is Run with a per-point callback (may be nil).
func RunWithProgress(name string, adapter model.Adapter, ds *dataset.Dataset, cs []float64, onPoint PointFunc) (*Result, error) {
	if len(cs) == 0 {
		return nil, fmt.Errorf("sweep %q: no C values", name)
	}
	for i, c := range cs {
		if c <= 0 {
			return nil, fmt.Errorf("sweep %q: C values must be positive, got %g at index %d", name, c, i)
		}
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("sweep %q: %w", name, err)
	}

	timer, selfTimed := adapter.(model.SelfTimer)

	res := &Result{
		Name:         name,
		Cs:           append([]float64(nil), cs...),
		Accuracies:   make([]float64, 0, len(cs)),
		Times:        make([]float64, 0, len(cs)),
		TimingSource: TimingWallClock,
	}
	if selfTimed {
		res.TimingSource = TimingSelfReported
	}

	for i, c := range cs {
		adapter.SetC(c)

		start := time.Now()
		if err := adapter.Fit(ds.X, ds.Y); err != nil {
			return nil, fmt.Errorf("sweep %q: point %d (C=%g): fit: %w", name, i, c, err)
		}
		seconds := time.Since(start).Seconds()

		if selfTimed {
			reported, ok := timer.Runtime()
			if !ok {
				return nil, fmt.Errorf("sweep %q: point %d (C=%g): adapter reports no runtime after fit", name, i, c)
			}
			seconds = reported
		}

		accuracy, err := adapter.Score(ds.X, ds.Y)
		if err != nil {
			return nil, fmt.Errorf("sweep %q: point %d (C=%g): score: %w", name, i, c, err)
		}

		res.Accuracies = append(res.Accuracies, accuracy)
		res.Times = append(res.Times, seconds)

		slog.Debug("sweep point done",
			"sweep", name,
			"index", i,
			"c", c,
			"accuracy", accuracy,
			"seconds", seconds,
			"timing", res.TimingSource,
		)

		if onPoint != nil {
			onPoint(i, c, accuracy, seconds)
		}
	}

	return res, nil
}

package store

import (
	"fmt"
	"time"

	"github.com/cwbudde/svmbench/internal/bench"
)

// RunConfig holds the configuration a benchmark run was started with
// (persistence copy; avoids import cycles with the server package).
type RunConfig struct {
	Dataset      string    `json:"dataset"`
	Cs           []float64 `json:"cs"`
	LearnPath    string    `json:"learnPath"`
	ClassifyPath string    `json:"classifyPath"`
	Optimizer    string    `json:"optimizer,omitempty"` // subgradient | mayfly
}

// RunRecord is a completed benchmark run: the configuration plus the
// two sweep results, one per adapter. The timing sources of the two
// results differ by design (self-reported vs wall-clock) and are kept
// verbatim.
type RunRecord struct {
	RunID      string       `json:"runId"`
	Config     RunConfig    `json:"config"`
	InProcess  bench.Result `json:"inProcess"`
	Subprocess bench.Result `json:"subprocess"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
}

// RunInfo is listing metadata for a run without the full series.
type RunInfo struct {
	RunID      string    `json:"runId"`
	Dataset    string    `json:"dataset"`
	Points     int       `json:"points"`
	FinishedAt time.Time `json:"finishedAt"`
}

// ToInfo strips a record down to listing metadata.
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:      r.RunID,
		Dataset:    r.Config.Dataset,
		Points:     len(r.Config.Cs),
		FinishedAt: r.FinishedAt,
	}
}

// Validate checks that a record is complete enough to persist: both
// result series must exist and line up 1:1 with the sweep values.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if r.Config.Dataset == "" {
		return &ValidationError{Field: "Config.Dataset", Reason: "cannot be empty"}
	}
	if len(r.Config.Cs) == 0 {
		return &ValidationError{Field: "Config.Cs", Reason: "cannot be empty"}
	}
	for _, res := range []*bench.Result{&r.InProcess, &r.Subprocess} {
		n := len(r.Config.Cs)
		if len(res.Cs) != n || len(res.Accuracies) != n || len(res.Times) != n {
			return &ValidationError{
				Field: "Result " + res.Name,
				Reason: fmt.Sprintf("series lengths %d/%d/%d do not match %d sweep values",
					len(res.Cs), len(res.Accuracies), len(res.Times), n),
			}
		}
		if res.TimingSource == "" {
			return &ValidationError{Field: "Result " + res.Name, Reason: "timing source missing"}
		}
		for i, acc := range res.Accuracies {
			if acc < 0 || acc > 1 {
				return &ValidationError{
					Field:  "Result " + res.Name,
					Reason: fmt.Sprintf("accuracy %g at point %d outside [0,1]", acc, i),
				}
			}
		}
	}
	if r.FinishedAt.IsZero() {
		return &ValidationError{Field: "FinishedAt", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError represents a run-record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

package model

// Adapter is the contract shared by every solver in the benchmark,
// whether it runs in-process or behind a child process. Callers never
// see the difference: configure C, fit, then predict or score.
type Adapter interface {
	// SetC sets the regularization strength used by the next Fit.
	SetC(c float64)

	// Fit trains on X (N x D) and y (length N, 0-based class indices).
	Fit(X [][]float64, y []int) error

	// Predict returns one 0-based class index per row of X.
	Predict(X [][]float64) ([]int, error)

	// Score returns the accuracy of Predict(X) against y.
	Score(X [][]float64, y []int) (float64, error)
}

// DecisionScorer is implemented by adapters that expose raw per-class
// decision values in addition to hard labels.
type DecisionScorer interface {
	// DecisionFunction returns an N x K matrix of per-class scores.
	DecisionFunction(X [][]float64) ([][]float64, error)
}

// SelfTimer is implemented by adapters whose solver reports its own
// training runtime. A self-reported figure excludes exchange-file I/O
// and process-spawn overhead, so it is not directly comparable to
// wall-clock timing; the sweep harness records which kind it used.
type SelfTimer interface {
	// Runtime returns the solver-reported training time in seconds for
	// the most recent Fit. ok is false if no fit has completed.
	Runtime() (seconds float64, ok bool)
}

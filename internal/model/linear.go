package model

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/svmbench/internal/opt"
)

// LinearSVM is the in-process adapter: a multiclass linear classifier
// trained on the Crammer-Singer hinge objective
//
//	lambda/2 * ||W||^2 + 1/N * sum_i max(0, 1 + max_{j != y_i} s_j - s_{y_i})
//
// with lambda = 1/(C*N), so larger C weighs training error more
// heavily, matching the external solver's convention.
//
// By default Fit runs a deterministic projected-subgradient loop.
// Setting Optimizer trains through the derivative-free opt.Optimizer
// interface instead (e.g. the mayfly adapter).
type LinearSVM struct {
	C          float64
	Epochs     int
	Seed       int64
	Optimizer  opt.Optimizer // nil = subgradient loop
	ParamBound float64       // weight bound used with Optimizer

	weights [][]float64 // K x (D+1), bias last
	classes int
	dim     int
}

// NewLinearSVM returns an adapter with defaults suitable for the small
// datasets this benchmark targets.
func NewLinearSVM() *LinearSVM {
	return &LinearSVM{
		C:          1.0,
		Epochs:     300,
		Seed:       42,
		ParamBound: 20,
	}
}

// SetC sets the regularization strength used by the next Fit.
func (m *LinearSVM) SetC(c float64) {
	m.C = c
}

// Fit trains the weight matrix from scratch.
func (m *LinearSVM) Fit(X [][]float64, y []int) error {
	if err := ValidateTrainingData(X, y); err != nil {
		return err
	}
	if m.C <= 0 {
		return fmt.Errorf("linear svm: C must be positive, got %g", m.C)
	}

	k := 0
	for _, label := range y {
		if label+1 > k {
			k = label + 1
		}
	}
	if k < 2 {
		return fmt.Errorf("linear svm: need at least 2 classes, got %d", k)
	}

	d := len(X[0])
	m.classes = k
	m.dim = d

	if m.Optimizer != nil {
		return m.fitDerivativeFree(X, y, k, d)
	}
	m.fitSubgradient(X, y, k, d)
	return nil
}

// fitSubgradient runs a Pegasos-style projected-subgradient pass over
// the samples. The visit order is shuffled with a fixed seed, so the
// result is deterministic for a given (X, y, C, Epochs, Seed).
func (m *LinearSVM) fitSubgradient(X [][]float64, y []int, k, d int) {
	n := len(X)
	lambda := 1.0 / (m.C * float64(n))

	w := make([][]float64, k)
	for c := range w {
		w[c] = make([]float64, d+1)
	}

	rng := rand.New(rand.NewSource(m.Seed))
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	t := 0
	for epoch := 0; epoch < m.Epochs; epoch++ {
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, i := range order {
			t++
			eta := 1.0 / (lambda * float64(t))

			scores := m.scoresWith(w, X[i])
			truth := y[i]
			rival := mostViolating(scores, truth)

			// Shrink step from the regularizer.
			shrink := 1.0 - eta*lambda
			for c := range w {
				for j := range w[c] {
					w[c][j] *= shrink
				}
			}

			if 1.0+scores[rival]-scores[truth] > 0 {
				for j := 0; j < d; j++ {
					w[truth][j] += eta * X[i][j]
					w[rival][j] -= eta * X[i][j]
				}
				w[truth][d] += eta
				w[rival][d] -= eta
			}
		}
	}

	m.weights = w
}

// fitDerivativeFree minimizes the same objective through the
// opt.Optimizer interface, treating the flattened weight matrix as the
// parameter vector.
func (m *LinearSVM) fitDerivativeFree(X [][]float64, y []int, k, d int) error {
	n := len(X)
	lambda := 1.0 / (m.C * float64(n))
	dim := k * (d + 1)

	eval := func(params []float64) float64 {
		w := unflatten(params, k, d+1)

		reg := 0.0
		for c := range w {
			for j := range w[c] {
				reg += w[c][j] * w[c][j]
			}
		}

		loss := 0.0
		for i := range X {
			scores := m.scoresWith(w, X[i])
			truth := y[i]
			rival := mostViolating(scores, truth)
			if margin := 1.0 + scores[rival] - scores[truth]; margin > 0 {
				loss += margin
			}
		}

		return 0.5*lambda*reg + loss/float64(n)
	}

	bound := m.ParamBound
	if bound <= 0 {
		bound = 20
	}
	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := 0; i < dim; i++ {
		lower[i] = -bound
		upper[i] = bound
	}

	best, _ := m.Optimizer.Run(eval, lower, upper, dim)
	if len(best) != dim {
		return fmt.Errorf("linear svm: optimizer returned %d parameters, expected %d", len(best), dim)
	}

	m.weights = unflatten(best, k, d+1)
	return nil
}

// Predict returns the argmax class per row.
func (m *LinearSVM) Predict(X [][]float64) ([]int, error) {
	scores, err := m.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(scores))
	for i, row := range scores {
		best := 0
		for c := 1; c < len(row); c++ {
			if row[c] > row[best] {
				best = c
			}
		}
		labels[i] = best
	}
	return labels, nil
}

// DecisionFunction returns the N x K matrix of per-class scores.
func (m *LinearSVM) DecisionFunction(X [][]float64) ([][]float64, error) {
	if m.weights == nil {
		return nil, fmt.Errorf("linear svm: not fitted")
	}

	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != m.dim {
			return nil, fmt.Errorf("linear svm: row %d has %d features, model expects %d", i, len(row), m.dim)
		}
		out[i] = m.scoresWith(m.weights, row)
	}
	return out, nil
}

// Score returns the training accuracy of Predict(X) against y.
func (m *LinearSVM) Score(X [][]float64, y []int) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return Accuracy(y, pred)
}

// NumClasses returns K after a successful Fit.
func (m *LinearSVM) NumClasses() int {
	return m.classes
}

// scoresWith computes w_c . x + b_c for every class c.
func (m *LinearSVM) scoresWith(w [][]float64, x []float64) []float64 {
	scores := make([]float64, len(w))
	for c := range w {
		s := w[c][len(x)] // bias
		for j, v := range x {
			s += w[c][j] * v
		}
		scores[c] = s
	}
	return scores
}

// mostViolating returns the index of the highest-scoring class other
// than truth.
func mostViolating(scores []float64, truth int) int {
	rival := -1
	for c := range scores {
		if c == truth {
			continue
		}
		if rival < 0 || scores[c] > scores[rival] {
			rival = c
		}
	}
	return rival
}

// unflatten reshapes a flat parameter vector into rows x cols weights.
func unflatten(params []float64, rows, cols int) [][]float64 {
	w := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		w[r] = make([]float64, cols)
		copy(w[r], params[r*cols:(r+1)*cols])
	}
	return w
}

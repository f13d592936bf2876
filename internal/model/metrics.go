package model

import "fmt"

// Accuracy returns the fraction of positions where yTrue and yPred
// agree, in [0, 1].
func Accuracy(yTrue, yPred []int) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("accuracy: %d true labels but %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, fmt.Errorf("accuracy: empty label vectors")
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ValidateTrainingData checks the (X, y) shape invariants shared by
// all adapters: non-empty X, consistent feature dimension, matching
// label count, and non-negative class indices. Adapters call this
// before doing any work (for the subprocess adapter, before spawning).
func ValidateTrainingData(X [][]float64, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("training data: no samples")
	}
	if len(X) != len(y) {
		return fmt.Errorf("training data: %d feature rows but %d labels", len(X), len(y))
	}

	dim := len(X[0])
	if dim == 0 {
		return fmt.Errorf("training data: zero-width feature rows")
	}
	for i, row := range X {
		if len(row) != dim {
			return fmt.Errorf("training data: row %d has %d features, expected %d", i, len(row), dim)
		}
	}

	for i, label := range y {
		if label < 0 {
			return fmt.Errorf("training data: negative label %d at row %d", label, i)
		}
	}
	return nil
}

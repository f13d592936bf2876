package dataset

import "fmt"

// Dataset is a read-only labeled feature matrix: N samples with D
// real-valued features each, and one dense class index per sample.
type Dataset struct {
	Name string
	X    [][]float64 // N x D
	Y    []int       // length N, values in [0, K)
}

// NumSamples returns N.
func (d *Dataset) NumSamples() int {
	return len(d.X)
}

// NumFeatures returns D, or 0 for an empty dataset.
func (d *Dataset) NumFeatures() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// NumClasses returns K derived from the largest label.
func (d *Dataset) NumClasses() int {
	k := 0
	for _, label := range d.Y {
		if label+1 > k {
			k = label + 1
		}
	}
	return k
}

// Validate checks the structural invariants: at least one sample,
// consistent feature dimension across rows, matching row counts, and
// dense non-negative class indices (every class in [0, K) occurs).
func (d *Dataset) Validate() error {
	if len(d.X) == 0 {
		return fmt.Errorf("dataset %q: no samples", d.Name)
	}
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("dataset %q: %d feature rows but %d labels", d.Name, len(d.X), len(d.Y))
	}

	dim := len(d.X[0])
	for i, row := range d.X {
		if len(row) != dim {
			return fmt.Errorf("dataset %q: row %d has %d features, expected %d", d.Name, i, len(row), dim)
		}
	}

	maxLabel := 0
	for i, label := range d.Y {
		if label < 0 {
			return fmt.Errorf("dataset %q: negative label %d at row %d", d.Name, label, i)
		}
		if label > maxLabel {
			maxLabel = label
		}
	}

	seen := make([]bool, maxLabel+1)
	for _, label := range d.Y {
		seen[label] = true
	}
	for class, ok := range seen {
		if !ok {
			return fmt.Errorf("dataset %q: class %d has no samples (labels must be dense indices)", d.Name, class)
		}
	}

	return nil
}

package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/svmbench/internal/svmlight"
)

// FilePrefix marks a dataset name as a path to a sparse exchange file
// supplied by the user, e.g. "file:testdata/iris.svm".
const FilePrefix = "file:"

// Names lists the built-in reference datasets used by the default
// benchmark run.
func Names() []string {
	return []string{"blobs3", "blobs10"}
}

// Load resolves a dataset by name. Built-in names yield seeded
// synthetic datasets; names with the "file:" prefix load a sparse
// exchange file from disk. The returned dataset is validated.
func Load(name string) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)

	switch {
	case name == "blobs3":
		// Three balanced, trivially separable classes.
		ds, err = Blobs(name, 150, 3, 4, 0.5, 42)
	case name == "blobs10":
		// Harder: ten classes, higher dimension, more overlap.
		ds, err = Blobs(name, 400, 10, 16, 2.0, 7)
	case strings.HasPrefix(name, FilePrefix):
		ds, err = FromFile(strings.TrimPrefix(name, FilePrefix))
	default:
		return nil, fmt.Errorf("unknown dataset %q (built-in: %s, or %s<path>)",
			name, strings.Join(Names(), ", "), FilePrefix)
	}
	if err != nil {
		return nil, err
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// FromFile loads a sparse exchange file and remaps its labels to dense
// 0-based class indices in ascending label order, so files using the
// external tools' 1-based convention load cleanly.
func FromFile(path string) (*Dataset, error) {
	X, rawLabels, err := svmlight.LoadFile(path)
	if err != nil {
		return nil, err
	}

	distinct := map[int]bool{}
	for _, label := range rawLabels {
		distinct[label] = true
	}
	ordered := make([]int, 0, len(distinct))
	for label := range distinct {
		ordered = append(ordered, label)
	}
	sort.Ints(ordered)

	index := make(map[int]int, len(ordered))
	for i, label := range ordered {
		index[label] = i
	}

	y := make([]int, len(rawLabels))
	for i, label := range rawLabels {
		y[i] = index[label]
	}

	return &Dataset{Name: path, X: X, Y: y}, nil
}

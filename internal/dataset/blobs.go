package dataset

import (
	"fmt"
	"math/rand"
)

// Blobs generates n samples in k well-separated Gaussian clusters with
// d features each. Class c is centered on a scaled axis vector, so for
// small spread values the classes are linearly separable by
// construction. Samples are assigned round-robin so classes stay
// balanced. The same seed always yields the same dataset.
func Blobs(name string, n, k, d int, spread float64, seed int64) (*Dataset, error) {
	if n < k {
		return nil, fmt.Errorf("blobs %q: need at least %d samples for %d classes", name, k, k)
	}
	if k < 2 {
		return nil, fmt.Errorf("blobs %q: need at least 2 classes, got %d", name, k)
	}
	if d < 1 {
		return nil, fmt.Errorf("blobs %q: need at least 1 feature, got %d", name, d)
	}

	rng := rand.New(rand.NewSource(seed))

	// Center for class c sits at centerScale*(1+c/d) along axis c%d.
	// Wrapping keeps centers distinct even when k exceeds d.
	const centerScale = 10.0
	centers := make([][]float64, k)
	for c := 0; c < k; c++ {
		center := make([]float64, d)
		center[c%d] = centerScale * float64(1+c/d)
		centers[c] = center
	}

	X := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		c := i % k
		row := make([]float64, d)
		for j := 0; j < d; j++ {
			row[j] = centers[c][j] + rng.NormFloat64()*spread
		}
		X[i] = row
		y[i] = c
	}

	return &Dataset{Name: name, X: X, Y: y}, nil
}

package opt

// Optimizer defines a derivative-free optimization algorithm. The
// in-process classifier can train its weight matrix through this
// interface instead of its built-in subgradient loop.
type Optimizer interface {
	// Run minimizes eval over a box-bounded parameter space.
	// eval: objective function to minimize
	// lower, upper: parameter bounds
	// dim: dimensionality of parameter space
	// Returns: best parameters and best cost
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}

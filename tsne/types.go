package tsne

import (
	"errors"

	"github.com/katalvlaran/lowdim/metric"
)

// Sentinel errors. Callers match with errors.Is.
var (
	// ErrNilInput indicates a nil input matrix was passed to New.
	ErrNilInput = errors.New("tsne: nil input matrix")

	// ErrBadOptions indicates an invalid parameter combination
	// (perplexity, learning rate or output dimension ≤ 0).
	ErrBadOptions = errors.New("tsne: invalid options")

	// ErrNotInitialized indicates Step/Transform/Generator/Cost was called
	// before Init. This is a programmer error, surfaced immediately.
	ErrNotInitialized = errors.New("tsne: operation requires Init first")
)

// Documented defaults — single source of truth for DefaultOptions.
const (
	// DefaultPerplexity is the effective neighborhood size target.
	DefaultPerplexity = 50.0

	// DefaultLearningRate scales every gradient step (before gains).
	DefaultLearningRate = 10.0

	// DefaultOutputDims is the embedding dimensionality d.
	DefaultOutputDims = 2

	// DefaultSeed feeds the rng.Source that perturbs the initial embedding.
	DefaultSeed int64 = 1212

	// DefaultIterations is used by Transform/Generator when iterations <= 0.
	DefaultIterations = 500
)

// Calibration and optimizer schedule constants. These fix one canonical
// formulation; do not assume interchangeability with alternate orderings.
const (
	// entropyTol is the |H - log(perplexity)| acceptance band of the β search.
	entropyTol = 1e-4

	// maxBetaTries bounds the per-row binary search; on exhaustion the last
	// β is accepted (quality, not correctness, degrades).
	maxBetaTries = 50

	// selfAffinity replaces p_{i|i}=0 so no row can degenerate to all zeros.
	selfAffinity = 1e-9

	// exaggeration multiplies the target term while the 1-based step number
	// stays below exaggerationUntil, inflating early cluster separation;
	// removed exactly at the exaggerationUntil-th step.
	exaggeration      = 4.0
	exaggerationUntil = 100

	// Momentum schedule over the 1-based step number: momentumEarly before
	// momentumSwitch, momentumLate from the momentumSwitch-th step on.
	momentumEarly  = 0.5
	momentumLate   = 0.8
	momentumSwitch = 250

	// Gain schedule: bump on gradient/velocity sign disagreement, decay
	// otherwise, never below minGain.
	gainBump  = 0.2
	gainDecay = 0.8
	minGain   = 0.01

	// initNoiseScale scales the Gaussian noise seeding the embedding.
	initNoiseScale = 1e-4

	// costEps floors both P and Q inside the KL logarithm.
	costEps = 1e-12
)

// Options configures a TSNE session.
//
// Fields:
//   - Perplexity   — entropy target for affinity calibration (> 0).
//   - LearningRate — base step size η (> 0).
//   - OutputDims   — embedding dimensionality d (> 0).
//   - Metric       — input-space metric; nil ⇒ metric.SquaredEuclidean.
//     Ignored when Precomputed is set.
//   - Precomputed  — the input matrix is already an N×N distance matrix
//     (validated at Init: square, symmetric, ~zero diagonal).
//   - Seed         — rng seed; 0 falls back to the rng package policy.
//
// Example:
//
//	opts := tsne.DefaultOptions()
//	opts.Perplexity = 30
//	sess, err := tsne.New(x, &opts)
//	if err != nil { ... }
//	if err = sess.Init(); err != nil { ... }
//	y, err := sess.Transform(0) // 0 ⇒ DefaultIterations
type Options struct {
	Perplexity   float64
	LearningRate float64
	OutputDims   int
	Metric       metric.Metric
	Precomputed  bool
	Seed         int64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Perplexity:   DefaultPerplexity,
		LearningRate: DefaultLearningRate,
		OutputDims:   DefaultOutputDims,
		Metric:       nil, // squared Euclidean
		Precomputed:  false,
		Seed:         DefaultSeed,
	}
}

// validate rejects parameter combinations the optimizer cannot run with.
func (o *Options) validate() error {
	if o.Perplexity <= 0 || o.LearningRate <= 0 || o.OutputDims <= 0 {
		return ErrBadOptions
	}

	return nil
}

package tsne

import (
	"fmt"

	"github.com/katalvlaran/lowdim/matrix"
	"github.com/katalvlaran/lowdim/metric"
	"github.com/katalvlaran/lowdim/rng"
)

// Reducer is the capability contract for iterative dimensionality reducers:
// one-time initialization, synchronous optimization to completion, and a
// lazy per-step stream. Each algorithm implements it independently; there is
// no shared mutable base.
type Reducer interface {
	// Init performs one-time setup. Re-invoking intentionally recomputes the
	// optimization target and reseeds all evolving state.
	Init() error

	// Transform runs `iterations` optimization steps (<= 0 means the
	// package default) and returns the live embedding.
	Transform(iterations int) (*matrix.Dense, error)

	// Generator returns a lazy, finite, non-restartable stream of per-step
	// embedding snapshots.
	Generator(iterations int) (*Stream, error)
}

// TSNE is a t-SNE session: it owns the immutable input, the fixed target
// distribution and all evolving optimizer state. A TSNE value is not
// goroutine-safe; all of P, Y, velocity and gains are exclusively owned by
// the session and must not be mutated externally during a step.
type TSNE struct {
	x    *matrix.Dense // input: N×D points, or N×N distances when Precomputed
	opts Options
	n    int

	// Fixed after Init.
	p *matrix.Dense // symmetric joint target, Σ = 1

	// Evolving state, mutated in place by every step.
	y     *matrix.Dense // embedding, N×d
	vel   *matrix.Dense // momentum-carrying increment, N×d
	gains *matrix.Dense // adaptive per-parameter multipliers, N×d, ≥ minGain

	// Workspace owned by the optimizer; reused across steps. No external
	// reference may outlive a single step.
	num  *matrix.Dense // Student-t numerators, N×N
	grad *matrix.Dense // gradient buffer, N×d

	iter  int
	ready bool
}

// compile-time capability check
var _ Reducer = (*TSNE)(nil)

// New constructs a session over x with the given options (nil ⇒ defaults).
// x is treated as immutable for the lifetime of the session.
//
// Errors:
//   - ErrNilInput for a nil matrix.
//   - ErrBadOptions for non-positive perplexity/learning rate/output dims.
//   - matrix.ErrNonSquare when Precomputed is set but x is not N×N.
func New(x *matrix.Dense, opts *Options) (*TSNE, error) {
	if x == nil {
		return nil, ErrNilInput
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.Precomputed {
		if err := matrix.ValidateSquare(x); err != nil {
			return nil, fmt.Errorf("tsne.New: %w", err)
		}
	}

	return &TSNE{x: x, opts: o, n: x.Rows()}, nil
}

// Init performs the one-time setup: distance matrix (computed via the metric
// or validated when precomputed), perplexity-calibrated affinities,
// symmetrization into the fixed target P, and allocation of the evolving
// state — Y from Gaussian noise scaled by 1e-4, velocity zero, gains one.
//
// Re-invoking Init is intentional and supported: it recomputes P and reseeds
// Y/velocity/gains from the configured seed, restarting the run.
//
// Complexity: O(N²·(D + maxBetaTries)) time, O(N²) space.
func (t *TSNE) Init() error {
	// Distance matrix Δ: symmetric, zero diagonal.
	var delta *matrix.Dense
	if t.opts.Precomputed {
		if err := matrix.ValidateSymmetric(t.x, matrix.DefaultEpsilon); err != nil {
			return fmt.Errorf("tsne.Init: %w", err)
		}
		if err := matrix.ValidateZeroDiagonal(t.x, matrix.DefaultEpsilon); err != nil {
			return fmt.Errorf("tsne.Init: %w", err)
		}
		delta = t.x
	} else {
		var err error
		delta, err = metric.PairwiseMatrix(t.x, t.opts.Metric)
		if err != nil {
			return fmt.Errorf("tsne.Init: %w", err)
		}
	}

	// Fixed optimization target, computed exactly once per run.
	praw, err := computeAffinities(delta, t.opts.Perplexity)
	if err != nil {
		return fmt.Errorf("tsne.Init: %w", err)
	}
	t.p = symmetrizeInPlace(praw)

	// Evolving state + workspace.
	d := t.opts.OutputDims
	if t.y, err = matrix.NewDense(t.n, d); err != nil {
		return fmt.Errorf("tsne.Init: %w", err)
	}
	if t.vel, err = matrix.NewDense(t.n, d); err != nil {
		return fmt.Errorf("tsne.Init: %w", err)
	}
	if t.gains, err = matrix.NewDense(t.n, d); err != nil {
		return fmt.Errorf("tsne.Init: %w", err)
	}
	if t.num, err = matrix.NewDense(t.n, t.n); err != nil {
		return fmt.Errorf("tsne.Init: %w", err)
	}
	if t.grad, err = matrix.NewDense(t.n, d); err != nil {
		return fmt.Errorf("tsne.Init: %w", err)
	}
	t.gains.Fill(1.0)

	// Seeded Gaussian perturbation; fixed row-major order ⇒ reproducible.
	src := rng.New(t.opts.Seed)
	for i := 0; i < t.n; i++ {
		yi, _ := t.y.RowView(i) // in range by loop bounds
		for k := 0; k < d; k++ {
			yi[k] = src.Norm() * initNoiseScale
		}
	}

	t.iter = 0
	t.ready = true

	return nil
}

// Step performs exactly one gradient update and returns the live embedding.
// The returned matrix is shared state: it is mutated by subsequent steps.
// Returns ErrNotInitialized before Init.
func (t *TSNE) Step() (*matrix.Dense, error) {
	if !t.ready {
		return nil, ErrNotInitialized
	}

	return t.step(), nil
}

// Transform runs `iterations` steps (<= 0 ⇒ DefaultIterations) and returns
// the live embedding. Returns ErrNotInitialized before Init.
// Complexity: O(iterations·N²·d).
func (t *TSNE) Transform(iterations int) (*matrix.Dense, error) {
	if !t.ready {
		return nil, ErrNotInitialized
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	for k := 0; k < iterations; k++ {
		t.step()
	}

	return t.y, nil
}

// Iteration returns the number of completed steps since the last Init.
func (t *TSNE) Iteration() int { return t.iter }

// Embedding returns the live embedding matrix (nil before Init).
// It is shared, mutable state; Clone it for a stable snapshot.
func (t *TSNE) Embedding() *matrix.Dense { return t.y }

// Generator returns a lazy, finite, non-restartable stream over `iterations`
// steps (<= 0 ⇒ DefaultIterations). Each Next performs exactly one step then
// suspends; there is no buffering or read-ahead, and cancellation is simply
// "stop pulling". Returns ErrNotInitialized before Init.
func (t *TSNE) Generator(iterations int) (*Stream, error) {
	if !t.ready {
		return nil, ErrNotInitialized
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	return &Stream{t: t, remaining: iterations}, nil
}

// Stream is a pull-driven iterator over embedding snapshots, one per step.
//
// The value returned by Embedding is a LIVE view into the session's storage:
// it is invalidated by the next Next call. Use Snapshot to retain history.
type Stream struct {
	t         *TSNE
	remaining int
	cur       *matrix.Dense
}

// Next advances the stream by exactly one optimization step.
// Returns false once the step budget is exhausted; the stream cannot be
// restarted afterwards.
func (s *Stream) Next() bool {
	if s.remaining <= 0 {
		s.cur = nil
		return false
	}
	s.remaining--
	s.cur = s.t.step()

	return true
}

// Embedding returns the live view produced by the last successful Next
// (nil before the first Next and after exhaustion).
func (s *Stream) Embedding() *matrix.Dense { return s.cur }

// Snapshot returns an independent copy of the current embedding, safe to
// retain across further pulls (nil when there is no current embedding).
func (s *Stream) Snapshot() *matrix.Dense {
	if s.cur == nil {
		return nil
	}

	return s.cur.CloneDense()
}

// Remaining reports how many steps the stream will still perform.
func (s *Stream) Remaining() int { return s.remaining }

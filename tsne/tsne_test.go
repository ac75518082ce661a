package tsne

import (
	"math"
	"testing"

	"github.com/katalvlaran/lowdim/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoPairs3D returns 4 points forming two well-separated pairs in 3-D.
func twoPairs3D(t *testing.T) *matrix.Dense {
	t.Helper()
	x, err := matrix.FromRows([][]float64{
		{0, 0, 0},
		{0.1, 0, 0},
		{10, 10, 10},
		{10.1, 10, 10},
	})
	require.NoError(t, err)

	return x
}

// pairOptions is the scenario configuration fixed by the acceptance tests.
func pairOptions() Options {
	o := DefaultOptions()
	o.Perplexity = 2
	o.OutputDims = 2
	o.Seed = 1212

	return o
}

// newReady builds and initializes a session or fails the test.
func newReady(t *testing.T, x *matrix.Dense, o Options) *TSNE {
	t.Helper()
	ts, err := New(x, &o)
	require.NoError(t, err)
	require.NoError(t, ts.Init())

	return ts
}

// TestNew_Validation covers the constructor's error taxonomy.
func TestNew_Validation(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNilInput)

	x := twoPairs3D(t)

	bad := DefaultOptions()
	bad.OutputDims = 0
	_, err = New(x, &bad)
	assert.ErrorIs(t, err, ErrBadOptions)

	bad = DefaultOptions()
	bad.Perplexity = -1
	_, err = New(x, &bad)
	assert.ErrorIs(t, err, ErrBadOptions)

	bad = DefaultOptions()
	bad.LearningRate = 0
	_, err = New(x, &bad)
	assert.ErrorIs(t, err, ErrBadOptions)

	// Precomputed demands a square input: 4×3 must fail immediately.
	pre := DefaultOptions()
	pre.Precomputed = true
	_, err = New(x, &pre)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

// TestStateMachine_RequiresInit verifies every operation before Init
// surfaces ErrNotInitialized.
func TestStateMachine_RequiresInit(t *testing.T) {
	ts, err := New(twoPairs3D(t), nil)
	require.NoError(t, err)

	_, err = ts.Step()
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = ts.Transform(5)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = ts.Generator(5)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = ts.Cost()
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.Nil(t, ts.Embedding(), "no embedding exists before Init")
}

// TestInit_TargetInvariants verifies the fixed target distribution:
// symmetric, non-negative, total mass 1 within 1e-9.
func TestInit_TargetInvariants(t *testing.T) {
	ts := newReady(t, twoPairs3D(t), pairOptions())

	require.NotNil(t, ts.p)
	assert.NoError(t, matrix.ValidateSymmetric(ts.p, 0))
	assert.InDelta(t, 1.0, matrix.Sum(ts.p), 1e-9)
}

// TestInit_PrecomputedValidation verifies value-level checks on supplied
// distance matrices at Init time.
func TestInit_PrecomputedValidation(t *testing.T) {
	pre := DefaultOptions()
	pre.Precomputed = true
	pre.Perplexity = 2

	// Asymmetric input.
	asym, err := matrix.FromRows([][]float64{{0, 1, 2}, {9, 0, 1}, {2, 1, 0}})
	require.NoError(t, err)
	ts, err := New(asym, &pre)
	require.NoError(t, err)
	assert.ErrorIs(t, ts.Init(), matrix.ErrAsymmetry)

	// Non-zero diagonal.
	diag, err := matrix.FromRows([][]float64{{1, 2, 3}, {2, 0, 4}, {3, 4, 0}})
	require.NoError(t, err)
	ts, err = New(diag, &pre)
	require.NoError(t, err)
	assert.ErrorIs(t, ts.Init(), matrix.ErrNonZeroDiagonal)

	// Well-formed distances run end to end.
	ok, err := matrix.FromRows([][]float64{{0, 1, 4}, {1, 0, 1}, {4, 1, 0}})
	require.NoError(t, err)
	ts, err = New(ok, &pre)
	require.NoError(t, err)
	require.NoError(t, ts.Init())
	_, err = ts.Transform(10)
	assert.NoError(t, err)
}

// TestStep_CenteringInvariant verifies Σ_i Y[i][d] ≈ 0 for every dimension
// after every step.
func TestStep_CenteringInvariant(t *testing.T) {
	ts := newReady(t, twoPairs3D(t), pairOptions())

	for step := 0; step < 25; step++ {
		y, err := ts.Step()
		require.NoError(t, err)
		for d := 0; d < y.Cols(); d++ {
			var s float64
			for i := 0; i < y.Rows(); i++ {
				v, aerr := y.At(i, d)
				require.NoError(t, aerr)
				s += v
			}
			require.InDelta(t, 0.0, s, 1e-9, "dimension %d drifted at step %d", d, step)
		}
	}
}

// TestStep_GainFloor verifies gains never fall below 0.01, across both
// momentum phases.
func TestStep_GainFloor(t *testing.T) {
	ts := newReady(t, twoPairs3D(t), pairOptions())

	_, err := ts.Transform(300) // crosses the momentum switch at 250
	require.NoError(t, err)

	for i := 0; i < ts.gains.Rows(); i++ {
		row, rerr := ts.gains.RowView(i)
		require.NoError(t, rerr)
		for k, g := range row {
			require.GreaterOrEqual(t, g, minGain, "gain[%d,%d] under floor", i, k)
		}
	}
}

// TestTransform_Determinism verifies identical input, seed and parameters
// reproduce the embedding.
func TestTransform_Determinism(t *testing.T) {
	a := newReady(t, twoPairs3D(t), pairOptions())
	b := newReady(t, twoPairs3D(t), pairOptions())

	ya, err := a.Transform(50)
	require.NoError(t, err)
	yb, err := b.Transform(50)
	require.NoError(t, err)

	for i := 0; i < ya.Rows(); i++ {
		ra, rerr := ya.RowView(i)
		require.NoError(t, rerr)
		rb, rerr := yb.RowView(i)
		require.NoError(t, rerr)
		for k := range ra {
			require.InDelta(t, ra[k], rb[k], 1e-12, "Y[%d,%d] diverged", i, k)
		}
	}
}

// TestInit_RerunReseeds verifies that re-running Init restarts the run:
// a re-initialized session reproduces a fresh one exactly.
func TestInit_RerunReseeds(t *testing.T) {
	reused := newReady(t, twoPairs3D(t), pairOptions())
	_, err := reused.Transform(40)
	require.NoError(t, err)

	require.NoError(t, reused.Init()) // intentional restart
	assert.Equal(t, 0, reused.Iteration())
	ya, err := reused.Transform(20)
	require.NoError(t, err)

	fresh := newReady(t, twoPairs3D(t), pairOptions())
	yb, err := fresh.Transform(20)
	require.NoError(t, err)

	for i := 0; i < ya.Rows(); i++ {
		ra, _ := ya.RowView(i)
		rb, _ := yb.RowView(i)
		for k := range ra {
			require.InDelta(t, rb[k], ra[k], 1e-12)
		}
	}
}

// euclid2 is the squared distance between two embedding rows.
func euclid2(y *matrix.Dense, i, j int) float64 {
	ri, _ := y.RowView(i)
	rj, _ := y.RowView(j)
	var s, d float64
	for k := range ri {
		d = ri[k] - rj[k]
		s += d * d
	}

	return s
}

// TestScenario_TwoPairsSeparate is the acceptance scenario: two tight pairs
// in 3-D must map to two clusters whose separation is at least 5× the
// within-pair distance after 500 iterations.
func TestScenario_TwoPairsSeparate(t *testing.T) {
	ts := newReady(t, twoPairs3D(t), pairOptions())

	y, err := ts.Transform(500)
	require.NoError(t, err)

	within := math.Max(euclid2(y, 0, 1), euclid2(y, 2, 3))
	between := math.Min(
		math.Min(euclid2(y, 0, 2), euclid2(y, 0, 3)),
		math.Min(euclid2(y, 1, 2), euclid2(y, 1, 3)),
	)

	// Distances (not squared): between ≥ 5 × within.
	require.Positive(t, between)
	assert.GreaterOrEqual(t, math.Sqrt(between), 5*math.Sqrt(within),
		"pairs not separated: between=%g within=%g", math.Sqrt(between), math.Sqrt(within))
}

// TestGenerator_CountAndParity verifies Generator(5) yields exactly 5
// snapshots and that the 5th equals Transform(5) under identical seeds.
func TestGenerator_CountAndParity(t *testing.T) {
	genSess := newReady(t, twoPairs3D(t), pairOptions())
	refSess := newReady(t, twoPairs3D(t), pairOptions())

	stream, err := genSess.Generator(5)
	require.NoError(t, err)
	assert.Equal(t, 5, stream.Remaining())

	var last *matrix.Dense
	pulls := 0
	for stream.Next() {
		pulls++
		last = stream.Snapshot() // copy: history survives further pulls
		assert.Equal(t, 5-pulls, stream.Remaining(), "budget must shrink per pull")
	}
	assert.Equal(t, 5, pulls, "stream must yield exactly 5 snapshots")
	assert.False(t, stream.Next(), "exhausted stream must stay exhausted")
	assert.Equal(t, 0, stream.Remaining())
	assert.Nil(t, stream.Embedding())
	require.NotNil(t, last)

	yref, err := refSess.Transform(5)
	require.NoError(t, err)
	for i := 0; i < yref.Rows(); i++ {
		rs, _ := last.RowView(i)
		rr, _ := yref.RowView(i)
		for k := range rs {
			require.InDelta(t, rr[k], rs[k], 1e-12, "snapshot differs from Transform at [%d,%d]", i, k)
		}
	}
}

// TestGenerator_LiveViewVsSnapshot pins the aliasing contract: Embedding is
// a live view into session storage, Snapshot is an independent copy.
func TestGenerator_LiveViewVsSnapshot(t *testing.T) {
	ts := newReady(t, twoPairs3D(t), pairOptions())

	stream, err := ts.Generator(3)
	require.NoError(t, err)
	require.True(t, stream.Next())

	live := stream.Embedding()
	assert.Same(t, ts.Embedding(), live, "Embedding must be the live session matrix")

	snap := stream.Snapshot()
	require.NotNil(t, snap)
	assert.NotSame(t, live, snap, "Snapshot must be a copy")

	frozen, _ := snap.At(0, 0)
	require.True(t, stream.Next()) // mutates the live view in place
	again, _ := snap.At(0, 0)
	assert.Equal(t, frozen, again, "snapshot must not change under further pulls")
}

// TestCost_DecreasesOverRun verifies the KL objective is finite and improves
// over a full optimization run.
func TestCost_DecreasesOverRun(t *testing.T) {
	ts := newReady(t, twoPairs3D(t), pairOptions())

	before, err := ts.Cost()
	require.NoError(t, err)
	require.False(t, math.IsNaN(before) || math.IsInf(before, 0))

	_, err = ts.Transform(500)
	require.NoError(t, err)

	after, err := ts.Cost()
	require.NoError(t, err)
	require.False(t, math.IsNaN(after) || math.IsInf(after, 0))
	assert.Less(t, after, before, "KL divergence should improve over the run")
}

// TestTransform_DefaultIterations verifies iterations <= 0 falls back to the
// documented default budget.
func TestTransform_DefaultIterations(t *testing.T) {
	ts := newReady(t, twoPairs3D(t), pairOptions())

	_, err := ts.Transform(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultIterations, ts.Iteration())
}

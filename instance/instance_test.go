package instance_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/domsolve/builder"
	"github.com/katalvlaran/domsolve/instance"
)

func pathInstance(t *testing.T, n int) *instance.Instance {
	t.Helper()
	g, err := builder.BuildGraph(nil, builder.Path(n))
	require.NoError(t, err)
	return instance.FromGraph(g)
}

func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.True(t, errors.Is(err, target), "panic %v is not %v", err, target)
	}()
	fn()
}

// TestFromGraph_Mirrors checks that every edge becomes a mirrored arc pair.
func TestFromGraph_Mirrors(t *testing.T) {
	in := pathInstance(t, 3)
	require.NoError(t, in.Check())
	assert.Equal(t, 3, in.Order())
	assert.Equal(t, 4, in.Size())
	assert.ElementsMatch(t, []int{0, 2}, in.Out(1))
	from, to, ok := in.Mirror(0, 1)
	require.True(t, ok)
	assert.Equal(t, 1, from)
	assert.Equal(t, 0, to)
	assert.ElementsMatch(t, []int{0, 1}, in.Dominators(0))
	assert.ElementsMatch(t, []int{1, 2}, in.Cover(2))
}

// TestPlaceInSolution_Path places the centre of P3 and expects the whole
// instance to collapse: the ends are dominated with nothing left to cover.
func TestPlaceInSolution_Path(t *testing.T) {
	in := pathInstance(t, 3)
	in.PlaceInSolution(1)
	require.NoError(t, in.Check())
	assert.Equal(t, []int{1}, in.DS())
	assert.True(t, in.Empty())
	assert.True(t, in.Solved())
}

// TestPlaceInSolution_KeepsUsefulNeighbours places an end of P4; vertex 1
// becomes dominated but still covers 2, so it survives.
func TestPlaceInSolution_KeepsUsefulNeighbours(t *testing.T) {
	in := pathInstance(t, 4)
	in.PlaceInSolution(0)
	require.NoError(t, in.Check())
	assert.False(t, in.Alive(0))
	require.True(t, in.Alive(1))
	assert.True(t, in.Dominated(1))
	assert.Equal(t, []int{2}, in.Out(1))
	assert.Empty(t, in.In(1))
	assert.Equal(t, []int{2, 3}, in.Undominated())
}

// TestPlaceInSolution_ExcludedPanics verifies the fatal invariant guard.
func TestPlaceInSolution_ExcludedPanics(t *testing.T) {
	in := pathInstance(t, 3)
	in.MarkExcluded(0)
	requirePanicIs(t, instance.ErrPlaceExcluded, func() { in.PlaceInSolution(0) })
}

// TestMarkExcluded_ClearsMirrors checks invariant 2 and mirror cleanup.
func TestMarkExcluded_ClearsMirrors(t *testing.T) {
	in := pathInstance(t, 3)
	in.MarkExcluded(1)
	require.NoError(t, in.Check())
	assert.Empty(t, in.Out(1))
	assert.ElementsMatch(t, []int{0, 2}, in.In(1))
	_, _, ok := in.Mirror(0, 1)
	assert.False(t, ok, "mirror of a deleted arc must be cleared")
	assert.Nil(t, in.Cover(1))
	assert.ElementsMatch(t, []int{0, 2}, in.Dominators(1))
}

// TestMarkDominated_SpeculativeRoundTrip hides arcs, restores them, then
// hides and confirms.
func TestMarkDominated_SpeculativeRoundTrip(t *testing.T) {
	in := pathInstance(t, 3)
	in.MarkDominated(1, instance.Speculative)
	require.NoError(t, in.Check())
	assert.True(t, in.Dominated(1))
	assert.True(t, in.HiddenLoop(1))
	assert.Empty(t, in.In(1))

	in.RestoreHidden(1)
	require.NoError(t, in.Check())
	assert.False(t, in.Dominated(1))
	assert.False(t, in.HiddenLoop(1))
	assert.ElementsMatch(t, []int{0, 2}, in.In(1))
	_, _, ok := in.Mirror(0, 1)
	assert.True(t, ok, "restored arc is re-paired with its reverse")

	in.MarkDominated(1, instance.Speculative)
	in.DropHidden(1)
	require.NoError(t, in.Check())
	assert.True(t, in.Dominated(1))
	assert.False(t, in.HiddenLoop(1))
	in.Undominate(1)
	assert.Empty(t, in.In(1))
}

// TestRedirect moves the incoming arcs of 2 onto 0 in the path 0-1-2-3.
func TestRedirect(t *testing.T) {
	in := pathInstance(t, 4)
	in.Redirect(2, 0)
	require.NoError(t, in.Check())
	assert.Empty(t, in.In(2))
	assert.ElementsMatch(t, []int{1, 3}, in.In(0))
	_, _, ok := in.Mirror(1, 0)
	assert.True(t, ok, "1→0 existed and keeps its mirror")
	_, _, ok = in.Mirror(3, 0)
	assert.False(t, ok, "no 0→3 arc to pair with")
}

// TestDecomposeConnectedComponents splits two triangles.
func TestDecomposeConnectedComponents(t *testing.T) {
	g := builder.MustBuild(nil, builder.Cycle(3), builder.Cycle(3))
	in := instance.FromGraph(g)
	subs := in.DecomposeConnectedComponents()
	require.Len(t, subs, 2)
	for i, sub := range subs {
		require.NoError(t, sub.Check())
		assert.Equal(t, 3, sub.Order())
		tr := sub.Translation()
		require.NotNil(t, tr)
		for child, parent := range tr.ToParent {
			assert.Equal(t, in.ID(parent), sub.ID(child))
			assert.Equal(t, child, tr.ToChild[parent])
		}
		assert.Equal(t, 3*i, sub.ID(0))
	}
	assert.Nil(t, pathInstance(t, 4).DecomposeConnectedComponents())

	for _, sub := range subs {
		in.MergeDS(sub)
	}
	in.CommitIDs(7)
	in.Clear()
	assert.True(t, in.Empty())
	assert.Equal(t, []int{7}, in.DS())
	require.NoError(t, in.Check())
}

// TestInduce_ReadsThroughSpeculation checks that a sub-instance sees a
// speculatively dominated vertex with its original status and arcs.
func TestInduce_ReadsThroughSpeculation(t *testing.T) {
	in := pathInstance(t, 4)
	in.MarkDominated(1, instance.Speculative)
	sub := in.Induce([]int{0, 1, 2})
	require.NoError(t, sub.Check())
	assert.False(t, sub.Dominated(1))
	assert.ElementsMatch(t, []int{0, 2}, sub.In(1))
	assert.ElementsMatch(t, []int{0, 2}, sub.Out(1))
}

// TestFromSets builds a hitting-set instance.
func TestFromSets(t *testing.T) {
	in, err := instance.FromSets(3, [][]int{{0, 1}, {1, 2}})
	require.NoError(t, err)
	require.NoError(t, in.Check())
	assert.Equal(t, []int{3, 4}, in.Undominated())
	assert.ElementsMatch(t, []int{0, 1}, in.Dominators(3))
	sol, ok := in.BruteForce(10)
	require.True(t, ok)
	assert.Equal(t, []int{1}, sol)

	_, err = instance.FromSets(2, [][]int{{0, 5}})
	assert.ErrorIs(t, err, instance.ErrSetElement)
	_, err = instance.FromSets(2, [][]int{{}})
	assert.ErrorIs(t, err, instance.ErrSetElement)
}

// TestBruteForce_Scenarios covers the path, star and two-triangle cases.
func TestBruteForce_Scenarios(t *testing.T) {
	cases := []struct {
		name string
		cons []builder.Constructor
		want int
	}{
		{"P5", []builder.Constructor{builder.Path(5)}, 2},
		{"star5", []builder.Constructor{builder.Star(5)}, 1},
		{"two-triangles", []builder.Constructor{builder.Cycle(3), builder.Cycle(3)}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := instance.FromGraph(builder.MustBuild(nil, tc.cons...))
			sol, ok := in.BruteForce(20)
			require.True(t, ok)
			assert.Len(t, sol, tc.want)
			assert.True(t, in.Covers(sol))
		})
	}
}

// TestClone_Independent mutates a clone and checks the original is intact.
func TestClone_Independent(t *testing.T) {
	in := pathInstance(t, 5)
	c := in.Clone()
	c.PlaceInSolution(1)
	assert.Equal(t, 5, in.Order())
	assert.Empty(t, in.DS())
	assert.Equal(t, []int{1}, c.DS())
	require.NoError(t, in.Check())
	require.NoError(t, c.Check())
}

// TestRandomMutations_KeepInvariants applies random legal mutations to
// random graphs and checks the invariants after each one.
func TestRandomMutations_KeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 30; round++ {
		g := builder.MustBuild([]builder.Option{builder.WithRand(rng)}, builder.RandomSparse(12, 20))
		in := instance.FromGraph(g)
		for step := 0; step < 8 && !in.Empty(); step++ {
			live := in.Live()
			v := live[rng.Intn(len(live))]
			switch rng.Intn(3) {
			case 0:
				if !in.Excluded(v) {
					in.PlaceInSolution(v)
				}
			case 1:
				in.MarkDominated(v, instance.Definite)
			case 2:
				// excluding is legal only when someone else can still cover v
				// and every excluded target keeps another dominator
				legal := in.Dominated(v) || in.InDegree(v) > 0
				for _, y := range in.Out(v) {
					if in.Excluded(y) && in.InDegree(y) < 2 {
						legal = false
					}
				}
				if legal {
					in.MarkExcluded(v)
				}
			}
			require.NoError(t, in.Check(), "round %d step %d", round, step)
		}
	}
}

package bctree_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/domsolve/bctree"
	"github.com/katalvlaran/domsolve/builder"
	"github.com/katalvlaran/domsolve/graph"
	"github.com/katalvlaran/domsolve/instance"
	"github.com/katalvlaran/domsolve/reduce"
)

var errTooLarge = errors.New("too large for brute force")

func bruteSolve(_ context.Context, sub *instance.Instance) error {
	sol, ok := sub.BruteForce(62)
	if !ok {
		return errTooLarge
	}
	sub.PlaceAll(sol)
	return nil
}

// kiteBlock is K4 on 1..4 plus vertex 0 joined to 1 and 2: biconnected, and
// vertex 0 is a poor choice for the solution.
func kiteBlock(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(5)
	for _, e := range [][2]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}, {0, 1}, {0, 2}} {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

// attachedBlock returns the leaf block of in that contains vertex member.
func attachedBlock(t *testing.T, in *instance.Instance, member int) bctree.Block {
	t.Helper()
	for _, b := range bctree.LeafBlocks(in) {
		for _, v := range b.Vertices {
			if v == member {
				return b
			}
		}
	}
	t.Fatalf("no leaf block contains %d", member)
	return bctree.Block{}
}

func TestLeafBlocks(t *testing.T) {
	base := builder.MustBuild(nil, builder.Complete(4))
	g, err := builder.Attach(base, builder.MustBuild(nil, builder.Cycle(3)), 0, 0)
	require.NoError(t, err)
	// a pendant triangle on the other side turns K4 into an inner block
	g, err = builder.Attach(g, builder.MustBuild(nil, builder.Cycle(3)), 3, 0)
	require.NoError(t, err)

	blocks := bctree.LeafBlocks(instance.FromGraph(g))
	require.Len(t, blocks, 2)
	assert.Equal(t, bctree.Block{Cut: 0, Vertices: []int{0, 4, 5}}, blocks[0])
	assert.Equal(t, bctree.Block{Cut: 3, Vertices: []int{3, 6, 7}}, blocks[1])
}

func TestDecide_Cases(t *testing.T) {
	cases := []struct {
		name  string
		block func(t *testing.T) *graph.Graph
		at    int
		want  bctree.Case
		size  int
	}{
		// C4 hanging by v: the far vertex alone covers the rest
		{"outside", func(*testing.T) *graph.Graph { return builder.MustBuild(nil, builder.Cycle(4)) }, 0, bctree.CaseOutside, 1},
		// wheel hanging by its hub: the hub alone solves the block
		{"place", func(*testing.T) *graph.Graph { return builder.MustBuild(nil, builder.Wheel(5)) }, 0, bctree.CasePlace, 0},
		{"dominated", kiteBlock, 0, bctree.CaseDominated, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := builder.MustBuild(nil, builder.Cycle(5))
			g, err := builder.Attach(base, tc.block(t), 0, tc.at)
			require.NoError(t, err)
			in := instance.FromGraph(g)
			b := attachedBlock(t, in, base.Order())
			require.Equal(t, 0, b.Cut)

			c, ids, err := bctree.Decide(context.Background(), in, b, bruteSolve)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c)
			assert.Len(t, ids, tc.size)
			assert.NotContains(t, ids, 0)
			require.NoError(t, in.Check())
			assert.Equal(t, g.Order(), in.Order(), "Decide must not mutate")
		})
	}
}

// TestReduce_MatchesBruteForce attaches random small blocks to a core graph
// and checks the reduced optimum against the direct one.
func TestReduce_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	shapes := []func() builder.Constructor{
		func() builder.Constructor { return builder.Cycle(3 + rng.Intn(3)) },
		func() builder.Constructor { return builder.Complete(3 + rng.Intn(2)) },
		func() builder.Constructor { return builder.Wheel(4 + rng.Intn(2)) },
	}
	for round := 0; round < 40; round++ {
		g := builder.MustBuild([]builder.Option{builder.WithRand(rng)}, builder.PartialKTree(6, 2, 1))
		for k := 0; k < 1+rng.Intn(3); k++ {
			block := builder.MustBuild(nil, shapes[rng.Intn(len(shapes))]())
			var err error
			g, err = builder.Attach(g, block, rng.Intn(g.Order()), rng.Intn(block.Order()))
			require.NoError(t, err)
		}
		if g.Order() > 22 {
			continue
		}
		ref, ok := instance.FromGraph(g).BruteForce(62)
		require.True(t, ok)

		in := instance.FromGraph(g)
		st, err := bctree.Reduce(context.Background(), in, bruteSolve)
		require.NoError(t, err)
		require.NoError(t, in.Check(), "round %d", round)
		assert.Positive(t, st.Blocks)

		rest, ok := in.BruteForce(62)
		require.True(t, ok)
		ids := in.DS()
		for _, v := range rest {
			ids = append(ids, in.ID(v))
		}
		assert.Len(t, ids, len(ref), "round %d stats %+v", round, st)
		assert.True(t, g.IsDominatingSet(ids), "round %d: %v", round, ids)
	}
}

// TestReduce_AfterKernelize runs the block step on kernelized instances, so
// cut vertices arrive dominated or excluded.
func TestReduce_AfterKernelize(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for round := 0; round < 40; round++ {
		g := builder.MustBuild([]builder.Option{builder.WithRand(rng)}, builder.RandomSparse(16, 20))
		ref, ok := instance.FromGraph(g).BruteForce(62)
		require.True(t, ok)

		in := instance.FromGraph(g)
		reduce.Kernelize(in)
		_, err := bctree.Reduce(context.Background(), in, bruteSolve, bctree.WithMaxBlockSize(10))
		require.NoError(t, err)
		require.NoError(t, in.Check(), "round %d", round)

		rest, ok := in.BruteForce(62)
		require.True(t, ok)
		assert.Equal(t, len(ref), len(in.DS())+len(rest), "round %d", round)
	}
}

func TestReduce_SkipsExcludedCut(t *testing.T) {
	g, err := builder.Attach(builder.MustBuild(nil, builder.Cycle(4)), builder.MustBuild(nil, builder.Cycle(4)), 0, 0)
	require.NoError(t, err)
	in := instance.FromGraph(g)
	in.MarkExcluded(0)
	require.NoError(t, in.Check())

	st, err := bctree.Reduce(context.Background(), in, bruteSolve)
	require.NoError(t, err)
	assert.Zero(t, st.Blocks)
	assert.Equal(t, 2, st.Skipped)
	assert.Equal(t, g.Order(), in.Order())
}

func TestReduce_RespectsMaxBlockSize(t *testing.T) {
	g, err := builder.Attach(builder.MustBuild(nil, builder.Cycle(4)), builder.MustBuild(nil, builder.Complete(6)), 0, 0)
	require.NoError(t, err)
	in := instance.FromGraph(g)
	st, err := bctree.Reduce(context.Background(), in, bruteSolve, bctree.WithMaxBlockSize(5))
	require.NoError(t, err)
	assert.Equal(t, 1, st.Blocks, "only the C4 side fits")
}

func TestReduce_SolveErrorStops(t *testing.T) {
	g, err := builder.Attach(builder.MustBuild(nil, builder.Cycle(4)), builder.MustBuild(nil, builder.Cycle(3)), 1, 0)
	require.NoError(t, err)
	in := instance.FromGraph(g)
	boom := errors.New("boom")
	_, err = bctree.Reduce(context.Background(), in, func(context.Context, *instance.Instance) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, in.Check())
	assert.Equal(t, g.Order(), in.Order())
}

// TestReduce_AdjacentPlacedCuts hangs a wheel by its hub on each end of an
// edge. Both blocks place their cut; placing the first leaves the second
// dominated with nothing to cover, yet it must still enter the solution.
func TestReduce_AdjacentPlacedCuts(t *testing.T) {
	base := graph.New(2)
	require.NoError(t, base.AddEdge(0, 1))
	g, err := builder.Attach(base, builder.MustBuild(nil, builder.Wheel(5)), 0, 0)
	require.NoError(t, err)
	g, err = builder.Attach(g, builder.MustBuild(nil, builder.Wheel(5)), 1, 0)
	require.NoError(t, err)

	in := instance.FromGraph(g)
	st, err := bctree.Reduce(context.Background(), in, bruteSolve)
	require.NoError(t, err)
	require.NoError(t, in.Check())
	assert.Equal(t, 2, st.Placed)
	assert.True(t, in.Empty())
	assert.ElementsMatch(t, []int{0, 1}, in.DS())
	assert.True(t, g.IsDominatingSet(in.DS()))
}

// TestReduce_Cactus runs the block step on random cacti, where most
// vertices are cuts and neighbouring cuts are resolved together.
func TestReduce_Cactus(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	for round := 0; round < 200; round++ {
		g := builder.MustBuild([]builder.Option{builder.WithRand(rng)}, builder.RandomCactus(8+rng.Intn(12)))
		ref, ok := instance.FromGraph(g).BruteForce(62)
		require.True(t, ok)

		in := instance.FromGraph(g)
		_, err := bctree.Reduce(context.Background(), in, bruteSolve)
		require.NoError(t, err)
		require.NoError(t, in.Check(), "round %d", round)

		rest, ok := in.BruteForce(62)
		require.True(t, ok)
		ids := in.DS()
		for _, v := range rest {
			ids = append(ids, in.ID(v))
		}
		assert.Len(t, ids, len(ref), "round %d", round)
		assert.True(t, g.IsDominatingSet(ids), "round %d: %v", round, ids)
	}
}

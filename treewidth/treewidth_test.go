package treewidth_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/domsolve/builder"
	"github.com/katalvlaran/domsolve/instance"
	"github.com/katalvlaran/domsolve/reduce"
	"github.com/katalvlaran/domsolve/treewidth"
)

// requireValid checks the three tree-decomposition properties against the
// instance's live vertices and arcs.
func requireValid(t *testing.T, in *instance.Instance, d *treewidth.Decomposition) {
	t.Helper()
	where := make(map[int][]int)
	for i, bag := range d.Bags {
		for _, v := range bag {
			where[v] = append(where[v], i)
		}
	}
	for _, v := range in.Live() {
		require.NotEmpty(t, where[v], "vertex %d in no bag", v)
		for _, w := range in.Out(v) {
			shared := false
			for _, i := range where[v] {
				for _, x := range d.Bags[i] {
					shared = shared || x == w
				}
			}
			require.True(t, shared, "arc %d→%d in no bag", v, w)
		}
		// the bags holding v induce a connected subtree
		holds := make(map[int]bool)
		for _, i := range where[v] {
			holds[i] = true
		}
		seen := map[int]bool{where[v][0]: true}
		queue := []int{where[v][0]}
		for len(queue) > 0 {
			x := queue[0]
			queue = queue[1:]
			for _, y := range d.Adj[x] {
				if holds[y] && !seen[y] {
					seen[y] = true
					queue = append(queue, y)
				}
			}
		}
		require.Len(t, seen, len(where[v]), "bags of %d are disconnected", v)
	}
}

func TestBuild_Shapes(t *testing.T) {
	cases := []struct {
		name  string
		cons  builder.Constructor
		width int
	}{
		{"path", builder.Path(8), 1},
		{"cycle", builder.Cycle(9), 2},
		{"k5", builder.Complete(5), 4},
		{"2-tree", builder.PartialKTree(12, 2, 1), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := instance.FromGraph(builder.MustBuild([]builder.Option{builder.WithSeed(4)}, tc.cons))
			d, err := treewidth.NewBuilder().Build(context.Background(), in)
			require.NoError(t, err)
			requireValid(t, in, d)
			assert.Equal(t, tc.width, d.Width)
		})
	}
}

func TestBuild_EachHeuristic(t *testing.T) {
	g := builder.MustBuild([]builder.Option{builder.WithSeed(8)}, builder.RandomSparse(40, 70))
	in := instance.FromGraph(g)
	for _, h := range []treewidth.Heuristic{treewidth.MinDegree, treewidth.MinFill, treewidth.Degeneracy} {
		d, err := treewidth.NewBuilder(treewidth.WithHeuristics(h)).Build(context.Background(), in)
		require.NoError(t, err, h)
		assert.Equal(t, h, d.Heuristic)
		requireValid(t, in, d)
	}
}

func TestBuild_Disconnected(t *testing.T) {
	in := instance.FromGraph(builder.MustBuild(nil, builder.Cycle(4), builder.Path(3), builder.Complete(1)))
	d, err := treewidth.NewBuilder().Build(context.Background(), in)
	require.NoError(t, err)
	requireValid(t, in, d)
	// the forest of components is chained into one tree
	edges := 0
	for _, a := range d.Adj {
		edges += len(a)
	}
	assert.Equal(t, 2*(len(d.Bags)-1), edges)
}

func TestBuild_CancelledContext(t *testing.T) {
	in := instance.FromGraph(builder.MustBuild(nil, builder.Cycle(20)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := treewidth.NewBuilder().Build(ctx, in)
	assert.ErrorIs(t, err, treewidth.ErrNoDecomposition)
}

func TestNice_Structure(t *testing.T) {
	in := instance.FromGraph(builder.MustBuild([]builder.Option{builder.WithSeed(2)}, builder.PartialKTree(10, 3, 0.8)))
	d, err := treewidth.NewBuilder().Build(context.Background(), in)
	require.NoError(t, err)
	nd := d.Nice()
	require.Empty(t, nd.Nodes[nd.Root].Bag)
	assert.Equal(t, d.Width+1, nd.MaxBag())

	introduced := make(map[int]int)
	for i, n := range nd.Nodes {
		for _, c := range n.Children {
			require.Less(t, c, i, "child after parent")
		}
		switch n.Kind {
		case treewidth.Leaf:
			assert.Empty(t, n.Bag)
			assert.Empty(t, n.Children)
		case treewidth.Join:
			require.Len(t, n.Children, 2)
			assert.Equal(t, n.Bag, nd.Nodes[n.Children[0]].Bag)
			assert.Equal(t, n.Bag, nd.Nodes[n.Children[1]].Bag)
		case treewidth.Copy:
			require.Len(t, n.Children, 1)
			assert.Equal(t, n.Bag, nd.Nodes[n.Children[0]].Bag)
		case treewidth.Introduce:
			require.Len(t, n.Children, 1)
			assert.Len(t, n.Bag, len(nd.Nodes[n.Children[0]].Bag)+1)
			assert.Contains(t, n.Bag, n.Vertex)
			introduced[n.Vertex]++
		case treewidth.Forget:
			require.Len(t, n.Children, 1)
			assert.Len(t, n.Bag, len(nd.Nodes[n.Children[0]].Bag)-1)
			assert.NotContains(t, n.Bag, n.Vertex)
		}
	}
	for _, v := range in.Live() {
		assert.Positive(t, introduced[v], "vertex %d never introduced", v)
	}
}

func solveDP(t *testing.T, in *instance.Instance, opts ...treewidth.Option) ([]int, error) {
	t.Helper()
	d, err := treewidth.NewBuilder(opts...).Build(context.Background(), in)
	require.NoError(t, err)
	return treewidth.Solve(in, d.Nice(), opts...)
}

func TestSolve_Scenarios(t *testing.T) {
	cases := []struct {
		name string
		cons []builder.Constructor
		want int
	}{
		{"P5", []builder.Constructor{builder.Path(5)}, 2},
		{"star", []builder.Constructor{builder.Star(7)}, 1},
		{"two triangles", []builder.Constructor{builder.Cycle(3), builder.Cycle(3)}, 2},
		{"C9", []builder.Constructor{builder.Cycle(9)}, 3},
		{"single vertex", []builder.Constructor{builder.Path(1)}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := instance.FromGraph(builder.MustBuild(nil, tc.cons...))
			ds, err := solveDP(t, in)
			require.NoError(t, err)
			assert.Len(t, ds, tc.want)
			assert.True(t, in.Covers(ds))
		})
	}
}

func TestSolve_Empty(t *testing.T) {
	in := instance.New(0)
	ds, err := solveDP(t, in)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

// TestSolve_MatchesBruteForce compares the DP optimum with brute force on
// random partial k-trees of treewidth at most 4.
func TestSolve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	for round := 0; round < 60; round++ {
		n := 8 + rng.Intn(8)
		k := 1 + rng.Intn(4)
		p := 0.5 + rng.Float64()/2
		g := builder.MustBuild([]builder.Option{builder.WithRand(rng)}, builder.PartialKTree(n, k, p))
		in := instance.FromGraph(g)

		ref, ok := in.BruteForce(62)
		require.True(t, ok)
		ds, err := solveDP(t, in)
		require.NoError(t, err, "round %d", round)
		assert.Len(t, ds, len(ref), "round %d n=%d k=%d", round, n, k)
		assert.True(t, in.Covers(ds), "round %d", round)
	}
}

// TestSolve_WithStatuses runs the DP on kernelized instances, where
// vertices arrive dominated or excluded and arcs are one-way.
func TestSolve_WithStatuses(t *testing.T) {
	rng := rand.New(rand.NewSource(37))
	for round := 0; round < 40; round++ {
		g := builder.MustBuild([]builder.Option{builder.WithRand(rng)}, builder.PartialKTree(14, 3, 0.6))
		in := instance.FromGraph(g)
		reduce.Kernelize(in, reduce.WithMaxPasses(1))

		ref, ok := in.BruteForce(62)
		require.True(t, ok)
		ds, err := solveDP(t, in)
		require.NoError(t, err, "round %d", round)
		assert.Len(t, ds, len(ref), "round %d", round)
		assert.True(t, in.Covers(ds), "round %d", round)
	}
}

func TestSolve_HittingSet(t *testing.T) {
	in, err := instance.FromSets(5, [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}})
	require.NoError(t, err)
	ds, err := solveDP(t, in)
	require.NoError(t, err)
	assert.Len(t, ds, 3)
	assert.True(t, in.Covers(ds))
}

func TestSolve_TooWide(t *testing.T) {
	in := instance.FromGraph(builder.MustBuild(nil, builder.Complete(8)))
	_, err := solveDP(t, in, treewidth.WithMaxBag(5))
	assert.ErrorIs(t, err, treewidth.ErrTooWide)
}

package solver_test

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/domsolve/builder"
	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/graph"
	"github.com/katalvlaran/domsolve/instance"
	"github.com/katalvlaran/domsolve/oracle"
	"github.com/katalvlaran/domsolve/reduce"
	"github.com/katalvlaran/domsolve/solver"
)

// SolverSuite runs the full engine on fixture graphs and compares against
// brute force where the graphs are small enough.
type SolverSuite struct {
	suite.Suite
	ctx  context.Context
	hook *test.Hook
}

func (s *SolverSuite) SetupTest() {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s.hook = hook
	s.ctx = common.WithLogger(context.Background(), logger)
}

func (s *SolverSuite) solve(g *graph.Graph, opts ...solver.Option) *solver.Result {
	sv, err := solver.New(opts...)
	s.Require().NoError(err)
	defer func() { s.Require().NoError(sv.Close()) }()

	in := instance.FromGraph(g)
	res, err := sv.Solve(s.ctx, in)
	s.Require().NoError(err)
	s.Require().True(in.Empty())
	s.Require().NoError(in.Check())
	s.Require().True(g.IsDominatingSet(res.DS), "not dominating: %v", res.DS)
	return res
}

func (s *SolverSuite) TestScenarios() {
	cases := []struct {
		name string
		g    *graph.Graph
		want int
	}{
		{"path5", builder.MustBuild(nil, builder.Path(5)), 2},
		{"star", builder.MustBuild(nil, builder.Star(7)), 1},
		{"two triangles", builder.MustBuild(nil, builder.Cycle(3), builder.Cycle(3)), 2},
		{"cycle10", builder.MustBuild(nil, builder.Cycle(10)), 4},
		{"wheel", builder.MustBuild(nil, builder.Wheel(9)), 1},
		{"empty", graph.New(0), 0},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			res := s.solve(tc.g)
			s.Len(res.DS, tc.want)
			s.True(res.Optimal)
		})
	}
}

// TestMatchesBruteForce covers every path through the engine by varying
// the options: DP only, oracle only (bag budget 1) for both backends, and
// parallel components.
func (s *SolverSuite) TestMatchesBruteForce() {
	configs := map[string][]solver.Option{
		"default":  nil,
		"gini":     {solver.WithMaxBag(1)},
		"maxsat":   {solver.WithMaxBag(1), solver.WithBackend(oracle.BackendMaxSAT)},
		"parallel": {solver.WithParallel(4)},
		"blocks":   {solver.WithRules("extreme-degree")},
		"no block": {solver.WithRules("extreme-degree"), solver.WithMaxBlockSize(2)},
		"one rule": {solver.WithRules("contraction")},
	}
	for name, opts := range configs {
		s.Run(name, func() {
			rng := rand.New(rand.NewSource(41))
			for round := 0; round < 25; round++ {
				g := builder.MustBuild([]builder.Option{builder.WithRand(rng)},
					builder.RandomSparse(20, 18+rng.Intn(16)))
				ref, ok := instance.FromGraph(g).BruteForce(62)
				s.Require().True(ok)

				res := s.solve(g, opts...)
				s.Len(res.DS, len(ref), "round %d", round)
				s.True(res.Optimal)
			}
		})
	}
}

func (s *SolverSuite) TestBlockTree() {
	g := builder.MustBuild(nil, builder.Cycle(6))
	var err error
	for _, at := range []int{0, 2, 4} {
		g, err = builder.Attach(g, builder.MustBuild(nil, builder.Complete(4)), at, 0)
		s.Require().NoError(err)
	}
	ref, ok := instance.FromGraph(g).BruteForce(62)
	s.Require().True(ok)
	// degree rules alone leave the K4 blocks to the block-cut step
	res := s.solve(g, solver.WithRules("extreme-degree"))
	s.Len(res.DS, len(ref))
	s.Equal(3, res.Stats.Blocks)
}

// TestNeighbouringPlacedCuts is a sparse graph whose leaf blocks place two
// adjacent cut vertices in the same block-cut pass.
func (s *SolverSuite) TestNeighbouringPlacedCuts() {
	g := graph.New(15)
	for _, e := range [][2]int{
		{0, 10}, {0, 11}, {0, 12}, {1, 6}, {1, 8}, {2, 8}, {2, 13}, {3, 5},
		{3, 6}, {3, 12}, {5, 14}, {6, 13}, {9, 11}, {9, 12}, {11, 12}, {11, 14},
	} {
		s.Require().NoError(g.AddEdge(e[0], e[1]))
	}
	ref, ok := instance.FromGraph(g).BruteForce(62)
	s.Require().True(ok)
	res := s.solve(g)
	s.Len(res.DS, len(ref))
	s.True(res.Optimal)
}

func (s *SolverSuite) TestCactus() {
	rng := rand.New(rand.NewSource(59))
	for round := 0; round < 100; round++ {
		g := builder.MustBuild([]builder.Option{builder.WithRand(rng)}, builder.RandomCactus(10+rng.Intn(10)))
		ref, ok := instance.FromGraph(g).BruteForce(62)
		s.Require().True(ok)
		for _, opts := range [][]solver.Option{nil, {solver.WithRules("extreme-degree")}} {
			res := s.solve(g, opts...)
			s.Len(res.DS, len(ref), "round %d", round)
			s.True(res.Optimal)
		}
	}
}

func (s *SolverSuite) TestStats() {
	res := s.solve(builder.MustBuild(nil, builder.Cycle(3), builder.Cycle(4), builder.Cycle(9)),
		solver.WithRules("extreme-degree"))
	s.Equal(3, res.Stats.Components)
	s.Positive(res.Stats.KernelPasses)
	s.Len(res.DS, 1+2+3)
}

// TestGreedyFallback forces every exact step off: no DP, a residual limit
// of zero for the oracle.
func (s *SolverSuite) TestGreedyFallback() {
	g := builder.MustBuild([]builder.Option{builder.WithSeed(3)}, builder.PartialKTree(30, 3, 0.9))
	res := s.solve(g, solver.WithMaxBag(1), solver.WithMaxOracleOrder(0), solver.WithRules("extreme-degree"))
	s.False(res.Optimal)
	s.Positive(res.Stats.GreedySolves)

	warned := false
	for _, e := range s.hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	s.True(warned)
}

func (s *SolverSuite) TestRequireOptimal() {
	sv, err := solver.New(solver.WithMaxBag(1), solver.WithMaxOracleOrder(0),
		solver.WithRules("extreme-degree"), solver.WithRequireOptimal(true))
	s.Require().NoError(err)
	in := instance.FromGraph(builder.MustBuild(nil, builder.Cycle(8)))
	_, err = sv.Solve(s.ctx, in)
	s.ErrorIs(err, solver.ErrNotCertified)
}

func (s *SolverSuite) TestCancelledContextFallsBack() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	sv, err := solver.New(solver.WithRules("extreme-degree"))
	s.Require().NoError(err)
	g := builder.MustBuild(nil, builder.Cycle(12))
	in := instance.FromGraph(g)
	res, err := sv.Solve(ctx, in)
	s.Require().NoError(err)
	s.False(res.Optimal)
	s.True(g.IsDominatingSet(res.DS))
}

func (s *SolverSuite) TestCache() {
	path := filepath.Join(s.T().TempDir(), "cache.db")
	g := builder.MustBuild(nil, builder.Cycle(11))
	opts := []solver.Option{solver.WithRules("extreme-degree"), solver.WithMaxBag(1), solver.WithCache(path)}
	first := s.solve(g, append(opts, solver.WithOracleTimeout(time.Minute))...)
	second := s.solve(g, opts...)
	s.Equal(first.DS, second.DS)
	s.Equal(1, second.Stats.OracleSolves)
}

func (s *SolverSuite) TestHittingSet() {
	in, err := instance.FromSets(6, [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}, {0, 3}})
	s.Require().NoError(err)
	ref, ok := in.Clone().BruteForce(62)
	s.Require().True(ok)

	sv, err := solver.New()
	s.Require().NoError(err)
	res, err := sv.Solve(s.ctx, in)
	s.Require().NoError(err)
	s.Len(res.DS, len(ref))
	for _, id := range res.DS {
		s.Less(id, 6)
	}
}

// solveSets solves a hitting-set instance and checks it against brute force.
func (s *SolverSuite) solveSets(n int, sets [][]int, opts ...solver.Option) *solver.Result {
	in, err := instance.FromSets(n, sets)
	s.Require().NoError(err)
	ref, ok := in.Clone().BruteForce(62)
	s.Require().True(ok)

	sv, err := solver.New(opts...)
	s.Require().NoError(err)
	res, err := sv.Solve(s.ctx, in)
	s.Require().NoError(err)
	s.Require().True(in.Empty())
	s.Len(res.DS, len(ref))
	return res
}

// TestVertexCoverSearch leaves only the exact cover search: the DP and the
// oracle are both off and greedy is forbidden.
func (s *SolverSuite) TestVertexCoverSearch() {
	sets := [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7}, {7, 8}, {8, 0}, {0, 3}, {3, 6}, {6, 0}}
	opts := []solver.Option{solver.WithRules("extreme-degree"), solver.WithMaxBag(1),
		solver.WithMaxOracleOrder(0), solver.WithRequireOptimal(true)}
	res := s.solveSets(9, sets, opts...)
	s.True(res.Optimal)
	s.Equal(1, res.Stats.VCSolves)
	s.Zero(res.Stats.VCReductions)

	sv, err := solver.New(append(opts, solver.WithVertexCover(false))...)
	s.Require().NoError(err)
	in, err := instance.FromSets(9, sets)
	s.Require().NoError(err)
	_, err = sv.Solve(s.ctx, in)
	s.ErrorIs(err, solver.ErrNotCertified)
}

func (s *SolverSuite) TestVertexCoverBranchLimit() {
	sets := [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 0}}
	res := s.solveSets(7, sets, solver.WithRules("extreme-degree"), solver.WithMaxBag(1), solver.WithVCBranches(1))
	s.Zero(res.Stats.VCSolves)
	s.Equal(1, res.Stats.OracleSolves)
}

// TestVertexCoverReduction has a star of pairs around 0 that only the LP
// reduction settles when the kernel runs extreme-degree alone.
func (s *SolverSuite) TestVertexCoverReduction() {
	sets := [][]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {4, 5}, {5, 6}, {6, 7}, {7, 8}, {8, 9}, {9, 5}}
	res := s.solveSets(10, sets, solver.WithRules("extreme-degree"))
	s.True(res.Optimal)
	s.Positive(res.Stats.VCReductions)
	s.Contains(res.DS, 0)
	s.Len(res.DS, 4)
}

func (s *SolverSuite) TestUnknownBackend() {
	_, err := solver.New(solver.WithBackend("cplex"))
	s.ErrorIs(err, oracle.ErrUnknownBackend)
}

func (s *SolverSuite) TestUnknownRule() {
	_, err := solver.New(solver.WithRules("extreme-degree", "twins"))
	s.ErrorIs(err, reduce.ErrUnknownRule)
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

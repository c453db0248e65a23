package oracle

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/greedy"
	"github.com/katalvlaran/domsolve/instance"
)

// Gini minimises the covering formula with repeated incremental SAT calls.
//
// The greedy solution gives the first upper bound ub. A sequential counter
// over the candidate variables exposes registers s(k,j) that are forced true
// whenever at least j candidates are chosen; assuming ¬s(k,b) restricts the
// next call to fewer than b candidates. Each model lowers the bound to its
// own size until the solver answers UNSAT, which proves the last model
// optimal.
type Gini struct {
	opts Options
}

// Solve implements Oracle.
func (o *Gini) Solve(ctx context.Context, in *instance.Instance) ([]int, error) {
	f := Encode(in)
	if len(f.Clauses) == 0 {
		return nil, nil
	}
	best, ok := f.Variables(greedy.Solve(in))
	if !ok {
		panic("oracle: greedy solution outside the candidate set")
	}
	k, ub := len(f.Vars), len(best)
	g := gini.NewVc(k*(ub+1), len(f.Clauses)+2*k*ub)
	for _, c := range f.Clauses {
		for _, x := range c {
			g.Add(choose(x))
		}
		g.Add(z.LitNull)
	}
	atLeast := counter(g, k, ub)

	log := common.Logger(ctx).WithFields(logrus.Fields{"vars": k, "clauses": len(f.Clauses)})
	for bound := ub; bound > 0; {
		g.Assume(atLeast(bound).Not())
		switch o.run(ctx, g) {
		case 1:
			best = best[:0]
			for x := 0; x < k; x++ {
				if g.Value(choose(x)) {
					best = append(best, x)
				}
			}
			log.Debugf("gini: bound %d -> %d", bound, len(best))
			bound = len(best)
		case -1:
			return f.Decode(best), nil
		default:
			log.Debugf("gini: stopped at bound %d", bound)
			return nil, ErrBudget
		}
	}
	return f.Decode(best), nil
}

// run solves under the pending assumptions, polling ctx. It returns 1 for
// SAT, -1 for UNSAT and 0 when stopped.
func (o *Gini) run(ctx context.Context, g *gini.Gini) int {
	if ctx.Err() != nil {
		return 0
	}
	s := g.GoSolve()
	tick := time.NewTicker(o.opts.PollInterval)
	defer tick.Stop()
	for {
		if res, done := s.Test(); done {
			return res
		}
		select {
		case <-ctx.Done():
			return s.Stop()
		case <-tick.C:
		}
	}
}

// choose is the literal "variable x is chosen".
func choose(x int) z.Lit { return z.Var(x + 1).Pos() }

// counter adds a sequential counter over the k choice variables with
// registers for 1..ub and returns the register lookup for the last one.
// Register s(i,j) occupies gini variable k + (i-1)*ub + j.
func counter(g *gini.Gini, k, ub int) func(j int) z.Lit {
	s := func(i, j int) z.Lit { return z.Var(k + (i-1)*ub + j).Pos() }
	clause := func(ms ...z.Lit) {
		for _, m := range ms {
			g.Add(m)
		}
		g.Add(z.LitNull)
	}
	for i := 1; i <= k; i++ {
		x := choose(i - 1)
		clause(x.Not(), s(i, 1))
		if i == 1 {
			continue
		}
		for j := 1; j <= ub; j++ {
			clause(s(i-1, j).Not(), s(i, j))
			if j > 1 {
				clause(x.Not(), s(i-1, j-1).Not(), s(i, j))
			}
		}
	}
	return func(j int) z.Lit { return s(k, j) }
}

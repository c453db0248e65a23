package oracle

import (
	"context"
	"strconv"

	"github.com/crillab/gophersat/maxsat"

	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/instance"
)

// MaxSAT minimises the covering formula with the gophersat MaxSAT solver:
// every clause is hard and every candidate carries a unit-cost soft clause
// asking it to stay out.
//
// The gophersat call cannot be interrupted. When ctx ends first Solve
// returns ErrBudget and the call finishes in the background.
type MaxSAT struct{}

type maxsatResult struct {
	model maxsat.Model
	cost  int
}

// Solve implements Oracle.
func (MaxSAT) Solve(ctx context.Context, in *instance.Instance) ([]int, error) {
	f := Encode(in)
	if len(f.Clauses) == 0 {
		return nil, nil
	}
	if ctx.Err() != nil {
		return nil, ErrBudget
	}
	constrs := make([]maxsat.Constr, 0, len(f.Clauses)+len(f.Vars))
	for _, c := range f.Clauses {
		lits := make([]maxsat.Lit, len(c))
		for i, x := range c {
			lits[i] = maxsat.Var(varName(x))
		}
		constrs = append(constrs, maxsat.HardClause(lits...))
	}
	for x := range f.Vars {
		constrs = append(constrs, maxsat.SoftClause(maxsat.Not(varName(x))))
	}
	pb := maxsat.New(constrs...)

	done := make(chan maxsatResult, 1)
	go func() {
		model, cost := pb.Solve()
		done <- maxsatResult{model: model, cost: cost}
	}()
	var res maxsatResult
	select {
	case <-ctx.Done():
		return nil, ErrBudget
	case res = <-done:
	}
	if res.model == nil {
		return nil, ErrUnsatisfiable
	}
	var vars []int
	for x := range f.Vars {
		if res.model[varName(x)] {
			vars = append(vars, x)
		}
	}
	common.Logger(ctx).Debugf("maxsat: %d vars, %d clauses, cost %d", len(f.Vars), len(f.Clauses), res.cost)
	return f.Decode(vars), nil
}

func varName(x int) string { return "x" + strconv.Itoa(x) }

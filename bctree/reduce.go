package bctree

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/instance"
)

// Reduce solves and removes the small leaf blocks of in, splicing their
// solutions into in.DS(). It reports what it did; Stats.Blocks == 0 means
// the instance is unchanged.
//
// A cut vertex that is excluded and undominated skips its blocks: it can be
// neither placed nor assumed covered from outside without losing optimality.
//
// When solve fails, blocks already decided stay applied, their cut vertices
// are resolved and the error is returned.
func Reduce(ctx context.Context, in *instance.Instance, solve SolveFunc, opts ...Option) (Stats, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	logger := common.Logger(ctx)

	var st Stats
	pending := make(map[int][]Case)
	var order []int
	var err error
	for _, b := range LeafBlocks(in) {
		if len(b.Vertices) > o.MaxBlockSize {
			continue
		}
		if in.Excluded(b.Cut) && !in.Dominated(b.Cut) {
			st.Skipped++
			continue
		}
		var c Case
		var ids []int
		c, ids, err = Decide(ctx, in, b, solve)
		if err != nil {
			break
		}
		logger.WithFields(logrus.Fields{
			"cut":  in.ID(b.Cut),
			"size": len(b.Vertices),
			"case": c,
		}).Debug("leaf block solved")

		in.CommitIDs(ids...)
		for _, v := range b.Vertices {
			if v != b.Cut {
				in.RemoveVertex(v)
			}
		}
		if c == CaseDominated {
			in.MarkDominated(b.Cut, instance.Speculative)
		}
		if _, ok := pending[b.Cut]; !ok {
			order = append(order, b.Cut)
		}
		pending[b.Cut] = append(pending[b.Cut], c)
		st.Blocks++
		switch c {
		case CaseOutside:
			st.Outside++
		case CasePlace:
			st.Placed++
		case CaseDominated:
			st.Dominated++
		}
	}

	resolveCuts(in, order, pending)
	return st, err
}

// resolveCuts applies the combined decisions of every block hanging at each
// cut vertex. Hidden arcs are settled for all cuts before any placement, and
// a cut to be placed that an earlier placement already removed (dominated,
// nothing left to cover) is committed by id: its block's solution counts on
// it.
func resolveCuts(in *instance.Instance, order []int, pending map[int][]Case) {
	var place []int
	for _, v := range order {
		if hasCase(pending[v], CasePlace) {
			in.RestoreHidden(v)
			place = append(place, v)
			continue
		}
		in.DropHidden(v)
	}
	for _, v := range place {
		if !in.Alive(v) {
			in.CommitIDs(in.ID(v))
			continue
		}
		in.PlaceInSolution(v)
	}
}

func hasCase(cases []Case, c Case) bool {
	for _, x := range cases {
		if x == c {
			return true
		}
	}
	return false
}

// Decide solves block b of in under the three cut-vertex assumptions and
// returns the chosen case with the original ids to commit, the cut vertex
// itself never among them. in is not modified.
func Decide(ctx context.Context, in *instance.Instance, b Block, solve SolveFunc) (Case, []int, error) {
	sub := in.Induce(b.Vertices)
	cut := sub.Translation().ToChild[b.Cut]
	cutID := in.ID(b.Cut)

	free := sub.Clone()
	if err := solve(ctx, free); err != nil {
		return 0, nil, err
	}
	freeDS := free.DS()
	if sub.Excluded(cut) {
		// covered already and never placeable
		return CaseOutside, freeDS, nil
	}

	if !sub.Dominated(cut) {
		outside := sub.Clone()
		outside.MarkDominated(cut, instance.Definite)
		if err := solve(ctx, outside); err != nil {
			return 0, nil, err
		}
		if len(outside.DS()) < len(freeDS) {
			return CaseOutside, outside.DS(), nil
		}
	}

	if contains(freeDS, cutID) {
		return CasePlace, without(freeDS, cutID), nil
	}
	place := sub.Clone()
	place.PlaceInSolution(cut)
	if err := solve(ctx, place); err != nil {
		return 0, nil, err
	}
	if len(place.DS()) == len(freeDS) {
		return CasePlace, without(place.DS(), cutID), nil
	}
	return CaseDominated, freeDS, nil
}

func contains(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func without(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

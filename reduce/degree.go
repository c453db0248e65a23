package reduce

import (
	"fmt"

	"github.com/katalvlaran/domsolve/instance"
)

// ExtremeDegree applies the degree-extreme cases in one sweep:
//
//   - a dominated vertex with no outgoing arc is deleted;
//   - an undominated vertex with a single possible dominator forces that
//     dominator into the solution (an isolated vertex dominates itself, an
//     antenna's only neighbour is placed);
//   - a non-excluded vertex covering every undominated vertex is placed,
//     which solves the instance.
//
// It panics if an undominated vertex has no dominator at all, which the
// instance invariants rule out.
func ExtremeDegree(in *instance.Instance) bool {
	changed := false
	for _, v := range in.Live() {
		if !in.Alive(v) {
			continue
		}
		if in.Dominated(v) {
			if in.OutDegree(v) == 0 {
				in.RemoveVertex(v)
				changed = true
			}
			continue
		}
		d := in.Dominators(v)
		switch len(d) {
		case 0:
			panic(fmt.Errorf("vertex %d (id %d) has no dominator: %w", v, in.ID(v), instance.ErrInvariant))
		case 1:
			in.PlaceInSolution(d[0])
			changed = true
		}
	}
	if universal(in) {
		changed = true
	}
	return changed
}

// universal places a vertex whose cover reaches every undominated vertex.
func universal(in *instance.Instance) bool {
	need := len(in.Undominated())
	if need == 0 {
		return false
	}
	for _, u := range in.Live() {
		if in.Excluded(u) {
			continue
		}
		c := in.OutDegree(u)
		if !in.Dominated(u) {
			c++
		}
		if c == need {
			in.PlaceInSolution(u)
			return true
		}
	}
	return false
}

// Package greedy computes a valid, not necessarily minimum, dominating set
// of an instance residual. The solver uses it as a last-resort fallback and
// as the initial upper bound of the SAT oracle.
//
// Solve repeatedly takes the candidate covering the most still-undominated
// vertices (ties go to the smallest index), then Prune drops members whose
// removal keeps every requirement covered.
//
// Neither function mutates the instance.
package greedy

import (
	"sort"

	"github.com/katalvlaran/domsolve/instance"
)

// Solve returns local indices of non-excluded vertices covering every
// undominated vertex of in, already pruned.
//
// Complexity: O(k · (V + A)) for a result of size k.
func Solve(in *instance.Instance) []int {
	need := in.Undominated()
	if len(need) == 0 {
		return nil
	}
	covered := make(map[int]bool, len(need))
	left := len(need)

	var cand []int
	covers := make(map[int][]int)
	for _, v := range in.Live() {
		if c := in.Cover(v); len(c) > 0 {
			cand = append(cand, v)
			covers[v] = c
		}
	}

	var sol []int
	taken := make(map[int]bool)
	for left > 0 {
		best, gain := -1, 0
		for _, v := range cand {
			if taken[v] {
				continue
			}
			g := 0
			for _, y := range covers[v] {
				if !covered[y] {
					g++
				}
			}
			if g > gain {
				best, gain = v, g
			}
		}
		if best < 0 {
			// unreachable on a well-formed instance: every requirement has
			// a dominator
			panic("greedy: undominated vertex without dominator")
		}
		taken[best] = true
		sol = append(sol, best)
		for _, y := range covers[best] {
			if !covered[y] {
				covered[y] = true
				left--
			}
		}
	}
	return Prune(in, sol)
}

// Prune removes redundant members of sol: a member is dropped when every
// vertex it covers is covered by another remaining member. Members are
// tried in reverse order, so late greedy picks that made early ones
// redundant survive. The result is sorted ascending.
func Prune(in *instance.Instance, sol []int) []int {
	count := make(map[int]int)
	for _, v := range sol {
		for _, y := range in.Cover(v) {
			count[y]++
		}
	}
	keep := make([]bool, len(sol))
	for i := range keep {
		keep[i] = true
	}
	for i := len(sol) - 1; i >= 0; i-- {
		c := in.Cover(sol[i])
		redundant := true
		for _, y := range c {
			if count[y] < 2 {
				redundant = false
				break
			}
		}
		if redundant {
			keep[i] = false
			for _, y := range c {
				count[y]--
			}
		}
	}
	out := make([]int, 0, len(sol))
	for i, v := range sol {
		if keep[i] {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

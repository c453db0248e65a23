package instance

// BruteForce returns a minimum set of live, non-excluded vertices covering
// every undominated vertex, by enumerating candidate subsets in order of
// size. It gives up and returns ok=false when more than maxCandidates
// candidates exist. It serves as the reference solver for small residuals
// and tests.
func (in *Instance) BruteForce(maxCandidates int) (sol []int, ok bool) {
	need := in.Undominated()
	if len(need) == 0 {
		return nil, true
	}
	var cand []int
	for _, v := range in.Live() {
		if !in.excluded[v] {
			cand = append(cand, v)
		}
	}
	if len(cand) > maxCandidates || len(cand) > 62 {
		return nil, false
	}
	pos := make(map[int]int, len(cand))
	for i, v := range cand {
		pos[v] = i
	}
	// masks[j] = candidates able to cover need[j]
	masks := make([]uint64, len(need))
	for j, y := range need {
		for _, d := range in.Dominators(y) {
			masks[j] |= 1 << uint(pos[d])
		}
	}
	covers := func(set uint64) bool {
		for _, m := range masks {
			if m&set == 0 {
				return false
			}
		}
		return true
	}
	n := len(cand)
	for k := 1; k <= n; k++ {
		if set, found := firstCombination(n, k, covers); found {
			for i := 0; i < n; i++ {
				if set&(1<<uint(i)) != 0 {
					sol = append(sol, cand[i])
				}
			}
			return sol, true
		}
	}
	// an undominated vertex without dominators: infeasible
	return nil, false
}

// firstCombination walks the k-subsets of n elements in colex order as
// bitmasks (Gosper's hack) and returns the first accepted one.
func firstCombination(n, k int, accept func(uint64) bool) (uint64, bool) {
	set := uint64(1)<<uint(k) - 1
	limit := uint64(1) << uint(n)
	for set < limit {
		if accept(set) {
			return set, true
		}
		c := set & -set
		r := set + c
		set = (((r ^ set) >> 2) / c) | r
	}
	return 0, false
}

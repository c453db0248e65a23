package reduce

import "github.com/katalvlaran/domsolve/instance"

// bloomBit hashes a vertex index onto one of 64 bits (Fibonacci hashing).
func bloomBit(v int) uint64 {
	return 1 << ((uint64(v) * 0x9E3779B97F4A7C15) >> 58)
}

// bloom folds a vertex set into a 64-bit signature. If a ⊆ b then
// bloom(a) &^ bloom(b) == 0, so a non-zero difference refutes containment
// without looking at the sets.
func bloom(set []int) uint64 {
	var m uint64
	for _, v := range set {
		m |= bloomBit(v)
	}
	return m
}

// subset reports whether every element of a is in b.
func subset(a, b []int) bool {
	if len(a) > len(b) {
		return false
	}
	in := make(map[int]struct{}, len(b))
	for _, x := range b {
		in[x] = struct{}{}
	}
	for _, x := range a {
		if _, ok := in[x]; !ok {
			return false
		}
	}
	return true
}

// Subsumption excludes every non-excluded vertex v whose cover set is
// contained in the cover set of another non-excluded vertex u: any solution
// using v stays valid with u in its place.
//
// Candidates u are the dominators of the member of cover(v) that has the
// fewest dominators; each candidate is first screened by its Bloom
// signature. Of two vertices with equal covers only the one examined first
// is excluded, since an excluded vertex is no longer a candidate.
func Subsumption(in *instance.Instance) bool {
	changed := false
	masks := make(map[int]uint64)
	coverOf := func(x int) []int {
		c := in.Cover(x)
		if _, ok := masks[x]; !ok {
			masks[x] = bloom(c)
		}
		return c
	}
	for _, v := range in.Live() {
		if !in.Alive(v) || in.Excluded(v) {
			continue
		}
		cv := coverOf(v)
		if len(cv) == 0 {
			continue
		}
		if _, ok := subsumer(in, v, cv, masks[v], coverOf, masks); ok {
			in.MarkExcluded(v)
			delete(masks, v)
			changed = true
		}
	}
	return changed
}

// subsumer finds a non-excluded u ≠ v whose cover contains cv.
func subsumer(in *instance.Instance, v int, cv []int, mv uint64,
	coverOf func(int) []int, masks map[int]uint64) (int, bool) {
	pivot, best := -1, -1
	for _, y := range cv {
		k := len(in.Dominators(y))
		if best < 0 || k < best {
			pivot, best = y, k
		}
	}
	for _, u := range in.Dominators(pivot) {
		if u == v || in.Excluded(u) {
			continue
		}
		cu := coverOf(u)
		if mv&^masks[u] != 0 || len(cu) < len(cv) {
			continue
		}
		if subset(cv, cu) {
			return u, true
		}
	}
	return -1, false
}

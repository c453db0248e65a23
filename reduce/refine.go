package reduce

import (
	"sort"

	"github.com/katalvlaran/domsolve/instance"
)

// partition is a simple partition-refinement structure over a fixed element
// list. class[x] is the bag of element x.
type partition struct {
	class map[int]int
	next  int
}

func newPartition(elems []int) *partition {
	p := &partition{class: make(map[int]int, len(elems)), next: 1}
	for _, x := range elems {
		p.class[x] = 0
	}
	return p
}

// refine splits every bag by membership in pivot: members of a bag that are
// in pivot move to a fresh bag. Elements outside the partition are ignored.
//
// Complexity: O(len(pivot)).
func (p *partition) refine(pivot []int) {
	moved := make(map[int]int)
	for _, x := range pivot {
		old, ok := p.class[x]
		if !ok {
			continue
		}
		nc, seen := moved[old]
		if !seen {
			nc = p.next
			p.next++
			moved[old] = nc
		}
		p.class[x] = nc
	}
}

// bags returns the bags with at least two members, each sorted ascending,
// ordered by smallest member.
func (p *partition) bags() [][]int {
	by := make(map[int][]int)
	for x, c := range p.class {
		by[c] = append(by[c], x)
	}
	var out [][]int
	for _, b := range by {
		if len(b) > 1 {
			sort.Ints(b)
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// SubsetRefinement runs two global partition-refinement passes.
//
// The first groups candidate dominators by their cover sets, refining one
// bag split per undominated vertex; members of a final bag have identical
// covers, so all but the smallest are excluded. The second groups
// undominated vertices by their dominator sets, refining one split per
// candidate; covering one member of a final bag covers them all, so all but
// the smallest are marked dominated.
//
// Only identical sets are merged, which keeps the pass sound; strict
// containment is left to Subsumption and StrongSubsumption.
func SubsetRefinement(in *instance.Instance) bool {
	changed := refineCovers(in)
	if refineRequirements(in) {
		changed = true
	}
	return changed
}

func refineCovers(in *instance.Instance) bool {
	var cand []int
	for _, v := range in.Live() {
		if !in.Excluded(v) && len(in.Cover(v)) > 0 {
			cand = append(cand, v)
		}
	}
	if len(cand) < 2 {
		return false
	}
	p := newPartition(cand)
	for _, y := range in.Undominated() {
		p.refine(in.Dominators(y))
	}
	changed := false
	for _, bag := range p.bags() {
		for _, v := range bag[1:] {
			in.MarkExcluded(v)
			changed = true
		}
	}
	return changed
}

func refineRequirements(in *instance.Instance) bool {
	need := in.Undominated()
	if len(need) < 2 {
		return false
	}
	p := newPartition(need)
	for _, x := range in.Live() {
		if !in.Excluded(x) {
			p.refine(in.Cover(x))
		}
	}
	changed := false
	for _, bag := range p.bags() {
		for _, y := range bag[1:] {
			in.MarkDominated(y, instance.Definite)
			changed = true
		}
	}
	return changed
}

package treewidth

import (
	"math/bits"
	"sort"
)

// item is a state split into its dominated mask, with its cost.
type item struct {
	dom  uint64
	cost int
	s    uint64
}

// frontier groups the states of t by chosen mask and keeps, per group, only
// the states no other state beats: one with a superset of dominated digits
// at no greater cost makes a state useless for any join partner.
func frontier(t table, k int) map[uint64][]item {
	groups := make(map[uint64][]item)
	for s, e := range t {
		c, d := masks(s, k)
		groups[c] = append(groups[c], item{dom: d, cost: e.cost, s: s})
	}
	for c, its := range groups {
		sort.Slice(its, func(i, j int) bool {
			if its[i].cost != its[j].cost {
				return its[i].cost < its[j].cost
			}
			if pi, pj := bits.OnesCount64(its[i].dom), bits.OnesCount64(its[j].dom); pi != pj {
				return pi > pj
			}
			return its[i].s < its[j].s
		})
		kept := its[:0:0]
		for _, it := range its {
			beaten := false
			for _, q := range kept {
				if q.dom&it.dom == it.dom {
					beaten = true
					break
				}
			}
			if !beaten {
				kept = append(kept, it)
			}
		}
		groups[c] = kept
	}
	return groups
}

// join combines the tables of two children sharing a bag of k vertices.
// Only states with the same chosen set combine; a vertex is dominated if
// either side dominates it, and chosen vertices are paid for once.
//
// Pairs are enumerated per chosen set, so a chosen set of j vertices meets
// up to 2^(k-j) states on each side. Summed over chosen sets that is
// Σ C(k,j)·4^(k-j) = 5^k pairs in the worst case; Pareto pruning of the
// frontiers usually keeps far fewer. MaxBag bounds k.
//
// Complexity: O(5^k) time, O(3^k) memory.
func join(k int, left, right table) table {
	lg, rg := frontier(left, k), frontier(right, k)
	out := make(table)
	for c, ls := range lg {
		rs := rg[c]
		if len(rs) == 0 {
			continue
		}
		paid := bits.OnesCount64(c)
		for _, l := range ls {
			for _, r := range rs {
				out.relax(encode(k, c, l.dom|r.dom), l.cost+r.cost-paid, 0)
			}
		}
	}
	return out
}

// splitJoin finds child states of left and right that join into s at the
// recorded cost.
func splitJoin(k int, s uint64, cost int, left, right table) (uint64, uint64, bool) {
	c, d := masks(s, k)
	paid := bits.OnesCount64(c)
	var rs []item
	for rsig, e := range right {
		rc, rd := masks(rsig, k)
		if rc == c && rd&^d == 0 {
			rs = append(rs, item{dom: rd, cost: e.cost, s: rsig})
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].s < rs[j].s })
	var best [2]uint64
	found := false
	for lsig, e := range left {
		lc, ld := masks(lsig, k)
		if lc != c || ld&^d != 0 {
			continue
		}
		for _, r := range rs {
			if ld|r.dom == d && e.cost+r.cost-paid == cost {
				if !found || lsig < best[0] || (lsig == best[0] && r.s < best[1]) {
					best = [2]uint64{lsig, r.s}
					found = true
				}
			}
		}
	}
	return best[0], best[1], found
}

package treewidth

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/domsolve/instance"
)

// Solve computes a minimum set of live, non-excluded vertices of in covering
// every undominated vertex, by dynamic programming over nd. The result is
// sorted instance indices. nd must decompose the underlying graph of in.
//
// It returns ErrTooWide, before any table is built, if a bag holds more
// than the MaxBag option allows.
//
// Time: O(#nodes · 3^b · b) for introduce/forget nodes with bags of size b;
// joins cost the product of the two Pareto frontiers.
func Solve(in *instance.Instance, nd *NiceDecomposition, opts ...Option) ([]int, error) {
	o := resolve(opts)
	if b := nd.MaxBag(); b > o.MaxBag {
		return nil, fmt.Errorf("bag of %d vertices, budget %d: %w", b, o.MaxBag, ErrTooWide)
	}

	// --- 1. Tables bottom-up; children precede parents in nd.Nodes ---
	tables := make([]table, len(nd.Nodes))
	for i, n := range nd.Nodes {
		switch n.Kind {
		case Leaf:
			tables[i] = table{0: {}}
		case Introduce:
			tables[i] = introduce(in, n, tables[n.Children[0]])
		case Forget:
			tables[i] = forget(nd.Nodes[n.Children[0]].Bag, n.Vertex, tables[n.Children[0]])
		case Copy:
			tables[i] = tables[n.Children[0]]
		case Join:
			tables[i] = join(len(n.Bag), tables[n.Children[0]], tables[n.Children[1]])
		}
	}

	// --- 2. Cheapest root state with nobody waiting ---
	root := nd.Nodes[nd.Root]
	best, bestCost, ok := uint64(0), 0, false
	for s, e := range tables[nd.Root] {
		if !settled(s, len(root.Bag)) {
			continue
		}
		if !ok || e.cost < bestCost || (e.cost == bestCost && s < best) {
			best, bestCost, ok = s, e.cost, true
		}
	}
	if !ok {
		panic(fmt.Errorf("treewidth: no settled root state: %w", instance.ErrInvariant))
	}

	// --- 3. Walk the backpointers down ---
	ds := reconstruct(nd, tables, best)
	if len(ds) != bestCost {
		panic(fmt.Errorf("treewidth: reconstructed %d vertices for cost %d: %w", len(ds), bestCost, instance.ErrInvariant))
	}
	return ds, nil
}

// introduce extends every child state with a digit for n.Vertex. Left out,
// the vertex is dominated if it already was or a chosen bag vertex covers
// it. Chosen, it costs one and covers every waiting bag vertex it reaches.
func introduce(in *instance.Instance, n Node, child table) table {
	x := n.Vertex
	p := sort.SearchInts(n.Bag, x)
	out := make(table, 2*len(child))
	for s, e := range child {
		st := dWaiting
		if in.Dominated(x) {
			st = dDominated
		} else {
			for j, y := range n.Bag {
				if j == p {
					continue
				}
				if digit(s, childPos(j, p)) == dChosen && in.HasArc(y, x) {
					st = dDominated
					break
				}
			}
		}
		out.relax(insertDigit(s, p, st), e.cost, s)

		if in.Excluded(x) {
			continue
		}
		t := s
		for j, y := range n.Bag {
			if j == p {
				continue
			}
			cj := childPos(j, p)
			if digit(t, cj) == dWaiting && in.HasArc(x, y) {
				t = setDigit(t, cj, dDominated)
			}
		}
		out.relax(insertDigit(t, p, dChosen), e.cost+1, s)
	}
	return out
}

// childPos maps a parent bag position to the child position when the
// parent introduced the vertex at p.
func childPos(j, p int) int {
	if j > p {
		return j - 1
	}
	return j
}

// forget drops x's digit; states still waiting on x are infeasible since
// every vertex able to cover x has already been introduced.
func forget(childBag []int, x int, child table) table {
	p := sort.SearchInts(childBag, x)
	out := make(table, len(child))
	for s, e := range child {
		if digit(s, p) == dWaiting {
			continue
		}
		out.relax(removeDigit(s, p), e.cost, s)
	}
	return out
}

// reconstruct collects the vertices chosen along the optimal states.
func reconstruct(nd *NiceDecomposition, tables []table, rootState uint64) []int {
	type frame struct {
		node int
		s    uint64
	}
	chosen := make(map[int]bool)
	stack := []frame{{nd.Root, rootState}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := nd.Nodes[f.node]
		e, ok := tables[f.node][f.s]
		if !ok {
			panic(fmt.Errorf("treewidth: state %d missing at node %d: %w", f.s, f.node, instance.ErrInvariant))
		}
		switch n.Kind {
		case Leaf:
		case Introduce:
			if digit(f.s, sort.SearchInts(n.Bag, n.Vertex)) == dChosen {
				chosen[n.Vertex] = true
			}
			stack = append(stack, frame{n.Children[0], e.back})
		case Forget:
			stack = append(stack, frame{n.Children[0], e.back})
		case Copy:
			stack = append(stack, frame{n.Children[0], f.s})
		case Join:
			l, r := n.Children[0], n.Children[1]
			ls, rs, ok := splitJoin(len(n.Bag), f.s, e.cost, tables[l], tables[r])
			if !ok {
				panic(fmt.Errorf("treewidth: join state %d has no split at node %d: %w", f.s, f.node, instance.ErrInvariant))
			}
			stack = append(stack, frame{l, ls}, frame{r, rs})
		}
	}
	ds := make([]int, 0, len(chosen))
	for v := range chosen {
		ds = append(ds, v)
	}
	sort.Ints(ds)
	return ds
}

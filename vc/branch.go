package vc

import (
	"context"
	"sort"
)

// ctxEvery is how many branches pass between cancellation checks.
const ctxEvery = 1 << 10

// MinCover returns a minimum vertex cover of g as sorted positions. The
// search branches on a vertex v of maximum degree: either v is in the cover
// or all of N(v) is. A vertex of degree 1 forces its neighbour in, and
// ceil(m/Δ) bounds what any cover of the remaining m edges still costs.
// maxBranches ≤ 0 means no limit; past it ErrBranchLimit is returned.
//
// Complexity: O(1.47^V · (V + E)) worst case.
func (g *Graph) MinCover(ctx context.Context, maxBranches int) ([]int, error) {
	n := g.Order()
	s := &search{
		g:     g,
		ctx:   ctx,
		limit: maxBranches,
		alive: make([]bool, n),
		deg:   make([]int, n),
		edges: g.size,
	}
	for v := 0; v < n; v++ {
		s.alive[v] = true
		s.deg[v] = len(g.Adj[v])
		s.best = append(s.best, v)
	}
	if err := s.branch(); err != nil {
		return nil, err
	}
	sort.Ints(s.best)
	return s.best, nil
}

// MaxIndependent returns the complement of a minimum cover: a maximum
// independent set of g, as sorted positions.
func (g *Graph) MaxIndependent(ctx context.Context, maxBranches int) ([]int, error) {
	cover, err := g.MinCover(ctx, maxBranches)
	if err != nil {
		return nil, err
	}
	in := make([]bool, g.Order())
	for _, p := range cover {
		in[p] = true
	}
	var res []int
	for p := range in {
		if !in[p] {
			res = append(res, p)
		}
	}
	return res, nil
}

type search struct {
	g        *Graph
	ctx      context.Context
	limit    int
	branches int

	alive []bool
	deg   []int
	edges int
	taken []int
	best  []int
}

// take moves v into the cover and deletes its edges.
func (s *search) take(v int) {
	s.alive[v] = false
	for _, w := range s.g.Adj[v] {
		if s.alive[w] {
			s.deg[w]--
			s.edges--
		}
	}
	s.taken = append(s.taken, v)
}

// untake reverts the last take.
func (s *search) untake() {
	v := s.taken[len(s.taken)-1]
	s.taken = s.taken[:len(s.taken)-1]
	for _, w := range s.g.Adj[v] {
		if s.alive[w] {
			s.deg[w]++
			s.edges++
		}
	}
	s.alive[v] = true
}

func (s *search) branch() error {
	s.branches++
	if s.limit > 0 && s.branches > s.limit {
		return ErrBranchLimit
	}
	if s.branches%ctxEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			return err
		}
	}
	if s.edges == 0 {
		if len(s.taken) < len(s.best) {
			s.best = append(s.best[:0], s.taken...)
		}
		return nil
	}

	v, leaf := -1, -1
	for u, ok := range s.alive {
		if !ok || s.deg[u] == 0 {
			continue
		}
		if v < 0 || s.deg[u] > s.deg[v] {
			v = u
		}
		if leaf < 0 && s.deg[u] == 1 {
			leaf = u
		}
	}
	if len(s.taken)+(s.edges+s.deg[v]-1)/s.deg[v] >= len(s.best) {
		return nil
	}

	if leaf >= 0 {
		w := s.neighbour(leaf)
		s.take(w)
		err := s.branch()
		s.untake()
		return err
	}

	s.take(v)
	err := s.branch()
	s.untake()
	if err != nil {
		return err
	}

	mark := len(s.taken)
	for _, w := range s.g.Adj[v] {
		if s.alive[w] {
			s.take(w)
		}
	}
	err = s.branch()
	for len(s.taken) > mark {
		s.untake()
	}
	return err
}

// neighbour returns the only live neighbour of a degree-1 vertex.
func (s *search) neighbour(u int) int {
	for _, w := range s.g.Adj[u] {
		if s.alive[w] {
			return w
		}
	}
	return -1
}

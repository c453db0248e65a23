package treewidth

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	sg "github.com/soniakeys/graph"

	"github.com/katalvlaran/domsolve/common"
	"github.com/katalvlaran/domsolve/instance"
)

// Builder computes tree decompositions under a wall-clock budget.
//
// Every Build call takes a fresh generation token from a shared counter and
// arms a timer for it. When the timer fires it requests a stop only if the
// counter still holds its token, so a timer left over from an earlier call
// can never stop a later one. A Builder may be shared between goroutines.
type Builder struct {
	opts Options
	gen  atomic.Uint64
	stop atomic.Uint64
}

// NewBuilder returns a Builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: resolve(opts)}
}

func (b *Builder) begin() uint64 { return b.gen.Add(1) }

// expire returns the timer callback of generation token.
func (b *Builder) expire(token uint64) func() {
	return func() {
		if b.gen.Load() == token {
			b.stop.Store(token)
		}
	}
}

func (b *Builder) stopped(ctx context.Context, token uint64) bool {
	return b.stop.Load() == token || ctx.Err() != nil
}

// Build returns the narrowest decomposition of in's underlying graph found
// by the configured heuristics. It returns ErrNoDecomposition if the timer
// fires or ctx is done before every heuristic has finished.
func (b *Builder) Build(ctx context.Context, in *instance.Instance) (*Decomposition, error) {
	token := b.begin()
	if b.opts.Timeout > 0 {
		t := time.AfterFunc(b.opts.Timeout, b.expire(token))
		defer t.Stop()
	}
	stop := func() bool { return b.stopped(ctx, token) }

	g, local := in.Underlying()
	var best *Decomposition
	for _, h := range b.opts.Heuristics {
		if h == MinFill && len(local) > b.opts.MinFillMaxOrder {
			continue
		}
		d, ok := decompose(g, local, h, stop)
		if !ok {
			return nil, ErrNoDecomposition
		}
		if best == nil || d.Width < best.Width {
			best = d
		}
	}
	if best == nil {
		return nil, ErrNoDecomposition
	}
	common.Logger(ctx).WithFields(logrus.Fields{
		"vertices":  len(local),
		"width":     best.Width,
		"heuristic": best.Heuristic,
	}).Debug("tree decomposition built")
	return best, nil
}

// elimGraph is an undirected graph under vertex elimination.
type elimGraph struct {
	nbr  []map[int]struct{}
	gone []bool
}

func newElimGraph(g sg.Undirected) *elimGraph {
	n := len(g.AdjacencyList)
	e := &elimGraph{nbr: make([]map[int]struct{}, n), gone: make([]bool, n)}
	for v, to := range g.AdjacencyList {
		e.nbr[v] = make(map[int]struct{}, len(to))
		for _, w := range to {
			if int(w) != v {
				e.nbr[v][int(w)] = struct{}{}
			}
		}
	}
	return e
}

// fill counts the edges missing among the neighbours of v.
func (e *elimGraph) fill(v int) int {
	nb := e.sorted(v)
	missing := 0
	for i, a := range nb {
		for _, c := range nb[i+1:] {
			if _, ok := e.nbr[a][c]; !ok {
				missing++
			}
		}
	}
	return missing
}

func (e *elimGraph) sorted(v int) []int {
	nb := make([]int, 0, len(e.nbr[v]))
	for w := range e.nbr[v] {
		nb = append(nb, w)
	}
	sort.Ints(nb)
	return nb
}

// eliminate turns the neighbourhood of v into a clique, removes v and
// returns its former neighbours, sorted.
func (e *elimGraph) eliminate(v int) []int {
	nb := e.sorted(v)
	for i, a := range nb {
		delete(e.nbr[a], v)
		for _, c := range nb[i+1:] {
			e.nbr[a][c] = struct{}{}
			e.nbr[c][a] = struct{}{}
		}
	}
	e.nbr[v] = nil
	e.gone[v] = true
	return nb
}

// picker chooses the next vertex to eliminate.
type picker func(e *elimGraph) int

func pickMinDegree(e *elimGraph) int {
	best := -1
	for v := range e.nbr {
		if !e.gone[v] && (best < 0 || len(e.nbr[v]) < len(e.nbr[best])) {
			best = v
		}
	}
	return best
}

func pickMinFill(e *elimGraph) int {
	best, bestFill := -1, 0
	for v := range e.nbr {
		if e.gone[v] {
			continue
		}
		f := e.fill(v)
		if best < 0 || f < bestFill || (f == bestFill && len(e.nbr[v]) < len(e.nbr[best])) {
			best, bestFill = v, f
		}
	}
	return best
}

// pickOrder follows a precomputed elimination ordering.
func pickOrder(order []sg.NI) picker {
	i := 0
	return func(*elimGraph) int {
		v := int(order[i])
		i++
		return v
	}
}

// decompose eliminates every vertex in heuristic order and assembles the
// elimination tree. It reports false if stop fired first.
func decompose(g sg.Undirected, local []int, h Heuristic, stop func() bool) (*Decomposition, bool) {
	n := len(g.AdjacencyList)
	if n == 0 {
		return &Decomposition{Bags: [][]int{nil}, Adj: [][]int{nil}, Heuristic: h}, true
	}
	var pick picker
	switch h {
	case MinFill:
		pick = pickMinFill
	case Degeneracy:
		// DegeneracyOrdering lists the first-peeled vertex last
		ord, _ := g.DegeneracyOrdering()
		rev := make([]sg.NI, n)
		for i, v := range ord {
			rev[n-1-i] = v
		}
		pick = pickOrder(rev)
	default:
		pick = pickMinDegree
	}

	e := newElimGraph(g)
	pos := make([]int, n)
	elim := make([]int, n)
	higher := make([][]int, n)
	for i := 0; i < n; i++ {
		if stop() {
			return nil, false
		}
		v := pick(e)
		pos[v] = i
		elim[i] = v
		higher[i] = e.eliminate(v)
	}

	d := &Decomposition{Bags: make([][]int, n), Adj: make([][]int, n), Heuristic: h}
	lastRoot := -1
	for i, v := range elim {
		bag := make([]int, 0, len(higher[i])+1)
		bag = append(bag, local[v])
		parent := -1
		for _, w := range higher[i] {
			bag = append(bag, local[w])
			if parent < 0 || pos[w] < parent {
				parent = pos[w]
			}
		}
		sort.Ints(bag)
		d.Bags[i] = bag
		if len(bag)-1 > d.Width {
			d.Width = len(bag) - 1
		}
		if parent < 0 {
			// chain the roots of separate components
			if lastRoot >= 0 {
				parent = lastRoot
			}
			lastRoot = i
		}
		if parent >= 0 {
			d.Adj[i] = append(d.Adj[i], parent)
			d.Adj[parent] = append(d.Adj[parent], i)
		}
	}
	return d, true
}

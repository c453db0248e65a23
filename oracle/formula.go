package oracle

import (
	"sort"

	"github.com/katalvlaran/domsolve/instance"
)

// Formula is the canonical covering formula of a residual.
//
// Variables are numbered 0..len(Vars)-1 in ascending order of the local
// vertex they stand for. Every clause is sorted and the clause list is
// sorted lexicographically without duplicates, so two residuals with the
// same structure yield identical formulas.
type Formula struct {
	// Vars maps a variable to its local vertex index.
	Vars []int
	// Clauses lists, per undominated vertex, the variables of its
	// dominators.
	Clauses [][]int
}

// Encode builds the covering formula of in.
func Encode(in *instance.Instance) *Formula {
	f := &Formula{}
	pos := make(map[int]int)
	for _, v := range in.Live() {
		if len(in.Cover(v)) > 0 {
			pos[v] = len(f.Vars)
			f.Vars = append(f.Vars, v)
		}
	}
	for _, y := range in.Undominated() {
		d := in.Dominators(y)
		c := make([]int, len(d))
		for i, x := range d {
			c[i] = pos[x]
		}
		sort.Ints(c)
		f.Clauses = append(f.Clauses, c)
	}
	sort.Slice(f.Clauses, func(i, j int) bool { return lessClause(f.Clauses[i], f.Clauses[j]) })
	k := 0
	for i, c := range f.Clauses {
		if i > 0 && equalClause(c, f.Clauses[k-1]) {
			continue
		}
		f.Clauses[k] = c
		k++
	}
	f.Clauses = f.Clauses[:k]
	return f
}

// Decode maps variables back to local vertex indices, sorted.
func (f *Formula) Decode(vars []int) []int {
	out := make([]int, len(vars))
	for i, x := range vars {
		out[i] = f.Vars[x]
	}
	sort.Ints(out)
	return out
}

// Satisfied reports whether setting exactly vars true satisfies every
// clause.
func (f *Formula) Satisfied(vars []int) bool {
	set := make(map[int]bool, len(vars))
	for _, x := range vars {
		if x < 0 || x >= len(f.Vars) {
			return false
		}
		set[x] = true
	}
	for _, c := range f.Clauses {
		hit := false
		for _, x := range c {
			if set[x] {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Variables maps local vertex indices to variables. ok is false if some
// vertex is not a variable of f.
func (f *Formula) Variables(locals []int) (vars []int, ok bool) {
	vars = make([]int, len(locals))
	for i, v := range locals {
		x := sort.SearchInts(f.Vars, v)
		if x == len(f.Vars) || f.Vars[x] != v {
			return nil, false
		}
		vars[i] = x
	}
	return vars, true
}

// Equal reports whether f and g have the same clauses over the same number
// of variables. The vertices behind the variables are not compared.
func (f *Formula) Equal(g *Formula) bool {
	if len(f.Vars) != len(g.Vars) || len(f.Clauses) != len(g.Clauses) {
		return false
	}
	for i, c := range f.Clauses {
		if !equalClause(c, g.Clauses[i]) {
			return false
		}
	}
	return true
}

func lessClause(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func equalClause(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package bctree

import (
	"sort"

	sg "github.com/soniakeys/graph"

	"github.com/katalvlaran/domsolve/instance"
)

// LeafBlocks returns every block of in's underlying graph that contains
// exactly one cut vertex, ordered by cut vertex and then smallest member.
// Vertex lists are sorted instance indices.
func LeafBlocks(in *instance.Instance) []Block {
	g, local := in.Underlying()
	var blocks [][]int
	cuts := make(map[int]bool)
	g.BlockCut(
		func(edges []sg.Edge) bool {
			seen := make(map[int]bool, len(edges)+1)
			var vs []int
			for _, e := range edges {
				for _, n := range []sg.NI{e.N1, e.N2} {
					v := local[n]
					if !seen[v] {
						seen[v] = true
						vs = append(vs, v)
					}
				}
			}
			sort.Ints(vs)
			blocks = append(blocks, vs)
			return true
		},
		func(n sg.NI) bool {
			cuts[local[n]] = true
			return true
		},
		func(sg.NI) bool { return true },
	)

	var leaves []Block
	for _, vs := range blocks {
		cut, k := -1, 0
		for _, v := range vs {
			if cuts[v] {
				cut = v
				k++
			}
		}
		if k == 1 {
			leaves = append(leaves, Block{Cut: cut, Vertices: vs})
		}
	}
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].Cut != leaves[j].Cut {
			return leaves[i].Cut < leaves[j].Cut
		}
		return leaves[i].Vertices[0] < leaves[j].Vertices[0]
	})
	return leaves
}

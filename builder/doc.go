// Package builder assembles deterministic fixture graphs for the solver:
// paths, cycles, stars, wheels, cliques, G(n,m) random graphs and random
// partial k-trees of bounded treewidth.
//
// Constructors compose: BuildGraph applies them in order, each one appending
// a fresh block of vertices, so BuildGraph(nil, Cycle(3), Cycle(3)) is two
// disjoint triangles. Attach glues two graphs at a shared vertex to produce
// block-cut structure.
//
//	g, err := builder.BuildGraph([]builder.Option{builder.WithSeed(7)},
//		builder.PartialKTree(30, 3, 0.8))
package builder

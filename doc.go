// Package domsolve computes exact minimum dominating sets, and by the same
// covering model minimum hitting sets and vertex covers, of graphs in the
// PACE text format.
//
// 🚀 What is domsolve?
//
//	A pipeline of techniques ordered from cheap to expensive:
//		• Kernelization: degree, subsumption, strong subsumption,
//		  partition refinement and contraction rules to a fixed point
//		• Connected components, solved independently (optionally in parallel)
//		• Vertex cover residuals: LP reduction through bipartite matching
//		• Block-cut tree: small leaf blocks solved on their own and spliced back
//		• Treewidth DP over a nice tree decomposition of the residual
//		• Exact vertex cover branch and bound when every requirement is a pair
//		• SAT oracle (gini or gophersat MaxSAT) with a persistent cache
//		• Greedy with redundancy pruning, only when nothing exact applies
//
// Packages:
//
//	graph/       plain undirected input graph and dominating-set check
//	instance/    covering-arc working model, mutation primitives, sub-instances
//	reduce/      kernelization rules and the fixed-point driver
//	bctree/      leaf-block reduction over the block-cut tree
//	treewidth/   decomposition builder, nice decompositions, the DP
//	flow/        Dinic max-flow and residual min cuts
//	vc/          vertex cover detection, LP reduction, exact cover search
//	oracle/      covering formula and the gini / MaxSAT backends
//	satcache/    bolthold store of oracle answers
//	greedy/      approximate fallback
//	pace/        p ds / p hs reader, solution reader and writer
//	builder/     fixture graphs: paths, cycles, wheels, random k-trees…
//	solver/      orchestration, options and results
//	cmd/domset   the CLI: solve, verify, gen
//
// Quick ASCII example:
//
//	    A───B───C───D───E
//
//	P5 is dominated by {B, D}; kernelization alone finds it.
//
//	go install github.com/katalvlaran/domsolve/cmd/domset@latest
//	domset gen --kind ktree -n 200 -k 3 | domset solve -v
package domsolve

package flow

import "context"

// Dinic pushes a maximum flow from source to sink through net and returns
// its value. Capacities are updated in place, so net holds the residual
// network afterwards; call Reset to run again from scratch.
//
// Steps:
//  1. Validate source and sink (O(1)).
//  2. Repeat until the sink is unreachable:
//     a. Check for cancellation (O(1)).
//     b. BFS from the source over arcs with residual capacity to build
//     the level graph (O(V + E)).
//     c. DFS-based blocking flow along strictly increasing levels,
//     optionally cut short every LevelRebuildInterval augmentations.
//
// On cancellation the flow pushed so far stays in net and ctx.Err() is
// returned with it.
//
// Complexity:
//
//	Time:   O(E · √V) on unit-capacity networks; O(V² · E) in general.
//	Memory: O(V + E).
func Dinic(ctx context.Context, net *Network, source, sink int, opts Options) (int, error) {
	if err := net.check(source, sink); err != nil {
		return 0, err
	}

	maxFlow, augments := 0, 0
	level := make([]int, net.Order())
	iter := make([]int, net.Order())
	for {
		if err := ctx.Err(); err != nil {
			return maxFlow, err
		}
		if !net.levels(source, sink, level) {
			return maxFlow, nil
		}
		for i := range iter {
			iter[i] = 0
		}
		for {
			pushed := net.push(level, iter, source, sink, int(^uint(0)>>1))
			if pushed == 0 {
				break
			}
			maxFlow += pushed
			augments++
			if opts.LevelRebuildInterval > 0 && augments%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}
}

// levels fills level with BFS distances from source over residual arcs and
// reports whether sink was reached. Unreached vertices get -1.
func (net *Network) levels(source, sink int, level []int) bool {
	for i := range level {
		level[i] = -1
	}
	level[source] = 0
	queue := []int{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, a := range net.adj[u] {
			if v := net.to[a]; net.cap[a] > 0 && level[v] < 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return level[sink] >= 0
}

// push sends at most available units from u to sink along the level graph
// and returns the amount sent.
func (net *Network) push(level, iter []int, u, sink, available int) int {
	if u == sink {
		return available
	}
	for ; iter[u] < len(net.adj[u]); iter[u]++ {
		a := net.adj[u][iter[u]]
		v := net.to[a]
		if net.cap[a] <= 0 || level[v] != level[u]+1 {
			continue
		}
		send := available
		if net.cap[a] < send {
			send = net.cap[a]
		}
		if pushed := net.push(level, iter, v, sink, send); pushed > 0 {
			net.cap[a] -= pushed
			net.cap[a^1] += pushed
			return pushed
		}
	}
	return 0
}

// SourceSide returns the vertices reachable from source over arcs with
// residual capacity. After a maximum flow they form the source side of a
// minimum cut.
func (net *Network) SourceSide(source int) []bool {
	seen := make([]bool, net.Order())
	if source < 0 || source >= net.Order() {
		return seen
	}
	seen[source] = true
	stack := []int{source}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range net.adj[u] {
			if v := net.to[a]; net.cap[a] > 0 && !seen[v] {
				seen[v] = true
				stack = append(stack, v)
			}
		}
	}
	return seen
}

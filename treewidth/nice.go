package treewidth

import "sort"

// Kind is the type of a nice decomposition node.
type Kind uint8

const (
	// Leaf has an empty bag and no child.
	Leaf Kind = iota
	// Introduce adds Vertex to its child's bag.
	Introduce
	// Forget drops Vertex from its child's bag.
	Forget
	// Join has two children with the node's own bag.
	Join
	// Copy has one child with the node's own bag.
	Copy
)

func (k Kind) String() string {
	return [...]string{"leaf", "introduce", "forget", "join", "copy"}[k]
}

// Node is one node of a nice decomposition.
type Node struct {
	Kind     Kind
	Bag      []int // sorted
	Vertex   int   // Introduce and Forget only
	Children []int
}

// NiceDecomposition is a rooted nice tree decomposition. Nodes are stored
// children first, so a forward scan visits every child before its parent.
// The root bag is empty.
type NiceDecomposition struct {
	Nodes []Node
	Root  int
}

// MaxBag returns the size of the largest bag.
func (nd *NiceDecomposition) MaxBag() int {
	m := 0
	for _, n := range nd.Nodes {
		if len(n.Bag) > m {
			m = len(n.Bag)
		}
	}
	return m
}

// Nice converts d into a nice decomposition rooted at node 0 of d, with
// binary joins, and forgets the root bag down to nothing.
func (d *Decomposition) Nice() *NiceDecomposition {
	nb := &niceBuilder{}
	var root int
	if len(d.Bags) == 0 {
		root = nb.leaf()
	} else {
		root = nb.build(d, 0, -1)
	}
	root = nb.morph(root, nil)
	return &NiceDecomposition{Nodes: nb.nodes, Root: root}
}

type niceBuilder struct {
	nodes []Node
}

func (nb *niceBuilder) add(n Node) int {
	nb.nodes = append(nb.nodes, n)
	return len(nb.nodes) - 1
}

func (nb *niceBuilder) leaf() int {
	return nb.add(Node{Kind: Leaf, Vertex: -1})
}

// build returns a nice subtree for tree node t whose top bag is d.Bags[t].
func (nb *niceBuilder) build(d *Decomposition, t, parent int) int {
	bag := d.Bags[t]
	var kids []int
	for _, c := range d.Adj[t] {
		if c == parent {
			continue
		}
		kids = append(kids, nb.morph(nb.build(d, c, t), bag))
	}
	if len(kids) == 0 {
		return nb.morph(nb.leaf(), bag)
	}
	cur := kids[0]
	for _, k := range kids[1:] {
		cur = nb.add(Node{Kind: Join, Bag: bag, Vertex: -1, Children: []int{cur, k}})
	}
	return cur
}

// morph walks from the bag of child to target: forgets first, then
// introductions. A child whose bag already equals target gets a Copy node.
func (nb *niceBuilder) morph(child int, target []int) int {
	from := nb.nodes[child].Bag
	cur := append([]int(nil), from...)
	changed := false
	for _, v := range from {
		if !has(target, v) {
			cur = remove(cur, v)
			child = nb.add(Node{Kind: Forget, Bag: append([]int(nil), cur...), Vertex: v, Children: []int{child}})
			changed = true
		}
	}
	for _, v := range target {
		if !has(cur, v) {
			cur = insert(cur, v)
			child = nb.add(Node{Kind: Introduce, Bag: append([]int(nil), cur...), Vertex: v, Children: []int{child}})
			changed = true
		}
	}
	if !changed {
		child = nb.add(Node{Kind: Copy, Bag: cur, Vertex: -1, Children: []int{child}})
	}
	return child
}

func has(sorted []int, v int) bool {
	i := sort.SearchInts(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

func insert(sorted []int, v int) []int {
	i := sort.SearchInts(sorted, v)
	sorted = append(sorted, 0)
	copy(sorted[i+1:], sorted[i:])
	sorted[i] = v
	return sorted
}

func remove(sorted []int, v int) []int {
	i := sort.SearchInts(sorted, v)
	return append(sorted[:i], sorted[i+1:]...)
}

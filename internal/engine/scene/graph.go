package scene

import (
	"errors"
	"fmt"
)

// Graph construction errors.
var (
	ErrNodeIndexOutOfRange = errors.New("node index out of range")
	ErrNodeReused          = errors.New("node index already in graph")
	ErrNodeNotFound        = errors.New("node not found")
)

// Graph is the forest of root nodes plus the arena that owns every node.
type Graph struct {
	nodes   []*Node
	roots   []int
	retired map[int]struct{}
	live    int
}

// New creates an empty graph with room for size node indices.
func New(size int) *Graph {
	if size < 0 {
		size = 0
	}
	return &Graph{
		nodes:   make([]*Node, size),
		retired: make(map[int]struct{}),
	}
}

// Len returns the size of the node index space. This is the length of the
// world-transform array and never shrinks when nodes are removed.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	return g.live
}

// Roots returns the root node indices in load order.
func (g *Graph) Roots() []int {
	return g.roots
}

// Node returns the live node with the given index, or nil.
func (g *Graph) Node(index int) *Node {
	if index < 0 || index >= len(g.nodes) {
		return nil
	}
	return g.nodes[index]
}

// AddRoot creates a new root node.
func (g *Graph) AddRoot(index int) (*Node, error) {
	n, err := g.create(index)
	if err != nil {
		return nil, err
	}
	g.roots = append(g.roots, index)
	return n, nil
}

// AddChild creates a new node under parent. Children are only ever newly
// created, so the hierarchy cannot contain cycles.
func (g *Graph) AddChild(parent, index int) (*Node, error) {
	p := g.Node(parent)
	if p == nil {
		return nil, fmt.Errorf("%w: parent %d", ErrNodeNotFound, parent)
	}
	n, err := g.create(index)
	if err != nil {
		return nil, err
	}
	n.Parent = parent
	p.Children = append(p.Children, index)
	return n, nil
}

func (g *Graph) create(index int) (*Node, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNodeIndexOutOfRange, index)
	}
	if _, gone := g.retired[index]; gone {
		return nil, fmt.Errorf("%w: %d was removed", ErrNodeReused, index)
	}
	if index >= len(g.nodes) {
		grown := make([]*Node, index+1)
		copy(grown, g.nodes)
		g.nodes = grown
	}
	if g.nodes[index] != nil {
		return nil, fmt.Errorf("%w: %d", ErrNodeReused, index)
	}
	n := newNode(index)
	g.nodes[index] = n
	g.live++
	return n, nil
}

// FindNode searches the subtree under root depth-first for the node with the
// given index. Indices are unique so there is at most one match.
func (g *Graph) FindNode(root *Node, index int) *Node {
	if root == nil {
		return nil
	}
	if root.Index == index {
		return root
	}
	for _, c := range root.Children {
		if found := g.FindNode(g.Node(c), index); found != nil {
			return found
		}
	}
	return nil
}

// NodeFromIndex searches every root's subtree in root order.
// It returns nil when no node carries the index.
func (g *Graph) NodeFromIndex(index int) *Node {
	for _, r := range g.roots {
		if found := g.FindNode(g.Node(r), index); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node pre-order, roots in load order. A node is always
// visited before its children. Returning false from fn skips the node's
// subtree. Missing root entries are ignored.
func (g *Graph) Walk(fn func(n *Node) bool) {
	for _, r := range g.roots {
		g.walk(g.Node(r), fn)
	}
}

// WalkFrom walks the subtree under index pre-order.
func (g *Graph) WalkFrom(index int, fn func(n *Node) bool) {
	g.walk(g.Node(index), fn)
}

func (g *Graph) walk(n *Node, fn func(n *Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		g.walk(g.Node(c), fn)
	}
}

// RemoveSubtree removes the node and all of its descendants from the graph.
// Removed indices are retired and never handed out again.
// It returns the removed indices in pre-order.
func (g *Graph) RemoveSubtree(index int) ([]int, error) {
	n := g.Node(index)
	if n == nil {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, index)
	}

	var removed []int
	g.WalkFrom(index, func(c *Node) bool {
		removed = append(removed, c.Index)
		return true
	})

	if n.IsRoot() {
		g.roots = removeIndex(g.roots, index)
	} else if p := g.Node(n.Parent); p != nil {
		p.Children = removeIndex(p.Children, index)
	}

	for _, i := range removed {
		g.nodes[i] = nil
		g.retired[i] = struct{}{}
	}
	g.live -= len(removed)
	return removed, nil
}

func removeIndex(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}

// DrawItem pairs a primitive with the node that owns it.
type DrawItem struct {
	Node      int
	Primitive Primitive
}

// DrawList returns every primitive in pre-order. Nodes without primitives
// contribute nothing but their children are still visited.
func (g *Graph) DrawList() []DrawItem {
	var items []DrawItem
	g.Walk(func(n *Node) bool {
		for _, p := range n.Primitives {
			if p.IndexCount == 0 {
				continue
			}
			items = append(items, DrawItem{Node: n.Index, Primitive: p})
		}
		return true
	})
	return items
}

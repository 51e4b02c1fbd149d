package tagtree

import (
	"strconv"
	"strings"
)

// NodeID is the arena index of a node. It is stable for the life of a Tree.
type NodeID int

// NoNode is the parent of root nodes.
const NoNode NodeID = -1

// Path is the chain of child indices leading from a root to a node.
// The first entry indexes the dataset roots.
type Path []int

// String renders the path as dot-separated indices, e.g. "0.3.1".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Node is a single element in the tree.
type Node struct {
	Element

	ID       NodeID
	Parent   NodeID
	Children []NodeID
	Path     Path

	expanded bool
}

// Expandable reports whether the node has children.
func (n *Node) Expandable() bool {
	return len(n.Children) > 0
}

// Expanded reports whether the node's children are displayed.
func (n *Node) Expanded() bool {
	return n.expanded
}

// Tree is an arena of nodes in pre-order. Node i precedes all of its
// descendants, which occupy a contiguous run after it.
type Tree struct {
	nodes  []Node
	roots  []NodeID
	byPath map[string]NodeID
}

// Build constructs a tree from elements in pre-order. The first element must
// be at depth 0 and each element may be at most one level deeper than the one
// before it.
func Build(elements []Element) (*Tree, error) {
	t := &Tree{
		nodes:  make([]Node, 0, len(elements)),
		byPath: make(map[string]NodeID, len(elements)),
	}

	// stack[d] is the most recent node at depth d
	var stack []NodeID
	prev := -1
	for i, el := range elements {
		if el.Depth < 0 {
			return nil, &HierarchyError{Index: i, Depth: el.Depth, Parent: prev, Reason: "negative depth"}
		}
		if el.Depth > len(stack) {
			reason := "depth skips a level"
			if i == 0 {
				reason = "first element is not a root"
			}
			return nil, &HierarchyError{Index: i, Depth: el.Depth, Parent: prev, Reason: reason}
		}
		stack = stack[:el.Depth]

		id := NodeID(len(t.nodes))
		parent := NoNode
		var path Path
		if el.Depth == 0 {
			path = Path{len(t.roots)}
			t.roots = append(t.roots, id)
		} else {
			parent = stack[el.Depth-1]
			pp := t.nodes[parent].Path
			path = make(Path, len(pp), len(pp)+1)
			copy(path, pp)
			path = append(path, len(t.nodes[parent].Children))
			t.nodes[parent].Children = append(t.nodes[parent].Children, id)
		}

		t.nodes = append(t.nodes, Node{
			Element: el,
			ID:      id,
			Parent:  parent,
			Path:    path,
		})
		t.byPath[path.String()] = id
		stack = append(stack, id)
		prev = el.Depth
	}
	return t, nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Roots returns the root node IDs in dataset order.
func (t *Tree) Roots() []NodeID {
	return t.roots
}

// Node returns the node with the given ID, or nil if out of range.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// ByPath looks up a node by its rendered Path.
func (t *Tree) ByPath(path string) (NodeID, bool) {
	id, ok := t.byPath[path]
	return id, ok
}

// Ancestors returns the ancestors of id from the root down, excluding id.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	chain := make([]NodeID, 0, n.Depth)
	for p := n.Parent; p != NoNode; p = t.nodes[p].Parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// SetExpanded sets the expanded flag of an expandable node. It reports
// whether the flag changed. Leaves are never expanded.
func (t *Tree) SetExpanded(id NodeID, expanded bool) bool {
	n := t.Node(id)
	if n == nil || !n.Expandable() || n.expanded == expanded {
		return false
	}
	n.expanded = expanded
	return true
}

// ToggleExpanded flips the expanded flag of an expandable node.
func (t *Tree) ToggleExpanded(id NodeID) bool {
	n := t.Node(id)
	if n == nil {
		return false
	}
	return t.SetExpanded(id, !n.expanded)
}

// ExpandAll expands every expandable node.
func (t *Tree) ExpandAll() {
	for i := range t.nodes {
		if t.nodes[i].Expandable() {
			t.nodes[i].expanded = true
		}
	}
}

// CollapseAll collapses every node.
func (t *Tree) CollapseAll() {
	for i := range t.nodes {
		t.nodes[i].expanded = false
	}
}

// ExpandedPaths returns the paths of all expanded nodes in pre-order.
func (t *Tree) ExpandedPaths() []string {
	var paths []string
	for i := range t.nodes {
		if t.nodes[i].expanded {
			paths = append(paths, t.nodes[i].Path.String())
		}
	}
	return paths
}

// ApplyExpanded expands the nodes at the given paths. Paths that no longer
// exist, or that now point at leaves, are ignored.
func (t *Tree) ApplyExpanded(paths []string) {
	for _, p := range paths {
		if id, ok := t.byPath[p]; ok {
			t.SetExpanded(id, true)
		}
	}
}

// Elements returns the elements of every node in pre-order.
func (t *Tree) Elements() []Element {
	out := make([]Element, len(t.nodes))
	for i := range t.nodes {
		out[i] = t.nodes[i].Element
	}
	return out
}

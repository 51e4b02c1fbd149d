package tagtree

// VisibleRow is one displayed row: a node and its indentation depth.
type VisibleRow struct {
	ID    NodeID
	Depth int
}

// MatchSet holds search matches together with their ancestors, which are
// kept visible in filter-only display.
type MatchSet struct {
	matched map[NodeID]struct{}
	context map[NodeID]struct{}
}

// NewMatchSet indexes ids and their ancestors in t.
func NewMatchSet(t *Tree, ids []NodeID) *MatchSet {
	m := &MatchSet{
		matched: make(map[NodeID]struct{}, len(ids)),
		context: make(map[NodeID]struct{}),
	}
	for _, id := range ids {
		if t.Node(id) == nil {
			continue
		}
		m.matched[id] = struct{}{}
		for p := t.nodes[id].Parent; p != NoNode; p = t.nodes[p].Parent {
			if _, seen := m.context[p]; seen {
				break
			}
			m.context[p] = struct{}{}
		}
	}
	return m
}

// Contains reports whether id is a match.
func (m *MatchSet) Contains(id NodeID) bool {
	if m == nil {
		return false
	}
	_, ok := m.matched[id]
	return ok
}

// IsContext reports whether id is an ancestor of some match.
func (m *MatchSet) IsContext(id NodeID) bool {
	if m == nil {
		return false
	}
	_, ok := m.context[id]
	return ok
}

// Len returns the number of matches.
func (m *MatchSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.matched)
}

// Flatten produces the visible rows of t in pre-order. A nil filter shows
// every node reachable through expanded ancestors. A non-nil filter shows only
// matches and their ancestors; ancestors are traversed regardless of their
// expanded flag.
func Flatten(t *Tree, filter *MatchSet) []VisibleRow {
	if t == nil {
		return nil
	}
	rows := make([]VisibleRow, 0, len(t.roots))
	for _, id := range t.roots {
		if filter == nil {
			rows = t.appendVisible(rows, id)
		} else {
			rows = t.appendFiltered(rows, id, filter)
		}
	}
	return rows
}

func (t *Tree) appendVisible(rows []VisibleRow, id NodeID) []VisibleRow {
	n := &t.nodes[id]
	rows = append(rows, VisibleRow{ID: id, Depth: n.Depth})
	if n.expanded {
		for _, c := range n.Children {
			rows = t.appendVisible(rows, c)
		}
	}
	return rows
}

func (t *Tree) appendFiltered(rows []VisibleRow, id NodeID, filter *MatchSet) []VisibleRow {
	isContext := filter.IsContext(id)
	if !isContext && !filter.Contains(id) {
		return rows
	}
	n := &t.nodes[id]
	rows = append(rows, VisibleRow{ID: id, Depth: n.Depth})
	if isContext || n.expanded {
		for _, c := range n.Children {
			rows = t.appendFiltered(rows, c, filter)
		}
	}
	return rows
}

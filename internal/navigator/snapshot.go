package navigator

import "github.com/muurk/dcmview/internal/tagtree"

// RowView is one row inside the viewport.
type RowView struct {
	Index    int
	Node     *tagtree.Node
	Depth    int
	Selected bool
	Match    bool
	Current  bool // the match the cursor last jumped to
}

// Snapshot is the read-only state needed to draw one frame.
type Snapshot struct {
	Rows        []RowView
	Total       int
	Cursor      int
	Offset      int
	Height      int
	Mode        Mode
	Query       string
	MatchCount  int
	MatchCursor int
	FilterOnly  bool
}

// Snapshot captures the rows inside the viewport along with the cursor and
// search state. Its cost is bounded by the viewport height.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Total:       len(e.rows),
		Cursor:      e.cursor,
		Offset:      e.offset,
		Height:      e.height,
		Mode:        e.mode,
		Query:       string(e.search.query),
		MatchCount:  len(e.search.matches),
		MatchCursor: e.search.current,
		FilterOnly:  e.filterOnly,
	}
	current := tagtree.NoNode
	if e.search.current >= 0 {
		current = e.search.matches[e.search.current]
	}
	end := min(len(e.rows), e.offset+e.height)
	s.Rows = make([]RowView, 0, max(0, end-e.offset))
	for i := e.offset; i < end; i++ {
		r := e.rows[i]
		s.Rows = append(s.Rows, RowView{
			Index:    i,
			Node:     e.tree.Node(r.ID),
			Depth:    r.Depth,
			Selected: i == e.cursor,
			Match:    e.search.set.Contains(r.ID),
			Current:  r.ID == current,
		})
	}
	return s
}

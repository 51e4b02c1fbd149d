package navigator

import (
	"strings"

	"github.com/muurk/dcmview/internal/tagtree"
)

type searchState struct {
	query   []rune
	matches []tagtree.NodeID
	set     *tagtree.MatchSet
	current int

	savedNode   tagtree.NodeID
	savedOffset int
}

func newSearchState() searchState {
	return searchState{current: -1, savedNode: tagtree.NoNode}
}

// Query returns the current search query.
func (e *Engine) Query() string { return string(e.search.query) }

// Matches returns the matching node IDs in pre-order.
func (e *Engine) Matches() []tagtree.NodeID { return e.search.matches }

// MatchCursor returns the index into Matches of the current match, or -1.
func (e *Engine) MatchCursor() int { return e.search.current }

// IsMatch reports whether id matches the active query.
func (e *Engine) IsMatch(id tagtree.NodeID) bool { return e.search.set.Contains(id) }

// EnterSearch switches to search mode with an empty query, remembering the
// selection and offset for CancelSearch.
func (e *Engine) EnterSearch() {
	if e.mode == ModeSearch {
		return
	}
	id, _ := e.Selected()
	saved := e.offset
	e.clearSearch()
	e.search.savedNode = id
	e.search.savedOffset = saved
	e.setMode(ModeSearch)
}

// InsertRune appends r to the query and jumps to the first match.
func (e *Engine) InsertRune(r rune) {
	if e.mode != ModeSearch {
		return
	}
	e.search.query = append(e.search.query, r)
	e.recompute()
}

// Backspace removes the last query character. An empty query is left as is.
func (e *Engine) Backspace() {
	if e.mode != ModeSearch || len(e.search.query) == 0 {
		return
	}
	e.search.query = e.search.query[:len(e.search.query)-1]
	e.recompute()
}

// NextMatch advances to the next match, wrapping at the end.
func (e *Engine) NextMatch() {
	n := len(e.search.matches)
	if n == 0 {
		return
	}
	e.search.current = (e.search.current + 1) % n
	e.jumpTo(e.search.matches[e.search.current])
}

// PrevMatch moves to the previous match, wrapping at the start.
func (e *Engine) PrevMatch() {
	n := len(e.search.matches)
	if n == 0 {
		return
	}
	e.search.current = (e.search.current - 1 + n) % n
	e.jumpTo(e.search.matches[e.search.current])
}

// ConfirmSearch returns to normal mode, leaving the cursor on the last match
// jumped to and keeping the query for highlighting.
func (e *Engine) ConfirmSearch() {
	if e.mode != ModeSearch {
		return
	}
	e.setMode(ModeNormal)
}

// CancelSearch returns to normal mode, clears the query and restores the
// selection and offset recorded by EnterSearch.
func (e *Engine) CancelSearch() {
	if e.mode != ModeSearch {
		return
	}
	node, offset := e.search.savedNode, e.search.savedOffset
	e.clearSearch()
	e.setMode(ModeNormal)

	e.rows = tagtree.Flatten(e.tree, nil)
	e.offset = clamp(offset, 0, e.maxOffset())
	e.relocate(node)
}

// ToggleFilter switches between the full tree and only matches plus their
// ancestors. It does nothing while there are no matches to show.
func (e *Engine) ToggleFilter() {
	if e.mode != ModeNormal || (!e.filterOnly && e.search.set.Len() == 0) {
		return
	}
	id, _ := e.Selected()
	e.filterOnly = !e.filterOnly
	e.refresh(id)
}

func (e *Engine) clearSearch() {
	wasFiltered := e.filterOnly
	e.search = newSearchState()
	e.filterOnly = false
	if wasFiltered {
		id, _ := e.Selected()
		e.refresh(id)
	}
}

// recompute rescans every node for the query. Arena order is pre-order, so
// matches come out in display order.
func (e *Engine) recompute() {
	e.search.matches = nil
	e.search.set = nil
	e.search.current = -1
	if len(e.search.query) == 0 {
		return
	}
	needle := strings.ToLower(string(e.search.query))
	for i := 0; i < e.tree.Len(); i++ {
		id := tagtree.NodeID(i)
		if strings.Contains(e.tree.Node(id).SearchText(), needle) {
			e.search.matches = append(e.search.matches, id)
		}
	}
	if len(e.search.matches) == 0 {
		return
	}
	e.search.set = tagtree.NewMatchSet(e.tree, e.search.matches)
	e.search.current = 0
	e.jumpTo(e.search.matches[0])
}

// jumpTo expands every ancestor of id and selects it.
func (e *Engine) jumpTo(id tagtree.NodeID) {
	for _, a := range e.tree.Ancestors(id) {
		e.tree.SetExpanded(a, true)
	}
	e.refresh(id)
}

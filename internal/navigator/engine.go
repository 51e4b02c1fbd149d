package navigator

import (
	"github.com/muurk/dcmview/internal/logging"
	"github.com/muurk/dcmview/internal/tagtree"
)

// DefaultScrollStep is the number of rows moved per wheel notch.
const DefaultScrollStep = 3

// Options configures an Engine.
type Options struct {
	Layout     Layout
	ScrollStep int
}

// Engine is the navigation state for one loaded tree.
type Engine struct {
	tree *tagtree.Tree
	rows []tagtree.VisibleRow

	cursor int
	offset int
	width  int
	height int

	layout     Layout
	scrollStep int

	mode       Mode
	filterOnly bool
	search     searchState
}

// New creates an engine over tree with every node collapsed as built.
func New(tree *tagtree.Tree, opts Options) *Engine {
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = DefaultScrollStep
	}
	e := &Engine{
		tree:       tree,
		layout:     opts.Layout,
		scrollStep: opts.ScrollStep,
		height:     1,
		search:     newSearchState(),
	}
	e.rows = tagtree.Flatten(tree, nil)
	return e
}

// Tree returns the underlying tree.
func (e *Engine) Tree() *tagtree.Tree { return e.tree }

// Rows returns the current visible rows. The slice must not be modified.
func (e *Engine) Rows() []tagtree.VisibleRow { return e.rows }

// Cursor returns the index of the selected row.
func (e *Engine) Cursor() int { return e.cursor }

// Offset returns the index of the first row in the viewport.
func (e *Engine) Offset() int { return e.offset }

// Height returns the number of rows the viewport shows. It is at least 1.
func (e *Engine) Height() int { return e.height }

// Mode returns the input mode.
func (e *Engine) Mode() Mode { return e.mode }

// FilterOnly reports whether only matches and their ancestors are shown.
func (e *Engine) FilterOnly() bool { return e.filterOnly }

// Layout returns the screen margins around the row area.
func (e *Engine) Layout() Layout { return e.layout }

// ScrollStep returns the rows moved per wheel notch.
func (e *Engine) ScrollStep() int { return e.scrollStep }

// Selected returns the node under the cursor.
func (e *Engine) Selected() (tagtree.NodeID, bool) {
	if len(e.rows) == 0 {
		return tagtree.NoNode, false
	}
	return e.rows[e.cursor].ID, true
}

// SelectedNode returns the node under the cursor, or nil.
func (e *Engine) SelectedNode() *tagtree.Node {
	id, ok := e.Selected()
	if !ok {
		return nil
	}
	return e.tree.Node(id)
}

// Resize records the terminal size. The viewport is whatever is left after
// the layout chrome, and never less than one row.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = max(1, height-e.layout.Top-e.layout.Bottom)
	e.ensureVisible()
}

// ExpandSelected expands the node under the cursor if it is collapsed and
// has children.
func (e *Engine) ExpandSelected() {
	id, ok := e.Selected()
	if !ok {
		return
	}
	n := e.tree.Node(id)
	if n.Expanded() || !e.tree.SetExpanded(id, true) {
		return
	}
	e.refresh(id)
}

// CollapseToParent collapses the parent of the node under the cursor and
// selects it. Roots are left alone.
func (e *Engine) CollapseToParent() {
	id, ok := e.Selected()
	if !ok {
		return
	}
	parent := e.tree.Node(id).Parent
	if parent == tagtree.NoNode {
		return
	}
	e.tree.SetExpanded(parent, false)
	e.refresh(parent)
}

// ExpandAll expands every node, keeping the selection.
func (e *Engine) ExpandAll() {
	id, _ := e.Selected()
	e.tree.ExpandAll()
	e.refresh(id)
}

// CollapseAll collapses every node. The selection moves to its root.
func (e *Engine) CollapseAll() {
	id, _ := e.Selected()
	e.tree.CollapseAll()
	e.refresh(id)
}

// SelectPath moves the cursor to the node with the given rendered path if it
// is visible.
func (e *Engine) SelectPath(path string) bool {
	id, ok := e.tree.ByPath(path)
	if !ok {
		return false
	}
	idx := e.indexOf(id)
	if idx < 0 {
		return false
	}
	e.MoveTo(idx)
	return true
}

// refresh re-flattens and keeps the cursor on id, or on its nearest visible
// ancestor when id itself is hidden.
func (e *Engine) refresh(id tagtree.NodeID) {
	var filter *tagtree.MatchSet
	if e.filterOnly {
		filter = e.search.set
	}
	e.rows = tagtree.Flatten(e.tree, filter)
	e.relocate(id)
}

func (e *Engine) relocate(id tagtree.NodeID) {
	if idx := e.indexOf(id); idx >= 0 {
		e.MoveTo(idx)
		return
	}
	if id != tagtree.NoNode {
		chain := e.tree.Ancestors(id)
		for i := len(chain) - 1; i >= 0; i-- {
			if idx := e.indexOf(chain[i]); idx >= 0 {
				e.MoveTo(idx)
				return
			}
		}
	}
	e.MoveTo(e.cursor)
}

func (e *Engine) indexOf(id tagtree.NodeID) int {
	if id == tagtree.NoNode {
		return -1
	}
	for i, r := range e.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) setMode(m Mode) {
	if e.mode == m {
		return
	}
	logging.LogModeTransition(e.mode.String(), m.String())
	e.mode = m
}

package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/muurk/dcmview/internal/tagtree"
)

var testLayout = Layout{Top: 4, Bottom: 4, Left: 1, Right: 1}

// scenarioTree is root A holding leaf B and sequence C, which holds leaf D.
// Tags avoid the hex digit D so a search for "D" only hits the keyword.
func scenarioTree(t *testing.T) *tagtree.Tree {
	t.Helper()
	tree, err := tagtree.Build([]tagtree.Element{
		{Depth: 0, Tag: tagtree.Tag{Group: 0x0010, Element: 0x0010}, Keyword: "A", Kind: tagtree.KindSequence},
		{Depth: 1, Tag: tagtree.Tag{Group: 0x0010, Element: 0x0020}, Keyword: "B", Kind: tagtree.KindText},
		{Depth: 1, Tag: tagtree.Tag{Group: 0x0010, Element: 0x0030}, Keyword: "C", Kind: tagtree.KindSequence},
		{Depth: 2, Tag: tagtree.Tag{Group: 0x0010, Element: 0x0040}, Keyword: "D", Kind: tagtree.KindText},
	})
	require.NoError(t, err)
	return tree
}

// flatTree has n root leaves named by index.
func flatTree(t *testing.T, n int) *tagtree.Tree {
	t.Helper()
	elements := make([]tagtree.Element, n)
	for i := range elements {
		elements[i] = tagtree.Element{
			Tag:     tagtree.Tag{Group: 0x0020, Element: uint16(i)},
			Keyword: "Row",
			Kind:    tagtree.KindText,
			Summary: "value",
		}
	}
	tree, err := tagtree.Build(elements)
	require.NoError(t, err)
	return tree
}

func visible(e *Engine) []string {
	out := make([]string, len(e.Rows()))
	for i, r := range e.Rows() {
		out[i] = e.Tree().Node(r.ID).Keyword
	}
	return out
}

func newEngine(tree *tagtree.Tree, width, height int) *Engine {
	e := New(tree, Options{Layout: testLayout, ScrollStep: 3})
	e.Handle(ResizeEvent{Width: width, Height: height})
	return e
}

func TestScenario(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	assert.Equal(t, []string{"A"}, visible(e))

	e.ExpandSelected()
	assert.Equal(t, []string{"A", "B", "C"}, visible(e))
	assert.Equal(t, 0, e.Cursor())

	e.MoveTo(2)
	e.ExpandSelected()
	assert.Equal(t, []string{"A", "B", "C", "D"}, visible(e))

	e.MoveTo(1)
	e.CollapseToParent()
	assert.Equal(t, []string{"A"}, visible(e))
	assert.Equal(t, 0, e.Cursor())

	e.Handle(Rune('/'))
	e.Handle(Rune('D'))
	assert.Equal(t, ModeSearch, e.Mode())
	assert.Len(t, e.Matches(), 1)
	assert.Equal(t, []string{"A", "B", "C", "D"}, visible(e))
	assert.Equal(t, 3, e.Cursor())
}

func TestCollapseOnRootIsNoop(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	e.CollapseToParent()
	assert.Equal(t, []string{"A"}, visible(e))
	assert.Equal(t, 0, e.Cursor())
}

func TestExpandLeafIsNoop(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	e.ExpandSelected()
	e.MoveTo(1)
	e.ExpandSelected()
	assert.Equal(t, []string{"A", "B", "C"}, visible(e))
	assert.Equal(t, 1, e.Cursor())
}

func TestEmptyTree(t *testing.T) {
	tree, err := tagtree.Build(nil)
	require.NoError(t, err)
	e := newEngine(tree, 80, 24)

	e.MoveCursor(5)
	e.Scroll(10)
	e.ExpandSelected()
	e.CollapseToParent()
	e.Click(5, 5)
	assert.Equal(t, 0, e.Cursor())
	assert.Equal(t, 0, e.Offset())
	_, ok := e.Selected()
	assert.False(t, ok)
	assert.Equal(t, EffectNone, e.Handle(Rune('y')))
	assert.Empty(t, e.Snapshot().Rows)
}

func TestMoveCursorClamps(t *testing.T) {
	e := newEngine(flatTree(t, 50), 80, 18) // 10 rows on screen
	require.Equal(t, 10, e.Height())

	e.MoveCursor(-3)
	assert.Equal(t, 0, e.Cursor())

	e.MoveCursor(15)
	assert.Equal(t, 15, e.Cursor())
	assert.Equal(t, 6, e.Offset())

	e.MoveCursor(1000)
	assert.Equal(t, 49, e.Cursor())
	assert.Equal(t, 40, e.Offset())

	e.Top()
	assert.Equal(t, 0, e.Offset())
	e.PageDown()
	assert.Equal(t, 10, e.Cursor())
	e.PageUp()
	assert.Equal(t, 0, e.Cursor())
	e.Bottom()
	assert.Equal(t, 49, e.Cursor())
}

func TestViewportHeightFloor(t *testing.T) {
	e := newEngine(flatTree(t, 5), 80, 3)
	assert.Equal(t, 1, e.Height())
	e.MoveCursor(3)
	assert.Equal(t, 3, e.Offset())
}

func TestScrollLeavesCursor(t *testing.T) {
	e := newEngine(flatTree(t, 50), 80, 18)
	e.MoveTo(5)

	e.Handle(ScrollEvent{Delta: 2})
	assert.Equal(t, 5, e.Cursor())
	assert.Equal(t, 6, e.Offset(), "cursor may go off screen")

	e.Handle(ScrollEvent{Delta: 100})
	assert.Equal(t, 40, e.Offset())

	e.Handle(ScrollEvent{Delta: -100})
	assert.Equal(t, 0, e.Offset())
	assert.Equal(t, 5, e.Cursor())

	// the next cursor move brings the selection back into view
	e.Scroll(30)
	e.MoveCursor(1)
	assert.Equal(t, 6, e.Offset())
}

func TestClick(t *testing.T) {
	e := newEngine(flatTree(t, 50), 80, 18)
	e.Scroll(7)

	e.Handle(ClickEvent{Row: testLayout.Top + 2, Col: 10})
	assert.Equal(t, 9, e.Cursor())
	assert.Equal(t, 7, e.Offset())

	e.Handle(ClickEvent{Row: testLayout.Top + 2, Col: 10})
	assert.Equal(t, 9, e.Cursor(), "clicking the selected row is a no-op")

	for _, c := range []ClickEvent{
		{Row: testLayout.Top - 1, Col: 10},  // column header
		{Row: 0, Col: 10},                   // border
		{Row: testLayout.Top + 10, Col: 10}, // footer
		{Row: testLayout.Top + 1, Col: 0},   // left border
		{Row: testLayout.Top + 1, Col: 79},  // right border
	} {
		e.Handle(c)
		assert.Equal(t, 9, e.Cursor(), "click at %+v should be ignored", c)
	}
}

func TestClickBelowLastRow(t *testing.T) {
	e := newEngine(flatTree(t, 3), 80, 24)
	e.Click(testLayout.Top+5, 10)
	assert.Equal(t, 0, e.Cursor())
	assert.Equal(t, -1, e.RowAt(testLayout.Top+5, 10))
	assert.Equal(t, 2, e.RowAt(testLayout.Top+2, 10))
	assert.Equal(t, -1, e.RowAt(testLayout.Top+2, 0), "left border")
	assert.Equal(t, -1, e.RowAt(testLayout.Top+2, 79), "right border")
}

func TestClickDoesNotExpand(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	e.ExpandSelected()
	e.Click(testLayout.Top+2, 5)
	assert.Equal(t, 2, e.Cursor())
	assert.False(t, e.SelectedNode().Expanded())
}

func TestSearchCancelRestores(t *testing.T) {
	e := newEngine(flatTree(t, 50), 80, 18)
	e.MoveTo(20)
	before, _ := e.Selected()
	offset := e.Offset()

	e.Handle(Rune('/'))
	for _, r := range "0020,0030" {
		e.Handle(Rune(r))
	}
	require.Len(t, e.Matches(), 1)
	assert.Equal(t, 48, e.Cursor())

	e.Handle(KeyEvent{Key: KeyEsc})
	assert.Equal(t, ModeNormal, e.Mode())
	got, _ := e.Selected()
	assert.Equal(t, before, got)
	assert.Equal(t, offset, e.Offset())
	assert.Empty(t, e.Query())
	assert.Empty(t, e.Matches())
	assert.Equal(t, -1, e.MatchCursor())
}

func TestSearchConfirmKeepsMatches(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	e.Handle(Rune('/'))
	for _, r := range "0010,00" {
		e.Handle(Rune(r))
	}
	require.Len(t, e.Matches(), 4)
	assert.Equal(t, 0, e.Cursor())

	e.Handle(KeyEvent{Key: KeyEnter})
	assert.Equal(t, ModeNormal, e.Mode())
	assert.Equal(t, "0010,00", e.Query())
	assert.Len(t, e.Matches(), 4)

	e.Handle(Rune('n'))
	assert.Equal(t, 1, e.MatchCursor())
	e.Handle(Rune('N'))
	e.Handle(Rune('N'))
	assert.Equal(t, 3, e.MatchCursor())
	assert.Equal(t, "D", e.SelectedNode().Keyword)

	// a new search starts from scratch
	e.Handle(Rune('/'))
	assert.Empty(t, e.Query())
	assert.Empty(t, e.Matches())
}

func TestSearchEditing(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	e.EnterSearch()

	e.Handle(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, ModeSearch, e.Mode())
	assert.Empty(t, e.Query())

	e.Handle(Rune('z'))
	assert.Empty(t, e.Matches())
	assert.Equal(t, -1, e.MatchCursor())
	e.Handle(KeyEvent{Key: KeyDown})
	assert.Equal(t, 0, e.Cursor())

	e.Handle(KeyEvent{Key: KeyBackspace})
	e.Handle(Rune('c'))
	assert.Len(t, e.Matches(), 1)
	assert.Equal(t, "C", e.SelectedNode().Keyword)

	// keys that quit in normal mode are query text here
	assert.Equal(t, EffectNone, e.Handle(Rune('q')))
	assert.Equal(t, "cq", e.Query())

	e.Handle(KeyEvent{Key: KeyCtrlC})
	assert.Equal(t, ModeNormal, e.Mode())
}

func TestConfirmEmptyQueryIsNoop(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	e.Handle(Rune('/'))
	e.Handle(KeyEvent{Key: KeyEnter})
	assert.Equal(t, ModeNormal, e.Mode())
	assert.Equal(t, []string{"A"}, visible(e))
	assert.Empty(t, e.Matches())
}

func TestFilterToggle(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)

	e.Handle(Rune('f'))
	assert.False(t, e.FilterOnly(), "nothing to filter without matches")

	e.Handle(Rune('/'))
	e.Handle(Rune('d'))
	e.Handle(KeyEvent{Key: KeyEnter})
	e.Handle(Rune('f'))
	require.True(t, e.FilterOnly())
	assert.Equal(t, []string{"A", "C", "D"}, visible(e))
	assert.Equal(t, "D", e.SelectedNode().Keyword)

	e.Handle(Rune('f'))
	assert.Equal(t, []string{"A", "B", "C", "D"}, visible(e))
	assert.Equal(t, "D", e.SelectedNode().Keyword)

	e.Handle(Rune('f'))
	e.Handle(Rune('/'))
	assert.False(t, e.FilterOnly())
}

func TestExpandCollapseAll(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	e.Handle(Rune('E'))
	assert.Equal(t, []string{"A", "B", "C", "D"}, visible(e))
	e.MoveTo(3)
	e.Handle(Rune('C'))
	assert.Equal(t, []string{"A"}, visible(e))
	assert.Equal(t, 0, e.Cursor())
}

func TestRouterEffects(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	assert.Equal(t, EffectQuit, e.Handle(Rune('q')))
	assert.Equal(t, EffectQuit, e.Handle(KeyEvent{Key: KeyEsc}))
	assert.Equal(t, EffectQuit, e.Handle(KeyEvent{Key: KeyCtrlC}))
	assert.Equal(t, EffectCopy, e.Handle(Rune('y')))
	assert.Equal(t, EffectToggleHelp, e.Handle(Rune('?')))
	assert.Equal(t, EffectNone, e.Handle(Rune('x')))
	assert.Equal(t, EffectNone, e.Handle(KeyEvent{Key: KeyTab}))

	e.Handle(KeyEvent{Key: KeyRight})
	e.Handle(KeyEvent{Key: KeyDown})
	e.Handle(Rune('j'))
	assert.Equal(t, 2, e.Cursor())
	e.Handle(Rune('l'))
	e.Handle(Rune('k'))
	assert.Equal(t, 1, e.Cursor())
	e.Handle(KeyEvent{Key: KeyLeft})
	assert.Equal(t, []string{"A"}, visible(e))
}

func TestSelectPath(t *testing.T) {
	e := newEngine(scenarioTree(t), 80, 24)
	assert.False(t, e.SelectPath("0.1.0"), "hidden node")
	e.ExpandAll()
	assert.True(t, e.SelectPath("0.1.0"))
	assert.Equal(t, 3, e.Cursor())
	assert.False(t, e.SelectPath("9"))
}

func TestSnapshot(t *testing.T) {
	e := newEngine(flatTree(t, 50), 80, 18)
	e.MoveTo(12)
	e.EnterSearch()
	for _, r := range "0020,002" {
		e.InsertRune(r)
	}
	s := e.Snapshot()
	assert.Len(t, s.Rows, 10)
	assert.Equal(t, 50, s.Total)
	assert.Equal(t, ModeSearch, s.Mode)
	assert.Equal(t, "0020,002", s.Query)
	assert.Equal(t, 16, s.MatchCount)
	for _, r := range s.Rows {
		assert.Equal(t, r.Index == s.Cursor, r.Selected)
		assert.Equal(t, r.Index >= 32 && r.Index < 48, r.Match, "row %d", r.Index)
	}
	assert.True(t, s.Rows[s.Cursor-s.Offset].Current)
}

// genTree draws a valid element stream with a mix of leaves and sequences.
func genTree(t *rapid.T) *tagtree.Tree {
	n := rapid.IntRange(0, 80).Draw(t, "n")
	elements := make([]tagtree.Element, n)
	prev := 0
	for i := range elements {
		d := 0
		if i > 0 {
			d = rapid.IntRange(0, prev+1).Draw(t, "depth")
		}
		elements[i] = tagtree.Element{
			Depth:   d,
			Tag:     tagtree.Tag{Group: uint16(i % 7), Element: uint16(i)},
			Keyword: rapid.SampledFrom([]string{"Alpha", "Beta", "Gamma"}).Draw(t, "kw"),
		}
		prev = d
	}
	tree, err := tagtree.Build(elements)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return tree
}

func checkInvariants(t *rapid.T, e *Engine) {
	n := len(e.Rows())
	if n == 0 {
		if e.Cursor() != 0 || e.Offset() != 0 {
			t.Fatalf("empty rows with cursor %d offset %d", e.Cursor(), e.Offset())
		}
		return
	}
	if e.Cursor() < 0 || e.Cursor() >= n {
		t.Fatalf("cursor %d out of [0,%d)", e.Cursor(), n)
	}
	if e.Offset() < 0 || e.Offset() > max(0, n-e.Height()) {
		t.Fatalf("offset %d out of range for %d rows, height %d", e.Offset(), n, e.Height())
	}
}

func checkContainment(t *rapid.T, e *Engine) {
	if len(e.Rows()) == 0 {
		return
	}
	if e.Offset() > e.Cursor() || e.Cursor() >= e.Offset()+e.Height() {
		t.Fatalf("cursor %d outside viewport [%d,%d)", e.Cursor(), e.Offset(), e.Offset()+e.Height())
	}
}

func TestViewportContainmentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(genTree(t), Options{Layout: testLayout})
		e.Resize(80, rapid.IntRange(1, 40).Draw(t, "h"))

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 7).Draw(t, "op") {
			case 0:
				e.MoveCursor(rapid.IntRange(-20, 20).Draw(t, "delta"))
			case 1:
				e.MoveTo(rapid.IntRange(-5, 100).Draw(t, "index"))
			case 2:
				e.ExpandSelected()
			case 3:
				e.CollapseToParent()
			case 4:
				e.Resize(80, rapid.IntRange(1, 40).Draw(t, "h"))
			case 5:
				e.Click(rapid.IntRange(0, 40).Draw(t, "row"), rapid.IntRange(0, 80).Draw(t, "col"))
			case 6:
				e.ExpandAll()
			case 7:
				e.CollapseAll()
			}
			checkInvariants(t, e)
			checkContainment(t, e)
		}
	})
}

func TestScrollDecouplingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(genTree(t), Options{Layout: testLayout})
		e.Resize(80, rapid.IntRange(1, 40).Draw(t, "h"))
		e.ExpandAll()
		e.MoveTo(rapid.IntRange(0, 100).Draw(t, "index"))

		cursor := e.Cursor()
		e.Scroll(rapid.IntRange(-50, 50).Draw(t, "delta"))
		if e.Cursor() != cursor {
			t.Fatalf("scroll moved cursor %d -> %d", cursor, e.Cursor())
		}
		checkInvariants(t, e)

		e.MoveCursor(0)
		checkContainment(t, e)
	})
}

func TestClickRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(genTree(t), Options{Layout: testLayout})
		e.Resize(80, rapid.IntRange(9, 40).Draw(t, "h"))
		e.ExpandAll()
		e.Scroll(rapid.IntRange(0, 50).Draw(t, "scroll"))

		snap := e.Snapshot()
		if len(snap.Rows) == 0 {
			return
		}
		r := rapid.IntRange(0, len(snap.Rows)-1).Draw(t, "r")
		want := snap.Rows[r].Node.ID
		offset := e.Offset()

		e.Click(testLayout.Top+r, testLayout.Left)
		got, _ := e.Selected()
		if got != want {
			t.Fatalf("clicked row %d showing node %d, selected %d", r, want, got)
		}
		if e.Offset() != offset {
			t.Fatalf("click moved viewport %d -> %d", offset, e.Offset())
		}

		cursor := e.Cursor()
		e.Click(testLayout.Top+r, testLayout.Left)
		if e.Cursor() != cursor {
			t.Fatalf("second click moved cursor")
		}
	})
}

func TestMatchCyclingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(genTree(t), Options{Layout: testLayout})
		e.Resize(80, 20)
		e.EnterSearch()
		for _, r := range rapid.SampledFrom([]string{"a", "et", "gamma", "alpha"}).Draw(t, "q") {
			e.InsertRune(r)
		}
		e.ConfirmSearch()

		m := len(e.Matches())
		if m == 0 {
			return
		}
		start := e.MatchCursor()
		seen := make(map[tagtree.NodeID]bool, m)
		for i := 0; i < m; i++ {
			e.NextMatch()
			id, _ := e.Selected()
			if id != e.Matches()[e.MatchCursor()] {
				t.Fatalf("cursor on %d, current match %d", id, e.Matches()[e.MatchCursor()])
			}
			seen[id] = true
			checkContainment(t, e)
		}
		if e.MatchCursor() != start {
			t.Fatalf("match cursor %d after %d steps, started at %d", e.MatchCursor(), m, start)
		}
		if len(seen) != m {
			t.Fatalf("visited %d of %d matches", len(seen), m)
		}
	})
}

func TestCancelRestoresProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(genTree(t), Options{Layout: testLayout})
		e.Resize(80, rapid.IntRange(1, 30).Draw(t, "h"))
		e.MoveTo(rapid.IntRange(0, 50).Draw(t, "index"))
		before, ok := e.Selected()

		e.EnterSearch()
		for _, r := range rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "q") {
			e.InsertRune(r)
		}
		e.CancelSearch()

		after, _ := e.Selected()
		if ok && after != before {
			t.Fatalf("cancel selected %d, want %d", after, before)
		}
		if e.Query() != "" || len(e.Matches()) != 0 {
			t.Fatalf("cancel left query %q with %d matches", e.Query(), len(e.Matches()))
		}
		checkContainment(t, e)
	})
}

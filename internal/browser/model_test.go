package browser

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/dcmview/internal/config"
	"github.com/muurk/dcmview/internal/navigator"
	"github.com/muurk/dcmview/internal/tagdiff"
	"github.com/muurk/dcmview/internal/tagtree"
	"github.com/muurk/dcmview/internal/validation"
)

func testOptions() Options {
	return Options{
		Source: "scan.dcm",
		Prefs:  *config.DefaultViewerPrefs(),
		Theme:  *config.DefaultTheme(),
	}
}

func scenarioElements() []tagtree.Element {
	return []tagtree.Element{
		{Depth: 0, Tag: tagtree.Tag{Group: 0x0008, Element: 0x1140}, Keyword: "ReferencedImageSequence", VR: "SQ", Kind: tagtree.KindSequence},
		{Depth: 1, Tag: tagtree.ItemTag, Kind: tagtree.KindItem, Item: 1},
		{Depth: 2, Tag: tagtree.Tag{Group: 0x0008, Element: 0x1150}, Keyword: "ReferencedSOPClassUID", VR: "UI", Kind: tagtree.KindText, Summary: "1.2.3"},
		{Depth: 0, Tag: tagtree.Tag{Group: 0x0010, Element: 0x0010}, Keyword: "PatientName", VR: "PN", Kind: tagtree.KindText, Summary: "Doe^John"},
		{Depth: 0, Tag: tagtree.Tag{Group: 0x0029, Element: 0x1010}, Keyword: "Private Tag", VR: "OB", Kind: tagtree.KindBinary, Summary: "<12 bytes>"},
	}
}

func buildTree(t *testing.T, elements []tagtree.Element) *tagtree.Tree {
	t.Helper()
	tree, err := tagtree.Build(elements)
	require.NoError(t, err)
	return tree
}

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(buildTree(t, scenarioElements()), opts)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyword(m Model) string {
	if n := m.Engine().SelectedNode(); n != nil {
		return n.Keyword
	}
	return ""
}

func TestKeyboardNavigation(t *testing.T) {
	m := newModel(t, testOptions())
	assert.Equal(t, 3, len(m.Engine().Rows()))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 4, len(m.Engine().Rows()))

	m = update(t, m, runes("j"))
	m = update(t, m, runes("l"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "ReferencedSOPClassUID", keyword(m))

	m = update(t, m, runes("h"))
	assert.Equal(t, 1, m.Engine().Cursor())
	m = update(t, m, runes("G"))
	assert.Equal(t, "Private Tag", keyword(m))
}

func TestSearchThroughKeys(t *testing.T) {
	m := newModel(t, testOptions())

	m = update(t, m, runes("/"))
	require.Equal(t, navigator.ModeSearch, m.Engine().Mode())

	// pasted text arrives as a single message
	m = update(t, m, runes("sopclass"))
	assert.Equal(t, "sopclass", m.Engine().Query())
	assert.Equal(t, "ReferencedSOPClassUID", keyword(m))
	assert.Contains(t, m.View(), "/sopclass█")
	assert.Contains(t, m.View(), "[1/1]")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, navigator.ModeNormal, m.Engine().Mode())
	assert.Contains(t, m.View(), "search: sopclass")

	m = update(t, m, runes("/"))
	m = update(t, m, runes("q"))
	assert.Equal(t, navigator.ModeSearch, m.Engine().Mode(), "q is text while searching")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, navigator.ModeNormal, m.Engine().Mode())
	assert.Empty(t, m.Engine().Query())
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", runes("q")},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, testOptions())
			_, cmd := m.Update(tt.msg)
			require.NotNil(t, cmd)
			_, ok := cmd().(tea.QuitMsg)
			assert.True(t, ok)
		})
	}
}

func TestMouse(t *testing.T) {
	m := newModel(t, testOptions())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	click := tea.MouseMsg{X: 10, Y: layout.Top + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m = update(t, m, click)
	assert.Equal(t, 2, m.Engine().Cursor())

	border := click
	border.X = 0
	border.Y = layout.Top
	m = update(t, m, border)
	assert.Equal(t, 2, m.Engine().Cursor(), "clicks on the border are ignored")

	release := click
	release.Y = layout.Top
	release.Action = tea.MouseActionRelease
	m = update(t, m, release)
	assert.Equal(t, 2, m.Engine().Cursor())
}

func TestMouseDisabled(t *testing.T) {
	opts := testOptions()
	opts.Prefs.Mouse = false
	m := newModel(t, opts)

	m = update(t, m, tea.MouseMsg{X: 10, Y: layout.Top + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 0, m.Engine().Cursor())
}

func TestWheelScrollKeepsCursor(t *testing.T) {
	elements := make([]tagtree.Element, 60)
	for i := range elements {
		elements[i] = tagtree.Element{Tag: tagtree.Tag{Group: 0x0020, Element: uint16(i)}, Keyword: "Row", Kind: tagtree.KindText}
	}
	m := update(t, New(buildTree(t, elements), testOptions()), tea.WindowSizeMsg{Width: 100, Height: 20})

	m = update(t, m, tea.MouseMsg{X: 10, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 3, m.Engine().Offset())
	assert.Equal(t, 0, m.Engine().Cursor())

	m = update(t, m, tea.MouseMsg{X: 10, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0, m.Engine().Offset())
}

func TestCopy(t *testing.T) {
	m := newModel(t, testOptions())
	var copied string
	m.writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	m = update(t, m, runes("j"))
	m = update(t, m, runes("y"))
	assert.Equal(t, "(0010,0010) PatientName PN Doe^John", copied)
	assert.Contains(t, m.View(), "Copied (0010,0010)")

	// any key clears the status
	m = update(t, m, runes("k"))
	assert.NotContains(t, m.View(), "Copied")

	m.writeClipboard = func(string) error { return errors.New("no clipboard") }
	m = update(t, m, runes("y"))
	assert.Contains(t, m.View(), "Copy failed: no clipboard")
}

func TestHelpModal(t *testing.T) {
	m := newModel(t, testOptions())

	m = update(t, m, runes("?"))
	view := m.View()
	assert.Contains(t, view, "Keyboard shortcuts")
	assert.Contains(t, view, "expand all")

	m = update(t, m, runes("j"))
	assert.NotContains(t, m.View(), "Keyboard shortcuts")
	assert.Equal(t, 0, m.Engine().Cursor(), "the closing key is not applied")
}

func TestViewGeometry(t *testing.T) {
	m := newModel(t, testOptions())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 20)
	for i, line := range lines {
		assert.Equal(t, 100, lipgloss.Width(line), "line %d", i)
	}

	assert.Contains(t, lines[layout.Top-1], "Tag")
	assert.Contains(t, lines[layout.Top], "▼")
	assert.Contains(t, lines[layout.Top], "(0008,1140)")
	assert.Contains(t, lines[layout.Top+1], "Item #1")
	assert.Contains(t, lines[layout.Top+1], "<1 element(s)>")
	assert.Contains(t, lines[layout.Top+2], "Doe^John")
}

func TestViewBeforeSize(t *testing.T) {
	m := New(buildTree(t, scenarioElements()), testOptions())
	assert.Equal(t, "Loading...", m.View())
}

func TestStatusLine(t *testing.T) {
	m := newModel(t, testOptions())
	view := m.View()
	assert.Contains(t, view, "Type 1 check not applicable")
	assert.Contains(t, view, "1/3")
	assert.Contains(t, view, "5 elements")
}

func TestDiffView(t *testing.T) {
	base := []tagtree.Element{
		{Tag: tagtree.Tag{Group: 0x0010, Element: 0x0010}, Keyword: "PatientName", VR: "PN", Kind: tagtree.KindText, Summary: "Doe^John"},
		{Tag: tagtree.Tag{Group: 0x0010, Element: 0x0020}, Keyword: "PatientID", VR: "LO", Kind: tagtree.KindText, Summary: "123"},
	}
	modified := []tagtree.Element{
		{Tag: tagtree.Tag{Group: 0x0010, Element: 0x0010}, Keyword: "PatientName", VR: "PN", Kind: tagtree.KindText, Summary: "Roe^Jane"},
		{Tag: tagtree.Tag{Group: 0x0010, Element: 0x0030}, Keyword: "PatientBirthDate", VR: "DA", Kind: tagtree.KindText, Summary: "19700101"},
	}
	merged, stats := tagdiff.Compare(base, modified)

	opts := testOptions()
	opts.Diff = &stats
	m := update(t, New(buildTree(t, merged), opts), tea.WindowSizeMsg{Width: 100, Height: 20})

	view := m.View()
	assert.Contains(t, view, "+1 -1 ~1")
	assert.Contains(t, view, "3 difference(s)")

	lines := strings.Split(view, "\n")
	assert.Contains(t, lines[layout.Top], "M ")
	assert.Contains(t, lines[layout.Top], "Doe^JohnRoe^Jane", "old and new words side by side")
	assert.Contains(t, lines[layout.Top+1], "- ")
	assert.Contains(t, lines[layout.Top+2], "+ ")
	for i, line := range lines {
		assert.Equal(t, 100, lipgloss.Width(line), "line %d", i)
	}

	// the clipboard keeps the readable form
	assert.Equal(t, "(0010,0010) PatientName PN Doe^John → Roe^Jane", copyText(m.Engine().SelectedNode()))
}

func TestDiffInlineWords(t *testing.T) {
	base := []tagtree.Element{
		{Tag: tagtree.Tag{Group: 0x0008, Element: 0x1030}, Keyword: "StudyDescription", VR: "LO", Kind: tagtree.KindText, Summary: "CT HEAD W CONTRAST"},
	}
	modified := []tagtree.Element{
		{Tag: tagtree.Tag{Group: 0x0008, Element: 0x1030}, Keyword: "StudyDescription", VR: "LO", Kind: tagtree.KindText, Summary: "CT NECK W CONTRAST"},
	}
	merged, stats := tagdiff.Compare(base, modified)

	opts := testOptions()
	opts.Diff = &stats
	m := New(buildTree(t, merged), opts)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 12})
	lines := strings.Split(m.View(), "\n")
	assert.Contains(t, lines[layout.Top], "CT HEADNECK W CONTRAST")
	assert.Equal(t, 100, lipgloss.Width(lines[layout.Top]))

	// a narrow terminal truncates the spans and keeps the width
	m = update(t, m, tea.WindowSizeMsg{Width: 44, Height: 12})
	lines = strings.Split(m.View(), "\n")
	assert.Equal(t, 44, lipgloss.Width(lines[layout.Top]))
	assert.Contains(t, lines[layout.Top], "…")
}

func TestWordDiff(t *testing.T) {
	tests := []struct {
		name     string
		old, cur string
		want     []diffSpan
	}{
		{
			name: "one word replaced",
			old:  "CT HEAD W",
			cur:  "CT NECK W",
			want: []diffSpan{{"CT ", spanEqual}, {"HEAD", spanDelete}, {"NECK", spanInsert}, {" W", spanEqual}},
		},
		{
			name: "word appended",
			old:  "AXIAL",
			cur:  "AXIAL 2",
			want: []diffSpan{{"AXIAL", spanEqual}, {" 2", spanInsert}},
		},
		{
			name: "from empty",
			old:  "",
			cur:  "Doe^John",
			want: []diffSpan{{"Doe^John", spanInsert}},
		},
		{
			name: "unchanged",
			old:  "1.2.3",
			cur:  "1.2.3",
			want: []diffSpan{{"1.2.3", spanEqual}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordDiff(tt.old, tt.cur)
			assert.Equal(t, tt.want, got)

			var old, cur strings.Builder
			for _, sp := range got {
				if sp.op != spanInsert {
					old.WriteString(sp.text)
				}
				if sp.op != spanDelete {
					cur.WriteString(sp.text)
				}
			}
			assert.Equal(t, tt.old, old.String())
			assert.Equal(t, tt.cur, cur.String())
		})
	}
}

func TestSplitWords(t *testing.T) {
	assert.Nil(t, splitWords(""))
	assert.Equal(t, []string{"ORIGINAL"}, splitWords("ORIGINAL"))
	assert.Equal(t, []string{" ", "a", "  ", "b"}, splitWords(" a  b"))
	assert.Equal(t, []string{"ORIGINAL\\PRIMARY", " ", "AXIAL"}, splitWords("ORIGINAL\\PRIMARY AXIAL"))
}

func TestDiffShowsBaselineValidation(t *testing.T) {
	merged, stats := tagdiff.Compare(scenarioElements(), scenarioElements())
	opts := testOptions()
	opts.Diff = &stats

	m := update(t, New(buildTree(t, merged), opts), tea.WindowSizeMsg{Width: 120, Height: 20})
	assert.Contains(t, m.View(), "0 difference(s)  baseline Type 1 check not applicable")

	opts.Validation = &validation.Result{
		Status:  validation.StatusInvalid,
		Class:   validation.SOPClassCT,
		Missing: []string{"PatientID"},
	}
	m = update(t, New(buildTree(t, merged), opts), tea.WindowSizeMsg{Width: 120, Height: 20})
	assert.Contains(t, m.View(), "0 difference(s)  baseline CT Image Storage: missing Type 1 PatientID")
}

func TestTerminalTooSmall(t *testing.T) {
	m := newModel(t, testOptions())
	m = update(t, m, runes("j"))

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: layout.Top + layout.Bottom})
	view := m.View()
	assert.Contains(t, view, "Terminal too small")
	assert.NotContains(t, view, "\n")
	assert.Equal(t, 1, m.Engine().Offset())

	m = update(t, m, tea.MouseMsg{X: 10, Y: layout.Top, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 1, m.Engine().Offset(), "mouse is ignored while the frame is not drawn")

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	assert.Len(t, strings.Split(m.View(), "\n"), 20)
}

func TestReload(t *testing.T) {
	opts := testOptions()
	opts.Reload = func() (*tagtree.Tree, error) {
		return tagtree.Build(scenarioElements())
	}
	m := newModel(t, opts)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.Engine().Cursor())

	msg := reloadFile(opts.Reload)()
	m = update(t, m, msg)

	assert.Equal(t, 4, len(m.Engine().Rows()), "expansion survives the reload")
	assert.Equal(t, 1, m.Engine().Cursor(), "selection survives the reload")
	assert.Contains(t, m.View(), "Reloaded")

	m = update(t, m, reloadedMsg{err: errors.New("truncated file")})
	assert.Contains(t, m.View(), "Reload failed: truncated file")
	assert.Equal(t, 4, len(m.Engine().Rows()), "a failed reload keeps the old tree")
}

func TestWatchMessages(t *testing.T) {
	opts := testOptions()
	opts.Reload = func() (*tagtree.Tree, error) { return tagtree.Build(scenarioElements()) }
	m := newModel(t, opts)
	assert.Nil(t, m.Init(), "no watcher without a watch path")

	_, cmd := m.Update(fileChangedMsg{})
	assert.NotNil(t, cmd)

	m = update(t, m, watchErrorMsg{err: errors.New("file was removed")})
	assert.Contains(t, m.View(), "Watch: file was removed")
}

func TestWatchStartFailure(t *testing.T) {
	opts := testOptions()
	opts.WatchPath = filepath.Join(t.TempDir(), "missing", "scan.dcm")
	opts.Reload = func() (*tagtree.Tree, error) { return tagtree.Build(scenarioElements()) }
	m := newModel(t, opts)
	defer m.Close()

	start := m.Init()
	require.NotNil(t, start)
	msg, ok := start().(watchErrorMsg)
	require.True(t, ok)
	assert.True(t, msg.stopped)

	next, cmd := m.Update(msg)
	assert.Nil(t, cmd, "no wait is armed on a watcher that never started")
	assert.Contains(t, next.(Model).View(), "Watch:")

	_, cmd = m.Update(watchErrorMsg{err: errors.New("file was removed")})
	assert.NotNil(t, cmd, "a running watcher keeps being waited on")
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []navigator.Event
	}{
		{"rune", runes("j"), []navigator.Event{navigator.Rune('j')}},
		{"paste", runes("ab"), []navigator.Event{navigator.Rune('a'), navigator.Rune('b')}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []navigator.Event{navigator.Rune(' ')}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []navigator.Event{navigator.KeyEvent{Key: navigator.KeyBackspace}}},
		{"ctrl+h", tea.KeyMsg{Type: tea.KeyCtrlH}, []navigator.Event{navigator.KeyEvent{Key: navigator.KeyBackspace}}},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, []navigator.Event{navigator.KeyEvent{Key: navigator.KeyShiftTab}}},
		{"alt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, nil},
		{"unbound", tea.KeyMsg{Type: tea.KeyF1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateKey(tt.msg))
		})
	}
}

func TestTranslateMouse(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want navigator.Event
		ok   bool
	}{
		{"wheel up", tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, navigator.ScrollEvent{Delta: -1, Row: 2, Col: 1}, true},
		{"wheel down", tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}, navigator.ScrollEvent{Delta: 1, Row: 2, Col: 1}, true},
		{"left press", tea.MouseMsg{X: 3, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, navigator.ClickEvent{Row: 7, Col: 3}, true},
		{"right press", tea.MouseMsg{X: 3, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, nil, false},
		{"motion", tea.MouseMsg{X: 3, Y: 7, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateMouse(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueText(t *testing.T) {
	tree := buildTree(t, scenarioElements())
	assert.Equal(t, "<1 item(s)>", valueText(tree.Node(0)))
	assert.Equal(t, "<1 element(s)>", valueText(tree.Node(1)))
	assert.Equal(t, "Doe^John", valueText(tree.Node(3)))
}

func TestFitAndPrintable(t *testing.T) {
	assert.Equal(t, "ab   ", fit("ab", 5))
	assert.Equal(t, 4, lipgloss.Width(fit("abcdefgh", 4)))
	assert.Equal(t, "line one line two", printable("line one\nline two"))
}

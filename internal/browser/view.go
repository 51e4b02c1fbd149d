package browser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/dcmview/internal/navigator"
	"github.com/muurk/dcmview/internal/tagtree"
	"github.com/muurk/dcmview/internal/validation"
)

// View renders the browser. Every line between the outer borders is exactly
// innerWidth cells wide and the row area is exactly the viewport height, so
// screen coordinates map onto rows through the layout alone.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}
	if m.tooSmall() {
		return fit(fmt.Sprintf("Terminal too small (%dx%d)", m.Width, m.Height), m.Width)
	}
	if m.showHelp {
		return m.renderHelpModal()
	}

	w := innerWidth(m.Width)
	snap := m.engine.Snapshot()

	lines := make([]string, 0, snap.Height+layout.Top+layout.Bottom-2)
	lines = append(lines,
		m.renderTitle(w),
		m.renderDivider(w),
		m.styles.columnHeader.Render(m.columns("", "  ", "Tag", "Name", "VR", "Value", w)),
	)
	rows := m.engine.Rows()
	for _, r := range snap.Rows {
		lines = append(lines, m.renderRow(r, rows, w))
	}
	for i := len(snap.Rows); i < snap.Height; i++ {
		lines = append(lines, strings.Repeat(" ", w))
	}
	lines = append(lines,
		m.renderDivider(w),
		m.renderStatus(snap, w),
		m.renderHelpLine(snap),
	)

	return m.styles.frame.Render(strings.Join(lines, "\n"))
}

// tooSmall reports whether the frame cannot be drawn at the current size.
// Mouse input is ignored then, since no row is where the layout says.
func (m Model) tooSmall() bool {
	return m.Height < layout.Top+layout.Bottom+1 || m.Width < minInnerWidth+layout.Left+layout.Right
}

func innerWidth(width int) int {
	return max(minInnerWidth, width-layout.Left-layout.Right)
}

func nameWidth(w int) int {
	return min(maxNameWidth, max(minNameWidth, w/4))
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "…")
	}
	return runewidth.FillRight(s, w)
}

// printable replaces control characters, such as the line breaks allowed in
// DICOM text values, with spaces.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

func (m Model) renderTitle(w int) string {
	right := fmt.Sprintf("%d elements", m.engine.Tree().Len())
	if m.diff != nil {
		right = m.diff.String()
	}
	return spread(appTitle()+"  "+m.source, right, w, m.styles.title, m.styles.subtitle)
}

func (m Model) renderDivider(w int) string {
	return m.styles.divider.Render(strings.Repeat("─", w))
}

// columns lays out one line of the tag table. lead is the indentation and
// expand indicator.
func (m Model) columns(marker, lead, tag, name, vr, value string, w int) string {
	return fit(printable(m.columnPrefix(marker, lead, tag, name, vr, w)+value), w)
}

// columnPrefix is everything left of the value column.
func (m Model) columnPrefix(marker, lead, tag, name, vr string, w int) string {
	var b strings.Builder
	if m.diff != nil {
		b.WriteString(runewidth.FillRight(marker, diffColumnWidth))
	}
	b.WriteString(lead)
	b.WriteString(runewidth.FillRight(tag, tagColumnWidth))
	b.WriteByte(' ')
	b.WriteString(fit(name, nameWidth(w)))
	b.WriteByte(' ')
	b.WriteString(runewidth.FillRight(vr, vrColumnWidth))
	b.WriteByte(' ')
	return b.String()
}

func (m Model) renderRow(r navigator.RowView, rows []tagtree.VisibleRow, w int) string {
	n := r.Node
	open := r.Index+1 < len(rows) && rows[r.Index+1].Depth > r.Depth
	lead := strings.Repeat("  ", r.Depth) + indicator(n, open)
	st := m.rowStyle(r)

	if n.Status == tagtree.DiffChanged && n.Baseline != "" {
		prefix := printable(m.columnPrefix(n.Status.Marker(), lead, n.TagLabel(), n.Keyword, n.VR, w))
		pw := runewidth.StringWidth(prefix)
		if pw < w {
			spans := wordDiff(printable(n.Baseline), printable(currentValue(n)))
			return st.Render(prefix) + m.renderSpans(spans, w-pw, st)
		}
	}

	line := m.columns(n.Status.Marker(), lead, n.TagLabel(), n.Keyword, n.VR, valueText(n), w)
	return st.Render(line)
}

// renderSpans draws an inline word diff into exactly w cells. Removed words
// are struck through and inserted words are bold; both keep the row's
// background.
func (m Model) renderSpans(spans []diffSpan, w int, base lipgloss.Style) string {
	var b strings.Builder
	left := w
	for _, sp := range spans {
		if left == 0 {
			break
		}
		text := sp.text
		truncated := runewidth.StringWidth(text) > left
		if truncated {
			text = runewidth.Truncate(text, left, "…")
		}
		left -= runewidth.StringWidth(text)

		st := base
		switch sp.op {
		case spanDelete:
			st = m.styles.wordDeleted.Inherit(base)
		case spanInsert:
			st = m.styles.wordInserted.Inherit(base)
		}
		b.WriteString(st.Render(text))
		if truncated {
			break
		}
	}
	if left > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", left)))
	}
	return b.String()
}

// indicator is the expand marker for a row. open is true when the row's
// children are on screen, which in filter mode may differ from the node's
// own flag.
func indicator(n *tagtree.Node, open bool) string {
	switch {
	case !n.Expandable():
		return "  "
	case open:
		return "▼ "
	default:
		return "▶ "
	}
}

// valueText is the value column as plain text. Changed diff roots show the
// old value too.
func valueText(n *tagtree.Node) string {
	v := currentValue(n)
	if n.Status == tagtree.DiffChanged && n.Baseline != "" {
		return n.Baseline + " → " + v
	}
	return v
}

// currentValue is the value of n itself. Sequences and items show their size.
func currentValue(n *tagtree.Node) string {
	switch n.Kind {
	case tagtree.KindSequence:
		return fmt.Sprintf("<%d item(s)>", len(n.Children))
	case tagtree.KindItem:
		return fmt.Sprintf("<%d element(s)>", len(n.Children))
	default:
		return n.Summary
	}
}

func (m Model) rowStyle(r navigator.RowView) lipgloss.Style {
	n := r.Node
	st := m.styles.row
	switch {
	case r.Current:
		st = m.styles.current
	case r.Match:
		st = m.styles.match
	case n.Status == tagtree.DiffAdded:
		st = m.styles.added
	case n.Status == tagtree.DiffDeleted:
		st = m.styles.deleted
	case n.Status == tagtree.DiffChanged:
		st = m.styles.changed
	case m.prefs.DimPrivateTags && n.Tag.IsPrivate():
		st = m.styles.private
	}
	if r.Selected {
		st = st.Inherit(m.styles.selected)
	}
	return st
}

func (m Model) renderStatus(s navigator.Snapshot, w int) string {
	position := ""
	if s.Total > 0 {
		position = fmt.Sprintf("%d/%d", s.Cursor+1, s.Total)
	}

	if s.Mode == navigator.ModeSearch {
		return spread("/"+s.Query+"█  "+matchInfo(s), position, w, m.styles.prompt, m.styles.status)
	}

	left, style := m.idleStatus(s)
	return spread(left, position, w, style, m.styles.status)
}

// idleStatus is the Normal mode status text: a transient message, the
// confirmed search, or the Type 1 check.
func (m Model) idleStatus(s navigator.Snapshot) (string, lipgloss.Style) {
	switch {
	case m.status != "" && m.failed:
		return m.status, m.styles.statusError
	case m.status != "":
		return m.status, m.styles.status
	case s.Query != "":
		text := fmt.Sprintf("search: %s  %s", s.Query, matchInfo(s))
		if s.FilterOnly {
			text += "  (only matches)"
		}
		return text, m.styles.match
	case m.diff != nil:
		text := fmt.Sprintf("%d difference(s)  baseline %s", m.diff.Differences(), m.validation.Summary())
		return text, m.validationStyle()
	default:
		return m.validation.Summary(), m.validationStyle()
	}
}

func (m Model) validationStyle() lipgloss.Style {
	if m.validation.Status == validation.StatusInvalid {
		return m.styles.statusError
	}
	return m.styles.status
}

func matchInfo(s navigator.Snapshot) string {
	switch {
	case s.Query == "":
		return ""
	case s.MatchCount == 0:
		return "no matches"
	default:
		return fmt.Sprintf("[%d/%d]", s.MatchCursor+1, s.MatchCount)
	}
}

func (m Model) renderHelpLine(s navigator.Snapshot) string {
	if s.Mode == navigator.ModeSearch {
		return m.Help.View(m.SearchKeys)
	}
	return m.Help.View(m.NormalKeys)
}

// renderHelpModal draws the full key reference over the whole screen. Any
// key closes it.
func (m Model) renderHelpModal() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("Keyboard shortcuts"),
		"",
		m.Help.FullHelpView(m.NormalKeys.FullHelp()),
		"",
		m.styles.subtitle.Render("Search: "+m.Help.ShortHelpView(m.SearchKeys.ShortHelp())),
		m.styles.subtitle.Render("Mouse: wheel scrolls, click selects"),
		"",
		m.styles.subtitle.Render("Press any key to close"),
	)
	return lipgloss.Place(
		m.Width,
		m.Height,
		lipgloss.Center,
		lipgloss.Center,
		m.styles.modal.Render(content),
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

// spread puts left and right on one line of exactly w cells, truncating
// left when they do not fit.
func spread(left, right string, w int, ls, rs lipgloss.Style) string {
	rw := runewidth.StringWidth(right)
	if rw >= w {
		return rs.Render(fit(right, w))
	}
	left = fit(printable(left), w-rw)
	return ls.Render(left) + rs.Render(right)
}

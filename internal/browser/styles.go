package browser

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/dcmview/internal/config"
	"github.com/muurk/dcmview/internal/navigator"
	"github.com/muurk/dcmview/internal/version"
)

// AppName is shown at the left of the header line.
const AppName = "DCMVIEW"

// Screen geometry. The row area starts below the outer border, the title
// line, its divider and the column header, and ends above the footer
// divider, the status line, the help line and the outer border.
var layout = navigator.Layout{Top: 4, Bottom: 4, Left: 1, Right: 1}

// Column widths, in cells.
const (
	diffColumnWidth = 2
	tagColumnWidth  = 12
	vrColumnWidth   = 2
	minNameWidth    = 12
	maxNameWidth    = 36
	minInnerWidth   = 20
)

var (
	TextColor  = lipgloss.Color("#FFFFFF")
	ErrorColor = lipgloss.Color("#FF5555")
)

// styles is the palette derived from the configured theme.
type styles struct {
	frame        lipgloss.Style
	title        lipgloss.Style
	subtitle     lipgloss.Style
	divider      lipgloss.Style
	columnHeader lipgloss.Style

	row      lipgloss.Style
	private  lipgloss.Style
	match    lipgloss.Style
	current  lipgloss.Style
	selected lipgloss.Style
	added    lipgloss.Style
	deleted  lipgloss.Style
	changed  lipgloss.Style

	wordDeleted  lipgloss.Style
	wordInserted lipgloss.Style

	prompt      lipgloss.Style
	status      lipgloss.Style
	statusError lipgloss.Style
	modal       lipgloss.Style
}

func newStyles(t config.Theme) styles {
	accent := lipgloss.Color(t.Accent)
	muted := lipgloss.Color(t.Muted)

	return styles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(accent),
		title: lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true),
		subtitle: lipgloss.NewStyle().
			Foreground(muted),
		divider: lipgloss.NewStyle().
			Foreground(accent),
		columnHeader: lipgloss.NewStyle().
			Foreground(muted).
			Bold(true),

		row: lipgloss.NewStyle(),
		private: lipgloss.NewStyle().
			Foreground(muted),
		match: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Match)),
		current: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Match)).
			Bold(true).
			Underline(true),
		selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Selection)).
			Bold(true),
		added: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Added)),
		deleted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Deleted)),
		changed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Changed)),
		wordDeleted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Deleted)).
			Strikethrough(true),
		wordInserted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Added)).
			Bold(true),

		prompt: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		status: lipgloss.NewStyle().
			Foreground(muted),
		statusError: lipgloss.NewStyle().
			Foreground(ErrorColor),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
	}
}

// newHelp returns a help model colored to match the theme.
func newHelp(t config.Theme) help.Model {
	h := help.New()
	muted := lipgloss.Color(t.Muted)
	accent := lipgloss.Color(t.Accent)
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(muted)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(TextColor)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(muted)
	h.Styles.Ellipsis = lipgloss.NewStyle().Foreground(muted)
	return h
}

// appTitle returns the header label with the running version.
func appTitle() string {
	return AppName + " " + version.Version
}

package browser

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/dcmview/internal/navigator"
)

// normalKeyMap describes the bindings shown while browsing.
type normalKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	Page        key.Binding
	TopBottom   key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Search      key.Binding
	NextMatch   key.Binding
	Filter      key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k normalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Expand, k.Collapse, k.Search, k.NextMatch, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k normalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Page, k.TopBottom},
		{k.Expand, k.Collapse, k.ExpandAll, k.CollapseAll},
		{k.Search, k.NextMatch, k.Filter},
		{k.Copy, k.Help, k.Quit},
	}
}

// searchKeyMap describes the bindings shown while typing a query.
type searchKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k searchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k searchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Confirm, k.Cancel}}
}

func newNormalKeyMap() normalKeyMap {
	return normalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Page: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "page"),
		),
		TopBottom: key.NewBinding(
			key.WithKeys("g", "G", "home", "end"),
			key.WithHelp("g/G", "top/bottom"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "collapse all"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n/N", "next/prev match"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "only matches"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy row"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newSearchKeyMap() searchKeyMap {
	return searchKeyMap{
		Next: key.NewBinding(
			key.WithKeys("down", "tab", "ctrl+n"),
			key.WithHelp("↓/tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "shift+tab", "ctrl+p"),
			key.WithHelp("↑/shift+tab", "prev"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// translateKey maps a Bubble Tea key press onto engine key events. Pasted
// text arrives as one message and becomes one event per rune.
func translateKey(msg tea.KeyMsg) []navigator.Event {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyRunes:
		events := make([]navigator.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, navigator.Rune(r))
		}
		return events
	case tea.KeySpace:
		return []navigator.Event{navigator.Rune(' ')}
	}

	k, ok := keyCodes[msg.Type]
	if !ok {
		return nil
	}
	return []navigator.Event{navigator.KeyEvent{Key: k}}
}

var keyCodes = map[tea.KeyType]navigator.Key{
	tea.KeyUp:        navigator.KeyUp,
	tea.KeyDown:      navigator.KeyDown,
	tea.KeyLeft:      navigator.KeyLeft,
	tea.KeyRight:     navigator.KeyRight,
	tea.KeyEnter:     navigator.KeyEnter,
	tea.KeyEsc:       navigator.KeyEsc,
	tea.KeyBackspace: navigator.KeyBackspace,
	tea.KeyCtrlH:     navigator.KeyBackspace,
	tea.KeyTab:       navigator.KeyTab,
	tea.KeyShiftTab:  navigator.KeyShiftTab,
	tea.KeyPgUp:      navigator.KeyPgUp,
	tea.KeyPgDown:    navigator.KeyPgDown,
	tea.KeyHome:      navigator.KeyHome,
	tea.KeyEnd:       navigator.KeyEnd,
	tea.KeyCtrlC:     navigator.KeyCtrlC,
	tea.KeyCtrlN:     navigator.KeyCtrlN,
	tea.KeyCtrlP:     navigator.KeyCtrlP,
}

// translateMouse maps a Bubble Tea mouse message onto an engine event.
// Only wheel notches and left presses are meaningful.
func translateMouse(msg tea.MouseMsg) (navigator.Event, bool) {
	if msg.Action != tea.MouseActionPress {
		return nil, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return navigator.ScrollEvent{Delta: -1, Row: msg.Y, Col: msg.X}, true
	case tea.MouseButtonWheelDown:
		return navigator.ScrollEvent{Delta: 1, Row: msg.Y, Col: msg.X}, true
	case tea.MouseButtonLeft:
		return navigator.ClickEvent{Row: msg.Y, Col: msg.X}, true
	}
	return nil, false
}

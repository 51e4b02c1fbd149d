package browser

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/dcmview/internal/config"
	"github.com/muurk/dcmview/internal/logging"
	"github.com/muurk/dcmview/internal/navigator"
	"github.com/muurk/dcmview/internal/tagdiff"
	"github.com/muurk/dcmview/internal/tagtree"
	"github.com/muurk/dcmview/internal/validation"
	"github.com/muurk/dcmview/internal/watcher"
)

// LoadFunc decodes the open file again. It is called off the event loop.
type LoadFunc func() (*tagtree.Tree, error)

// Options configures a browser Model.
type Options struct {
	// Source is the label shown in the header, usually the file path.
	Source string

	Prefs config.ViewerPrefs
	Theme config.Theme

	// Diff is set when the tree is a comparison of two files.
	Diff *tagdiff.Stats

	// Validation replaces the Type 1 check of the tree. Comparisons pass the
	// result for the baseline file.
	Validation *validation.Result

	// Reload, together with WatchPath, enables live reload.
	Reload    LoadFunc
	WatchPath string
}

// Model is the Bubble Tea model for the tag browser.
type Model struct {
	engine *navigator.Engine
	styles styles

	source     string
	prefs      config.ViewerPrefs
	diff       *tagdiff.Stats
	validation validation.Result

	reload  LoadFunc
	watch   *watcher.Watcher
	watchCh chan error

	// UI state
	Width    int
	Height   int
	status   string
	failed   bool
	showHelp bool

	// Help
	Help       help.Model
	NormalKeys normalKeyMap
	SearchKeys searchKeyMap

	writeClipboard func(string) error
}

// New creates a browser over tree.
func New(tree *tagtree.Tree, opts Options) Model {
	m := Model{
		styles:         newStyles(opts.Theme),
		source:         opts.Source,
		prefs:          opts.Prefs,
		diff:           opts.Diff,
		reload:         opts.Reload,
		Help:           newHelp(opts.Theme),
		NormalKeys:     newNormalKeyMap(),
		SearchKeys:     newSearchKeyMap(),
		writeClipboard: clipboard.WriteAll,
	}
	m.setTree(tree)
	if opts.Validation != nil {
		m.validation = *opts.Validation
	}
	if opts.WatchPath != "" && opts.Reload != nil {
		m.watchCh = make(chan error, 1)
		w, err := watcher.New(opts.WatchPath, watcher.WithOnError(m.sendWatchError))
		if err != nil {
			m.setStatus(fmt.Sprintf("Watch: %v", err), true)
		} else {
			m.watch = w
		}
	}
	return m
}

// setTree replaces the engine. Diff trees are not validated here: they mix
// two files.
func (m *Model) setTree(tree *tagtree.Tree) {
	m.engine = navigator.New(tree, navigator.Options{
		Layout:     layout,
		ScrollStep: m.prefs.ScrollStep,
	})
	if m.Width > 0 {
		m.engine.Resize(m.Width, m.Height)
	}
	if m.diff == nil {
		m.validation = validation.Validate(tree.Elements())
	}
}

// Engine exposes the navigation state, mainly for tests.
func (m Model) Engine() *navigator.Engine {
	return m.engine
}

// sendWatchError runs on the watcher goroutine. Errors arriving while one is
// still pending are dropped.
func (m Model) sendWatchError(err error) {
	select {
	case m.watchCh <- err:
	default:
	}
}

// Init starts watching the file when live reload is enabled.
func (m Model) Init() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return startWatching(m.watch, m.watchCh)
}

// Close stops the file watcher, if any.
func (m Model) Close() {
	if m.watch != nil {
		m.watch.Stop()
	}
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = innerWidth(msg.Width)
		m.engine.Handle(navigator.ResizeEvent{Width: msg.Width, Height: msg.Height})
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		m.setStatus("", false)
		for _, ev := range translateKey(msg) {
			if cmd, quit := m.apply(m.engine.Handle(ev)); quit {
				return m, cmd
			}
		}
		return m, nil

	case tea.MouseMsg:
		if !m.prefs.Mouse || m.showHelp || m.tooSmall() {
			return m, nil
		}
		if ev, ok := translateMouse(msg); ok {
			m.engine.Handle(ev)
		}
		return m, nil

	case fileChangedMsg:
		return m, tea.Batch(reloadFile(m.reload), waitForChange(m.watch, m.watchCh))

	case watchErrorMsg:
		m.setStatus(fmt.Sprintf("Watch: %v", msg.err), true)
		if msg.stopped {
			return m, nil
		}
		return m, waitForChange(m.watch, m.watchCh)

	case reloadedMsg:
		return m.applyReload(msg), nil
	}

	return m, nil
}

// apply carries out an engine effect. It reports true when the program
// should stop processing the current message.
func (m *Model) apply(effect navigator.Effect) (tea.Cmd, bool) {
	switch effect {
	case navigator.EffectQuit:
		return tea.Quit, true
	case navigator.EffectToggleHelp:
		m.showHelp = !m.showHelp
	case navigator.EffectCopy:
		n := m.engine.SelectedNode()
		if n == nil {
			break
		}
		if err := m.writeClipboard(copyText(n)); err != nil {
			logging.Warn("Clipboard write failed", zap.Error(err))
			m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
			break
		}
		m.setStatus("Copied "+n.TagLabel(), false)
	}
	return nil, false
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

// copyText is the clipboard form of a row: tag, keyword, VR and value.
func copyText(n *tagtree.Node) string {
	parts := []string{n.TagLabel()}
	for _, s := range []string{n.Keyword, n.VR, valueText(n)} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

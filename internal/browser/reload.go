package browser

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/dcmview/internal/logging"
	"github.com/muurk/dcmview/internal/tagtree"
	"github.com/muurk/dcmview/internal/watcher"
)

type fileChangedMsg struct{}

// watchErrorMsg reports a watch failure. stopped is set when the watcher
// could not start and no more events will come.
type watchErrorMsg struct {
	err     error
	stopped bool
}

type reloadedMsg struct {
	tree *tagtree.Tree
	err  error
}

// startWatching starts w and then waits for its first event.
func startWatching(w *watcher.Watcher, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		if err := w.Start(); err != nil {
			return watchErrorMsg{err: err, stopped: true}
		}
		return waitForChange(w, errs)()
	}
}

// waitForChange blocks until the watcher reports a change or an error.
func waitForChange(w *watcher.Watcher, errs <-chan error) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.Changed():
			return fileChangedMsg{}
		case err := <-errs:
			return watchErrorMsg{err: err}
		}
	}
}

// reloadFile decodes the file again off the event loop.
func reloadFile(load LoadFunc) tea.Cmd {
	if load == nil {
		return nil
	}
	return func() tea.Msg {
		tree, err := load()
		return reloadedMsg{tree: tree, err: err}
	}
}

// applyReload swaps in the new tree, keeping the expanded nodes and the
// selected row when their paths still exist. Search state starts over.
func (m Model) applyReload(msg reloadedMsg) Model {
	logging.LogReload(m.source, msg.err)
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Reload failed: %v", msg.err), true)
		return m
	}

	old := m.engine
	expanded := old.Tree().ExpandedPaths()
	selected := ""
	if n := old.SelectedNode(); n != nil {
		selected = n.Path.String()
	}

	msg.tree.ApplyExpanded(expanded)
	m.setTree(msg.tree)
	if selected != "" {
		m.engine.SelectPath(selected)
	}
	m.setStatus("Reloaded", false)
	return m
}

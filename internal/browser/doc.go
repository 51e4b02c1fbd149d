// Package browser is the interactive tag tree view.
//
// Model is a Bubble Tea model wrapping a navigator.Engine. It translates
// terminal input into engine events:
//
//   - tea.KeyMsg becomes one navigator.KeyEvent per key or pasted rune
//   - tea.MouseMsg wheel notches become ScrollEvents and left presses
//     become ClickEvents, using the raw screen coordinates
//   - tea.WindowSizeMsg becomes a ResizeEvent
//
// and paints the engine snapshot inside a bordered frame: a title line, the
// column header, the row area, a status line and the key help. The frame
// geometry is fixed (see layout) so a screen row always maps to the same
// visible row index, which is what makes clicks land on the row under the
// pointer.
//
// Engine effects are carried out here: quitting, copying the selected row
// to the clipboard, and toggling the full help overlay.
//
// # Live Reload
//
// When Options.WatchPath and Options.Reload are set, the model watches the
// file with package watcher. A change schedules a reload command that
// decodes the file off the event loop; the resulting tree replaces the
// current one in a single Update, keeping expanded nodes and the selected
// row by path.
package browser

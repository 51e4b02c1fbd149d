// Package navigator is the cursor, viewport, search and input state machine
// that sits on top of a tagtree.Tree.
//
// An Engine owns a tree for the life of a loaded file. It keeps the flattened
// visible rows, the selected row (cursor), the first drawn row (offset) and the
// search state. Every mutation runs to completion and leaves the engine with
//
//	offset <= cursor < offset + height
//
// whenever there is at least one visible row. Out-of-range requests are
// clamped, never reported.
//
// # Modes
//
// The engine is in ModeNormal or ModeSearch. Handle routes a normalized Event
// according to the current mode and returns an Effect for the caller to act
// on (quit, copy, toggle help). The engine never touches the terminal, the
// clipboard or the file system.
//
// # Search
//
// Entering search clears the query. Each keystroke rescans every node and
// jumps to the first match, expanding its ancestors. Confirming keeps the
// query and matches so they can be highlighted and cycled with n/N in normal
// mode. Canceling restores the selection and offset recorded on entry and
// clears the query.
//
// # Rendering
//
// Snapshot returns a read-only copy of what should be drawn this frame. It
// only touches the rows inside the viewport.
package navigator

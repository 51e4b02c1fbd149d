package navigator

// MoveCursor moves the selection by delta rows without wrapping.
func (e *Engine) MoveCursor(delta int) {
	e.MoveTo(e.cursor + delta)
}

// MoveTo selects the row at index, clamped to the visible rows.
func (e *Engine) MoveTo(index int) {
	if len(e.rows) == 0 {
		e.cursor = 0
	} else {
		e.cursor = clamp(index, 0, len(e.rows)-1)
	}
	e.ensureVisible()
}

// PageUp moves the selection up by one viewport.
func (e *Engine) PageUp() { e.MoveCursor(-e.height) }

// PageDown moves the selection down by one viewport.
func (e *Engine) PageDown() { e.MoveCursor(e.height) }

// Top selects the first row.
func (e *Engine) Top() { e.MoveTo(0) }

// Bottom selects the last row.
func (e *Engine) Bottom() { e.MoveTo(len(e.rows) - 1) }

// Scroll moves the viewport by delta rows. The cursor is left where it is,
// even if that puts it off screen.
func (e *Engine) Scroll(delta int) {
	e.offset = clamp(e.offset+delta, 0, e.maxOffset())
}

// Click selects the row drawn at the given screen cell. Cells outside the
// row area are ignored.
func (e *Engine) Click(row, col int) {
	if idx := e.RowAt(row, col); idx >= 0 {
		e.MoveTo(idx)
	}
}

// RowAt returns the visible row index drawn at the given screen cell, or -1
// when the cell is outside the row area or below the last row.
func (e *Engine) RowAt(row, col int) int {
	if e.width > 0 && (col < e.layout.Left || col >= e.width-e.layout.Right) {
		return -1
	}
	r := row - e.layout.Top
	if r < 0 || r >= e.height || e.offset+r >= len(e.rows) {
		return -1
	}
	return e.offset + r
}

func (e *Engine) ensureVisible() {
	if len(e.rows) == 0 {
		e.cursor, e.offset = 0, 0
		return
	}
	if e.cursor < e.offset {
		e.offset = e.cursor
	}
	if e.cursor >= e.offset+e.height {
		e.offset = e.cursor - e.height + 1
	}
	e.offset = clamp(e.offset, 0, e.maxOffset())
}

func (e *Engine) maxOffset() int {
	return max(0, len(e.rows)-e.height)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

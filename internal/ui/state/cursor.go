package state

// Cursor and ViewportOffset index Items, the rows left after filtering.
// Remembered positions are kept as arena slots instead, so they stay valid
// while the visible rows change underneath them.

// Step moves the cursor delta rows, wrapping past either end of the list.
func (l *Level) Step(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return l.Cursor != old
}

// MoveCursorHome moves the cursor to the first visible row.
func (l *Level) MoveCursorHome() bool {
	return l.moveCursorTo(0)
}

// MoveCursorEnd moves the cursor to the last visible row.
func (l *Level) MoveCursorEnd() bool {
	return l.moveCursorTo(len(l.Items) - 1)
}

// MoveCursorPageUp moves the cursor up one page, stopping at the first row.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorTo(l.Cursor - l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down one page, stopping at the last row.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorTo(l.Cursor + l.pageSize(maxVisible))
}

// SelectSlot puts the cursor on the row for arena slot. It reports false,
// leaving the cursor alone, when that row is filtered out.
func (l *Level) SelectSlot(slot int) bool {
	idx := l.IndexOf(slot)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

// Remember records the slot under the cursor as the row to come back to
// when the submenu entered from it is left again.
func (l *Level) Remember() {
	l.ReturnSlot = l.currentSlot()
}

// Restore moves the cursor back onto the remembered slot and forgets it.
func (l *Level) Restore() bool {
	slot := l.ReturnSlot
	l.ReturnSlot = -1
	return slot >= 0 && l.SelectSlot(slot)
}

// EnsureCursorVisible scrolls the viewport as little as possible to keep the
// cursor row on screen. maxVisible <= 0 means every row fits.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	l.clampCursor()
	if len(l.Items) == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = clamp(l.ViewportOffset, l.Cursor-maxVisible+1, l.Cursor)
	l.ViewportOffset = clamp(l.ViewportOffset, 0, max(len(l.Items)-maxVisible, 0))
}

func (l *Level) currentSlot() int {
	if row, ok := l.Current(); ok {
		return row.Slot
	}
	return -1
}

func (l *Level) moveCursorTo(idx int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = idx
	l.clampCursor()
	return l.Cursor != old
}

func (l *Level) clampCursor() {
	l.Cursor = clamp(l.Cursor, 0, max(len(l.Items)-1, 0))
}

func (l *Level) pageSize(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		return max(len(l.Items), 1)
	}
	return maxVisible
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

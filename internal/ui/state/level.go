package state

import "github.com/atomicstack/glyph-popup/internal/menu"

// MatchFunc reports whether the row at slot satisfies m. The engine's Matches
// method has this shape.
type MatchFunc func(slot int, m menu.Matcher) bool

// Level encapsulates menu level state such as cursor position, filter, and viewport.
type Level struct {
	List           int
	Items          []Row
	Full           []Row
	Filter         string
	FilterCursor   int
	Cursor         int
	ReturnSlot     int
	ViewportOffset int
	Match          MatchFunc

	filterSlot int
}

// NewLevel constructs a Level for arena list `list`.
func NewLevel(list int, rows []Row, match MatchFunc) *Level {
	l := &Level{
		List:       list,
		ReturnSlot: -1,
		Match:      match,
		filterSlot: -1,
	}
	l.UpdateItems(rows)
	return l
}

// IndexOf returns the visible index of the row at slot, or -1.
func (l *Level) IndexOf(slot int) int {
	for i, row := range l.Items {
		if row.Slot == slot {
			return i
		}
	}
	return -1
}

// Current returns the row under the cursor.
func (l *Level) Current() (Row, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Row{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems refreshes the level rows, keeping the viewport where possible.
func (l *Level) UpdateItems(rows []Row) {
	prevOffset := l.ViewportOffset
	l.Full = CloneRows(rows)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

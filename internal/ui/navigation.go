package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/glyph-popup/internal/logging/events"
	"github.com/atomicstack/glyph-popup/internal/menu"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	return m.react(menu.Cancel{})
}

func (m *Model) handleEnterKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	row, ok := current.Current()
	if !ok {
		return nil
	}
	return m.react(menu.Ok{Selected: row.Slot})
}

func (m *Model) handleTabKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	row, ok := current.Current()
	if !ok {
		return m.react(menu.Complete{})
	}
	return m.react(menu.Complete{Selected: row.Slot, HasSelection: true})
}

func (m *Model) moveCursorUp() {
	if current := m.currentLevel(); current != nil {
		if current.Step(-1) {
			events.Menu.Cursor(current.List, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorDown() {
	if current := m.currentLevel(); current != nil {
		if current.Step(1) {
			events.Menu.Cursor(current.List, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.maxVisibleItems()); moved {
			events.Menu.Cursor(current.List, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.maxVisibleItems()); moved {
			events.Menu.Cursor(current.List, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			events.Menu.Cursor(current.List, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			events.Menu.Cursor(current.List, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "tab":
		return m.handleTabKey()
	case "up", "ctrl+p":
		m.moveCursorUp()
	case "down", "ctrl+n":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return nil
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

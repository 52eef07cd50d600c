package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/glyph-popup/internal/logging"
	"github.com/atomicstack/glyph-popup/internal/menu"
)

// react hands ev to the engine with the current filter as the input line and
// brings the level stack back in line with the engine afterwards.
func (m *Model) react(ev menu.Event) tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return tea.Quit
	}
	input := current.Filter
	action, err := m.engine.React(ev, &input)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		m.forceClearInfo()
	}
	if action == menu.Exit {
		if ok, isOk := ev.(menu.Ok); isOk && err == nil {
			if item, found := m.engine.Entry(ok.Selected); found {
				m.copied = item.Payload
			}
		}
		return tea.Quit
	}
	m.reload(input)
	return nil
}

// reload syncs the stack with the engine's active list. Entering a submenu
// pushes a level; going back pops to the parent and restores its cursor.
func (m *Model) reload(input string) {
	current := m.currentLevel()
	active := m.engine.Active()
	switch {
	case active == current.List:
		if input != current.Filter {
			before := current.FilterCursorPos()
			current.SetFilter(input, len([]rune(input)))
			m.noteFilterCursorChange(current, before)
		}
		m.syncViewport(current)
	case len(m.stack) > 1 && m.stack[len(m.stack)-2].List == active:
		m.stack = m.stack[:len(m.stack)-1]
		parent := m.currentLevel()
		parent.Restore()
		m.syncViewport(parent)
		m.errMsg = ""
		m.forceClearInfo()
	default:
		current.Remember()
		before := current.FilterCursorPos()
		current.SetFilter("", 0)
		m.noteFilterCursorChange(current, before)
		current.SelectSlot(current.ReturnSlot)
		next := m.newLevel()
		m.stack = append(m.stack, next)
		m.syncViewport(next)
		m.errMsg = ""
		m.forceClearInfo()
		if len(next.Items) == 0 {
			m.setInfo("No entries found.")
		}
	}
}

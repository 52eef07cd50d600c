package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/glyph-popup/internal/menu"
	"github.com/atomicstack/glyph-popup/internal/theme"
	uistate "github.com/atomicstack/glyph-popup/internal/ui/state"
)

type level = uistate.Level

const defaultRootTitle = "main menu"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options tunes the model's layout.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Title      string
}

// Model implements the Bubble Tea model for the glyph picker. It mirrors the
// engine's active list as a stack of levels so cursor positions survive
// walking back up the tree.
type Model struct {
	engine            *menu.Engine
	stack             []*level
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	showFooter        bool
	verbose           bool
	rootTitle         string
	copied            string
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state from the engine's current list.
func NewModel(engine *menu.Engine, opts Options) *Model {
	m := &Model{
		engine:     engine,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		rootTitle:  defaultRootTitle,
	}
	if title := strings.TrimSpace(opts.Title); title != "" {
		m.rootTitle = title
	}
	root := m.newLevel()
	m.stack = []*level{root}
	m.syncViewport(root)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// newLevel snapshots the engine's active list.
func (m *Model) newLevel() *level {
	rows := uistate.RowsFor(m.engine.EntryCount(), m.engine.EntryCompletedText)
	return uistate.NewLevel(m.engine.Active(), rows, m.engine.Matches)
}

// Copied returns the payload placed on the clipboard, if any.
func (m *Model) Copied() string {
	return m.copied
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.filterCursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

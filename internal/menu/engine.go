package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/glyph-popup/internal/clipboard"
	"github.com/atomicstack/glyph-popup/internal/logging/events"
	"github.com/atomicstack/glyph-popup/internal/markup"
)

// BreadcrumbSeparator joins breadcrumb segments.
const BreadcrumbSeparator = " / "

// Action tells the host what to do after an event.
type Action int

const (
	// Reload redraws the menu from the engine's current state.
	Reload Action = iota
	// Exit closes the picker.
	Exit
)

func (a Action) String() string {
	switch a {
	case Reload:
		return "reload"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Event is a host input handed to React.
type Event interface {
	event()
}

// Cancel backs out of the current list.
type Cancel struct{}

// Ok chooses the row at Selected.
type Ok struct {
	Selected int
}

// Complete asks to fill the input with a row's text.
type Complete struct {
	Selected     int
	HasSelection bool
}

// CustomInput is accepting text that matches no row.
type CustomInput struct {
	Text string
}

// DeleteEntry is a request to remove a row. Lists are immutable so it only
// reloads.
type DeleteEntry struct {
	Selected int
}

// CustomCommand is a host-defined key binding.
type CustomCommand struct {
	Number   int
	Selected int
}

func (Cancel) event()        {}
func (Ok) event()            {}
func (Complete) event()      {}
func (CustomInput) event()   {}
func (DeleteEntry) event()   {}
func (CustomCommand) event() {}

// Matcher is the host's match predicate.
type Matcher interface {
	Matches(text string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(text string) bool

func (f MatcherFunc) Matches(text string) bool {
	return f(text)
}

// Engine tracks which list is active. The arena is shared read-only; the
// active index is the only state that changes.
type Engine struct {
	arena  *Arena
	active int
	clip   clipboard.Writer
}

// NewEngine starts at the root list.
func NewEngine(arena *Arena, clip clipboard.Writer) *Engine {
	return &Engine{arena: arena, active: RootList, clip: clip}
}

// Active returns the index of the current list.
func (e *Engine) Active() int {
	return e.active
}

// Depth is the nesting depth of the current list.
func (e *Engine) Depth() int {
	return e.arena.Depth(e.active)
}

func (e *Engine) items() []Item {
	return e.arena.lists[e.active].Items
}

// Entry returns row i of the current list.
func (e *Engine) Entry(i int) (Item, bool) {
	items := e.items()
	if i < 0 || i >= len(items) {
		return Item{}, false
	}
	return items[i], true
}

// EntryCount is the number of rows in the current list.
func (e *Engine) EntryCount() int {
	return len(e.items())
}

// EntryRender returns the plain text and style spans of row i.
func (e *Engine) EntryRender(i int) (string, []markup.Attribute) {
	item := e.items()[i]
	return item.Name.Plain, item.Name.Attrs
}

// EntryCompletedText is the text placed in the input on completion.
func (e *Engine) EntryCompletedText(i int) string {
	return e.items()[i].Name.Plain
}

// OnSelect copies a text row's payload or enters a submenu. A failed copy
// keeps the picker open and returns the clipboard error.
func (e *Engine) OnSelect(i int) (Action, error) {
	item, ok := e.Entry(i)
	if !ok {
		return Reload, fmt.Errorf("no entry at row %d of list %d", i, e.active)
	}
	switch item.Kind {
	case ItemList:
		events.Menu.Enter(e.active, i, item.Child, item.Name.Plain)
		e.active = item.Child
		return Reload, nil
	default:
		events.Menu.Select(e.active, i, item.Name.Plain)
		if e.clip == nil {
			return Reload, fmt.Errorf("no clipboard configured")
		}
		if err := e.clip.Copy(item.Payload); err != nil {
			return Reload, err
		}
		return Exit, nil
	}
}

// OnCancel returns to the parent list and clears the input, or exits at the
// root.
func (e *Engine) OnCancel(input *string) Action {
	back := e.arena.lists[e.active].Back
	if back == nil {
		return Exit
	}
	events.Menu.Back(e.active, back.List)
	e.active = back.List
	if input != nil {
		*input = ""
	}
	return Reload
}

// OnComplete replaces the input with the plain text of row i.
func (e *Engine) OnComplete(i int, input *string) Action {
	item, ok := e.Entry(i)
	if !ok {
		return Reload
	}
	events.Menu.Complete(e.active, i, item.Name.Plain)
	if input != nil {
		*input = item.Name.Plain
	}
	return Reload
}

// Breadcrumb joins the markup names of the rows leading to the current list,
// root first. It is empty at the root.
func (e *Engine) Breadcrumb() string {
	path := e.arena.Path(e.active)
	if len(path) == 0 {
		return ""
	}
	names := make([]string, len(path))
	for i, ref := range path {
		names[i] = e.arena.lists[ref.List].Items[ref.Slot].Name.Markup
	}
	return strings.Join(names, BreadcrumbSeparator)
}

// Matches applies m to the plain text of row i.
func (e *Engine) Matches(i int, m Matcher) bool {
	item, ok := e.Entry(i)
	if !ok {
		return false
	}
	return m.Matches(item.Name.Plain)
}

// React dispatches a host event. Only Ok can fail: the row may not exist, no
// clipboard may be configured, or the copy itself may fail. The action is
// Reload in each case and the active list is unchanged.
func (e *Engine) React(ev Event, input *string) (Action, error) {
	switch ev := ev.(type) {
	case Cancel:
		return e.OnCancel(input), nil
	case Ok:
		return e.OnSelect(ev.Selected)
	case Complete:
		if !ev.HasSelection {
			return Reload, nil
		}
		return e.OnComplete(ev.Selected, input), nil
	default:
		return Reload, nil
	}
}

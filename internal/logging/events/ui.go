package events

import "github.com/atomicstack/glyph-popup/internal/logging"

type MenuTracer struct{}

type FilterTracer struct{}

var (
	Menu   = MenuTracer{}
	Filter = FilterTracer{}
)

func (MenuTracer) Enter(from, slot, to int, label string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"list":  from,
		"slot":  slot,
		"child": to,
		"label": label,
	})
}

func (MenuTracer) Back(from, to int) {
	logging.Trace("menu.back", map[string]interface{}{"list": from, "parent": to})
}

func (MenuTracer) Select(list, slot int, label string) {
	logging.Trace("menu.select", map[string]interface{}{"list": list, "slot": slot, "label": label})
}

func (MenuTracer) Complete(list, slot int, text string) {
	logging.Trace("menu.complete", map[string]interface{}{"list": list, "slot": slot, "text": text})
}

func (MenuTracer) Cursor(list, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"list": list, "cursor": cursor})
}

func (FilterTracer) Cleared(list int) {
	logging.Trace("filter.clear", map[string]interface{}{"list": list})
}

func (FilterTracer) WordBackspace(list int, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"list": list, "filter": filter})
}

func (FilterTracer) Cursor(list int, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"list": list, "cursor": pos})
}

func (FilterTracer) CursorWord(list int, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"list": list, "cursor": pos})
}

func (FilterTracer) Append(list int, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"list": list, "filter": filter})
}

func (FilterTracer) Backspace(list int, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"list": list, "filter": filter})
}

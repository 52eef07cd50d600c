package events

import "github.com/atomicstack/glyph-popup/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Ready(lists, items int) {
	logging.Trace("app.ready", map[string]interface{}{"lists": lists, "items": items})
}

func (AppTracer) Exit(reason string) {
	logging.Trace("app.exit", map[string]interface{}{"reason": reason})
}

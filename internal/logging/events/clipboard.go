package events

import "github.com/atomicstack/glyph-popup/internal/logging"

type ClipboardTracer struct{}

var Clipboard = ClipboardTracer{}

func (ClipboardTracer) Copy(backend string, size int) {
	logging.Trace("clipboard.copy", map[string]interface{}{"backend": backend, "bytes": size})
}

func (ClipboardTracer) Failure(backend string, err error) {
	if err == nil {
		return
	}
	logging.Trace("clipboard.failure", map[string]interface{}{"backend": backend, "error": err.Error()})
}

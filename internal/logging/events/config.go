package events

import "github.com/atomicstack/glyph-popup/internal/logging"

// ConfigTracer records configuration resolution steps.
type ConfigTracer struct{}

var Config = ConfigTracer{}

func (ConfigTracer) Root(path string) {
	logging.Trace("config.root", map[string]interface{}{"path": path})
}

func (ConfigTracer) Fragment(reference, path string, depth int) {
	logging.Trace("config.fragment", map[string]interface{}{
		"reference": reference,
		"path":      path,
		"depth":     depth,
	})
}

func (ConfigTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("config.error", map[string]interface{}{"error": err.Error()})
}

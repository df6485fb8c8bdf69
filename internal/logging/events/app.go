package events

import "github.com/atomicstack/ohsdash/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) Source(kind, location string) {
	logging.Trace("app.source", map[string]interface{}{"kind": kind, "location": location})
}

func (AppTracer) Seed(path string, records int) {
	logging.Trace("app.seed", map[string]interface{}{"path": path, "records": records})
}

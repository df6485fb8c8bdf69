package events

import "github.com/atomicstack/ohsdash/internal/logging"

type FormTracer struct{}

var Form = FormTracer{}

func (FormTracer) Open(screen, mode, id, section string) {
	logging.Trace("form.open", map[string]interface{}{"screen": screen, "mode": mode, "id": id, "section": section})
}

func (FormTracer) Submit(screen, mode, id string, fields []string) {
	logging.Trace("form.submit", map[string]interface{}{"screen": screen, "mode": mode, "id": id, "fields": fields})
}

// Complete records the outcome of a submission: saved, no-op or failed.
func (FormTracer) Complete(screen, outcome string, changed []string, err error) {
	payload := map[string]interface{}{"screen": screen, "outcome": outcome}
	if len(changed) > 0 {
		payload["changed"] = changed
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("form.complete", payload)
}

func (FormTracer) Cancel(screen string) {
	logging.Trace("form.cancel", map[string]interface{}{"screen": screen})
}

package events

import "github.com/atomicstack/ohsdash/internal/logging"

type PaneTracer struct{}

type PaneReason string

const (
	PaneReasonRelease PaneReason = "release"
	PaneReasonBlur    PaneReason = "blur"
	PaneReasonClose   PaneReason = "close"
)

var Pane = PaneTracer{}

func (PaneTracer) Open(screen, id string) {
	logging.Trace("pane.open", map[string]interface{}{"screen": screen, "id": id})
}

func (PaneTracer) Close(screen string) {
	logging.Trace("pane.close", map[string]interface{}{"screen": screen})
}

func (PaneTracer) DragStart(screen string, x int) {
	logging.Trace("pane.drag.start", map[string]interface{}{"screen": screen, "x": x})
}

func (PaneTracer) DragEnd(screen string, reason PaneReason, pct float64) {
	logging.Trace("pane.drag.end", map[string]interface{}{"screen": screen, "reason": string(reason), "percent": pct})
}

func (PaneTracer) Resize(screen string, pct float64) {
	logging.Trace("pane.resize", map[string]interface{}{"screen": screen, "percent": pct})
}

func (PaneTracer) Reset(screen string, pct float64) {
	logging.Trace("pane.reset", map[string]interface{}{"screen": screen, "percent": pct})
}

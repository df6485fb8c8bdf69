package events

import "github.com/atomicstack/ohsdash/internal/logging"

type ListTracer struct{}

type SelectionTracer struct{}

var (
	List      = ListTracer{}
	Selection = SelectionTracer{}
)

func (ListTracer) Refetch(screen string, seq uint64, owner string) {
	logging.Trace("list.refetch", map[string]interface{}{"screen": screen, "seq": seq, "owner": owner})
}

func (ListTracer) Loaded(screen string, seq uint64, count int) {
	logging.Trace("list.loaded", map[string]interface{}{"screen": screen, "seq": seq, "count": count})
}

func (ListTracer) Stale(screen string, seq uint64) {
	logging.Trace("list.stale", map[string]interface{}{"screen": screen, "seq": seq})
}

func (ListTracer) Failed(screen string, err error) {
	if err == nil {
		return
	}
	logging.Trace("list.failed", map[string]interface{}{"screen": screen, "error": err.Error()})
}

func (ListTracer) Search(screen, term string, matches int) {
	logging.Trace("list.search", map[string]interface{}{"screen": screen, "term": term, "matches": matches})
}

func (ListTracer) Status(screen, status string) {
	logging.Trace("list.status", map[string]interface{}{"screen": screen, "status": status})
}

func (ListTracer) Page(screen string, page, total int) {
	logging.Trace("list.page", map[string]interface{}{"screen": screen, "page": page, "totalPages": total})
}

func (ListTracer) Export(screen, path string, rows int) {
	logging.Trace("list.export", map[string]interface{}{"screen": screen, "path": path, "rows": rows})
}

func (SelectionTracer) Select(screen, id string) {
	logging.Trace("selection.select", map[string]interface{}{"screen": screen, "id": id})
}

func (SelectionTracer) Fetch(screen, id string) {
	logging.Trace("selection.fetch", map[string]interface{}{"screen": screen, "id": id})
}

func (SelectionTracer) Cleared(screen, id string, err error) {
	payload := map[string]interface{}{"screen": screen, "id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("selection.cleared", payload)
}

package events

import "github.com/atomicstack/ohsdash/internal/logging"

type RouteTracer struct{}

type DirectoryTracer struct{}

type RequestTracer struct{}

var (
	Route     = RouteTracer{}
	Directory = DirectoryTracer{}
	Request   = RequestTracer{}
)

func (RouteTracer) Navigate(from, to string) {
	logging.Trace("route.navigate", map[string]interface{}{"from": from, "to": to})
}

func (RouteTracer) Pop(path string, depth int) {
	logging.Trace("route.pop", map[string]interface{}{"path": path, "depth": depth})
}

func (DirectoryTracer) Updated(kind string, count int) {
	logging.Trace("directory.updated", map[string]interface{}{"kind": kind, "count": count})
}

func (DirectoryTracer) Error(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("directory.error", map[string]interface{}{"kind": kind, "error": err.Error()})
}

func (RequestTracer) Done(method, path, requestID string, status int, millis int64) {
	logging.Trace("request.done", map[string]interface{}{
		"method":    method,
		"path":      path,
		"requestId": requestID,
		"status":    status,
		"ms":        millis,
	})
}

func (RequestTracer) Failed(method, path, requestID string, err error) {
	logging.Trace("request.failed", map[string]interface{}{
		"method":    method,
		"path":      path,
		"requestId": requestID,
		"error":     err.Error(),
	})
}

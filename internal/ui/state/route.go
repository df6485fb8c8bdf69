package state

import (
	"path"
	"strings"
)

// Scope selects whether a route value is shared across paths.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopePath
)

type routeKey struct {
	path string
	key  string
}

// RouteState holds small UI values keyed by the current path. Values survive
// navigation away and back for the lifetime of the program; nothing is ever
// removed on screen teardown.
type RouteState struct {
	path   string
	values map[routeKey]interface{}
}

// NewRouteState creates an empty route state positioned at "/".
func NewRouteState() *RouteState {
	return &RouteState{path: "/", values: make(map[routeKey]interface{})}
}

// CleanPath normalises a route path to a rooted, slash-separated form.
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Navigate changes the current path.
func (r *RouteState) Navigate(p string) {
	r.path = CleanPath(p)
}

// Path returns the current path.
func (r *RouteState) Path() string { return r.path }

func (r *RouteState) keyFor(key string, scope Scope) routeKey {
	if scope == ScopePath {
		return routeKey{path: r.path, key: key}
	}
	return routeKey{key: key}
}

// Get returns the stored value or def when none is set.
func (r *RouteState) Get(key string, def interface{}, scope Scope) interface{} {
	if v, ok := r.values[r.keyFor(key, scope)]; ok {
		return v
	}
	return def
}

// Set stores value under key.
func (r *RouteState) Set(key string, value interface{}, scope Scope) {
	r.values[r.keyFor(key, scope)] = value
}

// Clear removes key so that Get returns the default again.
func (r *RouteState) Clear(key string, scope Scope) {
	delete(r.values, r.keyFor(key, scope))
}

// Len returns the number of stored values.
func (r *RouteState) Len() int { return len(r.values) }

// RouteValue reads key as a T, returning def when unset or of another type.
// Numbers are converted between int and float64.
func RouteValue[T any](r *RouteState, key string, def T, scope Scope) T {
	v := r.Get(key, nil, scope)
	if v == nil {
		return def
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	var out interface{}
	switch any(def).(type) {
	case float64:
		switch n := v.(type) {
		case int:
			out = float64(n)
		}
	case int:
		switch n := v.(type) {
		case float64:
			out = int(n)
		}
	}
	if typed, ok := out.(T); ok {
		return typed
	}
	return def
}

package dispatcher

import (
	"github.com/atomicstack/ohsdash/internal/backend"
	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/atomicstack/ohsdash/internal/state"
)

type Result struct {
	Kind    directory.Kind
	Updated bool
	Err     error
}

type Dispatcher struct {
	directory state.DirectoryStore
}

func New(d state.DirectoryStore) *Dispatcher {
	return &Dispatcher{directory: d}
}

// Handle applies one watcher event. Failed polls keep the previous list.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	res := Result{Kind: evt.Kind}
	if evt.Err != nil {
		events.Directory.Error(string(evt.Kind), evt.Err)
		res.Err = evt.Err
		return res
	}
	d.directory.SetEntries(evt.Kind, evt.Entries)
	events.Directory.Updated(string(evt.Kind), len(evt.Entries))
	res.Updated = true
	return res
}

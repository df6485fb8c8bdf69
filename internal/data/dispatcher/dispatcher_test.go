package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/ohsdash/internal/backend"
	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/state"
)

func TestHandleKeepsLastGoodListOnError(t *testing.T) {
	store := state.NewDirectoryStore()
	d := New(store)

	res := d.Handle(backend.Event{Kind: directory.KindSite, Entries: []directory.Entry{{ID: "s1", Name: "Rustenburg"}}})
	if !res.Updated || res.Kind != directory.KindSite {
		t.Fatalf("unexpected result %#v", res)
	}
	res = d.Handle(backend.Event{Kind: directory.KindSite, Err: errors.New("timeout")})
	if res.Updated || res.Err == nil {
		t.Fatalf("failed poll must not report an update: %#v", res)
	}
	if store.Name(directory.KindSite, "s1") != "Rustenburg" {
		t.Fatalf("failed poll must keep the previous list")
	}
}

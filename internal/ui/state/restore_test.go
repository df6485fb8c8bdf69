package state

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/ohsdash/internal/record"
)

func TestRestoreUsesLocalLookupFirst(t *testing.T) {
	src := newMemSource(5)
	var r SelectionRestorer[testRecord]
	r.SelectID("r03")
	if err := r.Restore(context.Background(), src.records, src.Get); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if src.gets != 0 {
		t.Fatalf("expected no remote fetch, got %d", src.gets)
	}
	rec, ok := r.Selected()
	if !ok || rec.ID != "r03" {
		t.Fatalf("expected r03 resolved, got %#v", rec)
	}
}

func TestRestoreFetchesMissingRecordOnce(t *testing.T) {
	src := newMemSource(5)
	var r SelectionRestorer[testRecord]
	r.SelectID("r04")
	visible := src.records[:2]
	if err := r.Restore(context.Background(), visible, src.Get); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if src.gets != 1 {
		t.Fatalf("expected one remote fetch, got %d", src.gets)
	}
	if rec, ok := r.Selected(); !ok || rec.ID != "r04" {
		t.Fatalf("expected r04 resolved remotely, got %#v", rec)
	}
	r.Restore(context.Background(), visible, src.Get)
	if src.gets != 1 {
		t.Fatalf("resolved selection must not refetch, got %d", src.gets)
	}
}

func TestRestoreNotFoundClearsSelection(t *testing.T) {
	src := newMemSource(2)
	var r SelectionRestorer[testRecord]
	r.SelectID("gone")
	err := r.Restore(context.Background(), src.records, src.Get)
	if !record.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if r.SelectedID() != "" {
		t.Fatalf("expected selection cleared, got %q", r.SelectedID())
	}
	if _, ok := r.Selected(); ok {
		t.Fatalf("expected no selected record")
	}
}

func TestResolveDoesNotRetryWithoutIDChange(t *testing.T) {
	var r SelectionRestorer[testRecord]
	r.SelectID("x")
	if id, need := r.Resolve(nil); !need || id != "x" {
		t.Fatalf("expected a fetch for x")
	}
	if !r.Pending() {
		t.Fatalf("expected pending fetch")
	}
	if _, need := r.Resolve(nil); need {
		t.Fatalf("must not issue a second fetch for the same id")
	}
	r.SelectID("y")
	if id, need := r.Resolve(nil); !need || id != "y" {
		t.Fatalf("expected a fetch after the id changed")
	}
}

func TestCompleteFetchIgnoresSupersededID(t *testing.T) {
	var r SelectionRestorer[testRecord]
	r.SelectID("a")
	r.Resolve(nil)
	r.SelectID("b")
	if r.CompleteFetch("a", testRecord{ID: "a"}, nil) {
		t.Fatalf("result for a superseded id must be ignored")
	}
	if r.CompleteFetch("a", testRecord{}, errors.New("boom")) {
		t.Fatalf("failure for a superseded id must not clear the selection")
	}
	if r.SelectedID() != "b" {
		t.Fatalf("expected b to remain selected, got %q", r.SelectedID())
	}
}

func TestInvalidateRechecksAfterCollectionChange(t *testing.T) {
	src := newMemSource(3)
	var r SelectionRestorer[testRecord]
	r.Select(src.records[1])
	src.Delete(context.Background(), "r01")
	r.Invalidate()
	err := r.Restore(context.Background(), src.records, src.Get)
	if !record.IsNotFound(err) || r.SelectedID() != "" {
		t.Fatalf("deleted record must clear the selection, err=%v id=%q", err, r.SelectedID())
	}
}

package state

import (
	"context"

	"github.com/atomicstack/ohsdash/internal/record"
)

// SelectionRestorer resolves a persisted selected id into a record, first
// from the loaded collection and then with at most one remote fetch per id.
type SelectionRestorer[R record.Record] struct {
	id        string
	rec       R
	resolved  bool
	attempted string
}

// Select sets a selection from a known record.
func (s *SelectionRestorer[R]) Select(rec R) {
	s.id = rec.RecordID()
	s.rec = rec
	s.resolved = true
	s.attempted = ""
}

// SelectID sets a selection by id alone. The record is resolved later.
func (s *SelectionRestorer[R]) SelectID(id string) {
	if id == "" {
		s.Clear()
		return
	}
	if id == s.id {
		return
	}
	var zero R
	s.id = id
	s.rec = zero
	s.resolved = false
	s.attempted = ""
}

// Clear drops the selection.
func (s *SelectionRestorer[R]) Clear() {
	var zero R
	s.id = ""
	s.rec = zero
	s.resolved = false
	s.attempted = ""
}

// SelectedID returns the selected id, or "".
func (s *SelectionRestorer[R]) SelectedID() string { return s.id }

// Selected returns the resolved record.
func (s *SelectionRestorer[R]) Selected() (R, bool) {
	if s.id == "" || !s.resolved {
		var zero R
		return zero, false
	}
	return s.rec, true
}

// Pending reports whether a selected id is waiting on a remote fetch.
func (s *SelectionRestorer[R]) Pending() bool {
	return s.id != "" && !s.resolved && s.attempted == s.id
}

// Invalidate forgets how the current id was resolved. Call it when the
// collection is replaced so that a record deleted elsewhere is re-checked.
func (s *SelectionRestorer[R]) Invalidate() {
	s.resolved = false
	s.attempted = ""
}

// Resolve looks the selected id up in collection. When it is missing and no
// fetch has been attempted for it, Resolve returns the id to fetch and marks
// the attempt; subsequent calls return false until the id changes.
func (s *SelectionRestorer[R]) Resolve(collection []R) (string, bool) {
	if s.id == "" {
		return "", false
	}
	for _, r := range collection {
		if r.RecordID() == s.id {
			s.rec = r
			s.resolved = true
			return "", false
		}
	}
	if s.resolved || s.attempted == s.id {
		return "", false
	}
	s.attempted = s.id
	return s.id, true
}

// CompleteFetch applies the result of a remote fetch issued by Resolve. A
// result for an id that is no longer selected is ignored. A failed fetch
// clears the selection. It reports whether the selection changed.
func (s *SelectionRestorer[R]) CompleteFetch(id string, rec R, err error) bool {
	if id == "" || id != s.id {
		return false
	}
	if err != nil {
		s.Clear()
		return true
	}
	s.rec = rec
	s.resolved = true
	return true
}

// Restore runs Resolve and, when needed, the remote fetch synchronously.
func (s *SelectionRestorer[R]) Restore(ctx context.Context, collection []R, get func(context.Context, string) (R, error)) error {
	id, need := s.Resolve(collection)
	if !need {
		return nil
	}
	rec, err := get(ctx, id)
	s.CompleteFetch(id, rec, err)
	return err
}

package backend

import (
	"context"
	"sync"
	"time"
)

// requestGap is the minimum spacing between directory requests of one
// Watcher, across all of its pollers.
const requestGap = 100 * time.Millisecond

// spacer hands out request slots at least gap apart, so a refresh of every
// list reaches the backend as a short staggered burst.
type spacer struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
}

func newSpacer(gap time.Duration) *spacer {
	return &spacer{gap: gap}
}

// acquire reserves the next free slot and sleeps until it. It reports false
// when ctx ends first.
func (s *spacer) acquire(ctx context.Context) bool {
	if s == nil || s.gap <= 0 {
		return ctx.Err() == nil
	}
	s.mu.Lock()
	slot := time.Now()
	if next := s.last.Add(s.gap); next.After(slot) {
		slot = next
	}
	s.last = slot
	s.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

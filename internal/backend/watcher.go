package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/ohsdash/internal/directory"
)

// Event conveys an updated reference list or an error from a poll.
type Event struct {
	Kind    directory.Kind
	Entries []directory.Entry
	Err     error
}

// Watcher polls the directory service at a fixed interval and publishes
// events. One poller runs per reference list.
type Watcher struct {
	service  directory.Service
	interval time.Duration
	timeout  time.Duration
	spacer   *spacer

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	refresh map[directory.Kind]chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts polling svc every interval. A non-positive interval
// polls once per list and then only on Refresh.
func NewWatcher(svc directory.Service, interval, timeout time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		service:  svc,
		interval: interval,
		timeout:  timeout,
		spacer:   newSpacer(requestGap),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		refresh:  map[directory.Kind]chan struct{}{},
	}

	for _, kind := range directory.Kinds() {
		w.refresh[kind] = make(chan struct{}, 1)
	}
	for _, kind := range directory.Kinds() {
		w.startPoller(kind)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of directory events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Refresh asks every poller to fetch again without waiting for the ticker.
func (w *Watcher) Refresh() {
	for _, ch := range w.refresh {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startPoller(kind directory.Kind) {
	w.wg.Add(1)
	go w.poll(kind, func(ctx context.Context) ([]directory.Entry, error) {
		if !w.spacer.acquire(ctx) {
			return nil, ctx.Err()
		}
		if w.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, w.timeout)
			defer cancel()
		}
		return w.service.Entries(ctx, kind)
	})
}

func (w *Watcher) poll(kind directory.Kind, fetch func(context.Context) ([]directory.Entry, error)) {
	defer w.wg.Done()

	emit := func() bool {
		entries, err := fetch(w.ctx)
		evt := Event{Kind: kind, Entries: entries, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-tick:
			if !emit() {
				return
			}
		case <-w.refresh[kind]:
			if !emit() {
				return
			}
		}
	}
}

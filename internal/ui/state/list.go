package state

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/atomicstack/ohsdash/internal/record"
)

// ErrStaleResponse is returned by CompleteRefetch when a newer refetch has
// been issued since the ticket was handed out.
var ErrStaleResponse = errors.New("stale list response")

// ListConfig customises how a ListController filters and orders records.
type ListConfig[R record.Record] struct {
	Limit int
	// SearchFields returns the derived text a search term is matched against.
	SearchFields func(R) []string
	// Status derives the value compared against the status filter.
	Status func(R) string
	// Less overrides the default newest-first order.
	Less func(a, b R) bool
}

// Ticket identifies one refetch. Only the newest ticket may complete.
type Ticket struct {
	Seq    uint64
	Filter record.Filter
}

// ListController owns a screen's collection together with its search term,
// status filter, owner scope and page.
type ListController[R record.Record] struct {
	cfg        ListConfig[R]
	collection []R
	filtered   []R
	search     string
	status     string
	scope      record.Filter
	page       int
	latest     uint64
	loading    bool
	loaded     bool
	stale      bool
	err        error
}

// NewListController constructs an empty controller on page 1.
func NewListController[R record.Record](cfg ListConfig[R]) *ListController[R] {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultPageLimit
	}
	return &ListController[R]{cfg: cfg, page: 1, stale: true}
}

// Limit returns the page size.
func (c *ListController[R]) Limit() int { return c.cfg.Limit }

// SearchTerm returns the current search term.
func (c *ListController[R]) SearchTerm() string { return c.search }

// StatusFilter returns the current status filter; "" means all statuses.
func (c *ListController[R]) StatusFilter() string { return c.status }

// Scope returns the owner filter used for refetches.
func (c *ListController[R]) Scope() record.Filter { return c.scope }

// SetSearchTerm updates the search term and returns to page 1.
func (c *ListController[R]) SetSearchTerm(term string) {
	c.search = term
	c.page = 1
	c.applyFilter()
}

// SetStatusFilter updates the status filter and returns to page 1.
func (c *ListController[R]) SetStatusFilter(status string) {
	c.status = status
	c.page = 1
	c.applyFilter()
}

// Refilter recomputes the filtered collection without moving the page, for
// when derived search text changes (for example a directory name update).
func (c *ListController[R]) Refilter() {
	c.applyFilter()
}

// SetScope changes the owner filter. A changed scope marks the collection
// stale; the caller is expected to refetch.
func (c *ListController[R]) SetScope(filter record.Filter) bool {
	if filter == c.scope {
		return false
	}
	c.scope = filter
	c.page = 1
	c.stale = true
	return true
}

// SetPage moves to page p. Pages below 1 or past the last page are refused.
func (c *ListController[R]) SetPage(p int) bool {
	if p < 1 {
		return false
	}
	info := c.PageInfo()
	if p > 1 && p > info.TotalPages {
		return false
	}
	if p == c.page {
		return false
	}
	c.page = p
	return true
}

// NextPage advances one page when a next page exists.
func (c *ListController[R]) NextPage() bool {
	if !c.PageInfo().HasNextPage {
		return false
	}
	c.page++
	return true
}

// PrevPage moves back one page when a previous page exists.
func (c *ListController[R]) PrevPage() bool {
	if !c.PageInfo().HasPreviousPage {
		return false
	}
	c.page--
	return true
}

// PageNumber returns the current page.
func (c *ListController[R]) PageNumber() int { return c.page }

// PageInfo returns metadata for the current page of the filtered collection.
func (c *ListController[R]) PageInfo() record.PageInfo {
	return record.NewPageInfo(c.page, c.cfg.Limit, len(c.filtered))
}

// Page returns the displayed slice and its metadata.
func (c *ListController[R]) Page() ([]R, record.PageInfo) {
	return Paginate(c.filtered, c.page, c.cfg.Limit)
}

// Collection returns a copy of the unfiltered collection.
func (c *ListController[R]) Collection() []R {
	return cloneRecords(c.collection)
}

// Filtered returns a copy of the filtered collection.
func (c *ListController[R]) Filtered() []R {
	return cloneRecords(c.filtered)
}

// Len returns the size of the unfiltered collection.
func (c *ListController[R]) Len() int { return len(c.collection) }

// Find looks a record up by id in the unfiltered collection.
func (c *ListController[R]) Find(id string) (R, bool) {
	for _, r := range c.collection {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// BeginRefetch issues a ticket for a new refetch, superseding any earlier one.
func (c *ListController[R]) BeginRefetch() Ticket {
	c.latest++
	c.loading = true
	return Ticket{Seq: c.latest, Filter: c.scope}
}

// CompleteRefetch applies the result of the refetch identified by seq. Stale
// results are discarded with ErrStaleResponse. A failed refetch keeps the
// previous collection and returns err.
func (c *ListController[R]) CompleteRefetch(seq uint64, records []R, err error) error {
	if seq != c.latest {
		return ErrStaleResponse
	}
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	c.err = nil
	c.loaded = true
	c.stale = false
	c.collection = c.sorted(records)
	c.applyFilter()
	return nil
}

// Refetch replaces the collection from src synchronously.
func (c *ListController[R]) Refetch(ctx context.Context, src record.Source[R]) error {
	ticket := c.BeginRefetch()
	records, err := record.ListAll(ctx, src, ticket.Filter, record.DefaultListLimit)
	return c.CompleteRefetch(ticket.Seq, records, err)
}

// Invalidate marks the collection stale after a mutation.
func (c *ListController[R]) Invalidate() { c.stale = true }

// Stale reports whether the collection needs a refetch.
func (c *ListController[R]) Stale() bool { return c.stale }

// Loading reports whether a refetch is in flight.
func (c *ListController[R]) Loading() bool { return c.loading }

// Loaded reports whether any refetch has succeeded.
func (c *ListController[R]) Loaded() bool { return c.loaded }

// Err returns the error from the most recent refetch, if it failed.
func (c *ListController[R]) Err() error { return c.err }

func (c *ListController[R]) applyFilter() {
	term := strings.ToLower(c.search)
	out := make([]R, 0, len(c.collection))
	for _, r := range c.collection {
		if c.status != "" && c.statusOf(r) != c.status {
			continue
		}
		if term != "" && !c.matches(r, term) {
			continue
		}
		out = append(out, r)
	}
	c.filtered = out
}

func (c *ListController[R]) statusOf(r R) string {
	if c.cfg.Status == nil {
		return ""
	}
	return c.cfg.Status(r)
}

func (c *ListController[R]) matches(r R, term string) bool {
	fields := []string{r.RecordID()}
	if c.cfg.SearchFields != nil {
		fields = c.cfg.SearchFields(r)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (c *ListController[R]) sorted(records []R) []R {
	out := cloneRecords(records)
	less := c.cfg.Less
	if less == nil {
		less = newestFirst[R]
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func newestFirst[R record.Record](a, b R) bool {
	ta, okA := any(a).(record.Timestamped)
	tb, okB := any(b).(record.Timestamped)
	if !okA || !okB {
		return false
	}
	return ta.Timestamp().After(tb.Timestamp())
}

func cloneRecords[R any](records []R) []R {
	out := make([]R, len(records))
	copy(out, records)
	return out
}

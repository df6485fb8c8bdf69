package state

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/ohsdash/internal/record"
)

func newTestController() *ListController[testRecord] {
	return NewListController(ListConfig[testRecord]{
		Limit:        29,
		SearchFields: func(r testRecord) []string { return []string{r.Name, r.ID} },
		Status:       func(r testRecord) string { return r.Status },
	})
}

func TestListControllerPagesSeventyFiveRecords(t *testing.T) {
	src := newMemSource(75)
	c := newTestController()
	if err := c.Refetch(context.Background(), src); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	rows, info := c.Page()
	if info.TotalPages != 3 || len(rows) != 29 || rows[0].ID != "r00" {
		t.Fatalf("unexpected first page %d rows, info %#v", len(rows), info)
	}
	if !c.NextPage() || !c.NextPage() {
		t.Fatalf("expected to reach page 3")
	}
	rows, info = c.Page()
	if len(rows) != 17 || rows[0].ID != "r58" || info.HasNextPage {
		t.Fatalf("unexpected last page %d rows starting %s, info %#v", len(rows), rows[0].ID, info)
	}
	if c.NextPage() {
		t.Fatalf("next page must be refused on the last page")
	}
	if c.SetPage(4) {
		t.Fatalf("out of range page must be refused")
	}
}

func TestSearchResetsToFirstPage(t *testing.T) {
	src := newMemSource(50)
	c := NewListController(ListConfig[testRecord]{
		Limit:        20,
		SearchFields: func(r testRecord) []string { return []string{r.Name} },
	})
	if err := c.Refetch(context.Background(), src); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	for _, term := range []string{"RECORD 4", "record 0", ""} {
		if !c.SetPage(2) && c.PageInfo().TotalPages >= 2 {
			t.Fatalf("expected page 2 to be reachable before searching %q", term)
		}
		c.SetSearchTerm(term)
		if c.PageNumber() != 1 {
			t.Fatalf("search %q: expected page reset to 1, got %d", term, c.PageNumber())
		}
	}
	c.SetSearchTerm("RECORD 4")
	rows, info := c.Page()
	if len(rows) != 10 || info.TotalPages != 1 {
		t.Fatalf("expected records 40..49 on one page, got %d rows / %#v", len(rows), info)
	}
}

func TestSearchMatchingThreeRecordsFromPageTwo(t *testing.T) {
	src := newMemSource(50)
	src.records[3].Name = "Needle one"
	src.records[17].Name = "needle two"
	src.records[41].Name = "the NEEDLE"
	c := newTestController()
	if err := c.Refetch(context.Background(), src); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if !c.SetPage(2) {
		t.Fatalf("expected page 2")
	}
	c.SetSearchTerm("needle")
	rows, info := c.Page()
	if len(c.Filtered()) != 3 || info.TotalPages != 1 || c.PageNumber() != 1 || len(rows) != 3 {
		t.Fatalf("expected 3 rows on a single page 1, got %d rows, page %d, info %#v", len(rows), c.PageNumber(), info)
	}
	if rows[0].ID != "r03" || rows[1].ID != "r17" || rows[2].ID != "r41" {
		t.Fatalf("filtered rows must keep collection order, got %v", rows)
	}
}

func TestSearchKeepsSurroundingSpaces(t *testing.T) {
	src := newMemSource(10)
	src.records[2].Name = "Smith Jones"
	src.records[5].Name = "Smithers"
	c := newTestController()
	if err := c.Refetch(context.Background(), src); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	c.SetSearchTerm("smith")
	if got := len(c.Filtered()); got != 2 {
		t.Fatalf("expected 2 matches for smith, got %d", got)
	}
	c.SetSearchTerm("smith ")
	if rows := c.Filtered(); len(rows) != 1 || rows[0].ID != "r02" {
		t.Fatalf("expected the trailing space to narrow to r02, got %v", rows)
	}
	c.SetSearchTerm("   ")
	if got := len(c.Filtered()); got != 0 {
		t.Fatalf("expected a blank term to match literally, got %d rows", got)
	}
}

func TestStatusFilterIsExactMatch(t *testing.T) {
	src := newMemSource(10)
	src.records[0].Status = "closed-pending"
	c := newTestController()
	if err := c.Refetch(context.Background(), src); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	c.NextPage()
	c.SetStatusFilter("closed")
	for _, r := range c.Filtered() {
		if r.Status != "closed" {
			t.Fatalf("status filter leaked %q", r.Status)
		}
	}
	if len(c.Filtered()) != 5 {
		t.Fatalf("expected 5 closed records, got %d", len(c.Filtered()))
	}
	if c.PageNumber() != 1 {
		t.Fatalf("status filter must reset the page")
	}
}

func TestRefetchFailureKeepsCollection(t *testing.T) {
	src := newMemSource(5)
	c := newTestController()
	if err := c.Refetch(context.Background(), src); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	src.listErr = &record.NetworkError{Op: "list", Err: errors.New("timeout")}
	err := c.Refetch(context.Background(), src)
	if !record.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if c.Len() != 5 || c.Err() == nil || c.Loading() {
		t.Fatalf("expected previous collection kept with error recorded")
	}
}

func TestStaleRefetchIsDiscarded(t *testing.T) {
	c := newTestController()
	first := c.BeginRefetch()
	second := c.BeginRefetch()
	newer := newMemSource(2).records
	older := newMemSource(7).records
	if err := c.CompleteRefetch(second.Seq, newer, nil); err != nil {
		t.Fatalf("complete newest: %v", err)
	}
	if err := c.CompleteRefetch(first.Seq, older, nil); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected stale response, got %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("stale response overwrote newer state: %d records", c.Len())
	}
}

func TestDefaultOrderIsNewestFirst(t *testing.T) {
	src := newMemSource(3)
	src.records[0], src.records[2] = src.records[2], src.records[0]
	c := newTestController()
	if err := c.Refetch(context.Background(), src); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	got := c.Collection()
	if got[0].ID != "r00" || got[2].ID != "r02" {
		t.Fatalf("expected newest first, got %v", got)
	}
}

func TestScopeChangeMarksStale(t *testing.T) {
	c := newTestController()
	if err := c.Refetch(context.Background(), newMemSource(1)); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if c.Stale() {
		t.Fatalf("fresh collection must not be stale")
	}
	if !c.SetScope(record.Filter{OwnerID: "emp-1"}) || !c.Stale() {
		t.Fatalf("scope change must mark the collection stale")
	}
	if c.SetScope(record.Filter{OwnerID: "emp-1"}) {
		t.Fatalf("same scope must be a no-op")
	}
	ticket := c.BeginRefetch()
	if ticket.Filter.OwnerID != "emp-1" {
		t.Fatalf("ticket must carry the scope")
	}
}

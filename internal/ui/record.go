package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/record"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
)

// Route keys persisted per record screen path.
const (
	routeKeyPaneWidth = "paneWidth"
	routeKeySelected  = "selected"
)

// recordScreen is the master-detail screen for one record kind.
type recordScreen[R record.Record] struct {
	m          *Model
	id         string
	path       string
	kind       *medical.Kind[R]
	src        record.Source[R]
	ownerID    string
	ownerLabel string

	ctx    context.Context
	cancel context.CancelFunc

	list    *uistate.ListController[R]
	split   *uistate.SplitLayout
	restore uistate.SelectionRestorer[R]
	form    *uistate.FormSession[R]
	dialog  *formDialog
	search  uistate.TextInput
	nav     uistate.ListCursor
	detail  *detailPane
	pager   paginator.Model

	status        int
	confirmDelete string
	pending       int
}

type listLoadedMsg[R record.Record] struct {
	seq     uint64
	records []R
	err     error
}

type selectionFetchedMsg[R record.Record] struct {
	id  string
	rec R
	err error
}

type submitDoneMsg[R record.Record] struct {
	sub uistate.Submission[R]
	res uistate.SubmitResult[R]
}

type deleteDoneMsg struct {
	id    string
	label string
	err   error
}

type exportDoneMsg struct {
	path string
	rows int
	err  error
}

type pdfDoneMsg struct {
	path string
	err  error
}

func newRecordScreen[R record.Record](m *Model, kind *medical.Kind[R], src record.Source[R], scope record.Filter, ownerLabel string) *recordScreen[R] {
	s := &recordScreen[R]{
		m:          m,
		id:         m.nextScreenID(kind.ID),
		kind:       kind,
		src:        src,
		ownerID:    scope.OwnerID,
		ownerLabel: ownerLabel,
		split:      uistate.NewSplitLayout(m.opts.Split),
		detail:     newDetailPane(m.opts.MarkdownStyle),
		pager:      paginator.New(),
	}
	s.path = "/" + kind.ID
	if scope.OwnerID != "" {
		s.path = fmt.Sprintf("/%s/%s/%s", medical.Employees.ID, scope.OwnerID, kind.ID)
	}
	s.path = uistate.CleanPath(s.path)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.list = uistate.NewListController(uistate.ListConfig[R]{
		Limit: m.opts.PageLimit,
		SearchFields: func(r R) []string {
			if kind.Search == nil {
				return []string{r.RecordID()}
			}
			return kind.Search(r, m.directory)
		},
		Status: kind.Status,
	})
	s.list.SetScope(scope)
	s.form = uistate.NewFormSession[R](s.list)
	s.pager.Type = paginator.Arabic
	s.pager.PerPage = s.list.Limit()
	return s
}

func (s *recordScreen[R]) screenID() string  { return s.id }
func (s *recordScreen[R]) routePath() string { return s.path }

func (s *recordScreen[R]) title() string {
	if s.ownerLabel != "" {
		return fmt.Sprintf("%s: %s", s.ownerLabel, s.kind.Title)
	}
	return s.kind.Title
}

// start restores the persisted pane width and selection and issues the
// first fetch.
func (s *recordScreen[R]) start() tea.Cmd {
	var pct float64
	var selected string
	s.withRoute(func(r *uistate.RouteState) {
		pct = uistate.RouteValue(r, routeKeyPaneWidth, s.split.Config().DefaultPct, uistate.ScopePath)
		selected = uistate.RouteValue(r, routeKeySelected, "", uistate.ScopePath)
	})
	s.split.SetLeftPercent(pct)
	if selected != "" {
		s.restore.SelectID(selected)
		s.split.Open()
	}
	return s.refetch()
}

func (s *recordScreen[R]) close() {
	s.endDrag(dragEndClose)
	s.cancel()
}

func (s *recordScreen[R]) busy() bool {
	return s.list.Loading() || s.form.Submitting() || s.pending > 0
}

// withRoute runs fn with the route positioned at this screen's path, so
// path-scoped values land under the right key even while another screen is
// on top.
func (s *recordScreen[R]) withRoute(fn func(*uistate.RouteState)) {
	r := s.m.route
	prev := r.Path()
	r.Navigate(s.path)
	fn(r)
	r.Navigate(prev)
}

func (s *recordScreen[R]) setRoute(key string, value interface{}) {
	s.withRoute(func(r *uistate.RouteState) { r.Set(key, value, uistate.ScopePath) })
}

func (s *recordScreen[R]) clearRoute(key string) {
	s.withRoute(func(r *uistate.RouteState) { r.Clear(key, uistate.ScopePath) })
}

// run executes task off the update loop and routes its result back to this
// screen. Results arriving after the screen closed are dropped.
func (s *recordScreen[R]) run(op string, task func(context.Context) interface{}) tea.Cmd {
	target := s.id
	return s.m.bus.Run(s.ctx, target+":"+op, s.kind.Title, func(ctx context.Context) tea.Msg {
		return screenMsg{target: target, msg: task(ctx)}
	})
}

func (s *recordScreen[R]) refetch() tea.Cmd {
	ticket := s.list.BeginRefetch()
	events.List.Refetch(s.id, ticket.Seq, ticket.Filter.OwnerID)
	src := s.src
	return s.run("list", func(ctx context.Context) interface{} {
		records, err := record.ListAll(ctx, src, ticket.Filter, record.DefaultListLimit)
		return listLoadedMsg[R]{seq: ticket.Seq, records: records, err: err}
	})
}

func (s *recordScreen[R]) handleResult(msg interface{}) tea.Cmd {
	switch msg := msg.(type) {
	case listLoadedMsg[R]:
		return s.applyList(msg)
	case selectionFetchedMsg[R]:
		return s.applyFetched(msg)
	case submitDoneMsg[R]:
		return s.applySubmit(msg)
	case deleteDoneMsg:
		return s.applyDelete(msg)
	case exportDoneMsg:
		s.pending--
		if msg.err != nil {
			s.m.errMsg = msg.err.Error()
			return nil
		}
		events.List.Export(s.id, msg.path, msg.rows)
		s.m.setInfo(fmt.Sprintf("Exported %d rows to %s", msg.rows, msg.path))
	case pdfDoneMsg:
		s.pending--
		if msg.err != nil {
			s.m.errMsg = pdfError(msg.err)
			return nil
		}
		s.m.setInfo(fmt.Sprintf("Saved %s", msg.path))
	}
	return nil
}

func (s *recordScreen[R]) applyList(msg listLoadedMsg[R]) tea.Cmd {
	err := s.list.CompleteRefetch(msg.seq, msg.records, msg.err)
	if errors.Is(err, uistate.ErrStaleResponse) {
		events.List.Stale(s.id, msg.seq)
		return nil
	}
	if err != nil {
		events.List.Failed(s.id, err)
		return nil
	}
	events.List.Loaded(s.id, msg.seq, s.list.Len())
	s.restore.Invalidate()
	s.clampCursor()
	return s.resolveSelection()
}

// resolveSelection looks the selected id up in the collection and fetches
// it when it is missing.
func (s *recordScreen[R]) resolveSelection() tea.Cmd {
	id, need := s.restore.Resolve(s.list.Collection())
	if !need {
		if s.restore.SelectedID() != "" {
			s.split.Open()
		}
		s.syncDetail()
		return nil
	}
	events.Selection.Fetch(s.id, id)
	src := s.src
	return s.run("get", func(ctx context.Context) interface{} {
		rec, err := src.Get(ctx, id)
		return selectionFetchedMsg[R]{id: id, rec: rec, err: err}
	})
}

func (s *recordScreen[R]) applyFetched(msg selectionFetchedMsg[R]) tea.Cmd {
	if !s.restore.CompleteFetch(msg.id, msg.rec, msg.err) {
		return nil
	}
	if msg.err != nil {
		events.Selection.Cleared(s.id, msg.id, msg.err)
		s.closeDetail()
		if !record.IsNotFound(msg.err) {
			s.m.errMsg = fmt.Sprintf("Failed to load %s: %v", msg.id, msg.err)
		}
		return nil
	}
	s.split.Open()
	s.syncDetail()
	return nil
}

func (s *recordScreen[R]) selectRecord(rec R) {
	id := rec.RecordID()
	if id != s.restore.SelectedID() {
		events.Selection.Select(s.id, id)
	}
	s.restore.Select(rec)
	if s.split.Mode() != uistate.PaneSplit {
		events.Pane.Open(s.id, id)
	}
	s.split.Open()
	s.setRoute(routeKeySelected, id)
	s.syncDetail()
}

// closeDetail clears the selection and collapses the split.
func (s *recordScreen[R]) closeDetail() {
	s.endDrag(dragEndClose)
	if s.split.Mode() == uistate.PaneSplit {
		events.Pane.Close(s.id)
	}
	s.restore.Clear()
	s.split.Close()
	s.clearRoute(routeKeySelected)
	s.detail.clear()
}

func (s *recordScreen[R]) syncDetail() {
	rec, ok := s.restore.Selected()
	if !ok {
		s.detail.clear()
		return
	}
	var body string
	if s.kind.Detail != nil {
		body = s.kind.Detail(rec, s.m.directory)
	} else {
		body = rec.RecordID()
	}
	s.detail.setContent(rec.RecordID(), body)
}

func (s *recordScreen[R]) selectedLabel() (string, string, bool) {
	rec, ok := s.restore.Selected()
	if !ok {
		return "", "", false
	}
	return rec.RecordID(), s.kind.RecordLabel(rec, s.m.directory), true
}

func (s *recordScreen[R]) directoryUpdated() {
	s.list.Refilter()
	s.clampCursor()
	s.syncDetail()
}

func (s *recordScreen[R]) pageRows() []R {
	rows, _ := s.list.Page()
	return rows
}

func (s *recordScreen[R]) clampCursor() {
	s.nav.EnsureVisible(len(s.pageRows()), s.bodyRows())
}

func (s *recordScreen[R]) endDrag(reason dragEndReason) {
	if !s.split.EndDrag() {
		return
	}
	pct := s.split.LeftPercent()
	s.setRoute(routeKeyPaneWidth, pct)
	events.Pane.DragEnd(s.id, paneReason(reason), pct)
}

func paneReason(reason dragEndReason) events.PaneReason {
	switch reason {
	case dragEndBlur:
		return events.PaneReasonBlur
	case dragEndClose:
		return events.PaneReasonClose
	default:
		return events.PaneReasonRelease
	}
}

func pdfError(err error) string {
	if errors.Is(err, record.ErrNotSigned) {
		return "Report is not signed; the PDF is not available yet"
	}
	return fmt.Sprintf("PDF download failed: %v", err)
}

func lowerTitle(title string) string {
	return strings.ToLower(title)
}

package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/menu"
	"github.com/atomicstack/ohsdash/internal/record"
	tea "github.com/charmbracelet/bubbletea"
)

// memSource is an in-memory record.Source. owner, when set, extracts the
// employee id used for owner-scoped lists.
type memSource[R record.Record] struct {
	mu      sync.Mutex
	records []R
	owner   func(R) string
	seq     int
	listErr error
	lists   int
}

func newMemSource[R record.Record](owner func(R) string, records ...R) *memSource[R] {
	return &memSource[R]{records: records, owner: owner}
}

func (s *memSource[R]) List(_ context.Context, filter record.Filter, page, limit int) (record.Page[R], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return record.Page[R]{}, s.listErr
	}
	var matched []R
	for _, r := range s.records {
		if filter.OwnerID != "" && s.owner != nil && s.owner(r) != filter.OwnerID {
			continue
		}
		matched = append(matched, r)
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return record.Page[R]{
		Records:    append([]R(nil), matched[start:end]...),
		Pagination: record.NewPageInfo(page, limit, len(matched)),
	}, nil
}

func (s *memSource[R]) indexOf(id string) int {
	for i, r := range s.records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}

func (s *memSource[R]) Get(_ context.Context, id string) (R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], nil
	}
	var zero R
	return zero, record.ErrNotFound
}

func (s *memSource[R]) Create(_ context.Context, fields record.Fields) (R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	fields = fields.Clone()
	fields["id"] = fmt.Sprintf("new-%d", s.seq)
	rec, err := record.Decode[R](fields)
	if err != nil {
		return rec, err
	}
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *memSource[R]) Update(_ context.Context, id string, fields record.Fields) (R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		var zero R
		return zero, record.ErrNotFound
	}
	return s.replace(i, fields)
}

func (s *memSource[R]) replace(i int, patch record.Fields) (R, error) {
	current, err := record.Encode(s.records[i])
	if err != nil {
		var zero R
		return zero, err
	}
	merged := current.Merge(patch)
	merged["id"] = s.records[i].RecordID()
	rec, err := record.Decode[R](merged)
	if err != nil {
		return rec, err
	}
	s.records[i] = rec
	return rec, nil
}

func (s *memSource[R]) PartialUpdate(_ context.Context, id string, fields record.Fields) (record.PartialResult[R], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return record.PartialResult[R]{}, record.ErrNotFound
	}
	current, err := record.Encode(s.records[i])
	if err != nil {
		return record.PartialResult[R]{}, err
	}
	changed := record.ChangedFields(current, fields)
	if len(changed) == 0 {
		return record.PartialResult[R]{Record: s.records[i], Unchanged: true}, nil
	}
	rec, err := s.replace(i, fields.Subset(changed))
	if err != nil {
		return record.PartialResult[R]{}, err
	}
	return record.PartialResult[R]{Record: rec, ChangedFields: changed}, nil
}

func (s *memSource[R]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return record.ErrNotFound
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

func (s *memSource[R]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type fakeDocuments struct {
	requested []string
}

func (d *fakeDocuments) ReportPDF(_ context.Context, id string) ([]byte, error) {
	d.requested = append(d.requested, id)
	return []byte("%PDF-1.4 " + id), nil
}

func testEmployees() *memSource[medical.Employee] {
	return newMemSource[medical.Employee](nil,
		medical.Employee{ID: "e1", EmployeeNumber: "E1", FirstName: "Ada", Surname: "Lovelace", Email: "ada@example.com", OrganizationID: "org-1", Active: true},
		medical.Employee{ID: "e2", EmployeeNumber: "E2", FirstName: "Grace", Surname: "Hopper", Active: false},
	)
}

func testReports() *memSource[medical.MedicalReport] {
	return newMemSource(func(r medical.MedicalReport) string { return r.EmployeeID },
		medical.MedicalReport{ID: "r1", EmployeeID: "e1", ReportType: "periodic", ExaminationDate: "2024-01-10", SignOffStatus: medical.SignOffDraft},
		medical.MedicalReport{ID: "r2", EmployeeID: "e1", ReportType: "exit", ExaminationDate: "2024-02-11", SignOffStatus: medical.SignOffSigned},
		medical.MedicalReport{ID: "r3", EmployeeID: "e2", ReportType: "periodic", ExaminationDate: "2024-03-12", SignOffStatus: medical.SignOffPending},
	)
}

func newTestModel(t *testing.T, sources Sources, opts Options) *Model {
	t.Helper()
	if opts.Width == 0 {
		opts.Width = 120
	}
	if opts.Height == 0 {
		opts.Height = 20
	}
	return NewModel(sources, nil, opts)
}

func typeText(h *Harness, text string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func openKind(t *testing.T, h *Harness, kind string) {
	t.Helper()
	h.Send(menu.OpenKind{Kind: kind})
	if h.Model().currentRecord() == nil {
		t.Fatalf("expected %s screen on top, err=%q", kind, h.Model().errMsg)
	}
}

func employeeScreen(t *testing.T, m *Model) *recordScreen[medical.Employee] {
	t.Helper()
	s, ok := m.currentScreen().(*recordScreen[medical.Employee])
	if !ok {
		t.Fatalf("expected employee screen on top, got %T", m.currentScreen())
	}
	return s
}

func reportScreen(t *testing.T, m *Model) *recordScreen[medical.MedicalReport] {
	t.Helper()
	s, ok := m.currentScreen().(*recordScreen[medical.MedicalReport])
	if !ok {
		t.Fatalf("expected report screen on top, got %T", m.currentScreen())
	}
	return s
}

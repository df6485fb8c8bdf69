package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/ohsdash/internal/backend"
	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/export"
	"github.com/atomicstack/ohsdash/internal/medical"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func TestEnterOnSectionMenuOpensRecordScreen(t *testing.T) {
	employees := testEmployees()
	h := NewHarness(newTestModel(t, Sources{Employees: employees}, Options{}))

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	s := employeeScreen(t, h.Model())
	if got := s.list.Len(); got != 2 {
		t.Fatalf("expected 2 employees loaded, got %d", got)
	}
	if h.Model().loading {
		t.Fatalf("expected loading flag cleared after opening the screen")
	}
	if got := h.Model().Route().Path(); got != "/employees" {
		t.Fatalf("expected route /employees, got %q", got)
	}
	view := h.View()
	for _, want := range []string{"ohsdash → Employees", "Ada Lovelace", "Grace Hopper", "2 records"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestMissingSourceReportsError(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{}, Options{}))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Model().currentRecord() != nil {
		t.Fatalf("expected no record screen without a source")
	}
	if !strings.Contains(h.Model().errMsg, "no record source") {
		t.Fatalf("expected missing source error, got %q", h.Model().errMsg)
	}
}

func TestSearchFiltersRows(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{}))
	openKind(t, h, medical.Employees.ID)

	typeText(h, "grace")

	s := employeeScreen(t, h.Model())
	if got := s.list.PageInfo().Total; got != 1 {
		t.Fatalf("expected 1 match, got %d", got)
	}
	view := h.View()
	if strings.Contains(view, "Lovelace") || !strings.Contains(view, "Hopper") {
		t.Fatalf("expected only Grace Hopper listed:\n%s", view)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := s.search.Value; got != "grac" {
		t.Fatalf("expected search %q, got %q", "grac", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	if got := s.list.PageInfo().Total; got != 2 {
		t.Fatalf("expected filter cleared, got %d rows", got)
	}
}

func TestStatusFilterCycles(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	if got := s.list.StatusFilter(); got != "active" {
		t.Fatalf("expected status active, got %q", got)
	}
	if got := s.list.PageInfo().Total; got != 1 {
		t.Fatalf("expected 1 active employee, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	h.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := s.list.StatusFilter(); got != "inactive" {
		t.Fatalf("expected status inactive after cycling back, got %q", got)
	}
	if !strings.Contains(h.View(), "status: inactive") {
		t.Fatalf("expected status in footer:\n%s", h.View())
	}
}

func TestSelectOpensDetailAndPersistsSelection(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if s.split.Mode() != uistate.PaneSplit {
		t.Fatalf("expected split pane after selecting")
	}
	if got := s.restore.SelectedID(); got != "e1" {
		t.Fatalf("expected e1 selected, got %q", got)
	}
	if got := uistate.RouteValue(h.Model().Route(), routeKeySelected, "", uistate.ScopePath); got != "e1" {
		t.Fatalf("expected selection stored on the route, got %q", got)
	}
	if !strings.Contains(h.View(), "ada@example.com") {
		t.Fatalf("expected detail pane to show the email:\n%s", h.View())
	}

	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if got := s.restore.SelectedID(); got != "e2" {
		t.Fatalf("expected cursor move to follow selection, got %q", got)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if s.split.Mode() != uistate.PaneSingle || s.restore.SelectedID() != "" {
		t.Fatalf("expected esc to close the detail pane")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if len(h.Model().stack) != 1 {
		t.Fatalf("expected second esc to pop the screen, stack=%d", len(h.Model().stack))
	}
	if got := h.Model().Route().Path(); got != "/" {
		t.Fatalf("expected route back at root, got %q", got)
	}
}

func TestSelectionRestoredWhenScreenReopens(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{}))
	openKind(t, h, medical.Employees.ID)
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	width := employeeScreen(t, h.Model()).split.LeftPercent()
	h.Model().popScreen()

	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())
	if got := s.restore.SelectedID(); got != "e2" {
		t.Fatalf("expected e2 restored, got %q", got)
	}
	if s.split.Mode() != uistate.PaneSplit {
		t.Fatalf("expected restored selection to open the split")
	}
	if got := s.split.LeftPercent(); got != width {
		t.Fatalf("expected pane width %.1f restored, got %.1f", width, got)
	}
}

func TestCreateEmployee(t *testing.T) {
	employees := testEmployees()
	h := NewHarness(newTestModel(t, Sources{Employees: employees}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	if !s.form.Open() || s.dialog == nil {
		t.Fatalf("expected create dialog open")
	}
	if !strings.Contains(h.View(), "New Employees") {
		t.Fatalf("expected dialog title in view:\n%s", h.View())
	}
	typeText(h, "E3")
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	typeText(h, "Alan")
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	typeText(h, "Turing")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	if s.form.Open() {
		t.Fatalf("expected dialog closed after save, err=%v", s.form.Err())
	}
	if got := employees.len(); got != 3 {
		t.Fatalf("expected 3 employees in source, got %d", got)
	}
	if got := s.list.Len(); got != 3 {
		t.Fatalf("expected refetched list of 3, got %d", got)
	}
	rec, ok := s.restore.Selected()
	if !ok || rec.FullName() != "Alan Turing" {
		t.Fatalf("expected new employee selected, got %+v", rec)
	}
	if got := h.Model().currentInfo(); got != "Saved Alan Turing (E3)" {
		t.Fatalf("unexpected info %q", got)
	}
}

func TestCreateWithMissingFieldsKeepsDialog(t *testing.T) {
	employees := testEmployees()
	h := NewHarness(newTestModel(t, Sources{Employees: employees}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	if !s.form.Open() {
		t.Fatalf("expected dialog to stay open")
	}
	if s.form.Err() == nil {
		t.Fatalf("expected a validation error")
	}
	if got := employees.len(); got != 2 {
		t.Fatalf("expected no create, source has %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if s.form.Open() || s.dialog != nil {
		t.Fatalf("expected esc to cancel the dialog")
	}
}

func TestEditSaves(t *testing.T) {
	employees := testEmployees()
	h := NewHarness(newTestModel(t, Sources{Employees: employees}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlE})
	if s.form.Mode() != uistate.FormEdit || s.form.ID() != "e1" {
		t.Fatalf("expected edit of e1, got %s %q", s.form.Mode(), s.form.ID())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	typeText(h, "Augusta")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	rec, err := employees.Get(s.ctx, "e1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.FirstName != "Augusta" || rec.Surname != "Lovelace" {
		t.Fatalf("unexpected record after edit: %+v", rec)
	}
}

func TestSectionEditWithoutChanges(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlT})
	if lvl := h.Model().currentLevel(); lvl == nil || lvl.ID != "sections" {
		t.Fatalf("expected section menu on top, got %T", h.Model().currentScreen())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Model().currentScreen() != s {
		t.Fatalf("expected section menu closed")
	}
	if s.form.Mode() != uistate.FormSection || s.form.Section() != "contact" {
		t.Fatalf("expected contact section form, got %s %q", s.form.Mode(), s.form.Section())
	}
	if len(s.dialog.specs) != 2 {
		t.Fatalf("expected 2 contact fields, got %d", len(s.dialog.specs))
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if s.form.Open() {
		t.Fatalf("expected no-op submit to close the dialog")
	}
	if got := h.Model().currentInfo(); got != "No changes" {
		t.Fatalf("expected no changes info, got %q", got)
	}
}

func TestPickerSetsFormValue(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	h.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	if spec, _ := s.dialog.focused(); spec.Name != "active" {
		t.Fatalf("expected focus on active, got %q", spec.Name)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	lvl := h.Model().currentLevel()
	if lvl == nil || lvl.ID != "picker" {
		t.Fatalf("expected picker menu, got %T", h.Model().currentScreen())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if h.Model().currentScreen() != s {
		t.Fatalf("expected picker closed")
	}
	if got := s.form.Value("active"); got != true {
		t.Fatalf("expected active=true, got %#v", got)
	}
	if got := s.dialog.picked["active"]; got != "yes" {
		t.Fatalf("expected picked label yes, got %q", got)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	employees := testEmployees()
	h := NewHarness(newTestModel(t, Sources{Employees: employees}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlD})
	if got := h.Model().currentInfo(); got != "Delete Ada Lovelace (E1)? (y/n)" {
		t.Fatalf("unexpected prompt %q", got)
	}
	typeText(h, "n")
	if got := employees.len(); got != 2 {
		t.Fatalf("expected delete declined, source has %d", got)
	}
	if s.search.Value != "" {
		t.Fatalf("expected confirmation key not to reach the search prompt")
	}

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlD})
	typeText(h, "y")
	if got := employees.len(); got != 1 {
		t.Fatalf("expected delete, source has %d", got)
	}
	if s.restore.SelectedID() != "" || s.split.Mode() != uistate.PaneSingle {
		t.Fatalf("expected deleted selection cleared")
	}
	if got := s.list.Len(); got != 1 {
		t.Fatalf("expected refetched list of 1, got %d", got)
	}
	if got := h.Model().currentInfo(); got != "Deleted Ada Lovelace (E1)" {
		t.Fatalf("unexpected info %q", got)
	}
}

func TestStaleListResponseIsDropped(t *testing.T) {
	employees := testEmployees()
	h := NewHarness(newTestModel(t, Sources{Employees: employees}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	first := s.refetch()()
	if _, err := employees.Create(s.ctx, map[string]interface{}{"employee_number": "E9", "first_name": "Late", "surname": "Comer"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := s.refetch()()

	h.Send(second)
	h.Send(first)
	if got := s.list.Len(); got != 3 {
		t.Fatalf("expected newest response kept, got %d records", got)
	}
	if s.list.Loading() {
		t.Fatalf("expected loading cleared")
	}
}

func TestListErrorKeepsPreviousRows(t *testing.T) {
	employees := testEmployees()
	h := NewHarness(newTestModel(t, Sources{Employees: employees}, Options{}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	employees.listErr = os.ErrDeadlineExceeded
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlR})

	if got := s.list.Len(); got != 2 {
		t.Fatalf("expected previous rows kept, got %d", got)
	}
	if !strings.Contains(h.View(), "Error:") {
		t.Fatalf("expected error in status line:\n%s", h.View())
	}
}

func TestScopedScreenFromRecordsMenu(t *testing.T) {
	reports := testReports()
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees(), Reports: reports}, Options{}))
	openKind(t, h, medical.Employees.ID)
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlG})
	if lvl := h.Model().currentLevel(); lvl == nil || lvl.ID != "records" {
		t.Fatalf("expected records menu, got %T", h.Model().currentScreen())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	s := reportScreen(t, h.Model())
	if len(h.Model().stack) != 3 {
		t.Fatalf("expected menu, employees and reports on the stack, got %d", len(h.Model().stack))
	}
	if s.ownerID != "e1" {
		t.Fatalf("expected reports scoped to e1, got %q", s.ownerID)
	}
	if got := s.list.Len(); got != 2 {
		t.Fatalf("expected 2 reports for e1, got %d", got)
	}
	if got := h.Model().Route().Path(); got != "/employees/e1/reports" {
		t.Fatalf("unexpected route %q", got)
	}
	if !strings.Contains(h.View(), "Ada Lovelace (E1): Medical reports") {
		t.Fatalf("expected owner in header:\n%s", h.View())
	}

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	if got := s.form.Value("employee_id"); got != "e1" {
		t.Fatalf("expected owner prefilled on create, got %#v", got)
	}
}

func TestExportWritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{DownloadDir: dir}))
	openKind(t, h, medical.Employees.ID)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlX})

	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one workbook, got %v (%v)", matches, err)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	table, err := export.Read(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table.Rows) != 2 || table.Headers[1] != "Name" {
		t.Fatalf("unexpected export %+v", table)
	}
	if got := h.Model().currentInfo(); !strings.HasPrefix(got, "Exported 2 rows to ") {
		t.Fatalf("unexpected info %q", got)
	}
}

func TestPDFDownloadNeedsSignedReport(t *testing.T) {
	dir := t.TempDir()
	docs := &fakeDocuments{}
	h := NewHarness(newTestModel(t, Sources{Reports: testReports(), Documents: docs}, Options{DownloadDir: dir}))
	openKind(t, h, medical.Reports.ID)
	s := reportScreen(t, h.Model())

	s.nav.Index = indexOfRow(s.pageRows(), "r1")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlP})
	if !strings.Contains(h.Model().errMsg, "not signed") {
		t.Fatalf("expected unsigned error, got %q", h.Model().errMsg)
	}
	if len(docs.requested) != 0 {
		t.Fatalf("expected no document request for a draft")
	}

	h.Model().errMsg = ""
	s.nav.Index = indexOfRow(s.pageRows(), "r2")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlP})
	data, err := os.ReadFile(filepath.Join(dir, "report-r2.pdf"))
	if err != nil {
		t.Fatalf("expected saved pdf: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("unexpected pdf content %q", data)
	}
}

func TestDirectoryUpdateRefreshesNames(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{}))
	openKind(t, h, medical.Employees.ID)
	if !strings.Contains(h.View(), "org-1") {
		t.Fatalf("expected raw organization id before the directory loads:\n%s", h.View())
	}

	h.Send(backendEventMsg{event: backend.Event{
		Kind:    directory.KindOrganization,
		Entries: []directory.Entry{{ID: "org-1", Name: "Acme Mining"}},
	}})

	if !strings.Contains(h.View(), "Acme Mining") {
		t.Fatalf("expected organization name after update:\n%s", h.View())
	}
}

func TestPageKeysMoveBetweenPages(t *testing.T) {
	employees := newMemSource[medical.Employee](nil)
	for i := 0; i < 5; i++ {
		employees.records = append(employees.records, medical.Employee{ID: string(rune('a' + i)), FirstName: "Worker", Surname: string(rune('A' + i))})
	}
	h := NewHarness(newTestModel(t, Sources{Employees: employees}, Options{PageLimit: 2}))
	openKind(t, h, medical.Employees.ID)
	s := employeeScreen(t, h.Model())

	h.Send(tea.KeyMsg{Type: tea.KeyPgDown})
	if got := s.list.PageNumber(); got != 2 {
		t.Fatalf("expected page 2, got %d", got)
	}
	if !strings.Contains(h.View(), "page 2/3") {
		t.Fatalf("expected page indicator:\n%s", h.View())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyPgUp})
	h.Send(tea.KeyMsg{Type: tea.KeyPgUp})
	if got := h.Model().currentInfo(); got != "Already on the first page" {
		t.Fatalf("unexpected info %q", got)
	}
}

func indexOfRow[R interface{ RecordID() string }](rows []R, id string) int {
	for i, r := range rows {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}

func TestDividerDragClampsAndEndsOnBlur(t *testing.T) {
	h := NewHarness(newTestModel(t, Sources{Employees: testEmployees()}, Options{}))
	openKind(t, h, medical.Employees.ID)
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	s := employeeScreen(t, h.Model())
	h.View()

	handle := s.split.HandleX()
	if handle != 60 {
		t.Fatalf("expected divider at column 60, got %d", handle)
	}
	h.Send(tea.MouseMsg{X: handle, Y: recordBodyTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if !s.split.Dragging() {
		t.Fatalf("expected press on the divider to start a drag")
	}
	h.Send(tea.MouseMsg{X: 6, Y: recordBodyTop, Action: tea.MouseActionMotion})
	if got := s.split.LeftPercent(); got != 25 {
		t.Fatalf("expected drag below the minimum to clamp to 25, got %.1f", got)
	}
	h.Send(tea.MouseMsg{X: 114, Y: recordBodyTop, Action: tea.MouseActionMotion})
	if got := s.split.LeftPercent(); got != 75 {
		t.Fatalf("expected drag above the maximum to clamp to 75, got %.1f", got)
	}
	h.Send(tea.MouseMsg{X: 114, Y: recordBodyTop, Action: tea.MouseActionRelease})
	if s.split.Dragging() {
		t.Fatalf("expected release to end the drag")
	}
	if got := uistate.RouteValue(h.Model().Route(), routeKeyPaneWidth, 0.0, uistate.ScopePath); got != 75 {
		t.Fatalf("expected width stored on the route, got %.1f", got)
	}

	h.Send(tea.MouseMsg{X: s.split.HandleX(), Y: recordBodyTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	h.Send(tea.BlurMsg{})
	if s.split.Dragging() {
		t.Fatalf("expected window blur to end the drag")
	}
}

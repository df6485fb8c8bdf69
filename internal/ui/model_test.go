package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/ohsdash/internal/backend"
	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

var errTest = errors.New("backend unavailable")

func TestMenuHeaderRootLevel(t *testing.T) {
	m := newTestModel(t, Sources{}, Options{})
	if got := m.menuHeader(); got != defaultRootTitle {
		t.Fatalf("expected %q, got %q", defaultRootTitle, got)
	}
}

func TestMenuHeaderNestedLevels(t *testing.T) {
	m := newTestModel(t, Sources{}, Options{})
	m.stack = append(m.stack, &menuScreen{level: newLevel("records", "Ada Lovelace", nil, nil)})
	m.stack = append(m.stack, &menuScreen{level: newLevel("picker", "cost_center", nil, nil)})
	want := "ohsdash → Ada Lovelace → cost center"
	if got := m.menuHeader(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRootSectionOpensRecordScreen(t *testing.T) {
	employees := testEmployees()
	m := newTestModel(t, Sources{Employees: employees}, Options{RootSection: "Employees"})
	if m.currentRecord() == nil {
		t.Fatalf("expected employees screen on top")
	}
	if m.rootTitle != "Employees" {
		t.Fatalf("expected root title Employees, got %q", m.rootTitle)
	}
	if employees.lists != 0 {
		t.Fatalf("expected the first fetch to wait for Init")
	}
	h := NewHarness(m)
	h.processCmd(m.startup)
	if got := employeeScreen(t, m).list.Len(); got != 2 {
		t.Fatalf("expected startup fetch to load 2 rows, got %d", got)
	}
}

func TestUnknownRootSection(t *testing.T) {
	m := newTestModel(t, Sources{}, Options{RootSection: "payroll"})
	if m.currentRecord() != nil {
		t.Fatalf("expected to stay on the section menu")
	}
	if !strings.Contains(m.errMsg, "Unknown root section") {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
}

func TestHandlerForPointerMessages(t *testing.T) {
	m := newTestModel(t, Sources{}, Options{})
	if m.handlerFor(&tea.WindowSizeMsg{}) == nil {
		t.Fatalf("expected pointer messages to resolve to their value handler")
	}
	if m.handlerFor(struct{}{}) != nil {
		t.Fatalf("expected no handler for unknown messages")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel(Sources{}, nil, Options{Width: 80})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	if m.width != 80 || m.height != 30 {
		t.Fatalf("expected width pinned at 80 and height 30, got %dx%d", m.width, m.height)
	}
}

func TestActionResultSetsInfoAndError(t *testing.T) {
	m := newTestModel(t, Sources{}, Options{})
	m.loading = true
	m.Update(menu.ActionResult{Info: "Copied id of Ada"})
	if m.loading {
		t.Fatalf("expected loading cleared")
	}
	if got := m.currentInfo(); got != "Copied id of Ada" {
		t.Fatalf("unexpected info %q", got)
	}
	m.Update(menu.ActionResult{Err: errTest})
	if m.errMsg != errTest.Error() || m.currentInfo() != "" {
		t.Fatalf("expected error to replace info, err=%q info=%q", m.errMsg, m.currentInfo())
	}
}

func TestInfoExpires(t *testing.T) {
	m := newTestModel(t, Sources{}, Options{})
	now := m.now()
	m.now = func() time.Time { return now }
	m.setInfo("hello")
	m.now = func() time.Time { return now.Add(infoTTL + time.Second) }
	if got := m.currentInfo(); got != "" {
		t.Fatalf("expected info to expire, got %q", got)
	}
}

func TestBackendErrorShownAsWarning(t *testing.T) {
	m := newTestModel(t, Sources{}, Options{})
	m.Update(backendEventMsg{event: backend.Event{Kind: directory.KindSite, Err: errTest}})
	if ok, msg := m.hasBackendIssue(); !ok || msg != errTest.Error() {
		t.Fatalf("expected backend issue, got %v %q", ok, msg)
	}
	if !strings.Contains(m.View(), errTest.Error()) {
		t.Fatalf("expected warning in view:\n%s", m.View())
	}
	m.Update(backendEventMsg{event: backend.Event{Kind: directory.KindSite}})
	if ok, _ := m.hasBackendIssue(); ok {
		t.Fatalf("expected issue cleared after a good poll")
	}
}

func TestEscapeAtRootQuits(t *testing.T) {
	m := newTestModel(t, Sources{}, Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !yieldsQuit(cmd) {
		t.Fatalf("expected esc on the section menu to quit")
	}
}

func TestCtrlCQuitsFromRecordScreen(t *testing.T) {
	m := newTestModel(t, Sources{Employees: testEmployees()}, Options{})
	h := NewHarness(m)
	openKind(t, h, "employees")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !yieldsQuit(cmd) {
		t.Fatalf("expected ctrl+c to quit")
	}
}

// yieldsQuit runs cmd, descending into batches, and reports whether any
// command produced tea.QuitMsg.
func yieldsQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if yieldsQuit(c) {
				return true
			}
		}
	}
	return false
}

package ui

import (
	"fmt"

	"github.com/atomicstack/ohsdash/internal/logging/events"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const paneNudgeStep = 5

// Rows of a record screen, counted from the top of the terminal.
const (
	recordHeadingRow = 2
	recordBodyTop    = 3
	menuBodyTop      = 2
)

func (s *recordScreen[R]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.form.Open() && s.dialog != nil {
		return s.handleFormKey(msg)
	}
	if s.confirmDelete != "" {
		return s.handleConfirmKey(msg)
	}
	rows := s.pageRows()
	k := recordKeys
	switch {
	case key.Matches(msg, k.back):
		if s.split.Mode() == uistate.PaneSplit {
			s.closeDetail()
			return nil
		}
		return s.m.popScreen()
	case key.Matches(msg, k.selectRow):
		if len(rows) == 0 {
			return nil
		}
		s.nav.Clamp(len(rows))
		s.selectRecord(rows[s.nav.Index])
	case key.Matches(msg, k.up):
		s.moveCursor(func(n int) bool { return s.nav.Move(-1, n) })
	case key.Matches(msg, k.down):
		s.moveCursor(func(n int) bool { return s.nav.Move(1, n) })
	case key.Matches(msg, k.home):
		s.moveCursor(s.nav.Home)
	case key.Matches(msg, k.end):
		s.moveCursor(s.nav.End)
	case key.Matches(msg, k.nextPage):
		s.changePage(s.list.NextPage, "Already on the last page")
	case key.Matches(msg, k.prevPage):
		s.changePage(s.list.PrevPage, "Already on the first page")
	case key.Matches(msg, k.nextStatus):
		s.cycleStatus(1)
	case key.Matches(msg, k.prevStatus):
		s.cycleStatus(-1)
	case key.Matches(msg, k.create):
		return s.openCreate()
	case key.Matches(msg, k.edit):
		return s.openEdit()
	case key.Matches(msg, k.sections):
		return s.openSectionMenu()
	case key.Matches(msg, k.remove):
		s.askDelete()
	case key.Matches(msg, k.export):
		return s.export()
	case key.Matches(msg, k.copyID):
		id, label, ok := s.selectedLabel()
		if !ok {
			s.m.setInfo("Select a record first")
			return nil
		}
		return s.m.copyToClipboard(id, label)
	case key.Matches(msg, k.pdf):
		return s.downloadPDF()
	case key.Matches(msg, k.records):
		return s.openRecordsMenu()
	case key.Matches(msg, k.refresh):
		s.m.errMsg = ""
		s.restore.Invalidate()
		return s.refetch()
	case key.Matches(msg, k.narrow):
		s.nudge(-paneNudgeStep)
	case key.Matches(msg, k.widen):
		s.nudge(paneNudgeStep)
	case key.Matches(msg, k.resetPane):
		pct := s.split.Reset()
		s.clearRoute(routeKeyPaneWidth)
		events.Pane.Reset(s.id, pct)
	case key.Matches(msg, k.scrollUp):
		s.detail.scroll(-1)
	case key.Matches(msg, k.scrollDown):
		s.detail.scroll(1)
	default:
		s.editSearch(msg)
	}
	return nil
}

// moveCursor moves the row cursor. While the detail pane is open the row
// under the cursor becomes the selection.
func (s *recordScreen[R]) moveCursor(move func(n int) bool) {
	rows := s.pageRows()
	if len(rows) == 0 {
		return
	}
	if !move(len(rows)) {
		return
	}
	s.nav.EnsureVisible(len(rows), s.bodyRows())
	if s.split.Mode() == uistate.PaneSplit {
		s.selectRecord(rows[s.nav.Index])
	}
}

func (s *recordScreen[R]) changePage(step func() bool, refused string) {
	if !step() {
		s.m.setInfo(refused)
		return
	}
	info := s.list.PageInfo()
	events.List.Page(s.id, info.Page, info.TotalPages)
	s.nav = uistate.ListCursor{}
}

func (s *recordScreen[R]) statusCycle() []string {
	return append([]string{""}, s.kind.Statuses...)
}

func (s *recordScreen[R]) cycleStatus(delta int) {
	cycle := s.statusCycle()
	if len(cycle) <= 1 {
		return
	}
	s.status = (s.status + delta + len(cycle)) % len(cycle)
	s.list.SetStatusFilter(cycle[s.status])
	s.nav = uistate.ListCursor{}
	events.List.Status(s.id, cycle[s.status])
}

func (s *recordScreen[R]) editSearch(msg tea.KeyMsg) {
	before := s.search.Pos()
	edit := applyTextKey(s.id, &s.search, msg)
	if edit == editNone {
		return
	}
	s.m.noteFilterCursorChange(before, s.search.Pos())
	if edit != editValue {
		return
	}
	s.list.SetSearchTerm(s.search.Value)
	s.nav = uistate.ListCursor{}
	s.m.forceClearInfo()
	events.List.Search(s.id, s.search.Value, s.list.PageInfo().Total)
}

func (s *recordScreen[R]) nudge(delta float64) {
	if s.split.Mode() != uistate.PaneSplit {
		return
	}
	before := s.split.LeftPercent()
	pct := s.split.Nudge(delta)
	if pct == before {
		return
	}
	s.setRoute(routeKeyPaneWidth, pct)
	events.Pane.Resize(s.id, pct)
}

func (s *recordScreen[R]) askDelete() {
	id, label, ok := s.selectedLabel()
	if !ok {
		s.m.setInfo("Select a record first")
		return
	}
	s.confirmDelete = id
	s.m.setInfo(fmt.Sprintf("Delete %s? (y/n)", label))
}

func (s *recordScreen[R]) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	id := s.confirmDelete
	s.confirmDelete = ""
	s.m.forceClearInfo()
	if msg.String() != "y" && msg.String() != "Y" {
		return nil
	}
	_, label, _ := s.selectedLabel()
	return s.remove(id, label)
}

func (s *recordScreen[R]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	s.layout()
	if s.form.Open() {
		return nil
	}
	switch {
	case msg.Action == tea.MouseActionMotion:
		if !s.split.Dragging() {
			return nil
		}
		if pct, changed := s.split.DragTo(msg.X); changed {
			s.setRoute(routeKeyPaneWidth, pct)
		}
	case msg.Action == tea.MouseActionRelease:
		s.endDrag(dragEndRelease)
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		if s.split.Mode() == uistate.PaneSplit && msg.X > s.split.HandleX() {
			s.detail.scroll(delta * 3)
			return nil
		}
		s.moveCursor(func(n int) bool { return s.nav.Move(delta, n) })
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if msg.Y >= recordHeadingRow && s.split.BeginDrag(msg.X) {
			events.Pane.DragStart(s.id, msg.X)
			return nil
		}
		if msg.Y < recordBodyTop || (s.split.Mode() == uistate.PaneSplit && msg.X >= s.split.HandleX()) {
			return nil
		}
		rows := s.pageRows()
		start, end := s.nav.Window(len(rows), s.bodyRows())
		idx := start + msg.Y - recordBodyTop
		if idx < start || idx >= end {
			return nil
		}
		s.nav.Index = idx
		s.selectRecord(rows[idx])
	}
	return nil
}

// bodyRows returns the table rows that fit on screen, or -1 when the
// terminal height is unknown.
func (s *recordScreen[R]) bodyRows() int {
	h := s.m.recordPaneHeight()
	if h <= 0 {
		return -1
	}
	// prompt, table heading and status line
	rows := h - 3
	if rows < 1 {
		return 1
	}
	return rows
}

// layout sizes the split and the detail viewport to the terminal.
func (s *recordScreen[R]) layout() {
	s.split.SetContainer(0, s.m.width)
	h := s.bodyRows()
	if h < 0 {
		h = s.list.Limit()
	}
	s.detail.resize(s.split.DetailWidth(), h)
}

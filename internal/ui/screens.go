package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/menu"
	"github.com/atomicstack/ohsdash/internal/record"
	tea "github.com/charmbracelet/bubbletea"
)

// screen is one entry of the navigation stack.
type screen interface {
	screenID() string
	title() string
}

// menuScreen is a fuzzy-filtered menu: the section menu or a picker opened
// on behalf of a record screen.
type menuScreen struct {
	*level
	ctx menu.Context
}

func (s *menuScreen) screenID() string { return s.level.ID }
func (s *menuScreen) title() string    { return s.level.Title }

type dragEndReason int

const (
	dragEndRelease dragEndReason = iota
	dragEndBlur
	dragEndClose
)

// recordPane is the type-erased view of a record screen.
type recordPane interface {
	screen
	routePath() string
	start() tea.Cmd
	close()
	busy() bool
	handleKey(tea.KeyMsg) tea.Cmd
	handleMouse(tea.MouseMsg) tea.Cmd
	handleResult(interface{}) tea.Cmd
	endDrag(dragEndReason)
	directoryUpdated()
	openSection(name string) tea.Cmd
	pickValue(menu.PickValue)
	view(width, height int) string
}

// screenMsg carries an async result back to the screen that asked for it.
type screenMsg struct {
	target string
	msg    interface{}
}

func (m *Model) currentScreen() screen {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) currentLevel() *level {
	if s, ok := m.currentScreen().(*menuScreen); ok {
		return s.level
	}
	return nil
}

func (m *Model) currentRecord() recordPane {
	if s, ok := m.currentScreen().(recordPane); ok {
		return s
	}
	return nil
}

func (m *Model) findRecord(id string) recordPane {
	for _, s := range m.stack {
		if pane, ok := s.(recordPane); ok && pane.screenID() == id {
			return pane
		}
	}
	return nil
}

// topRecord returns the record screen closest to the top of the stack.
func (m *Model) topRecord() recordPane {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if pane, ok := m.stack[i].(recordPane); ok {
			return pane
		}
	}
	return nil
}

func (m *Model) nextScreenID(kind string) string {
	m.screenSeq++
	return fmt.Sprintf("%s#%d", kind, m.screenSeq)
}

// newRecordScreen builds the screen for a kind. owner scopes owned kinds to
// one employee.
func (m *Model) newRecordScreen(kind, ownerID, ownerLabel string) (recordPane, error) {
	scope := record.Filter{OwnerID: ownerID}
	missing := fmt.Errorf("no record source configured for %s", kind)
	switch kind {
	case medical.Employees.ID:
		if m.sources.Employees == nil {
			return nil, missing
		}
		return newRecordScreen(m, medical.Employees, m.sources.Employees, record.Filter{}, ""), nil
	case medical.Reports.ID:
		if m.sources.Reports == nil {
			return nil, missing
		}
		return newRecordScreen(m, medical.Reports, m.sources.Reports, scope, ownerLabel), nil
	case medical.MensHealthScreenings.ID:
		if m.sources.MensHealth == nil {
			return nil, missing
		}
		return newRecordScreen(m, medical.MensHealthScreenings, m.sources.MensHealth, scope, ownerLabel), nil
	case medical.Histories.ID:
		if m.sources.Histories == nil {
			return nil, missing
		}
		return newRecordScreen(m, medical.Histories, m.sources.Histories, scope, ownerLabel), nil
	case medical.Investigations.ID:
		if m.sources.Investigations == nil {
			return nil, missing
		}
		return newRecordScreen(m, medical.Investigations, m.sources.Investigations, scope, ownerLabel), nil
	}
	return nil, fmt.Errorf("unknown section %q", kind)
}

// pushRecord opens a record screen on top of the stack and starts its
// first fetch.
func (m *Model) pushRecord(kind, ownerID, ownerLabel string) tea.Cmd {
	pane, err := m.newRecordScreen(kind, ownerID, ownerLabel)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if current := m.currentLevel(); current != nil {
		current.LastCursor = current.Cursor()
	}
	from := m.route.Path()
	m.stack = append(m.stack, pane)
	m.route.Navigate(pane.routePath())
	events.Route.Navigate(from, m.route.Path())
	events.UI.ScreenPush(pane.screenID(), pane.routePath(), len(m.stack))
	m.errMsg = ""
	m.forceClearInfo()
	return pane.start()
}

// popScreen closes the top screen. Popping the last screen quits.
func (m *Model) popScreen() tea.Cmd {
	if len(m.stack) <= 1 {
		return tea.Quit
	}
	top := m.currentScreen()
	m.stack = m.stack[:len(m.stack)-1]
	if pane, ok := top.(recordPane); ok {
		pane.close()
		path := "/"
		if below := m.topRecord(); below != nil {
			path = below.routePath()
		}
		m.route.Navigate(path)
		events.Route.Pop(path, len(m.stack))
	}
	if parent := m.currentLevel(); parent != nil {
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			parent.Nav.Index = parent.LastCursor
		} else if idx := parent.IndexOf(top.screenID()); idx >= 0 {
			parent.Nav.Index = idx
		}
		parent.LastCursor = -1
		m.syncViewport(parent)
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

// applyRootSection opens a record screen straight away when requested. Its
// first fetch is issued from Init.
func (m *Model) applyRootSection(requested string) {
	id := strings.ToLower(strings.TrimSpace(requested))
	if id == "" {
		return
	}
	if _, ok := medical.Lookup(id); !ok {
		m.errMsg = fmt.Sprintf("Unknown root section %q", requested)
		return
	}
	m.startup = m.pushRecord(id, "", "")
	if pane := m.topRecord(); pane != nil {
		m.rootMenuID = id
		m.rootTitle = pane.title()
	}
}

func (m *Model) handleScreenMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(screenMsg)
	if !ok {
		return nil
	}
	pane := m.findRecord(update.target)
	if pane == nil {
		events.Command.Skip(update.target, fmt.Sprintf("%T", update.msg))
		return nil
	}
	return pane.handleResult(update.msg)
}

func (m *Model) anyBusy() bool {
	if m.loading {
		return true
	}
	for _, s := range m.stack {
		if pane, ok := s.(recordPane); ok && pane.busy() {
			return true
		}
	}
	return false
}

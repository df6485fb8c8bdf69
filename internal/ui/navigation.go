package ui

import (
	"fmt"

	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/atomicstack/ohsdash/internal/menu"
	"github.com/atomicstack/ohsdash/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	if len(m.stack) <= 1 {
		return tea.Quit
	}
	return m.popScreen()
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return nil
	}
	ctx := m.menuContext()
	item, _ := current.Current()
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter.Value)
	before := current.Filter.Pos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(before, current.Filter.Pos())
	node := current.Node
	if node == nil {
		node, _ = m.registry.Find(current.ID)
	}
	if node != nil {
		if child, ok := node.Children[item.ID]; ok {
			if child.Loader != nil {
				current.LastCursor = current.Cursor()
				return m.openMenu(child.ID, item.Label, ctx)
			}
			if child.Action != nil {
				return m.executeAction(ctx, child.ID, item)
			}
		}
		if node.Action != nil {
			return m.executeAction(ctx, node.ID, item)
		}
	}
	m.setInfo(fmt.Sprintf("Selected %s (no action defined)", item.Label))
	return nil
}

func (m *Model) executeAction(ctx menu.Context, nodeID string, item menu.Item) tea.Cmd {
	node, ok := m.registry.Find(nodeID)
	if !ok || node.Action == nil {
		return nil
	}
	m.loading = true
	m.pendingID = node.ID
	m.pendingLabel = item.Label
	m.errMsg = ""
	m.forceClearInfo()
	return m.bus.Execute(ctx, command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
}

func (m *Model) moveCursor(move func(*level) bool) {
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return
	}
	if move(current) {
		events.UI.MenuCursor(current.ID, current.Cursor())
	}
	m.syncViewport(current)
}

func (m *Model) moveCursorUp() {
	m.moveCursor(func(l *level) bool { return l.MoveCursor(-1) })
}

func (m *Model) moveCursorDown() {
	m.moveCursor(func(l *level) bool { return l.MoveCursor(1) })
}

func (m *Model) moveCursorPageUp() {
	m.moveCursor(func(l *level) bool { return l.MoveCursorPageUp(m.maxVisibleItems()) })
}

func (m *Model) moveCursorPageDown() {
	m.moveCursor(func(l *level) bool { return l.MoveCursorPageDown(m.maxVisibleItems()) })
}

func (m *Model) moveCursorHome() {
	m.moveCursor(func(l *level) bool { return l.MoveCursorHome() })
}

func (m *Model) moveCursorEnd() {
	m.moveCursor(func(l *level) bool { return l.MoveCursorEnd() })
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key := keyMsg.String(); key == "ctrl+c" {
		return tea.Quit
	}
	if pane := m.currentRecord(); pane != nil {
		events.UI.Key(pane.screenID(), keyMsg.String())
		return pane.handleKey(keyMsg)
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if pane := m.currentRecord(); pane != nil {
		return pane.handleMouse(mouse)
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursorUp()
	case tea.MouseButtonWheelDown:
		m.moveCursorDown()
	case tea.MouseButtonLeft:
		if mouse.Action != tea.MouseActionPress {
			return nil
		}
		start, _ := current.Nav.Window(len(current.Items), m.maxVisibleItems())
		idx := start + mouse.Y - menuBodyTop
		if mouse.Y < menuBodyTop || idx < 0 || idx >= len(current.Items) {
			return nil
		}
		if idx == current.Cursor() {
			return m.handleEnterKey()
		}
		current.Nav.Index = idx
		events.UI.MenuCursor(current.ID, idx)
		m.syncViewport(current)
	}
	return nil
}

package ui

import (
	"github.com/atomicstack/ohsdash/internal/backend"
	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if m.backendState == nil {
		m.backendState = make(map[directory.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.backendLastErr = res.Err.Error()
		return nil
	}
	if res.Updated {
		entries := m.directory.Entries(evt.Kind)
		for _, s := range m.stack {
			switch s := s.(type) {
			case recordPane:
				s.directoryUpdated()
			case *menuScreen:
				m.refreshPicker(s, evt.Kind, entries)
			}
		}
	}
	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
	return nil
}

// refreshPicker replaces the items of an open lookup picker when its
// directory list changes.
func (m *Model) refreshPicker(s *menuScreen, kind directory.Kind, entries []directory.Entry) {
	if s.ID != "picker" || s.ctx.Field.Type != medical.FieldLookup || s.ctx.Field.Lookup != kind {
		return
	}
	s.ctx.Directory = m.directorySnapshot()
	s.UpdateItems(menu.PickerItems(s.ctx.Field, entries))
	m.syncViewport(s.level)
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, kind := range directory.Kinds() {
		if err := m.backendState[kind]; err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}

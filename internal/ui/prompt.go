package ui

import (
	"fmt"

	"github.com/atomicstack/ohsdash/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises the flow shared by menu results that hand control
// back to a record screen: reset loading state, close the menu that produced
// the result, and run the follow-up action.
func (m *Model) withPrompt(closeMenu bool, action func() promptResult) tea.Cmd {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.forceClearInfo()
	m.errMsg = ""
	if closeMenu && m.currentLevel() != nil && len(m.stack) > 1 {
		m.popScreen()
	}
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		return nil
	}
	if result.Info != "" && m.opts.Verbose {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

func (m *Model) handleOpenKindMsg(msg tea.Msg) tea.Cmd {
	open, ok := msg.(menu.OpenKind)
	if !ok {
		return nil
	}
	// Scoped screens are opened from the per-employee records menu, which
	// is closed first. The section menu at the root stays.
	closeMenu := open.OwnerID != "" && m.topRecord() != nil
	return m.withPrompt(closeMenu, func() promptResult {
		cmd := m.pushRecord(open.Kind, open.OwnerID, open.OwnerLabel)
		if cmd == nil && m.errMsg != "" {
			return promptResult{Err: fmt.Errorf("%s", m.errMsg)}
		}
		return promptResult{Cmd: cmd, Info: fmt.Sprintf("Opened %s", open.Kind)}
	})
}

func (m *Model) handleEditSectionMsg(msg tea.Msg) tea.Cmd {
	edit, ok := msg.(menu.EditSection)
	if !ok {
		return nil
	}
	return m.withPrompt(true, func() promptResult {
		pane := m.findRecord(edit.Target)
		if pane == nil {
			return promptResult{Err: fmt.Errorf("screen %s is no longer open", edit.Target)}
		}
		return promptResult{Cmd: pane.openSection(edit.Section)}
	})
}

func (m *Model) handlePickValueMsg(msg tea.Msg) tea.Cmd {
	pick, ok := msg.(menu.PickValue)
	if !ok {
		return nil
	}
	return m.withPrompt(true, func() promptResult {
		pane := m.findRecord(pick.Target)
		if pane == nil {
			return promptResult{Err: fmt.Errorf("screen %s is no longer open", pick.Target)}
		}
		pane.pickValue(pick)
		return promptResult{}
	})
}

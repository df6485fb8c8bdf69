package ui

import (
	"fmt"

	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/logging"
	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/atomicstack/ohsdash/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

// openMenu loads a registry node into a new menu level on behalf of the
// screen named in ctx.Target.
func (m *Model) openMenu(nodeID, title string, ctx menu.Context) tea.Cmd {
	node, ok := m.registry.Find(nodeID)
	if !ok || node.Loader == nil {
		m.errMsg = fmt.Sprintf("Unknown menu %q", nodeID)
		return nil
	}
	m.loading = true
	m.pendingID = nodeID
	m.pendingLabel = title
	m.errMsg = ""
	m.forceClearInfo()
	return m.loadMenuCmd(nodeID, title, ctx, node.Loader)
}

func (m *Model) loadMenuCmd(id, title string, ctx menu.Context, loader menu.Loader) tea.Cmd {
	ctx.Directory = m.directorySnapshot()
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, ctx: ctx, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	ctx   menu.Context
	items []menu.Item
	err   error
}

func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	node, _ := m.registry.Find(update.id)
	lvl := newLevel(update.id, update.title, update.items, node)
	m.syncViewport(lvl)
	m.stack = append(m.stack, &menuScreen{level: lvl, ctx: update.ctx})
	if len(lvl.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.infoMsg != "" {
		m.clearInfo()
	}
	return nil
}

// menuContext returns the context stored with the current menu level,
// refreshed with the latest directory lists.
func (m *Model) menuContext() menu.Context {
	var ctx menu.Context
	if s, ok := m.currentScreen().(*menuScreen); ok {
		ctx = s.ctx
	}
	ctx.Directory = m.directorySnapshot()
	return ctx
}

func (m *Model) directorySnapshot() map[directory.Kind][]directory.Entry {
	out := make(map[directory.Kind][]directory.Entry, len(directory.Kinds()))
	for _, kind := range directory.Kinds() {
		out[kind] = m.directory.Entries(kind)
	}
	return out
}

// copyToClipboard runs the registered copy action for one record.
func (m *Model) copyToClipboard(id, label string) tea.Cmd {
	return m.executeAction(menu.Context{RecordID: id}, "record:copy", menu.Item{ID: id, Label: label})
}

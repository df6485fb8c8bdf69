package ui

import "github.com/charmbracelet/bubbles/key"

// recordKeyMap binds the record screen actions. Printable keys are left to
// the search prompt.
type recordKeyMap struct {
	up         key.Binding
	down       key.Binding
	home       key.Binding
	end        key.Binding
	nextPage   key.Binding
	prevPage   key.Binding
	selectRow  key.Binding
	back       key.Binding
	nextStatus key.Binding
	prevStatus key.Binding
	create     key.Binding
	edit       key.Binding
	sections   key.Binding
	remove     key.Binding
	export     key.Binding
	copyID     key.Binding
	pdf        key.Binding
	records    key.Binding
	refresh    key.Binding
	narrow     key.Binding
	widen      key.Binding
	resetPane  key.Binding
	scrollUp   key.Binding
	scrollDown key.Binding
}

func newRecordKeyMap() recordKeyMap {
	return recordKeyMap{
		up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first row")),
		end:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last row")),
		nextPage:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page")),
		prevPage:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
		selectRow:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close/back")),
		nextStatus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "status")),
		prevStatus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "status back")),
		create:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^n", "new")),
		edit:       key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("^e", "edit")),
		sections:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^t", "edit section")),
		remove:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("^d", "delete")),
		export:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("^x", "export")),
		copyID:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "copy id")),
		pdf:        key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("^p", "pdf")),
		records:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^g", "records")),
		refresh:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "reload")),
		narrow:     key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "narrow list")),
		widen:      key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "widen list")),
		resetPane:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("^l", "reset width")),
		scrollUp:   key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "scroll detail")),
		scrollDown: key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "scroll detail")),
	}
}

var recordKeys = newRecordKeyMap()

// ShortHelp implements help.KeyMap.
func (k recordKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.selectRow, k.back, k.create, k.edit, k.remove, k.nextStatus, k.nextPage}
}

// FullHelp implements help.KeyMap.
func (k recordKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.home, k.end, k.nextPage, k.prevPage},
		{k.selectRow, k.back, k.nextStatus, k.prevStatus, k.refresh},
		{k.create, k.edit, k.sections, k.remove},
		{k.export, k.copyID, k.pdf, k.records},
		{k.narrow, k.widen, k.resetPane, k.scrollUp, k.scrollDown},
	}
}

// menuKeyMap describes the menu screen keys for the footer.
type menuKeyMap struct {
	move  key.Binding
	enter key.Binding
	clear key.Binding
	back  key.Binding
	quit  key.Binding
}

var menuKeys = menuKeyMap{
	move:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
	enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	clear: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("^u", "clear filter")),
	back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "quit")),
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.move, k.enter, k.clear, k.back, k.quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

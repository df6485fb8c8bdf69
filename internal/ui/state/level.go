package state

import (
	"slices"

	"github.com/atomicstack/ohsdash/internal/menu"
)

// Level is one fuzzy-filtered menu: the section menu, a picker, or a list of
// record actions.
type Level struct {
	ID         string
	Title      string
	Items      []menu.Item
	Full       []menu.Item
	Filter     TextInput
	Nav        ListCursor
	LastCursor int
	Node       *menu.Node
	Data       interface{}
}

// NewLevel constructs a Level using the provided items and menu node.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		Node:       node,
	}
	l.Nav.Index = -1
	l.UpdateItems(items)
	return l
}

// Cursor returns the highlighted index.
func (l *Level) Cursor() int { return l.Nav.Index }

// Current returns the highlighted item.
func (l *Level) Current() (menu.Item, bool) {
	if l.Nav.Index < 0 || l.Nav.Index >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Nav.Index], true
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// SelectID moves the cursor to the item with id when present.
func (l *Level) SelectID(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Nav.Index = idx
	return true
}

// UpdateItems refreshes the level items while keeping the viewport if possible.
func (l *Level) UpdateItems(items []menu.Item) {
	prevOffset := l.Nav.Offset
	l.Full = slices.Clone(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.Nav.Offset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.Nav.Offset = 0
		return
	}
	l.Nav.Offset = prevOffset
}

// MoveCursorHome moves the cursor to the first item.
func (l *Level) MoveCursorHome() bool { return l.Nav.Home(len(l.Items)) }

// MoveCursorEnd moves the cursor to the last item.
func (l *Level) MoveCursorEnd() bool { return l.Nav.End(len(l.Items)) }

// MoveCursor moves the cursor by delta rows.
func (l *Level) MoveCursor(delta int) bool { return l.Nav.Move(delta, len(l.Items)) }

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.Nav.PageUp(len(l.Items), maxVisible)
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.Nav.PageDown(len(l.Items), maxVisible)
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	l.Nav.EnsureVisible(len(l.Items), maxVisible)
}

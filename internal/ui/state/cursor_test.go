package state

import (
	"testing"

	"github.com/atomicstack/ohsdash/internal/menu"
)

func newTestLevel(ids ...string) *Level {
	items := make([]menu.Item, len(ids))
	for i, id := range ids {
		items[i] = menu.Item{ID: id, Label: id}
	}
	return NewLevel("test", "Test", items, nil)
}

func TestNewLevelStartsAtFirstItem(t *testing.T) {
	l := newTestLevel("a", "b")
	if l.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor())
	}
	item, ok := l.Current()
	if !ok || item.ID != "a" {
		t.Fatalf("expected current item a, got %#v", item)
	}
}

func TestMoveCursorHome(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.Nav.Index = 2
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor())
	}

	empty := newTestLevel()
	empty.Nav.Index = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty level")
	}
	if empty.Cursor() != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor())
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor())
	}
	if l.MoveCursor(1) {
		t.Fatalf("expected no movement past the last item")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if l.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor())
	}
	if !l.MoveCursorPageDown(2) || l.Cursor() != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor())
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(10) || l.Cursor() != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor())
	}
}

func TestEnsureVisibleAdjustsOffset(t *testing.T) {
	c := ListCursor{Index: 4}
	c.EnsureVisible(5, 2)
	if c.Offset != 3 {
		t.Fatalf("expected offset 3, got %d", c.Offset)
	}

	c.Index = -1
	c.EnsureVisible(5, 2)
	if c.Index != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", c.Index)
	}

	c.Offset = 4
	c.EnsureVisible(5, 0)
	if c.Offset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", c.Offset)
	}

	c.Offset = 4
	c.Index = 1
	c.EnsureVisible(5, 3)
	if c.Offset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", c.Offset)
	}
	start, end := c.Window(5, 3)
	if start != 1 || end != 4 {
		t.Fatalf("expected window [1,4), got [%d,%d)", start, end)
	}
}

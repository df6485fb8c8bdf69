package state

import "unicode"

// TextInput is a single-line edit buffer with a rune cursor. It backs the
// menu filter and the record search prompt.
type TextInput struct {
	Value  string
	Cursor int
}

// Pos returns the cursor clamped to the value.
func (t *TextInput) Pos() int {
	n := len([]rune(t.Value))
	if t.Cursor < 0 {
		return 0
	}
	if t.Cursor > n {
		return n
	}
	return t.Cursor
}

// Set replaces the value and places the cursor at pos.
func (t *TextInput) Set(value string, pos int) {
	t.Value = value
	t.Cursor = pos
	t.Cursor = t.Pos()
}

// Insert inserts text at the cursor.
func (t *TextInput) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(t.Value)
	pos := t.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	t.Set(string(updated), pos+len(insert))
	return true
}

// Backspace deletes the rune before the cursor.
func (t *TextInput) Backspace() bool {
	runes := []rune(t.Value)
	pos := t.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	t.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word before the cursor.
func (t *TextInput) DeleteWordBackward() bool {
	runes := []rune(t.Value)
	pos := t.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i:i], runes[pos:]...)
	t.Set(string(updated), i)
	return true
}

// Clear empties the buffer.
func (t *TextInput) Clear() bool {
	if t.Value == "" {
		return false
	}
	t.Set("", 0)
	return true
}

// Home moves the cursor to the start.
func (t *TextInput) Home() bool {
	if t.Pos() == 0 {
		return false
	}
	t.Cursor = 0
	return true
}

// End moves the cursor to the end.
func (t *TextInput) End() bool {
	end := len([]rune(t.Value))
	if t.Pos() == end {
		return false
	}
	t.Cursor = end
	return true
}

// Left moves the cursor one rune back.
func (t *TextInput) Left() bool {
	if t.Pos() == 0 {
		return false
	}
	t.Cursor = t.Pos() - 1
	return true
}

// Right moves the cursor one rune forward.
func (t *TextInput) Right() bool {
	if t.Pos() >= len([]rune(t.Value)) {
		return false
	}
	t.Cursor = t.Pos() + 1
	return true
}

// WordLeft moves the cursor to the start of the previous word.
func (t *TextInput) WordLeft() bool {
	runes := []rune(t.Value)
	pos := t.Pos()
	if pos == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	t.Cursor = i
	return true
}

// WordRight moves the cursor past the next word.
func (t *TextInput) WordRight() bool {
	runes := []rune(t.Value)
	pos := t.Pos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	t.Cursor = i
	return i != pos
}

// Split returns the text before the cursor, the rune under it, and the rest.
func (t *TextInput) Split() (before, at, after string) {
	runes := []rune(t.Value)
	pos := t.Pos()
	before = string(runes[:pos])
	if pos < len(runes) {
		at = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return before, at, after
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

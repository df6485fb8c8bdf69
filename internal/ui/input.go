package ui

import (
	"unicode"

	"github.com/atomicstack/ohsdash/internal/logging/events"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type textEdit int

const (
	editNone textEdit = iota
	editCursor
	editValue
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before, after int) {
	if before != after {
		m.filterCursorDirty = true
	}
}

// applyTextKey applies readline-style editing keys to in. scope names the
// prompt in trace output.
func applyTextKey(scope string, in *uistate.TextInput, msg tea.KeyMsg) textEdit {
	switch msg.String() {
	case "ctrl+u":
		if in.Value == "" {
			return editNone
		}
		in.Clear()
		events.Filter.Cleared(scope)
		return editValue
	case "ctrl+w":
		if !in.DeleteWordBackward() {
			return editNone
		}
		events.Filter.WordBackspace(scope, in.Value)
		return editValue
	case "ctrl+a":
		if !in.Home() {
			return editNone
		}
		events.Filter.Cursor(scope, in.Cursor)
		return editCursor
	case "ctrl+e":
		if !in.End() {
			return editNone
		}
		events.Filter.Cursor(scope, in.Cursor)
		return editCursor
	case "alt+b":
		if !in.WordLeft() {
			return editNone
		}
		events.Filter.CursorWord(scope, in.Cursor)
		return editCursor
	case "alt+f":
		if !in.WordRight() {
			return editNone
		}
		events.Filter.CursorWord(scope, in.Cursor)
		return editCursor
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !in.Backspace() {
			return editNone
		}
		events.Filter.Backspace(scope, in.Value)
		return editValue
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return editNone
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return editNone
			}
		}
		if !in.Insert(string(msg.Runes)) {
			return editNone
		}
		events.Filter.Append(scope, in.Value)
		return editValue
	case tea.KeySpace:
		if !in.Insert(" ") {
			return editNone
		}
		events.Filter.Append(scope, in.Value)
		return editValue
	case tea.KeyLeft:
		if !in.Left() {
			return editNone
		}
		events.Filter.Cursor(scope, in.Cursor)
		return editCursor
	case tea.KeyRight:
		if !in.Right() {
			return editNone
		}
		events.Filter.Cursor(scope, in.Cursor)
		return editCursor
	}
	return editNone
}

// handleTextInput edits the filter of the current menu level.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading {
		return false
	}
	current := m.currentLevel()
	if current == nil {
		return false
	}
	before := current.Filter.Pos()
	edit := editNone
	current.EditFilter(func(in *uistate.TextInput) bool {
		edit = applyTextKey(current.ID, in, msg)
		return edit != editNone
	})
	if edit == editNone {
		return false
	}
	m.noteFilterCursorChange(before, current.Filter.Pos())
	if edit == editValue {
		m.forceClearInfo()
		m.errMsg = ""
		m.syncViewport(current)
	}
	return true
}

// renderPrompt draws a search prompt with the blinking caret.
func (m *Model) renderPrompt(in uistate.TextInput, placeholder string) string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if in.Value == "" {
		runes := []rune(placeholder)
		var caretRune, rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		return prompt + m.renderFilterCursor(caretRune) + render(styles.FilterPlaceholder, rest)
	}
	before, at, after := in.Split()
	return prompt + render(styles.Filter, before) + m.renderFilterCursor(at) + render(styles.Filter, after)
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}

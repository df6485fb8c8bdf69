package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/format/table"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/record"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formAction int

const (
	formContinue formAction = iota
	formSubmit
	formCancel
	formPick
)

const formInputWidth = 40

// formDialog is the field editor drawn over a record screen. Text fields
// are edited in place; picked fields hold the display label of the value
// chosen from a picker menu.
type formDialog struct {
	title  string
	specs  []medical.FieldSpec
	inputs []textinput.Model
	picked map[string]string
	focus  int
}

func newFormDialog(title string, specs []medical.FieldSpec, buffer record.Fields, names directory.Names) *formDialog {
	f := &formDialog{
		title:  title,
		specs:  specs,
		inputs: make([]textinput.Model, len(specs)),
		picked: make(map[string]string),
	}
	for i, spec := range specs {
		if spec.Picked() {
			f.picked[spec.Name] = pickedLabel(spec, buffer, names)
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = formInputWidth
		ti.Cursor.SetMode(cursor.CursorStatic)
		if spec.Type == medical.FieldDate {
			ti.Placeholder = "YYYY-MM-DD"
			ti.CharLimit = len(medical.DateLayout)
		}
		ti.SetValue(spec.Format(buffer))
		f.inputs[i] = ti
	}
	f.setFocus(0)
	return f
}

func pickedLabel(spec medical.FieldSpec, buffer record.Fields, names directory.Names) string {
	value := buffer.String(spec.Name)
	switch spec.Type {
	case medical.FieldLookup:
		return directory.NameOr(names, spec.Lookup, value)
	case medical.FieldChoice:
		return strings.ReplaceAll(value, "_", " ")
	}
	return value
}

func (f *formDialog) setFocus(idx int) {
	if len(f.specs) == 0 {
		return
	}
	if idx < 0 {
		idx = len(f.specs) - 1
	}
	if idx >= len(f.specs) {
		idx = 0
	}
	for i, spec := range f.specs {
		if spec.Picked() {
			continue
		}
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = idx
}

func (f *formDialog) focused() (medical.FieldSpec, bool) {
	if f.focus < 0 || f.focus >= len(f.specs) {
		return medical.FieldSpec{}, false
	}
	return f.specs[f.focus], true
}

func (f *formDialog) lastField() bool {
	return f.focus == len(f.specs)-1
}

// update applies one key to the dialog and reports what the screen should
// do next.
func (f *formDialog) update(msg tea.KeyMsg) (formAction, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancel, nil
	case "ctrl+s":
		return formSubmit, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return formContinue, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return formContinue, nil
	case "enter":
		if spec, ok := f.focused(); ok && spec.Picked() {
			return formPick, nil
		}
		if f.lastField() {
			return formSubmit, nil
		}
		f.setFocus(f.focus + 1)
		return formContinue, nil
	case " ":
		if spec, ok := f.focused(); ok && spec.Picked() {
			return formPick, nil
		}
	}
	spec, ok := f.focused()
	if !ok || spec.Picked() {
		return formContinue, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formContinue, cmd
}

// setPicked records the label shown for a picked field.
func (f *formDialog) setPicked(name, label string) {
	if _, ok := f.picked[name]; ok {
		f.picked[name] = label
	}
}

// values parses the text fields. Required picked fields are checked against
// buffer, which already holds the picker choices.
func (f *formDialog) values(buffer record.Fields) (record.Fields, error) {
	out := record.Fields{}
	problems := map[string]string{}
	for i, spec := range f.specs {
		if spec.Picked() {
			if spec.Required && strings.TrimSpace(buffer.String(spec.Name)) == "" {
				problems[spec.Name] = "required"
			}
			continue
		}
		v, err := spec.Parse(f.inputs[i].Value())
		if err != nil {
			problems[spec.Name] = err.Error()
			continue
		}
		out[spec.Name] = v
	}
	if len(problems) > 0 {
		return nil, &record.ValidationError{Message: "check the highlighted fields", Fields: problems}
	}
	return out, nil
}

func (f *formDialog) view(width int, err error, submitting bool) string {
	labelWidth := 0
	for _, spec := range f.specs {
		if w := lipgloss.Width(spec.Label); w > labelWidth {
			labelWidth = w
		}
	}
	problems := map[string]string{}
	if v, ok := record.AsValidation(err); ok {
		problems = v.Fields
	}
	lines := make([]string, 0, len(f.specs)+6)
	lines = append(lines, paint(styles.DialogTitle, f.title), "")
	for i, spec := range f.specs {
		label := spec.Label
		if spec.Required {
			label += "*"
		}
		label = fmt.Sprintf("%-*s", labelWidth+1, label)
		labelStyle := styles.FieldLabel
		if i == f.focus {
			labelStyle = styles.FocusedFieldLabel
		}
		var value string
		if spec.Picked() {
			value = f.picked[spec.Name]
			if value == "" {
				value = "(choose)"
			}
			value = "[" + table.Truncate(value, formInputWidth-2) + "]"
		} else {
			value = f.inputs[i].View()
		}
		line := paint(labelStyle, label) + " " + value
		if problem, ok := problems[spec.Name]; ok {
			line += " " + paint(styles.Error, problem)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	switch {
	case submitting:
		lines = append(lines, paint(styles.Loading, "Saving…"))
	case err != nil:
		lines = append(lines, paint(styles.Error, err.Error()))
	}
	lines = append(lines, paint(styles.Footer, "tab next · enter pick/next · ctrl+s save · esc cancel"))
	body := strings.Join(lines, "\n")
	if styles.Dialog == nil {
		return body
	}
	box := styles.Dialog.Copy()
	if max := width - 4; max > 0 && lipgloss.Width(body) > max {
		box = box.Width(max)
	}
	return box.Render(body)
}

// Package medical defines the occupational health record types and the kind
// descriptors that bind each type to its columns, search fields, status and
// form fields.
package medical

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/record"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// FieldType selects how a form field is edited and parsed.
type FieldType int

const (
	FieldText FieldType = iota
	FieldLongText
	FieldDate
	FieldNumber
	FieldBool
	FieldChoice
	FieldLookup
)

// FieldSpec describes one editable column.
type FieldSpec struct {
	Name     string
	Label    string
	Type     FieldType
	Required bool
	Choices  []string
	Lookup   directory.Kind
}

// Picked reports whether the field is edited through a picker rather than a
// text input.
func (s FieldSpec) Picked() bool {
	return s.Type == FieldBool || s.Type == FieldChoice || s.Type == FieldLookup
}

// Parse converts user input into the value sent to the backend.
func (s FieldSpec) Parse(input string) (interface{}, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		if s.Required {
			return nil, fmt.Errorf("%s is required", s.Label)
		}
		if s.Type == FieldNumber || s.Type == FieldBool {
			return nil, nil
		}
		return "", nil
	}
	switch s.Type {
	case FieldDate:
		if _, err := time.Parse(DateLayout, trimmed); err != nil {
			return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD)", s.Label)
		}
		return trimmed, nil
	case FieldNumber:
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", s.Label)
		}
		return v, nil
	case FieldBool:
		switch strings.ToLower(trimmed) {
		case "yes", "y", "true", "1":
			return true, nil
		case "no", "n", "false", "0":
			return false, nil
		}
		return nil, fmt.Errorf("%s must be yes or no", s.Label)
	case FieldChoice:
		for _, choice := range s.Choices {
			if strings.EqualFold(choice, trimmed) {
				return choice, nil
			}
		}
		return nil, fmt.Errorf("%s must be one of %s", s.Label, strings.Join(s.Choices, ", "))
	default:
		return trimmed, nil
	}
}

// Format renders a stored value for the form buffer.
func (s FieldSpec) Format(fields record.Fields) string {
	return fields.String(s.Name)
}

// Column is one table column.
type Column[R record.Record] struct {
	Title string
	Value func(R, directory.Names) string
}

// Section groups fields that can be saved on their own.
type Section struct {
	Name   string
	Title  string
	Fields []string
}

// Kind describes one record type.
type Kind[R record.Record] struct {
	ID       string
	Title    string
	Resource string
	// Owned kinds belong to an employee and can be scoped by owner.
	Owned    bool
	Columns  []Column[R]
	Search   func(R, directory.Names) []string
	Status   func(R) string
	Statuses []string
	Fields   []FieldSpec
	Sections []Section
	Detail   func(R, directory.Names) string
	Label    func(R, directory.Names) string
}

// Field looks up a field spec by name.
func (k *Kind[R]) Field(name string) (FieldSpec, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Section looks up a section by name.
func (k *Kind[R]) Section(name string) (Section, bool) {
	for _, s := range k.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// FieldsFor returns the specs for the named fields, in the order given.
func (k *Kind[R]) FieldsFor(names []string) []FieldSpec {
	out := make([]FieldSpec, 0, len(names))
	for _, name := range names {
		if spec, ok := k.Field(name); ok {
			out = append(out, spec)
		}
	}
	return out
}

// Validate checks required fields of a full create or edit payload.
func (k *Kind[R]) Validate(fields record.Fields) error {
	problems := map[string]string{}
	for _, spec := range k.Fields {
		if !spec.Required {
			continue
		}
		if strings.TrimSpace(fields.String(spec.Name)) == "" {
			problems[spec.Name] = "required"
		}
	}
	if len(problems) > 0 {
		return &record.ValidationError{Message: fmt.Sprintf("invalid %s", strings.ToLower(k.Title)), Fields: problems}
	}
	return nil
}

// RecordLabel renders a one-line label for a record.
func (k *Kind[R]) RecordLabel(r R, names directory.Names) string {
	if k.Label != nil {
		return k.Label(r, names)
	}
	return r.RecordID()
}

// Timestamps are shared by every record type.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Timestamp orders records by last update, falling back to creation.
func (t Timestamps) Timestamp() time.Time {
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt
	}
	return t.CreatedAt
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func optionalNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return record.Fields{"v": *v}.String("v")
}

func humanize(value string) string {
	return strings.ReplaceAll(value, "_", " ")
}

// detailBuilder assembles the markdown detail view.
type detailBuilder struct {
	b strings.Builder
}

func (d *detailBuilder) heading(text string) {
	if d.b.Len() > 0 {
		d.b.WriteString("\n")
	}
	fmt.Fprintf(&d.b, "## %s\n\n", text)
}

func (d *detailBuilder) row(label, value string) {
	if strings.TrimSpace(value) == "" {
		value = "—"
	}
	fmt.Fprintf(&d.b, "- **%s:** %s\n", label, value)
}

func (d *detailBuilder) text(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(&d.b, "\n### %s\n\n%s\n", label, strings.TrimSpace(value))
}

func (d *detailBuilder) String() string {
	return d.b.String()
}

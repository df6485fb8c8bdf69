package menu

import (
	"errors"
	"fmt"

	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/medical"
	tea "github.com/charmbracelet/bubbletea"
)

// ClearID identifies the picker entry that empties an optional field.
const ClearID = "(none)"

// Item represents a selectable menu entry.
type Item struct {
	ID    string
	Label string
	// Hint is secondary text shown dimmed and matched by the filter.
	Hint string
}

// Context carries runtime data needed by loader functions and actions.
type Context struct {
	// Target is the screen that opened the menu. Results are routed back to it.
	Target     string
	OwnerID    string
	OwnerLabel string
	RecordID   string
	Sections   []medical.Section
	Field      medical.FieldSpec
	Directory  map[directory.Kind][]directory.Entry
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// OpenKind requests a record screen for a kind, optionally scoped to one
// employee.
type OpenKind struct {
	Kind       string
	OwnerID    string
	OwnerLabel string
}

// EditSection requests a section form on the target screen.
type EditSection struct {
	Target  string
	Section string
}

// PickValue delivers a picker choice to the form on the target screen.
type PickValue struct {
	Target string
	Field  string
	Value  interface{}
	Label  string
}

// RootItems returns the section menu entries, one per record kind.
func RootItems() []Item {
	catalog := medical.Catalog()
	items := make([]Item, 0, len(catalog))
	for _, info := range catalog {
		hint := ""
		if info.Owned {
			hint = "per employee"
		}
		items = append(items, Item{ID: info.ID, Label: info.Title, Hint: hint})
	}
	return items
}

// CategoryLoaders lists submenu loaders keyed by node ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		"records":  loadRecordsMenu,
		"sections": loadSectionMenu,
		"picker":   loadPickerMenu,
	}
}

// ActionHandlers maps node identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		"root":        OpenKindAction,
		"records":     OpenKindAction,
		"sections":    SectionAction,
		"picker":      PickAction,
		"record:copy": CopyIDAction,
	}
}

func loadRecordsMenu(ctx Context) ([]Item, error) {
	if ctx.OwnerID == "" {
		return nil, errors.New("no employee selected")
	}
	owned := medical.OwnedKinds()
	items := make([]Item, 0, len(owned))
	for _, info := range owned {
		items = append(items, Item{ID: info.ID, Label: info.Title, Hint: ctx.OwnerLabel})
	}
	return items, nil
}

func loadSectionMenu(ctx Context) ([]Item, error) {
	items := make([]Item, 0, len(ctx.Sections))
	for _, section := range ctx.Sections {
		items = append(items, Item{ID: section.Name, Label: section.Title, Hint: fieldSummary(section.Fields)})
	}
	return items, nil
}

func loadPickerMenu(ctx Context) ([]Item, error) {
	field := ctx.Field
	if field.Type == medical.FieldLookup && len(ctx.Directory[field.Lookup]) == 0 {
		return nil, fmt.Errorf("no %s entries loaded yet", field.Lookup)
	}
	return PickerItems(field, ctx.Directory[field.Lookup]), nil
}

// PickerItems lists the values a picked field may take.
func PickerItems(field medical.FieldSpec, entries []directory.Entry) []Item {
	var items []Item
	switch field.Type {
	case medical.FieldBool:
		items = []Item{{ID: "yes", Label: "yes"}, {ID: "no", Label: "no"}}
	case medical.FieldChoice:
		items = make([]Item, 0, len(field.Choices))
		for _, choice := range field.Choices {
			items = append(items, Item{ID: choice, Label: humanize(choice)})
		}
	case medical.FieldLookup:
		items = make([]Item, 0, len(entries))
		for _, entry := range entries {
			items = append(items, Item{ID: entry.ID, Label: entry.Name, Hint: entry.ID})
		}
	}
	if !field.Required {
		items = append(items, Item{ID: ClearID, Label: ClearID})
	}
	return items
}

// PickedValue converts a picker item id into the value stored in a form.
func PickedValue(field medical.FieldSpec, id string) interface{} {
	if id == ClearID {
		if field.Type == medical.FieldBool {
			return nil
		}
		return ""
	}
	if field.Type == medical.FieldBool {
		return id == "yes"
	}
	return id
}

// OpenKindAction opens the record screen for the selected kind. The owner
// in ctx, if any, scopes the screen.
func OpenKindAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		return OpenKind{Kind: item.ID, OwnerID: ctx.OwnerID, OwnerLabel: ctx.OwnerLabel}
	}
}

func SectionAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		return EditSection{Target: ctx.Target, Section: item.ID}
	}
}

func PickAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		label := item.Label
		if item.ID == ClearID {
			label = ""
		}
		return PickValue{Target: ctx.Target, Field: ctx.Field.Name, Value: PickedValue(ctx.Field, item.ID), Label: label}
	}
}

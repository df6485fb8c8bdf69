package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/ohsdash/internal/export"
	"github.com/atomicstack/ohsdash/internal/logging"
	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/menu"
	"github.com/atomicstack/ohsdash/internal/record"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// signable is implemented by records with a sign-off workflow.
type signable interface {
	Signed() bool
}

func (s *recordScreen[R]) openCreate() tea.Cmd {
	defaults := record.Fields{}
	if s.kind.Owned && s.ownerID != "" {
		defaults["employee_id"] = s.ownerID
	}
	s.form.OpenCreate(defaults)
	s.openDialog(fmt.Sprintf("New %s", s.kind.Title), s.kind.Fields)
	return nil
}

func (s *recordScreen[R]) openEdit() tea.Cmd {
	rec, ok := s.restore.Selected()
	if !ok {
		s.m.setInfo("Select a record first")
		return nil
	}
	fields, err := record.Encode(rec)
	if err != nil {
		s.m.errMsg = err.Error()
		return nil
	}
	s.form.OpenEdit(rec.RecordID(), fields)
	s.openDialog(fmt.Sprintf("Edit %s", s.kind.RecordLabel(rec, s.m.directory)), s.kind.Fields)
	return nil
}

// openSection opens the partial-update form for one named section of the
// selected record.
func (s *recordScreen[R]) openSection(name string) tea.Cmd {
	rec, ok := s.restore.Selected()
	if !ok {
		s.m.setInfo("Select a record first")
		return nil
	}
	section, ok := s.kind.Section(name)
	if !ok {
		s.m.errMsg = fmt.Sprintf("Unknown section %q", name)
		return nil
	}
	fields, err := record.Encode(rec)
	if err != nil {
		s.m.errMsg = err.Error()
		return nil
	}
	s.form.OpenSection(rec.RecordID(), section.Name, fields, section.Fields)
	title := fmt.Sprintf("%s: %s", s.kind.RecordLabel(rec, s.m.directory), section.Title)
	s.openDialog(title, s.kind.FieldsFor(section.Fields))
	return nil
}

func (s *recordScreen[R]) openDialog(title string, specs []medical.FieldSpec) {
	s.dialog = newFormDialog(title, specs, s.form.Buffer(), s.m.directory)
	events.Form.Open(s.id, s.form.Mode().String(), s.form.ID(), s.form.Section())
}

func (s *recordScreen[R]) openSectionMenu() tea.Cmd {
	id, label, ok := s.selectedLabel()
	if !ok {
		s.m.setInfo("Select a record first")
		return nil
	}
	if len(s.kind.Sections) == 0 {
		s.m.setInfo(fmt.Sprintf("%s have no sections", s.kind.Title))
		return nil
	}
	return s.m.openMenu("sections", label, menu.Context{
		Target:   s.id,
		RecordID: id,
		Sections: s.kind.Sections,
	})
}

// openRecordsMenu lists the record kinds owned by the selected employee.
func (s *recordScreen[R]) openRecordsMenu() tea.Cmd {
	if s.kind.Owned {
		return nil
	}
	id, label, ok := s.selectedLabel()
	if !ok {
		s.m.setInfo("Select an employee first")
		return nil
	}
	return s.m.openMenu("records", label, menu.Context{
		Target:     s.id,
		OwnerID:    id,
		OwnerLabel: label,
	})
}

func (s *recordScreen[R]) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if s.form.Submitting() {
		return nil
	}
	action, cmd := s.dialog.update(msg)
	switch action {
	case formCancel:
		s.form.Cancel()
		s.dialog = nil
		events.Form.Cancel(s.id)
		return nil
	case formPick:
		spec, _ := s.dialog.focused()
		return s.m.openMenu("picker", spec.Label, menu.Context{Target: s.id, Field: spec})
	case formSubmit:
		return s.submit()
	}
	return cmd
}

func (s *recordScreen[R]) pickValue(pick menu.PickValue) {
	if !s.form.Open() || s.dialog == nil {
		return
	}
	if s.form.Set(pick.Field, pick.Value) {
		s.dialog.setPicked(pick.Field, pick.Label)
	}
}

func (s *recordScreen[R]) submit() tea.Cmd {
	values, err := s.dialog.values(s.form.Buffer())
	if err != nil {
		s.form.SetError(err)
		return nil
	}
	for name, v := range values {
		s.form.Set(name, v)
	}
	if s.form.Mode() != uistate.FormSection {
		if err := s.kind.Validate(s.form.Buffer()); err != nil {
			s.form.SetError(err)
			return nil
		}
	}
	sub, err := s.form.Begin()
	if err != nil {
		s.form.SetError(err)
		return nil
	}
	events.Form.Submit(s.id, sub.Mode.String(), sub.ID, sub.Fields.Names())
	src := s.src
	return s.run("submit", func(ctx context.Context) interface{} {
		return submitDoneMsg[R]{sub: sub, res: sub.Execute(ctx, src)}
	})
}

func (s *recordScreen[R]) applySubmit(msg submitDoneMsg[R]) tea.Cmd {
	outcome := s.form.Complete(msg.res)
	events.Form.Complete(s.id, outcome.String(), msg.res.Changed, msg.res.Err)
	switch outcome {
	case uistate.OutcomeFailed:
		if _, ok := record.AsValidation(msg.res.Err); !ok {
			logging.Error(msg.res.Err)
		}
		return nil
	case uistate.OutcomeNoOp:
		s.dialog = nil
		s.m.setInfo("No changes")
		return nil
	}
	s.dialog = nil
	saved := msg.res.Record
	s.selectRecord(saved)
	s.m.setInfo(fmt.Sprintf("Saved %s", s.kind.RecordLabel(saved, s.m.directory)))
	return s.refetch()
}

func (s *recordScreen[R]) remove(id, label string) tea.Cmd {
	if label == "" {
		label = id
	}
	s.pending++
	src := s.src
	return s.run("delete", func(ctx context.Context) interface{} {
		return deleteDoneMsg{id: id, label: label, err: src.Delete(ctx, id)}
	})
}

func (s *recordScreen[R]) applyDelete(msg deleteDoneMsg) tea.Cmd {
	s.pending--
	if msg.err != nil && !record.IsNotFound(msg.err) {
		s.m.errMsg = fmt.Sprintf("Failed to delete %s: %v", msg.label, msg.err)
		return nil
	}
	if s.restore.SelectedID() == msg.id {
		s.closeDetail()
	}
	s.m.setInfo(fmt.Sprintf("Deleted %s", msg.label))
	s.list.Invalidate()
	return s.refetch()
}

// exportTable renders the filtered collection, all pages, as a sheet.
func (s *recordScreen[R]) exportTable() export.Table {
	headers := make([]string, len(s.kind.Columns))
	for i, col := range s.kind.Columns {
		headers[i] = col.Title
	}
	filtered := s.list.Filtered()
	rows := make([][]string, 0, len(filtered))
	for _, rec := range filtered {
		row := make([]string, len(s.kind.Columns))
		for i, col := range s.kind.Columns {
			row[i] = col.Value(rec, s.m.directory)
		}
		rows = append(rows, row)
	}
	return export.Table{Sheet: s.kind.Title, Headers: headers, Rows: rows}
}

func (s *recordScreen[R]) export() tea.Cmd {
	if s.list.PageInfo().Total == 0 {
		s.m.setInfo("Nothing to export")
		return nil
	}
	t := s.exportTable()
	base := s.kind.ID
	if s.ownerID != "" {
		base = s.ownerID + "-" + s.kind.ID
	}
	dir := s.m.opts.DownloadDir
	now := s.m.now()
	s.pending++
	return s.run("export", func(context.Context) interface{} {
		path, err := export.Save(dir, base, t, now)
		return exportDoneMsg{path: path, rows: len(t.Rows), err: err}
	})
}

func (s *recordScreen[R]) downloadPDF() tea.Cmd {
	rec, ok := s.restore.Selected()
	if !ok {
		s.m.setInfo("Select a record first")
		return nil
	}
	report, ok := any(rec).(signable)
	if !ok {
		s.m.setInfo("PDF download is only available for medical reports")
		return nil
	}
	if !report.Signed() {
		s.m.errMsg = pdfError(record.ErrNotSigned)
		return nil
	}
	docs := s.m.sources.Documents
	if docs == nil {
		s.m.errMsg = "PDF download is not available for this data source"
		return nil
	}
	id := rec.RecordID()
	dir := s.m.opts.DownloadDir
	s.pending++
	return s.run("pdf", func(ctx context.Context) interface{} {
		path, err := savePDF(ctx, docs, dir, id)
		return pdfDoneMsg{path: path, err: err}
	})
}

func savePDF(ctx context.Context, docs medical.Documents, dir, id string) (string, error) {
	data, err := docs.ReportPDF(ctx, id)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("empty document")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("report-%s.pdf", id))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

package state

import (
	"context"
	"errors"

	"github.com/atomicstack/ohsdash/internal/record"
)

var (
	// ErrFormClosed is returned when submitting a session that is not open.
	ErrFormClosed = errors.New("form is not open")
	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("form submission already in flight")
)

// FormMode selects the backend operation a submission performs.
type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
	FormSection
)

func (m FormMode) String() string {
	switch m {
	case FormEdit:
		return "edit"
	case FormSection:
		return "section"
	default:
		return "create"
	}
}

// Invalidator receives the "invalidate and refetch" notification after a
// successful save.
type Invalidator interface {
	Invalidate()
}

// Outcome is the result of completing a submission.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSaved
	OutcomeNoOp
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeNoOp:
		return "no-op"
	default:
		return "failed"
	}
}

// Submission is an immutable snapshot of a form ready to be sent.
type Submission[R record.Record] struct {
	Mode    FormMode
	ID      string
	Section string
	Fields  record.Fields
}

// SubmitResult carries the backend response for a submission.
type SubmitResult[R record.Record] struct {
	Record    R
	Changed   []string
	Unchanged bool
	Err       error
}

// Execute performs the submission against src.
func (s Submission[R]) Execute(ctx context.Context, src record.Source[R]) SubmitResult[R] {
	switch s.Mode {
	case FormEdit:
		rec, err := src.Update(ctx, s.ID, s.Fields)
		return SubmitResult[R]{Record: rec, Err: err}
	case FormSection:
		res, err := src.PartialUpdate(ctx, s.ID, s.Fields)
		if err != nil {
			return SubmitResult[R]{Err: err}
		}
		return SubmitResult[R]{Record: res.Record, Changed: res.ChangedFields, Unchanged: res.Unchanged}
	default:
		rec, err := src.Create(ctx, s.Fields)
		return SubmitResult[R]{Record: rec, Err: err}
	}
}

// FormSession is the buffer behind a create, edit or section-edit dialog.
type FormSession[R record.Record] struct {
	mode        FormMode
	open        bool
	submitting  bool
	id          string
	section     string
	names       []string
	buffer      record.Fields
	err         error
	invalidator Invalidator
}

// NewFormSession creates a closed session that notifies inv after saves.
func NewFormSession[R record.Record](inv Invalidator) *FormSession[R] {
	return &FormSession[R]{invalidator: inv}
}

// OpenCreate seeds an empty create buffer, optionally with defaults.
func (f *FormSession[R]) OpenCreate(defaults record.Fields) {
	f.reset(FormCreate, "", "", nil)
	f.buffer = defaults.Clone()
}

// OpenEdit seeds the buffer with the current values of record id.
func (f *FormSession[R]) OpenEdit(id string, current record.Fields) {
	f.reset(FormEdit, id, "", nil)
	f.buffer = current.Clone()
}

// OpenSection seeds the buffer with only the named fields of record id.
func (f *FormSession[R]) OpenSection(id, section string, current record.Fields, names []string) {
	f.reset(FormSection, id, section, names)
	f.buffer = current.Subset(names)
}

func (f *FormSession[R]) reset(mode FormMode, id, section string, names []string) {
	f.mode = mode
	f.open = true
	f.submitting = false
	f.id = id
	f.section = section
	f.names = append([]string(nil), names...)
	f.err = nil
}

// Open reports whether the dialog is showing.
func (f *FormSession[R]) Open() bool { return f.open }

// Mode returns the session mode.
func (f *FormSession[R]) Mode() FormMode { return f.mode }

// ID returns the edited record id; "" when creating.
func (f *FormSession[R]) ID() string { return f.id }

// Section returns the section name in section mode.
func (f *FormSession[R]) Section() string { return f.section }

// Submitting reports whether a submission is in flight.
func (f *FormSession[R]) Submitting() bool { return f.submitting }

// Err returns the error from the last failed submission.
func (f *FormSession[R]) Err() error { return f.err }

// Buffer returns a copy of the current buffer.
func (f *FormSession[R]) Buffer() record.Fields { return f.buffer.Clone() }

// Value returns one buffered value.
func (f *FormSession[R]) Value(name string) interface{} { return f.buffer[name] }

// Set writes one value into the buffer. In section mode only the section's
// fields are accepted.
func (f *FormSession[R]) Set(name string, value interface{}) bool {
	if !f.open {
		return false
	}
	if f.mode == FormSection && !containsString(f.names, name) {
		return false
	}
	if f.buffer == nil {
		f.buffer = record.Fields{}
	}
	f.buffer[name] = value
	return true
}

// SetError records a locally detected problem without submitting.
func (f *FormSession[R]) SetError(err error) { f.err = err }

// Cancel closes the dialog and discards the buffer.
func (f *FormSession[R]) Cancel() {
	f.open = false
	f.submitting = false
	f.buffer = nil
	f.err = nil
}

// Begin snapshots the buffer for submission.
func (f *FormSession[R]) Begin() (Submission[R], error) {
	if !f.open {
		return Submission[R]{}, ErrFormClosed
	}
	if f.submitting {
		return Submission[R]{}, ErrSubmitInFlight
	}
	f.submitting = true
	f.err = nil
	fields := f.buffer.Clone()
	if f.mode == FormSection {
		fields = fields.Subset(f.names)
	}
	return Submission[R]{Mode: f.mode, ID: f.id, Section: f.section, Fields: fields}, nil
}

// Complete applies a submission result. A failure keeps the dialog open with
// the buffer intact. An unchanged section update closes the dialog without
// invalidating the list. Any other success closes the dialog and invalidates.
func (f *FormSession[R]) Complete(res SubmitResult[R]) Outcome {
	f.submitting = false
	if res.Err != nil {
		f.err = res.Err
		return OutcomeFailed
	}
	f.open = false
	f.buffer = nil
	f.err = nil
	if f.mode == FormSection && res.Unchanged {
		return OutcomeNoOp
	}
	if f.invalidator != nil {
		f.invalidator.Invalidate()
	}
	return OutcomeSaved
}

// Submit runs Begin, Execute and Complete synchronously.
func (f *FormSession[R]) Submit(ctx context.Context, src record.Source[R]) (Outcome, SubmitResult[R]) {
	sub, err := f.Begin()
	if err != nil {
		return OutcomeFailed, SubmitResult[R]{Err: err}
	}
	res := sub.Execute(ctx, src)
	return f.Complete(res), res
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

package medical

import (
	"context"
	"fmt"

	"github.com/atomicstack/ohsdash/internal/directory"
)

// Sign-off states of a medical report.
const (
	SignOffDraft   = "draft"
	SignOffPending = "pending"
	SignOffSigned  = "signed"
)

// MedicalReport is the outcome of a fitness examination.
type MedicalReport struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	ReportType      string   `json:"report_type"`
	ExaminationDate string   `json:"examination_date"`
	NextDueDate     string   `json:"next_due_date"`
	HeightCM        *float64 `json:"height_cm"`
	WeightKG        *float64 `json:"weight_kg"`
	BloodPressure   string   `json:"blood_pressure"`
	PulseBPM        *float64 `json:"pulse_bpm"`
	FitnessOutcome  string   `json:"fitness_outcome"`
	Restrictions    string   `json:"restrictions"`
	ExaminingDoctor string   `json:"examining_doctor"`
	SignOffStatus   string   `json:"sign_off_status"`
	Notes           string   `json:"notes"`
	Timestamps
}

func (r MedicalReport) RecordID() string { return r.ID }

// Signed reports whether the PDF rendering service may be called.
func (r MedicalReport) Signed() bool { return r.SignOffStatus == SignOffSigned }

// Documents renders signed reports.
type Documents interface {
	ReportPDF(ctx context.Context, id string) ([]byte, error)
}

// Reports describes medical examination reports.
var Reports = &Kind[MedicalReport]{
	ID:       "reports",
	Title:    "Medical reports",
	Resource: "reports",
	Owned:    true,
	Columns: []Column[MedicalReport]{
		{Title: "Employee", Value: func(r MedicalReport, n directory.Names) string {
			return directory.NameOr(n, directory.KindEmployee, r.EmployeeID)
		}},
		{Title: "Type", Value: func(r MedicalReport, _ directory.Names) string { return humanize(r.ReportType) }},
		{Title: "Examined", Value: func(r MedicalReport, _ directory.Names) string { return r.ExaminationDate }},
		{Title: "Outcome", Value: func(r MedicalReport, _ directory.Names) string { return humanize(r.FitnessOutcome) }},
		{Title: "Sign-off", Value: func(r MedicalReport, _ directory.Names) string { return r.SignOffStatus }},
	},
	Search: func(r MedicalReport, n directory.Names) []string {
		return []string{
			directory.NameOr(n, directory.KindEmployee, r.EmployeeID),
			humanize(r.ReportType),
			humanize(r.FitnessOutcome),
			r.ExaminingDoctor,
			r.ExaminationDate,
		}
	},
	Status:   func(r MedicalReport) string { return r.SignOffStatus },
	Statuses: []string{SignOffDraft, SignOffPending, SignOffSigned},
	Fields: []FieldSpec{
		{Name: "employee_id", Label: "Employee", Type: FieldLookup, Lookup: directory.KindEmployee, Required: true},
		{Name: "report_type", Label: "Report type", Type: FieldChoice, Required: true,
			Choices: []string{"pre_employment", "periodic", "return_to_work", "exit"}},
		{Name: "examination_date", Label: "Examination date", Type: FieldDate, Required: true},
		{Name: "next_due_date", Label: "Next due", Type: FieldDate},
		{Name: "height_cm", Label: "Height (cm)", Type: FieldNumber},
		{Name: "weight_kg", Label: "Weight (kg)", Type: FieldNumber},
		{Name: "blood_pressure", Label: "Blood pressure", Type: FieldText},
		{Name: "pulse_bpm", Label: "Pulse (bpm)", Type: FieldNumber},
		{Name: "fitness_outcome", Label: "Fitness outcome", Type: FieldChoice,
			Choices: []string{"fit", "fit_with_restrictions", "temporarily_unfit", "unfit"}},
		{Name: "restrictions", Label: "Restrictions", Type: FieldLongText},
		{Name: "examining_doctor", Label: "Examining doctor", Type: FieldText},
		{Name: "sign_off_status", Label: "Sign-off", Type: FieldChoice,
			Choices: []string{SignOffDraft, SignOffPending, SignOffSigned}},
		{Name: "notes", Label: "Notes", Type: FieldLongText},
	},
	Sections: []Section{
		{Name: "examination", Title: "Examination", Fields: []string{"report_type", "examination_date", "next_due_date", "examining_doctor"}},
		{Name: "vitals", Title: "Vitals", Fields: []string{"height_cm", "weight_kg", "blood_pressure", "pulse_bpm"}},
		{Name: "outcome", Title: "Outcome", Fields: []string{"fitness_outcome", "restrictions", "sign_off_status", "notes"}},
	},
	Detail: func(r MedicalReport, n directory.Names) string {
		var d detailBuilder
		d.heading(fmt.Sprintf("%s report", humanize(r.ReportType)))
		d.row("Employee", directory.NameOr(n, directory.KindEmployee, r.EmployeeID))
		d.row("Examined", r.ExaminationDate)
		d.row("Next due", r.NextDueDate)
		d.row("Doctor", r.ExaminingDoctor)
		d.row("Sign-off", r.SignOffStatus)
		d.heading("Vitals")
		d.row("Height (cm)", optionalNumber(r.HeightCM))
		d.row("Weight (kg)", optionalNumber(r.WeightKG))
		d.row("Blood pressure", r.BloodPressure)
		d.row("Pulse (bpm)", optionalNumber(r.PulseBPM))
		d.heading("Outcome")
		d.row("Fitness", humanize(r.FitnessOutcome))
		d.text("Restrictions", r.Restrictions)
		d.text("Notes", r.Notes)
		return d.String()
	},
	Label: func(r MedicalReport, n directory.Names) string {
		return fmt.Sprintf("%s, %s %s", directory.NameOr(n, directory.KindEmployee, r.EmployeeID), humanize(r.ReportType), r.ExaminationDate)
	},
}

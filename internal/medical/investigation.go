package medical

import (
	"fmt"

	"github.com/atomicstack/ohsdash/internal/directory"
)

// SpecialInvestigation is a targeted test such as audiometry or spirometry.
type SpecialInvestigation struct {
	ID                string `json:"id"`
	EmployeeID        string `json:"employee_id"`
	InvestigationType string `json:"investigation_type"`
	PerformedOn       string `json:"performed_on"`
	PerformedBy       string `json:"performed_by"`
	ResultSummary     string `json:"result_summary"`
	ResultStatus      string `json:"result_status"`
	ReferredTo        string `json:"referred_to"`
	Notes             string `json:"notes"`
	Timestamps
}

func (s SpecialInvestigation) RecordID() string { return s.ID }

// Investigations describes special investigations.
var Investigations = &Kind[SpecialInvestigation]{
	ID:       "investigations",
	Title:    "Special investigations",
	Resource: "special-investigations",
	Owned:    true,
	Columns: []Column[SpecialInvestigation]{
		{Title: "Employee", Value: func(s SpecialInvestigation, n directory.Names) string {
			return directory.NameOr(n, directory.KindEmployee, s.EmployeeID)
		}},
		{Title: "Type", Value: func(s SpecialInvestigation, _ directory.Names) string { return humanize(s.InvestigationType) }},
		{Title: "Performed", Value: func(s SpecialInvestigation, _ directory.Names) string { return s.PerformedOn }},
		{Title: "Result", Value: func(s SpecialInvestigation, _ directory.Names) string { return s.ResultStatus }},
	},
	Search: func(s SpecialInvestigation, n directory.Names) []string {
		return []string{
			directory.NameOr(n, directory.KindEmployee, s.EmployeeID),
			humanize(s.InvestigationType),
			s.ResultSummary,
			s.ReferredTo,
		}
	},
	Status:   func(s SpecialInvestigation) string { return s.ResultStatus },
	Statuses: []string{"normal", "abnormal", "pending", "referred"},
	Fields: []FieldSpec{
		{Name: "employee_id", Label: "Employee", Type: FieldLookup, Lookup: directory.KindEmployee, Required: true},
		{Name: "investigation_type", Label: "Investigation", Type: FieldChoice, Required: true,
			Choices: []string{"audiometry", "spirometry", "vision", "ecg", "chest_xray", "drug_screen"}},
		{Name: "performed_on", Label: "Performed on", Type: FieldDate, Required: true},
		{Name: "performed_by", Label: "Performed by", Type: FieldText},
		{Name: "result_summary", Label: "Result summary", Type: FieldLongText},
		{Name: "result_status", Label: "Result", Type: FieldChoice, Choices: []string{"normal", "abnormal", "pending", "referred"}},
		{Name: "referred_to", Label: "Referred to", Type: FieldText},
		{Name: "notes", Label: "Notes", Type: FieldLongText},
	},
	Sections: []Section{
		{Name: "result", Title: "Result", Fields: []string{"result_summary", "result_status", "referred_to"}},
	},
	Detail: func(s SpecialInvestigation, n directory.Names) string {
		var d detailBuilder
		d.heading(humanize(s.InvestigationType))
		d.row("Employee", directory.NameOr(n, directory.KindEmployee, s.EmployeeID))
		d.row("Performed on", s.PerformedOn)
		d.row("Performed by", s.PerformedBy)
		d.row("Result", s.ResultStatus)
		d.row("Referred to", s.ReferredTo)
		d.text("Summary", s.ResultSummary)
		d.text("Notes", s.Notes)
		return d.String()
	},
	Label: func(s SpecialInvestigation, n directory.Names) string {
		return fmt.Sprintf("%s, %s %s", directory.NameOr(n, directory.KindEmployee, s.EmployeeID), humanize(s.InvestigationType), s.PerformedOn)
	},
}

package medical

import "github.com/atomicstack/ohsdash/internal/directory"

// MedicalHistory is an employee's background health record.
type MedicalHistory struct {
	ID                string `json:"id"`
	EmployeeID        string `json:"employee_id"`
	ChronicConditions string `json:"chronic_conditions"`
	Medications       string `json:"medications"`
	Allergies         string `json:"allergies"`
	Surgeries         string `json:"surgeries"`
	FamilyHistory     string `json:"family_history"`
	Immunisations     string `json:"immunisations"`
	Notes             string `json:"notes"`
	Timestamps
}

func (h MedicalHistory) RecordID() string { return h.ID }

func summary(text string) string {
	if text == "" {
		return "none recorded"
	}
	return text
}

// Histories describes medical history records. They carry no status.
var Histories = &Kind[MedicalHistory]{
	ID:       "medical-history",
	Title:    "Medical history",
	Resource: "medical-history",
	Owned:    true,
	Columns: []Column[MedicalHistory]{
		{Title: "Employee", Value: func(h MedicalHistory, n directory.Names) string {
			return directory.NameOr(n, directory.KindEmployee, h.EmployeeID)
		}},
		{Title: "Conditions", Value: func(h MedicalHistory, _ directory.Names) string { return summary(h.ChronicConditions) }},
		{Title: "Allergies", Value: func(h MedicalHistory, _ directory.Names) string { return summary(h.Allergies) }},
		{Title: "Updated", Value: func(h MedicalHistory, _ directory.Names) string {
			ts := h.Timestamp()
			if ts.IsZero() {
				return ""
			}
			return ts.Format(DateLayout)
		}},
	},
	Search: func(h MedicalHistory, n directory.Names) []string {
		return []string{
			directory.NameOr(n, directory.KindEmployee, h.EmployeeID),
			h.ChronicConditions,
			h.Medications,
			h.Allergies,
		}
	},
	Fields: []FieldSpec{
		{Name: "employee_id", Label: "Employee", Type: FieldLookup, Lookup: directory.KindEmployee, Required: true},
		{Name: "chronic_conditions", Label: "Chronic conditions", Type: FieldLongText},
		{Name: "medications", Label: "Medications", Type: FieldLongText},
		{Name: "allergies", Label: "Allergies", Type: FieldLongText},
		{Name: "surgeries", Label: "Surgeries", Type: FieldLongText},
		{Name: "family_history", Label: "Family history", Type: FieldLongText},
		{Name: "immunisations", Label: "Immunisations", Type: FieldLongText},
		{Name: "notes", Label: "Notes", Type: FieldLongText},
	},
	Sections: []Section{
		{Name: "conditions", Title: "Conditions", Fields: []string{"chronic_conditions", "medications", "allergies"}},
		{Name: "background", Title: "Background", Fields: []string{"surgeries", "family_history", "immunisations", "notes"}},
	},
	Detail: func(h MedicalHistory, n directory.Names) string {
		var d detailBuilder
		d.heading("Medical history")
		d.row("Employee", directory.NameOr(n, directory.KindEmployee, h.EmployeeID))
		d.text("Chronic conditions", h.ChronicConditions)
		d.text("Medications", h.Medications)
		d.text("Allergies", h.Allergies)
		d.text("Surgeries", h.Surgeries)
		d.text("Family history", h.FamilyHistory)
		d.text("Immunisations", h.Immunisations)
		d.text("Notes", h.Notes)
		return d.String()
	},
	Label: func(h MedicalHistory, n directory.Names) string {
		return directory.NameOr(n, directory.KindEmployee, h.EmployeeID)
	},
}

package medical

import (
	"fmt"

	"github.com/atomicstack/ohsdash/internal/directory"
)

// Risk levels derived from a lifestyle screening.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// MensHealth is a lifestyle and men's health screening.
type MensHealth struct {
	ID                    string   `json:"id"`
	EmployeeID            string   `json:"employee_id"`
	ScreeningDate         string   `json:"screening_date"`
	Smoker                bool     `json:"smoker"`
	CigarettesPerDay      *float64 `json:"cigarettes_per_day"`
	AlcoholUnitsWeekly    *float64 `json:"alcohol_units_weekly"`
	ExerciseMinutesWeekly *float64 `json:"exercise_minutes_weekly"`
	SleepHours            *float64 `json:"sleep_hours"`
	StressLevel           string   `json:"stress_level"`
	PSATested             bool     `json:"psa_tested"`
	PSAValue              *float64 `json:"psa_value"`
	SelfExamination       bool     `json:"self_examination"`
	Notes                 string   `json:"notes"`
	Timestamps
}

func (m MensHealth) RecordID() string { return m.ID }

// Risk scores the screening answers. Unanswered numeric questions do not
// contribute.
func (m MensHealth) Risk() string {
	score := 0
	if m.Smoker {
		score += 2
	}
	if v := m.AlcoholUnitsWeekly; v != nil {
		switch {
		case *v > 28:
			score += 2
		case *v > 14:
			score++
		}
	}
	if v := m.ExerciseMinutesWeekly; v != nil && *v < 150 {
		score++
	}
	if v := m.SleepHours; v != nil && *v < 6 {
		score++
	}
	if m.StressLevel == "high" {
		score++
	}
	if m.PSATested && m.PSAValue != nil && *m.PSAValue > 4 {
		score += 2
	}
	switch {
	case score >= 4:
		return RiskHigh
	case score >= 2:
		return RiskModerate
	default:
		return RiskLow
	}
}

// MensHealthScreenings describes lifestyle screenings.
var MensHealthScreenings = &Kind[MensHealth]{
	ID:       "mens-health",
	Title:    "Men's health",
	Resource: "mens-health",
	Owned:    true,
	Columns: []Column[MensHealth]{
		{Title: "Employee", Value: func(m MensHealth, n directory.Names) string {
			return directory.NameOr(n, directory.KindEmployee, m.EmployeeID)
		}},
		{Title: "Screened", Value: func(m MensHealth, _ directory.Names) string { return m.ScreeningDate }},
		{Title: "Smoker", Value: func(m MensHealth, _ directory.Names) string { return yesNo(m.Smoker) }},
		{Title: "Stress", Value: func(m MensHealth, _ directory.Names) string { return m.StressLevel }},
		{Title: "Risk", Value: func(m MensHealth, _ directory.Names) string { return m.Risk() }},
	},
	Search: func(m MensHealth, n directory.Names) []string {
		return []string{
			directory.NameOr(n, directory.KindEmployee, m.EmployeeID),
			m.ScreeningDate,
			m.Notes,
		}
	},
	Status:   func(m MensHealth) string { return m.Risk() },
	Statuses: []string{RiskLow, RiskModerate, RiskHigh},
	Fields: []FieldSpec{
		{Name: "employee_id", Label: "Employee", Type: FieldLookup, Lookup: directory.KindEmployee, Required: true},
		{Name: "screening_date", Label: "Screening date", Type: FieldDate, Required: true},
		{Name: "smoker", Label: "Smoker", Type: FieldBool},
		{Name: "cigarettes_per_day", Label: "Cigarettes per day", Type: FieldNumber},
		{Name: "alcohol_units_weekly", Label: "Alcohol units / week", Type: FieldNumber},
		{Name: "exercise_minutes_weekly", Label: "Exercise minutes / week", Type: FieldNumber},
		{Name: "sleep_hours", Label: "Sleep hours", Type: FieldNumber},
		{Name: "stress_level", Label: "Stress", Type: FieldChoice, Choices: []string{"low", "moderate", "high"}},
		{Name: "psa_tested", Label: "PSA tested", Type: FieldBool},
		{Name: "psa_value", Label: "PSA (ng/mL)", Type: FieldNumber},
		{Name: "self_examination", Label: "Self examination", Type: FieldBool},
		{Name: "notes", Label: "Notes", Type: FieldLongText},
	},
	Sections: []Section{
		{Name: "lifestyle", Title: "Lifestyle", Fields: []string{
			"smoker", "cigarettes_per_day", "alcohol_units_weekly", "exercise_minutes_weekly", "sleep_hours", "stress_level",
		}},
		{Name: "screening", Title: "Screening", Fields: []string{"psa_tested", "psa_value", "self_examination", "notes"}},
	},
	Detail: func(m MensHealth, n directory.Names) string {
		var d detailBuilder
		d.heading(fmt.Sprintf("Screening %s", m.ScreeningDate))
		d.row("Employee", directory.NameOr(n, directory.KindEmployee, m.EmployeeID))
		d.row("Risk", m.Risk())
		d.heading("Lifestyle")
		d.row("Smoker", yesNo(m.Smoker))
		d.row("Cigarettes per day", optionalNumber(m.CigarettesPerDay))
		d.row("Alcohol units / week", optionalNumber(m.AlcoholUnitsWeekly))
		d.row("Exercise minutes / week", optionalNumber(m.ExerciseMinutesWeekly))
		d.row("Sleep hours", optionalNumber(m.SleepHours))
		d.row("Stress", m.StressLevel)
		d.heading("Screening")
		d.row("PSA tested", yesNo(m.PSATested))
		d.row("PSA (ng/mL)", optionalNumber(m.PSAValue))
		d.row("Self examination", yesNo(m.SelfExamination))
		d.text("Notes", m.Notes)
		return d.String()
	},
	Label: func(m MensHealth, n directory.Names) string {
		return fmt.Sprintf("%s, %s", directory.NameOr(n, directory.KindEmployee, m.EmployeeID), m.ScreeningDate)
	},
}

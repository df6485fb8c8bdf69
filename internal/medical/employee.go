package medical

import (
	"fmt"
	"strings"

	"github.com/atomicstack/ohsdash/internal/directory"
)

// Employee is a member of staff under occupational health surveillance.
type Employee struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FirstName      string `json:"first_name"`
	Surname        string `json:"surname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	JobTitle       string `json:"job_title"`
	OrganizationID string `json:"organization_id"`
	SiteID         string `json:"site_id"`
	CostCenterID   string `json:"cost_center_id"`
	Active         bool   `json:"active"`
	Timestamps
}

func (e Employee) RecordID() string { return e.ID }

// FullName joins the first name and surname.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.Surname)
}

func employeeStatus(e Employee) string {
	if e.Active {
		return "active"
	}
	return "inactive"
}

// Employees describes the employee register.
var Employees = &Kind[Employee]{
	ID:       "employees",
	Title:    "Employees",
	Resource: "employees",
	Columns: []Column[Employee]{
		{Title: "No.", Value: func(e Employee, _ directory.Names) string { return e.EmployeeNumber }},
		{Title: "Name", Value: func(e Employee, _ directory.Names) string { return e.FullName() }},
		{Title: "Job title", Value: func(e Employee, _ directory.Names) string { return e.JobTitle }},
		{Title: "Organization", Value: func(e Employee, n directory.Names) string {
			return directory.NameOr(n, directory.KindOrganization, e.OrganizationID)
		}},
		{Title: "Status", Value: func(e Employee, _ directory.Names) string { return employeeStatus(e) }},
	},
	Search: func(e Employee, n directory.Names) []string {
		return []string{
			e.EmployeeNumber,
			e.FullName(),
			e.Email,
			e.JobTitle,
			directory.NameOr(n, directory.KindOrganization, e.OrganizationID),
			directory.NameOr(n, directory.KindSite, e.SiteID),
		}
	},
	Status:   employeeStatus,
	Statuses: []string{"active", "inactive"},
	Fields: []FieldSpec{
		{Name: "employee_number", Label: "Employee number", Type: FieldText, Required: true},
		{Name: "first_name", Label: "First name", Type: FieldText, Required: true},
		{Name: "surname", Label: "Surname", Type: FieldText, Required: true},
		{Name: "email", Label: "Email", Type: FieldText},
		{Name: "phone", Label: "Phone", Type: FieldText},
		{Name: "job_title", Label: "Job title", Type: FieldText},
		{Name: "organization_id", Label: "Organization", Type: FieldLookup, Lookup: directory.KindOrganization},
		{Name: "site_id", Label: "Site", Type: FieldLookup, Lookup: directory.KindSite},
		{Name: "cost_center_id", Label: "Cost center", Type: FieldLookup, Lookup: directory.KindCostCenter},
		{Name: "active", Label: "Active", Type: FieldBool},
	},
	Sections: []Section{
		{Name: "contact", Title: "Contact details", Fields: []string{"email", "phone"}},
		{Name: "placement", Title: "Placement", Fields: []string{"job_title", "organization_id", "site_id", "cost_center_id", "active"}},
	},
	Detail: func(e Employee, n directory.Names) string {
		var d detailBuilder
		d.heading(e.FullName())
		d.row("Employee number", e.EmployeeNumber)
		d.row("Email", e.Email)
		d.row("Phone", e.Phone)
		d.heading("Placement")
		d.row("Job title", e.JobTitle)
		d.row("Organization", directory.NameOr(n, directory.KindOrganization, e.OrganizationID))
		d.row("Site", directory.NameOr(n, directory.KindSite, e.SiteID))
		d.row("Cost center", directory.NameOr(n, directory.KindCostCenter, e.CostCenterID))
		d.row("Status", employeeStatus(e))
		return d.String()
	},
	Label: func(e Employee, _ directory.Names) string {
		if e.EmployeeNumber == "" {
			return e.FullName()
		}
		return fmt.Sprintf("%s (%s)", e.FullName(), e.EmployeeNumber)
	},
}

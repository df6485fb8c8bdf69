// Package directory describes the reference lookups the console consults:
// the employee directory and the organization, site and cost-center lists
// used by form pickers.
package directory

import "context"

// Kind identifies a reference list.
type Kind string

const (
	KindEmployee     Kind = "employee"
	KindOrganization Kind = "organization"
	KindSite         Kind = "site"
	KindCostCenter   Kind = "cost-center"
)

// Kinds lists every reference list in polling order.
func Kinds() []Kind {
	return []Kind{KindEmployee, KindOrganization, KindSite, KindCostCenter}
}

// Entry is one reference value.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

// Service fetches reference lists from the backend.
type Service interface {
	Entries(ctx context.Context, kind Kind) ([]Entry, error)
}

// Names resolves ids to display names. Unknown ids resolve to "".
type Names interface {
	Name(kind Kind, id string) string
}

// NameOr returns the resolved name or the id itself.
func NameOr(names Names, kind Kind, id string) string {
	if id == "" {
		return ""
	}
	if names != nil {
		if name := names.Name(kind, id); name != "" {
			return name
		}
	}
	return id
}

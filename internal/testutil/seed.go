package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SeedDocument is a small snapshot: one organization, two employees, a
// signed and a draft report for the first employee and the signed report's
// PDF ("%PDF-1.7").
const SeedDocument = `{
	"directory": {
		"organization": [{"id": "org-1", "name": "Acme Mining"}],
		"site": [{"id": "site-1", "name": "North shaft", "parentId": "org-1"}]
	},
	"records": {
		"employees": [
			{"id": "e1", "employee_number": "E1", "first_name": "Ada", "surname": "Lovelace", "organization_id": "org-1", "active": true},
			{"id": "e2", "employee_number": "E2", "first_name": "Grace", "surname": "Hopper", "active": false}
		],
		"reports": [
			{"id": "r1", "employee_id": "e1", "report_type": "periodic", "examination_date": "2024-01-10", "sign_off_status": "signed"},
			{"id": "r2", "employee_id": "e1", "report_type": "exit", "examination_date": "2024-02-11", "sign_off_status": "draft"}
		]
	},
	"documents": {"r1": "JVBERi0xLjc="}
}`

// SeedRecords is the number of records in SeedDocument.
const SeedRecords = 4

// WriteSeed writes content (SeedDocument when empty) to a temp file and
// returns its path.
func WriteSeed(t *testing.T, content string) string {
	t.Helper()
	if content == "" {
		content = SeedDocument
	}
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}
	return path
}

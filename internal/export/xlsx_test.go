package export

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestWriteReadPreservesCells(t *testing.T) {
	table := Table{
		Sheet:   "Medical reports: signed",
		Headers: []string{"Employee", "Type", "Examined"},
		Rows: [][]string{
			{"Thabo Nkosi", "periodic", "2024-01-03"},
			{"Ánh Nguyễn", "exit", "2024-02-10"},
		},
	}
	var buf bytes.Buffer
	if err := Write(&buf, table); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Sheet != "Medical reports signed" {
		t.Fatalf("expected sanitized sheet name, got %q", got.Sheet)
	}
	if !reflect.DeepEqual(got.Headers, table.Headers) || !reflect.DeepEqual(got.Rows, table.Rows) {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestSaveUsesTimestampedSlug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	path, err := Save(dir, "Men's health", Table{Headers: []string{"Risk"}, Rows: [][]string{{"low"}}}, now)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "men-s-health-20240506-070809.xlsx" {
		t.Fatalf("unexpected file name %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestSheetNameLimits(t *testing.T) {
	if got := sheetName(" "); got != "Records" {
		t.Fatalf("expected fallback name, got %q", got)
	}
	long := sheetName("an extremely long worksheet title that overflows")
	if len([]rune(long)) != 31 {
		t.Fatalf("expected 31 runes, got %d", len([]rune(long)))
	}
}

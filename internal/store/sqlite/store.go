// Package sqlite is an offline record source backed by a local SQLite
// snapshot. It honours the same contract as the REST backend so the console
// can run without network access.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/record"
)

// stampLayout sorts lexically in chronological order.
const stampLayout = "2006-01-02T15:04:05.000000000Z"

// Store owns the database handle shared by every collection.
type Store struct {
	db    *sql.DB
	path  string
	now   func() time.Time
	newID func() string
}

// Open creates or opens the snapshot at path and applies migrations.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path, now: time.Now, newID: uuid.NewString}, nil
}

func migrate(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS records (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			owner_id TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (kind, id)
		);`,
		`CREATE INDEX IF NOT EXISTS records_owner ON records (kind, owner_id);`,
		`CREATE TABLE IF NOT EXISTS directory (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			parent_id TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (kind, id)
		);`,
		`CREATE TABLE IF NOT EXISTS documents (
			report_id TEXT PRIMARY KEY,
			content BLOB NOT NULL
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: migration failed: %w", err)
		}
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (s *Store) stamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

func (s *Store) loadFields(ctx context.Context, kind, id string) (record.Fields, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM records WHERE kind = ? AND id = ?`, kind, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, record.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load %s %s: %w", kind, id, err)
	}
	var fields record.Fields
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("sqlite: decode %s %s: %w", kind, id, err)
	}
	return fields, nil
}

func (s *Store) saveFields(ctx context.Context, db execer, kind, owner string, fields record.Fields) error {
	id := fields.String("id")
	created := parseStamp(fields.String("created_at"))
	updated := parseStamp(fields.String("updated_at"))
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("sqlite: encode %s %s: %w", kind, id, err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO records (kind, id, owner_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET
			owner_id = excluded.owner_id,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		kind, id, owner, string(data), s.stamp(created), s.stamp(updated))
	if err != nil {
		return fmt.Errorf("sqlite: save %s %s: %w", kind, id, err)
	}
	return nil
}

func parseStamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Entries implements directory.Service. Employee names come from the
// employee records themselves when the directory table has none.
func (s *Store) Entries(ctx context.Context, kind directory.Kind) ([]directory.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, parent_id FROM directory WHERE kind = ? ORDER BY name, id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("sqlite: directory %s: %w", kind, err)
	}
	defer rows.Close()
	var entries []directory.Entry
	for rows.Next() {
		var e directory.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.ParentID); err != nil {
			return nil, fmt.Errorf("sqlite: directory %s: %w", kind, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: directory %s: %w", kind, err)
	}
	if len(entries) == 0 && kind == directory.KindEmployee {
		return s.employeeEntries(ctx)
	}
	return entries, nil
}

func (s *Store) employeeEntries(ctx context.Context) ([]directory.Entry, error) {
	employees, err := record.ListAll[medical.Employee](ctx, s.Employees(), record.Filter{}, 0)
	if err != nil {
		return nil, err
	}
	entries := make([]directory.Entry, 0, len(employees))
	for _, e := range employees {
		entries = append(entries, directory.Entry{ID: e.ID, Name: e.FullName()})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// PutEntries replaces one reference list.
func (s *Store) PutEntries(ctx context.Context, kind directory.Kind, entries []directory.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()
	if err := putEntries(ctx, tx, kind, entries); err != nil {
		return err
	}
	return tx.Commit()
}

func putEntries(ctx context.Context, tx *sql.Tx, kind directory.Kind, entries []directory.Entry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM directory WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("sqlite: clear directory %s: %w", kind, err)
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO directory (kind, id, name, parent_id) VALUES (?, ?, ?, ?)`,
			string(kind), e.ID, e.Name, e.ParentID); err != nil {
			return fmt.Errorf("sqlite: insert directory %s %s: %w", kind, e.ID, err)
		}
	}
	return nil
}

// PutDocument stores the rendered PDF for a report.
func (s *Store) PutDocument(ctx context.Context, reportID string, content []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO documents (report_id, content) VALUES (?, ?)
		ON CONFLICT(report_id) DO UPDATE SET content = excluded.content`, reportID, content)
	if err != nil {
		return fmt.Errorf("sqlite: save document %s: %w", reportID, err)
	}
	return nil
}

// ReportPDF implements medical.Documents for snapshots that carry documents.
func (s *Store) ReportPDF(ctx context.Context, id string) ([]byte, error) {
	report, err := s.Reports().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.Signed() {
		return nil, fmt.Errorf("report %s: %w", id, record.ErrNotSigned)
	}
	var content []byte
	err = s.db.QueryRowContext(ctx, `SELECT content FROM documents WHERE report_id = ?`, id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document for report %s: %w", id, record.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load document %s: %w", id, err)
	}
	return content, nil
}

// Employees returns the employee collection.
func (s *Store) Employees() *Collection[medical.Employee] {
	return NewCollection[medical.Employee](s, medical.Employees.ID, "", medical.Employees.Validate)
}

// Reports returns the medical report collection.
func (s *Store) Reports() *Collection[medical.MedicalReport] {
	return NewCollection[medical.MedicalReport](s, medical.Reports.ID, OwnerField, medical.Reports.Validate)
}

// MensHealth returns the lifestyle screening collection.
func (s *Store) MensHealth() *Collection[medical.MensHealth] {
	return NewCollection[medical.MensHealth](s, medical.MensHealthScreenings.ID, OwnerField, medical.MensHealthScreenings.Validate)
}

// Histories returns the medical history collection.
func (s *Store) Histories() *Collection[medical.MedicalHistory] {
	return NewCollection[medical.MedicalHistory](s, medical.Histories.ID, OwnerField, medical.Histories.Validate)
}

// Investigations returns the special investigation collection.
func (s *Store) Investigations() *Collection[medical.SpecialInvestigation] {
	return NewCollection[medical.SpecialInvestigation](s, medical.Investigations.ID, OwnerField, medical.Investigations.Validate)
}

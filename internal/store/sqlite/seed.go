package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/record"
)

// Seed is the JSON document accepted by Import. Records are keyed by kind
// id, directory lists by directory kind, and documents by report id with
// base64 content.
type Seed struct {
	Directory map[directory.Kind][]directory.Entry `json:"directory"`
	Records   map[string][]record.Fields           `json:"records"`
	Documents map[string][]byte                    `json:"documents"`
}

// ImportFile loads a seed document from disk.
func (s *Store) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("sqlite: open seed: %w", err)
	}
	defer f.Close()
	return s.Import(ctx, f)
}

// Import writes every entry of a seed document in one transaction and
// returns the number of records written. Existing rows with the same id
// are replaced.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return 0, fmt.Errorf("sqlite: decode seed: %w", err)
	}
	for kind := range seed.Records {
		if _, ok := medical.Lookup(kind); !ok {
			return 0, fmt.Errorf("sqlite: unknown record kind %q in seed", kind)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	for kind, entries := range seed.Directory {
		if err := putEntries(ctx, tx, kind, entries); err != nil {
			return 0, err
		}
	}
	now := s.now().UTC().Format(time.RFC3339Nano)
	written := 0
	for kind, rows := range seed.Records {
		info, _ := medical.Lookup(kind)
		for _, fields := range rows {
			payload := fields.Clone()
			if payload.String("id") == "" {
				payload["id"] = s.newID()
			}
			if payload.String("created_at") == "" {
				payload["created_at"] = now
			}
			if payload.String("updated_at") == "" {
				payload["updated_at"] = payload["created_at"]
			}
			owner := ""
			if info.Owned {
				owner = payload.String(OwnerField)
			}
			if err := s.saveFields(ctx, tx, kind, owner, payload); err != nil {
				return 0, err
			}
			written++
		}
	}
	for reportID, content := range seed.Documents {
		if _, err := tx.ExecContext(ctx, `INSERT INTO documents (report_id, content) VALUES (?, ?)
			ON CONFLICT(report_id) DO UPDATE SET content = excluded.content`, reportID, content); err != nil {
			return 0, fmt.Errorf("sqlite: seed document %s: %w", reportID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit seed: %w", err)
	}
	return written, nil
}

package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atomicstack/ohsdash/internal/record"
)

// OwnerField is the payload field that links a record to an employee.
const OwnerField = "employee_id"

// Collection is the record.Source for one kind stored in the snapshot.
type Collection[R record.Record] struct {
	store      *Store
	kind       string
	ownerField string
	validate   func(record.Fields) error
}

// NewCollection binds R to rows of kind. ownerField names the payload field
// copied into the owner column; validate runs on full payloads before they
// are written.
func NewCollection[R record.Record](s *Store, kind, ownerField string, validate func(record.Fields) error) *Collection[R] {
	return &Collection[R]{store: s, kind: kind, ownerField: ownerField, validate: validate}
}

func (c *Collection[R]) owner(fields record.Fields) string {
	if c.ownerField == "" {
		return ""
	}
	return fields.String(c.ownerField)
}

func (c *Collection[R]) decode(fields record.Fields) (R, error) {
	rec, err := record.Decode[R](fields)
	if err != nil {
		var zero R
		return zero, &record.ValidationError{Message: err.Error()}
	}
	return rec, nil
}

func (c *Collection[R]) check(fields record.Fields) error {
	if c.validate == nil {
		return nil
	}
	return c.validate(fields)
}

func (c *Collection[R]) List(ctx context.Context, filter record.Filter, page, limit int) (record.Page[R], error) {
	where := `kind = ?`
	args := []interface{}{c.kind}
	if filter.OwnerID != "" {
		where += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	var total int
	if err := c.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE `+where, args...).Scan(&total); err != nil {
		return record.Page[R]{}, fmt.Errorf("sqlite: count %s: %w", c.kind, err)
	}
	if limit <= 0 {
		limit = record.DefaultListLimit
	}
	info := record.NewPageInfo(page, limit, total)
	out := record.Page[R]{Records: []R{}, Pagination: info}
	if page < 1 {
		return out, nil
	}
	query := `SELECT data FROM records WHERE ` + where + ` ORDER BY updated_at DESC, id ASC LIMIT ? OFFSET ?`
	rows, err := c.store.db.QueryContext(ctx, query, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return record.Page[R]{}, fmt.Errorf("sqlite: list %s: %w", c.kind, err)
	}
	defer rows.Close()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return record.Page[R]{}, fmt.Errorf("sqlite: list %s: %w", c.kind, err)
		}
		var rec R
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return record.Page[R]{}, fmt.Errorf("sqlite: decode %s: %w", c.kind, err)
		}
		out.Records = append(out.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return record.Page[R]{}, fmt.Errorf("sqlite: list %s: %w", c.kind, err)
	}
	return out, nil
}

func (c *Collection[R]) Get(ctx context.Context, id string) (R, error) {
	fields, err := c.store.loadFields(ctx, c.kind, id)
	if err != nil {
		var zero R
		return zero, err
	}
	return c.decode(fields)
}

func (c *Collection[R]) Create(ctx context.Context, fields record.Fields) (R, error) {
	var zero R
	payload := fields.Clone()
	if err := c.check(payload); err != nil {
		return zero, err
	}
	now := c.store.now().UTC().Format(time.RFC3339Nano)
	if payload.String("id") == "" {
		payload["id"] = c.store.newID()
	}
	payload["created_at"] = now
	payload["updated_at"] = now
	rec, err := c.decode(payload)
	if err != nil {
		return zero, err
	}
	if err := c.store.saveFields(ctx, c.store.db, c.kind, c.owner(payload), payload); err != nil {
		return zero, err
	}
	return rec, nil
}

func (c *Collection[R]) Update(ctx context.Context, id string, fields record.Fields) (R, error) {
	var zero R
	current, err := c.store.loadFields(ctx, c.kind, id)
	if err != nil {
		return zero, err
	}
	created := current["created_at"]
	payload := current.Merge(fields)
	payload["id"] = id
	payload["created_at"] = created
	if err := c.check(payload); err != nil {
		return zero, err
	}
	payload["updated_at"] = c.store.now().UTC().Format(time.RFC3339Nano)
	rec, err := c.decode(payload)
	if err != nil {
		return zero, err
	}
	if err := c.store.saveFields(ctx, c.store.db, c.kind, c.owner(payload), payload); err != nil {
		return zero, err
	}
	return rec, nil
}

// PartialUpdate compares the submitted fields to the stored values one by
// one and writes nothing when all of them already match.
func (c *Collection[R]) PartialUpdate(ctx context.Context, id string, fields record.Fields) (record.PartialResult[R], error) {
	current, err := c.store.loadFields(ctx, c.kind, id)
	if err != nil {
		return record.PartialResult[R]{}, err
	}
	changed := record.ChangedFields(current, fields)
	if len(changed) == 0 {
		rec, err := c.decode(current)
		if err != nil {
			return record.PartialResult[R]{}, err
		}
		return record.PartialResult[R]{Record: rec, Unchanged: true}, nil
	}
	patch := fields.Subset(changed)
	delete(patch, "id")
	delete(patch, "created_at")
	payload := current.Clone().Merge(patch)
	if err := c.check(payload); err != nil {
		return record.PartialResult[R]{}, err
	}
	payload["updated_at"] = c.store.now().UTC().Format(time.RFC3339Nano)
	rec, err := c.decode(payload)
	if err != nil {
		return record.PartialResult[R]{}, err
	}
	if err := c.store.saveFields(ctx, c.store.db, c.kind, c.owner(payload), payload); err != nil {
		return record.PartialResult[R]{}, err
	}
	return record.PartialResult[R]{Record: rec, ChangedFields: changed}, nil
}

func (c *Collection[R]) Delete(ctx context.Context, id string) error {
	res, err := c.store.db.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, c.kind, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete %s %s: %w", c.kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete %s %s: %w", c.kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", c.kind, id, record.ErrNotFound)
	}
	return nil
}

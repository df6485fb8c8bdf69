package state

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/ohsdash/internal/record"
)

type testRecord struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
	Weight float64   `json:"weight"`
	At     time.Time `json:"at"`
}

func (r testRecord) RecordID() string     { return r.ID }
func (r testRecord) Timestamp() time.Time { return r.At }

// memSource is an in-memory record.Source that counts calls.
type memSource struct {
	records  []testRecord
	listErr  error
	getErr   error
	lists    int
	gets     int
	partials int
}

func newMemSource(n int) *memSource {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &memSource{}
	for i := 0; i < n; i++ {
		src.records = append(src.records, testRecord{
			ID:     fmt.Sprintf("r%02d", i),
			Name:   fmt.Sprintf("record %02d", i),
			Status: []string{"open", "closed"}[i%2],
			At:     base.Add(-time.Duration(i) * time.Hour),
		})
	}
	return src
}

func (s *memSource) List(_ context.Context, _ record.Filter, page, limit int) (record.Page[testRecord], error) {
	s.lists++
	if s.listErr != nil {
		return record.Page[testRecord]{}, s.listErr
	}
	slice, info := Paginate(s.records, page, limit)
	return record.Page[testRecord]{Records: slice, Pagination: info}, nil
}

func (s *memSource) Get(_ context.Context, id string) (testRecord, error) {
	s.gets++
	if s.getErr != nil {
		return testRecord{}, s.getErr
	}
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return testRecord{}, record.ErrNotFound
}

func (s *memSource) Create(_ context.Context, fields record.Fields) (testRecord, error) {
	if fields.String("name") == "" {
		return testRecord{}, &record.ValidationError{Message: "invalid", Fields: map[string]string{"name": "required"}}
	}
	rec := testRecord{ID: fmt.Sprintf("new%d", len(s.records)), Name: fields.String("name")}
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *memSource) Update(_ context.Context, id string, fields record.Fields) (testRecord, error) {
	for i, r := range s.records {
		if r.ID == id {
			s.records[i].Name = fields.String("name")
			return s.records[i], nil
		}
	}
	return testRecord{}, record.ErrNotFound
}

func (s *memSource) PartialUpdate(_ context.Context, id string, fields record.Fields) (record.PartialResult[testRecord], error) {
	s.partials++
	for i, r := range s.records {
		if r.ID != id {
			continue
		}
		current, err := record.Encode(r)
		if err != nil {
			return record.PartialResult[testRecord]{}, err
		}
		changed := record.ChangedFields(current, fields)
		if len(changed) == 0 {
			return record.PartialResult[testRecord]{Record: r, Unchanged: true}, nil
		}
		updated, err := record.Decode[testRecord](current.Merge(fields))
		if err != nil {
			return record.PartialResult[testRecord]{}, err
		}
		s.records[i] = updated
		return record.PartialResult[testRecord]{Record: updated, ChangedFields: changed}, nil
	}
	return record.PartialResult[testRecord]{}, record.ErrNotFound
}

func (s *memSource) Delete(_ context.Context, id string) error {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return record.ErrNotFound
}

package record

import (
	"context"
	"time"
)

// Record is any entity shown in a list with a stable identifier.
type Record interface {
	RecordID() string
}

// Timestamped records are sorted newest first when a collection is loaded.
type Timestamped interface {
	Timestamp() time.Time
}

// Filter scopes a list request. An empty OwnerID lists every record.
type Filter struct {
	OwnerID string
}

// PageInfo describes one page of a collection.
type PageInfo struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPageInfo derives page metadata for a collection of total entries.
func NewPageInfo(page, limit, total int) PageInfo {
	if total < 0 {
		total = 0
	}
	info := PageInfo{Page: page, Limit: limit, Total: total}
	if limit > 0 && total > 0 {
		info.TotalPages = (total + limit - 1) / limit
	}
	info.HasNextPage = page < info.TotalPages
	info.HasPreviousPage = page > 1
	return info
}

// Page is a single response from Source.List.
type Page[R Record] struct {
	Records    []R      `json:"records"`
	Pagination PageInfo `json:"pagination"`
}

// PartialResult reports the outcome of a section update. Unchanged is set
// when the submitted values already matched the stored record.
type PartialResult[R Record] struct {
	Record        R        `json:"record"`
	ChangedFields []string `json:"changedFields,omitempty"`
	Unchanged     bool     `json:"unchanged,omitempty"`
}

// Source is the backend collaborator for one record type.
type Source[R Record] interface {
	List(ctx context.Context, filter Filter, page, limit int) (Page[R], error)
	Get(ctx context.Context, id string) (R, error)
	Create(ctx context.Context, fields Fields) (R, error)
	Update(ctx context.Context, id string, fields Fields) (R, error)
	PartialUpdate(ctx context.Context, id string, fields Fields) (PartialResult[R], error)
	Delete(ctx context.Context, id string) error
}

// DefaultListLimit is the page size used when draining a source.
const DefaultListLimit = 200

// ListAll drains every page of src matching filter.
func ListAll[R Record](ctx context.Context, src Source[R], filter Filter, limit int) ([]R, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var all []R
	for page := 1; ; page++ {
		resp, err := src.List(ctx, filter, page, limit)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Records...)
		if !resp.Pagination.HasNextPage || len(resp.Records) == 0 {
			break
		}
	}
	return all, nil
}

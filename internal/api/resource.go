package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/record"
)

// OwnerParam is the query parameter that scopes a list to one employee.
const OwnerParam = "employee_id"

// Resource is the REST record source for one record type.
type Resource[R record.Record] struct {
	client *Client
	name   string
}

// NewResource binds a record type to /api/<name>.
func NewResource[R record.Record](c *Client, name string) *Resource[R] {
	return &Resource[R]{client: c, name: name}
}

func (r *Resource[R]) collection() string { return "/api/" + r.name }

func (r *Resource[R]) member(id string) string {
	return r.collection() + "/" + url.PathEscape(id)
}

func (r *Resource[R]) List(ctx context.Context, filter record.Filter, page, limit int) (record.Page[R], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if filter.OwnerID != "" {
		query.Set(OwnerParam, filter.OwnerID)
	}
	var out record.Page[R]
	if err := r.client.do(ctx, http.MethodGet, r.collection(), query, nil, &out); err != nil {
		return record.Page[R]{}, err
	}
	return out, nil
}

func (r *Resource[R]) Get(ctx context.Context, id string) (R, error) {
	var out R
	if err := r.client.do(ctx, http.MethodGet, r.member(id), nil, nil, &out); err != nil {
		return out, err
	}
	if out.RecordID() != id {
		var zero R
		return zero, fmt.Errorf("get %s: %w", r.member(id), record.ErrNotFound)
	}
	return out, nil
}

func (r *Resource[R]) Create(ctx context.Context, fields record.Fields) (R, error) {
	var out R
	err := r.client.do(ctx, http.MethodPost, r.collection(), nil, fields, &out)
	return out, err
}

func (r *Resource[R]) Update(ctx context.Context, id string, fields record.Fields) (R, error) {
	var out R
	err := r.client.do(ctx, http.MethodPut, r.member(id), nil, fields, &out)
	return out, err
}

func (r *Resource[R]) PartialUpdate(ctx context.Context, id string, fields record.Fields) (record.PartialResult[R], error) {
	var out record.PartialResult[R]
	if err := r.client.do(ctx, http.MethodPatch, r.member(id), nil, fields, &out); err != nil {
		return record.PartialResult[R]{}, err
	}
	return out, nil
}

func (r *Resource[R]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.member(id), nil, nil, nil)
}

var directoryPaths = map[directory.Kind]string{
	directory.KindEmployee:     "employees",
	directory.KindOrganization: "organizations",
	directory.KindSite:         "sites",
	directory.KindCostCenter:   "cost-centers",
}

// Entries implements directory.Service.
func (c *Client) Entries(ctx context.Context, kind directory.Kind) ([]directory.Entry, error) {
	path, ok := directoryPaths[kind]
	if !ok {
		return nil, fmt.Errorf("api: unknown directory %q", kind)
	}
	var out []directory.Entry
	if err := c.do(ctx, http.MethodGet, "/api/directory/"+path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReportPDF fetches the rendered document for a signed report. The backend
// answers 409 for reports that have not been signed off.
func (c *Client) ReportPDF(ctx context.Context, id string) ([]byte, error) {
	path := "/api/reports/" + url.PathEscape(id) + "/pdf"
	data, err := c.send(ctx, http.MethodGet, path, nil, nil, "application/pdf")
	if err != nil {
		var status *StatusError
		if errors.As(err, &status) && status.Status == http.StatusConflict {
			return nil, fmt.Errorf("report %s: %w", id, record.ErrNotSigned)
		}
		return nil, err
	}
	return data, nil
}

package state

import "github.com/atomicstack/ohsdash/internal/record"

// DefaultPageLimit is the number of rows shown per page when no limit is
// configured.
const DefaultPageLimit = 29

// Paginate returns the slice of collection shown on page together with its
// page metadata. It never panics: out-of-range pages yield an empty slice.
// The returned slice is a copy and never aliases collection.
func Paginate[T any](collection []T, page, limit int) ([]T, record.PageInfo) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	info := record.NewPageInfo(page, limit, len(collection))
	if page < 1 {
		return []T{}, info
	}
	start := (page - 1) * limit
	if start >= len(collection) {
		return []T{}, info
	}
	end := start + limit
	if end > len(collection) {
		end = len(collection)
	}
	out := make([]T, end-start)
	copy(out, collection[start:end])
	return out, info
}

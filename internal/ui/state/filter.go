package state

import (
	"slices"
	"strings"

	"github.com/atomicstack/ohsdash/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and cursor position.
func (l *Level) SetFilter(query string, cursor int) {
	prev := strings.TrimSpace(l.Filter.Value)
	l.Filter.Set(query, cursor)
	l.refilter(prev)
}

// EditFilter applies edit to the filter text and refilters when the text
// changed. It reports whether anything changed, including cursor moves.
func (l *Level) EditFilter(edit func(*TextInput) bool) bool {
	prev := strings.TrimSpace(l.Filter.Value)
	before := l.Filter.Value
	if !edit(&l.Filter) {
		return false
	}
	if l.Filter.Value != before {
		l.refilter(prev)
	}
	return true
}

func (l *Level) refilter(prevTrimmed string) {
	trimmed := strings.TrimSpace(l.Filter.Value)
	restore := -1
	if trimmed != "" {
		if prevTrimmed == "" {
			l.LastCursor = l.Nav.Index
		}
		l.Nav.Index = 0
	} else if prevTrimmed != "" {
		restore = l.LastCursor
	}
	l.applyFilter()
	if trimmed != "" && len(l.Items) > 0 {
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Nav.Index = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(l.Items) {
			l.Nav.Index = restore
		} else if len(l.Items) > 0 {
			l.Nav.Index = 0
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter.Value)
	if len(l.Items) == 0 {
		l.Nav = ListCursor{}
		return
	}
	if l.Nav.Index < 0 {
		l.Nav.Index = 0
	}
	l.Nav.Clamp(len(l.Items))
	if l.Nav.Offset > len(l.Items)-1 {
		l.Nav.Offset = 0
	}
}

// FilterItems returns items matching the supplied filter string. Fuzzy
// matches on the label win; otherwise a plain substring match on the label,
// id or hint is used.
func FilterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return slices.Clone(items)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]menu.Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) ||
			strings.Contains(strings.ToLower(item.ID), lower) ||
			strings.Contains(strings.ToLower(item.Hint), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among the provided
// items: exact, then prefix, then substring, then the closest fuzzy match.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	passes := []func(menu.Item) bool{
		func(it menu.Item) bool {
			return strings.EqualFold(it.Label, trimmed) || strings.EqualFold(it.ID, trimmed)
		},
		func(it menu.Item) bool { return strings.HasPrefix(strings.ToLower(it.Label), lower) },
		func(it menu.Item) bool { return strings.HasPrefix(strings.ToLower(it.ID), lower) },
		func(it menu.Item) bool { return strings.Contains(strings.ToLower(it.Label), lower) },
	}
	for _, match := range passes {
		for i, item := range items {
			if match(item) {
				return i
			}
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return 0
	}
	return best.OriginalIndex
}

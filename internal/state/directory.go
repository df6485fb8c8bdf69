package state

import (
	"sort"

	"github.com/atomicstack/ohsdash/internal/directory"
)

// DirectoryStore holds the latest reference lists and resolves ids to
// display names for columns, search and pickers.
type DirectoryStore interface {
	directory.Names
	Entries(kind directory.Kind) []directory.Entry
	SetEntries(kind directory.Kind, entries []directory.Entry)
	Loaded(kind directory.Kind) bool
}

type directoryStore struct {
	entries map[directory.Kind][]directory.Entry
	names   map[directory.Kind]map[string]string
}

func NewDirectoryStore() DirectoryStore {
	return &directoryStore{
		entries: map[directory.Kind][]directory.Entry{},
		names:   map[directory.Kind]map[string]string{},
	}
}

func (d *directoryStore) Entries(kind directory.Kind) []directory.Entry {
	return cloneEntries(d.entries[kind])
}

// SetEntries replaces one list. Entries are kept sorted by name so pickers
// are stable across polls.
func (d *directoryStore) SetEntries(kind directory.Kind, entries []directory.Entry) {
	sorted := cloneEntries(entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	lookup := make(map[string]string, len(sorted))
	for _, e := range sorted {
		lookup[e.ID] = e.Name
	}
	if sorted == nil {
		sorted = []directory.Entry{}
	}
	d.entries[kind] = sorted
	d.names[kind] = lookup
}

func (d *directoryStore) Loaded(kind directory.Kind) bool {
	_, ok := d.entries[kind]
	return ok
}

func (d *directoryStore) Name(kind directory.Kind, id string) string {
	return d.names[kind][id]
}

func cloneEntries(entries []directory.Entry) []directory.Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]directory.Entry, len(entries))
	copy(dup, entries)
	return dup
}

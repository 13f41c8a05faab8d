package names

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which entity a name index resolves.
type Kind string

const (
	KindStudent    Kind = "student"
	KindTeacher    Kind = "teacher"
	KindRoom       Kind = "room"
	KindCourse     Kind = "course"
	KindInstrument Kind = "instrument"
)

// Kinds lists every entity kind with a name-mapping table, in the order
// the solver exports them.
var Kinds = []Kind{KindStudent, KindTeacher, KindRoom, KindCourse, KindInstrument}

// Label returns the capitalized display form of the kind ("Student").
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Entry is one resolved name: the external id and the display name.
// Missing marks a synthesized fallback for an index the table never saw.
type Entry struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Missing bool   `json:"missing,omitempty"`
}

// Index maps a solver-assigned numeric index to an external id and a
// display name for one entity kind. Built once per data load and only
// read afterward.
type Index struct {
	kind    Kind
	entries map[int]Entry
}

// Build constructs an Index from decoded name-mapping rows.
// The first row is the table header and is skipped. Rows missing columns
// or with a non-numeric index are ignored. Duplicate indices overwrite:
// the last occurrence wins.
func Build(kind Kind, rows [][]string) *Index {
	idx := &Index{
		kind:    kind,
		entries: make(map[int]Entry),
	}

	if len(rows) <= 1 {
		return idx
	}
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		i, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		idx.entries[i] = Entry{
			ID:   strings.TrimSpace(row[1]),
			Name: strings.TrimSpace(row[2]),
		}
	}
	return idx
}

// Kind returns the entity kind this index resolves.
func (idx *Index) Kind() Kind {
	return idx.kind
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// All returns every entry in the table, ordered by solver index.
func (idx *Index) All() []Entry {
	indices := make([]int, 0, len(idx.entries))
	for i := range idx.entries {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	entries := make([]Entry, 0, len(indices))
	for _, i := range indices {
		entries = append(entries, idx.entries[i])
	}
	return entries
}

// Resolve returns the entry for a numeric index. A missing index is never
// an error: callers get a synthesized "<Kind> <index>" label instead.
func (idx *Index) Resolve(i int) Entry {
	if e, ok := idx.entries[i]; ok {
		return e
	}
	return Entry{
		Name:    fmt.Sprintf("%s %d", idx.kind.Label(), i),
		Missing: true,
	}
}

// ResolveString resolves an index given in its raw string form, as it
// appears in solution rows. Non-numeric ids fall back to a label built
// from the raw string.
func (idx *Index) ResolveString(raw string) Entry {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Entry{
			Name:    fmt.Sprintf("%s %s", idx.kind.Label(), strings.TrimSpace(raw)),
			Missing: true,
		}
	}
	return idx.Resolve(i)
}

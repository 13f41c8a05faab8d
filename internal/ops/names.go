package ops

import (
	"database/sql"

	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/names"
)

// ResolveNamesInput contains parameters for the ResolveNames operation.
type ResolveNamesInput struct {
	ID    string
	Label string
	Kind  string   // student | teacher | room | course | instrument
	IDs   []string // optional; empty resolves the whole table
}

// ResolveNamesOutput contains the result of the ResolveNames operation.
type ResolveNamesOutput struct {
	Kind    string        `json:"kind"`
	Entries []names.Entry `json:"entries"`
}

// ResolveNames resolves entity ids against one name table of a stored
// solution. Unknown ids come back with the kind-prefixed fallback name
// and the missing flag set.
func ResolveNames(database *sql.DB, input ResolveNamesInput) (*ResolveNamesOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	addr, err := ValidateAddress(input.ID, input.Label)
	if err != nil {
		return nil, err
	}
	s, err := resolveSolution(database, addr, false)
	if err != nil {
		return nil, err
	}

	idx := nameIndexes(s)[kind]

	var entries []names.Entry
	if len(input.IDs) > 0 {
		entries = make([]names.Entry, 0, len(input.IDs))
		for _, id := range input.IDs {
			entries = append(entries, idx.ResolveString(id))
		}
	} else {
		entries = idx.All()
	}

	return &ResolveNamesOutput{
		Kind:    string(kind),
		Entries: entries,
	}, nil
}

// parseKind validates a raw name-table kind.
func parseKind(raw string) (names.Kind, error) {
	for _, k := range names.Kinds {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", errors.NewInvalidRequest("kind must be one of: student, teacher, room, course, instrument")
}

package ops

import (
	"database/sql"
	"strings"

	"github.com/jmonzo/atril/internal/db"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solution"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Address represents a validated solution address.
type Address struct {
	ByID  bool
	ID    string
	Label string // normalized
}

// ValidateAddress validates addressing parameters and returns a normalized Address.
// Rules:
// - Must specify exactly one addressing mode: id OR label
// - If both provided → ErrAmbiguousAddressing
// - If neither provided → ErrInvalidRequest
func ValidateAddress(id, label string) (*Address, error) {
	id = strings.TrimSpace(id)
	label = strings.TrimSpace(label)

	hasID := id != ""
	hasLabel := label != ""

	if hasID && hasLabel {
		return nil, errors.NewAmbiguousAddressing()
	}

	if !hasID && !hasLabel {
		return nil, errors.NewInvalidRequest("must specify either id or label")
	}

	if hasID {
		return &Address{
			ByID: true,
			ID:   id,
		}, nil
	}

	labelNorm := solution.Normalize(label)
	if labelNorm == "" {
		return nil, errors.NewInvalidRequest("label must not be empty")
	}

	return &Address{
		ByID:  false,
		Label: labelNorm,
	}, nil
}

// resolveSolution fetches the solution a validated address points at.
func resolveSolution(database *sql.DB, addr *Address, includeDeleted bool) (*solution.Solution, error) {
	if addr.ByID {
		return db.GetByID(database, addr.ID, includeDeleted)
	}
	return db.GetByLabel(database, addr.Label, includeDeleted)
}

// cleanOptionalString trims an optional string, mapping blank to nil.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

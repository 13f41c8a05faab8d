package ops

import (
	"database/sql"

	"github.com/jmonzo/atril/internal/db"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID    string
	Label string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete soft-deletes a solution.
func Delete(database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Label)
	if err != nil {
		return nil, err
	}

	// Resolve to an ID first; addressing by label needs the lookup anyway
	s, err := resolveSolution(database, addr, false)
	if err != nil {
		return nil, err
	}

	if err := db.SoftDelete(database, s.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: true,
		ID:      s.ID,
	}, nil
}

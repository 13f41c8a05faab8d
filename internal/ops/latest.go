package ops

import (
	"database/sql"

	"github.com/jmonzo/atril/internal/db"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solution"
)

// LatestOutput contains the result of the Latest operation.
type LatestOutput struct {
	Item *solution.SolutionSummary `json:"item"` // nil if the archive is empty
}

// Latest retrieves the most recently updated solution's summary. An
// empty archive is not an error.
func Latest(database *sql.DB) (*LatestOutput, error) {
	s, err := db.Latest(database)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return &LatestOutput{Item: nil}, nil
		}
		return nil, err
	}

	summary := s.ToSummary()
	return &LatestOutput{Item: &summary}, nil
}

package ops

import (
	"database/sql"

	"github.com/jmonzo/atril/internal/insights"
	"github.com/jmonzo/atril/internal/solvercsv"
)

// CongestionInput contains parameters for the Congestion operation.
type CongestionInput struct {
	ID    string
	Label string
}

// CongestionOutput contains the result of the Congestion operation.
type CongestionOutput struct {
	ID     string              `json:"id"`
	Matrix insights.HeatMatrix `json:"matrix"`
}

// Congestion builds the weekly student-load heat matrix of a stored
// solution.
func Congestion(database *sql.DB, input CongestionInput) (*CongestionOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Label)
	if err != nil {
		return nil, err
	}
	s, err := resolveSolution(database, addr, false)
	if err != nil {
		return nil, err
	}

	rows, err := solvercsv.DecodeTable(s.StudentCountsCSV)
	if err != nil {
		return nil, err
	}
	counts := insights.DecodeSlotCounts(rows)

	return &CongestionOutput{
		ID:     s.ID,
		Matrix: insights.BuildHeatMatrix(counts),
	}, nil
}

package ops

import (
	"database/sql"

	"github.com/jmonzo/atril/internal/db"
	"github.com/jmonzo/atril/internal/solution"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []solution.SolutionSummary `json:"items"`
	Pagination Pagination                 `json:"pagination"`
	Sort       string                     `json:"sort"`
}

// List retrieves solution summaries with pagination, newest first.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offset := max(input.Offset, 0)

	summaries, total, err := db.List(database, limit, offset)
	if err != nil {
		return nil, err
	}

	if summaries == nil {
		summaries = []solution.SolutionSummary{}
	}

	hasMore := offset+len(summaries) < total

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: "updated_at_desc",
	}, nil
}

package ops

import (
	"database/sql"

	"github.com/jmonzo/atril/internal/solution"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID              string
	Label           string
	IncludeDeleted  bool
	IncludePayloads *bool // default: true (nil means default)
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	solution.Solution // embedded (copy, not pointer)
}

// Fetch retrieves a solution by ID or label.
func Fetch(database *sql.DB, input FetchInput) (*FetchOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Label)
	if err != nil {
		return nil, err
	}

	s, err := resolveSolution(database, addr, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	output := &FetchOutput{
		Solution: *s, // copy, not pointer
	}

	includePayloads := true
	if input.IncludePayloads != nil {
		includePayloads = *input.IncludePayloads
	}
	if !includePayloads {
		for _, name := range solution.PayloadNames {
			output.SetPayload(name, "")
		}
	}

	return output, nil
}

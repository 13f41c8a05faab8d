package solution

// SolutionSummary represents a solution's metadata without the CSV payload
// bodies. Used for browse operations (list, latest) to reduce data transfer.
type SolutionSummary struct {
	// ID is a ULID that uniquely identifies this solution
	ID string `json:"id"`

	// Label is the original save name as provided by the user (nullable)
	Label *string `json:"label,omitempty"`

	// LabelNorm is the normalized label (nullable)
	LabelNorm *string `json:"label_norm,omitempty"`

	// RowCount is the number of assignment rows in the schedule payload
	RowCount int `json:"row_count"`

	// Source indicates where the solution came from
	Source *string `json:"source,omitempty"`

	// CreatedAt is the Unix timestamp when the solution was stored
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the solution was last replaced
	UpdatedAt int64 `json:"updated_at"`

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64 `json:"deleted_at,omitempty"`
}

// ToSummary converts a Solution to a SolutionSummary by stripping the
// payload bodies.
func (s *Solution) ToSummary() SolutionSummary {
	return SolutionSummary{
		ID:        s.ID,
		Label:     s.LabelRaw,
		LabelNorm: s.LabelNorm,
		RowCount:  s.RowCount,
		Source:    s.Source,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		DeletedAt: s.DeletedAt,
	}
}

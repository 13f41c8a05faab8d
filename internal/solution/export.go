package solution

// ExportRecord represents a solution record in JSONL export format.
// It is used for parsing export files during import.
type ExportRecord struct {
	// Header detection field - true only for header line
	AtrilExport bool `json:"_atril_export,omitempty"`

	// Header fields (only present in header line)
	SchemaVersion string `json:"schema_version,omitempty"`
	ExportedAt    int64  `json:"exported_at,omitempty"`

	// Solution fields
	ID               string  `json:"id"`
	LabelRaw         *string `json:"label_raw"`
	LabelNorm        *string `json:"label_norm"` // IGNORED on import, recomputed
	ScheduleCSV      string  `json:"schedule_csv"`
	InsightsCSV      string  `json:"insights_csv"`
	StudentCountsCSV string  `json:"student_counts_csv"`
	StudentsCSV      string  `json:"students_csv"`
	TeachersCSV      string  `json:"teachers_csv"`
	RoomsCSV         string  `json:"rooms_csv"`
	CoursesCSV       string  `json:"courses_csv"`
	InstrumentsCSV   string  `json:"instruments_csv"`
	RowCount         int     `json:"row_count"` // IGNORED on import, recomputed
	Source           *string `json:"source"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
	DeletedAt        *int64  `json:"deleted_at"`
}

// ToSolution converts an ExportRecord to a Solution, recomputing derived
// fields.
func (r *ExportRecord) ToSolution() *Solution {
	s := &Solution{
		ID:               r.ID,
		LabelRaw:         r.LabelRaw,
		ScheduleCSV:      r.ScheduleCSV,
		InsightsCSV:      r.InsightsCSV,
		StudentCountsCSV: r.StudentCountsCSV,
		StudentsCSV:      r.StudentsCSV,
		TeachersCSV:      r.TeachersCSV,
		RoomsCSV:         r.RoomsCSV,
		CoursesCSV:       r.CoursesCSV,
		InstrumentsCSV:   r.InstrumentsCSV,
		RowCount:         CountRows(r.ScheduleCSV), // Recompute
		Source:           r.Source,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		DeletedAt:        r.DeletedAt,
	}

	// Recompute label_norm from label_raw
	if r.LabelRaw != nil {
		norm := Normalize(*r.LabelRaw)
		s.LabelNorm = &norm
	}

	return s
}

// ToExportRecord converts a Solution to an ExportRecord for export.
func ToExportRecord(s *Solution) *ExportRecord {
	return &ExportRecord{
		ID:               s.ID,
		LabelRaw:         s.LabelRaw,
		LabelNorm:        s.LabelNorm,
		ScheduleCSV:      s.ScheduleCSV,
		InsightsCSV:      s.InsightsCSV,
		StudentCountsCSV: s.StudentCountsCSV,
		StudentsCSV:      s.StudentsCSV,
		RoomsCSV:         s.RoomsCSV,
		TeachersCSV:      s.TeachersCSV,
		CoursesCSV:       s.CoursesCSV,
		InstrumentsCSV:   s.InstrumentsCSV,
		RowCount:         s.RowCount,
		Source:           s.Source,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		DeletedAt:        s.DeletedAt,
	}
}

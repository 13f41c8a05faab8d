package solution

// Payload names, in the order the solver writes its export files. The
// same names address individual CSVs in errors and size-limit checks.
const (
	PayloadSchedule      = "solution"
	PayloadInsights      = "insights"
	PayloadStudentCounts = "student_counts"
	PayloadStudents      = "students"
	PayloadTeachers      = "teachers"
	PayloadRooms         = "rooms"
	PayloadCourses       = "courses"
	PayloadInstruments   = "instruments"
)

// PayloadNames lists all eight payloads in canonical order.
var PayloadNames = []string{
	PayloadSchedule,
	PayloadInsights,
	PayloadStudentCounts,
	PayloadStudents,
	PayloadTeachers,
	PayloadRooms,
	PayloadCourses,
	PayloadInstruments,
}

// Solution represents one archived solver run: the raw CSV payloads the
// solver exported, kept verbatim so the pipeline can re-decode them on
// every read.
type Solution struct {
	// ID is a ULID that uniquely identifies this solution
	ID string

	// LabelRaw is the save name as provided by the user (nullable)
	LabelRaw *string

	// LabelNorm is the normalized label (nullable)
	LabelNorm *string

	// ScheduleCSV is the solver's main assignment table
	ScheduleCSV string

	// InsightsCSV is the single-row quality metrics table
	InsightsCSV string

	// StudentCountsCSV is the per-slot student count table
	StudentCountsCSV string

	// StudentsCSV, TeachersCSV, RoomsCSV, CoursesCSV, InstrumentsCSV are
	// the five entity name tables
	StudentsCSV    string
	TeachersCSV    string
	RoomsCSV       string
	CoursesCSV     string
	InstrumentsCSV string

	// RowCount is the number of assignment rows in ScheduleCSV
	RowCount int

	// Source indicates where the solution came from (e.g., "solver-export", "import")
	Source *string

	// CreatedAt is the Unix timestamp when the solution was stored
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the solution was last replaced
	UpdatedAt int64

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64
}

// Payload returns the named CSV payload, or "" for an unknown name.
func (s *Solution) Payload(name string) string {
	switch name {
	case PayloadSchedule:
		return s.ScheduleCSV
	case PayloadInsights:
		return s.InsightsCSV
	case PayloadStudentCounts:
		return s.StudentCountsCSV
	case PayloadStudents:
		return s.StudentsCSV
	case PayloadTeachers:
		return s.TeachersCSV
	case PayloadRooms:
		return s.RoomsCSV
	case PayloadCourses:
		return s.CoursesCSV
	case PayloadInstruments:
		return s.InstrumentsCSV
	}
	return ""
}

// SetPayload stores the named CSV payload. Unknown names are ignored.
func (s *Solution) SetPayload(name, text string) {
	switch name {
	case PayloadSchedule:
		s.ScheduleCSV = text
	case PayloadInsights:
		s.InsightsCSV = text
	case PayloadStudentCounts:
		s.StudentCountsCSV = text
	case PayloadStudents:
		s.StudentsCSV = text
	case PayloadTeachers:
		s.TeachersCSV = text
	case PayloadRooms:
		s.RoomsCSV = text
	case PayloadCourses:
		s.CoursesCSV = text
	case PayloadInstruments:
		s.InstrumentsCSV = text
	}
}

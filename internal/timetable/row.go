package timetable

import (
	"strconv"
	"strings"

	"github.com/jmonzo/atril/internal/names"
)

// UnknownField is the sentinel stored for a column absent from a solution
// row. It is a deliberate placeholder from the exporter contract, not an
// error condition.
const UnknownField = "Unknown"

// ClassKind says whether a session teaches a course or an instrument.
type ClassKind string

const (
	ClassCourse     ClassKind = "course"
	ClassInstrument ClassKind = "instrument"
	ClassUnknown    ClassKind = "unknown"
)

// ClassRef is the tagged identity of the class a session teaches. The
// exporter writes composite labels like "Course 3" or "Instrument 5";
// they are parsed exactly once, here, and downstream code only ever sees
// the tagged form.
type ClassRef struct {
	Kind  ClassKind `json:"kind"`
	Index int       `json:"index"`
	Raw   string    `json:"raw"`
}

// ParseClassRef splits a composite class label into its tagged form.
// Labels that do not follow the "<Kind> <index>" convention keep their raw
// text with ClassUnknown, so nothing is lost for display.
func ParseClassRef(label string) ClassRef {
	ref := ClassRef{Kind: ClassUnknown, Index: -1, Raw: label}

	parts := strings.Fields(label)
	if len(parts) < 2 {
		return ref
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		return ref
	}

	switch parts[0] {
	case "Course":
		ref.Kind = ClassCourse
	case "Instrument":
		ref.Kind = ClassInstrument
	default:
		return ref
	}
	ref.Index = idx
	return ref
}

// NameKind maps the class kind to the name index that resolves it.
func (r ClassRef) NameKind() names.Kind {
	if r.Kind == ClassInstrument {
		return names.KindInstrument
	}
	return names.KindCourse
}

// Row is one (session, enrolled-student) pair from the solution CSV, in
// the exporter's fixed 14-column order. Fields keep their raw string form;
// slots are parsed on demand because "Unknown" is a legal value.
type Row struct {
	Class                     ClassRef `json:"class"`
	StartSlot                 string   `json:"start_slot"`
	EndSlot                   string   `json:"end_slot"`
	Room                      string   `json:"room"`
	MaxCapacity               string   `json:"max_capacity"`
	CurrentCapacity           string   `json:"current_capacity"`
	Teacher                   string   `json:"teacher"`
	Contract                  string   `json:"contract"`
	Load                      string   `json:"load"`
	Student                   string   `json:"student"`
	InstrumentPenalty         string   `json:"instrument_penalty"`
	AntiquityDayPenalty       string   `json:"antiquity_day_penalty"`
	AntiquityDeviationPenalty string   `json:"antiquity_deviation_penalty"`
	SiblingMismatchPenalty    string   `json:"sibling_mismatch_penalty"`
}

// fieldOrDefault returns column i of fields, or the Unknown sentinel when
// the row is short or the cell empty.
func fieldOrDefault(fields []string, i int) string {
	if i >= len(fields) {
		return UnknownField
	}
	f := strings.TrimSpace(fields[i])
	if f == "" {
		return UnknownField
	}
	return f
}

// NewRow builds a Row from one decoded CSV record. Missing columns become
// the Unknown sentinel; the row is read-only after construction.
func NewRow(fields []string) Row {
	return Row{
		Class:                     ParseClassRef(fieldOrDefault(fields, 0)),
		StartSlot:                 fieldOrDefault(fields, 1),
		EndSlot:                   fieldOrDefault(fields, 2),
		Room:                      fieldOrDefault(fields, 3),
		MaxCapacity:               fieldOrDefault(fields, 4),
		CurrentCapacity:           fieldOrDefault(fields, 5),
		Teacher:                   fieldOrDefault(fields, 6),
		Contract:                  fieldOrDefault(fields, 7),
		Load:                      fieldOrDefault(fields, 8),
		Student:                   fieldOrDefault(fields, 9),
		InstrumentPenalty:         fieldOrDefault(fields, 10),
		AntiquityDayPenalty:       fieldOrDefault(fields, 11),
		AntiquityDeviationPenalty: fieldOrDefault(fields, 12),
		SiblingMismatchPenalty:    fieldOrDefault(fields, 13),
	}
}

// DecodeRows converts decoded solution-table records (header already
// removed) into Rows.
func DecodeRows(records [][]string) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, NewRow(rec))
	}
	return rows
}

// parseSlot parses a raw slot field. The Unknown sentinel and other
// non-numeric values map to -1, which fails Slot.Valid.
func parseSlot(raw string) Slot {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Slot(-1)
	}
	return Slot(n)
}

// Start returns the row's start slot (-1 when unparseable).
func (r Row) Start() Slot { return parseSlot(r.StartSlot) }

// End returns the row's end slot (-1 when unparseable).
func (r Row) End() Slot { return parseSlot(r.EndSlot) }

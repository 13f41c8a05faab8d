package timetable

import "testing"

func TestNewRow_ScenarioRow(t *testing.T) {
	// Raw row from the exporter contract: MathClass at slots 10..14 in
	// room 3 with teacher 7 and student 101.
	fields := []string{"MathClass", "10", "14", "3", "30", "25", "7", "20", "40", "101", "0", "1", "0", "0"}
	row := NewRow(fields)

	if row.StartSlot != "10" || row.EndSlot != "14" {
		t.Errorf("slots = %s..%s, want 10..14", row.StartSlot, row.EndSlot)
	}
	if row.Room != "3" || row.Teacher != "7" || row.Student != "101" {
		t.Errorf("room/teacher/student = %s/%s/%s", row.Room, row.Teacher, row.Student)
	}
	if row.Start() != 10 || row.End() != 14 {
		t.Errorf("parsed slots = %d..%d", row.Start(), row.End())
	}

	// Slot 10 is Monday 18:30, slot 14 Monday 19:30.
	if got := row.Start().Label(); got != "Mon 18:30" {
		t.Errorf("start label = %q", got)
	}
	if got := row.End().Label(); got != "Mon 19:30" {
		t.Errorf("end label = %q", got)
	}

	// "MathClass" is not a tagged composite label; the raw text survives.
	if row.Class.Kind != ClassUnknown || row.Class.Raw != "MathClass" {
		t.Errorf("class = %+v", row.Class)
	}
}

func TestNewRow_MissingFieldsDefaultToUnknown(t *testing.T) {
	row := NewRow([]string{"Course 3", "10"})

	if row.EndSlot != UnknownField || row.Student != UnknownField {
		t.Errorf("missing fields = %q/%q, want %q", row.EndSlot, row.Student, UnknownField)
	}
	if row.End().Valid() {
		t.Error("Unknown end slot should not be valid")
	}
}

func TestParseClassRef(t *testing.T) {
	tests := []struct {
		label string
		kind  ClassKind
		index int
	}{
		{"Course 3", ClassCourse, 3},
		{"Instrument 5", ClassInstrument, 5},
		{"MathClass", ClassUnknown, -1},
		{"Course x", ClassUnknown, -1},
		{"Workshop 2", ClassUnknown, -1},
		{"", ClassUnknown, -1},
	}

	for _, tt := range tests {
		ref := ParseClassRef(tt.label)
		if ref.Kind != tt.kind || ref.Index != tt.index {
			t.Errorf("ParseClassRef(%q) = %+v, want kind %s index %d", tt.label, ref, tt.kind, tt.index)
		}
		if ref.Raw != tt.label {
			t.Errorf("ParseClassRef(%q).Raw = %q", tt.label, ref.Raw)
		}
	}
}

func TestDecodeRows(t *testing.T) {
	records := [][]string{
		{"Course 1", "0", "3", "1", "10", "5", "2", "20", "40", "101", "0", "0", "0", "0"},
		{"Course 1", "0", "3", "1", "10", "5", "2", "20", "40", "102", "0", "0", "0", "0"},
	}
	rows := DecodeRows(records)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Student != "101" || rows[1].Student != "102" {
		t.Errorf("students = %s/%s", rows[0].Student, rows[1].Student)
	}
}

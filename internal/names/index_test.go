package names

import "testing"

var testRows = [][]string{
	{"index", "id", "name"},
	{"0", "S100", "Alice"},
	{"1", "S101", "Bob"},
}

func TestBuild_SkipsHeader(t *testing.T) {
	idx := Build(KindStudent, testRows)
	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}

	e := idx.Resolve(0)
	if e.ID != "S100" || e.Name != "Alice" || e.Missing {
		t.Errorf("Resolve(0) = %+v", e)
	}
}

func TestResolve_MissingIndexFallback(t *testing.T) {
	idx := Build(KindStudent, testRows)

	e := idx.Resolve(5)
	if !e.Missing {
		t.Error("Resolve(5) should be a fallback")
	}
	if e.ID != "" {
		t.Errorf("fallback ID = %q, want empty", e.ID)
	}
	if e.Name != "Student 5" {
		t.Errorf("fallback Name = %q, want %q", e.Name, "Student 5")
	}
}

func TestBuild_DuplicateIndexLastWins(t *testing.T) {
	rows := [][]string{
		{"index", "id", "name"},
		{"3", "R1", "Rehearsal Hall"},
		{"3", "R2", "Chamber Room"},
	}
	idx := Build(KindRoom, rows)

	e := idx.Resolve(3)
	if e.Name != "Chamber Room" || e.ID != "R2" {
		t.Errorf("Resolve(3) = %+v, want last occurrence", e)
	}
}

func TestBuild_IgnoresMalformedRows(t *testing.T) {
	rows := [][]string{
		{"index", "id", "name"},
		{"x", "T1", "Nope"},
		{"2"},
		{"4", "T4", "Ms. Vidal"},
	}
	idx := Build(KindTeacher, rows)
	if idx.Len() != 1 {
		t.Errorf("Len = %d, want 1", idx.Len())
	}
	if got := idx.Resolve(4).Name; got != "Ms. Vidal" {
		t.Errorf("Resolve(4).Name = %q", got)
	}
}

func TestResolveString(t *testing.T) {
	idx := Build(KindStudent, testRows)

	if got := idx.ResolveString("1").Name; got != "Bob" {
		t.Errorf("ResolveString(1).Name = %q", got)
	}
	e := idx.ResolveString("Unknown")
	if !e.Missing || e.Name != "Student Unknown" {
		t.Errorf("ResolveString(Unknown) = %+v", e)
	}
}

func TestBuild_EmptyTable(t *testing.T) {
	idx := Build(KindCourse, nil)
	if idx.Len() != 0 {
		t.Errorf("Len = %d, want 0", idx.Len())
	}
	if got := idx.Resolve(7).Name; got != "Course 7" {
		t.Errorf("Resolve(7).Name = %q", got)
	}
}

package timetable

import (
	"reflect"
	"testing"
)

// makeRow builds a minimal row for aggregation tests.
func makeRow(class, start, end, room, teacher, student string) Row {
	return NewRow([]string{class, start, end, room, "10", "5", teacher, "20", "40", student, "0", "0", "0", "0"})
}

func TestAggregate_GroupsByKey(t *testing.T) {
	rows := []Row{
		makeRow("Course 1", "0", "3", "1", "2", "101"),
		makeRow("Course 1", "0", "3", "1", "2", "102"),
		makeRow("Instrument 4", "20", "23", "1", "2", "103"),
		makeRow("Course 1", "0", "3", "2", "2", "104"),
	}

	sessions := Aggregate(rows)
	if len(sessions) != 3 {
		t.Fatalf("len(sessions) = %d, want 3", len(sessions))
	}

	// First-seen order of grouping keys.
	if got := sessions[0].Students; !reflect.DeepEqual(got, []string{"101", "102"}) {
		t.Errorf("session 0 roster = %v", got)
	}
	if sessions[1].Class.Kind != ClassInstrument {
		t.Errorf("session 1 class = %+v", sessions[1].Class)
	}
	if sessions[2].Room != "2" {
		t.Errorf("session 2 room = %q", sessions[2].Room)
	}
}

func TestAggregate_MembershipIsOrderIndependent(t *testing.T) {
	rows := []Row{
		makeRow("Course 1", "0", "3", "1", "2", "101"),
		makeRow("Course 2", "4", "7", "1", "2", "103"),
		makeRow("Course 1", "0", "3", "1", "2", "102"),
	}
	reversed := []Row{rows[2], rows[1], rows[0]}

	a := Aggregate(rows)
	b := Aggregate(reversed)
	if len(a) != len(b) {
		t.Fatalf("session counts differ: %d vs %d", len(a), len(b))
	}

	rosters := func(sessions []Session) map[groupKey]map[string]bool {
		out := make(map[groupKey]map[string]bool)
		for _, s := range sessions {
			members := make(map[string]bool)
			for _, st := range s.Students {
				members[st] = true
			}
			out[groupKey{s.StartSlot, s.EndSlot, s.Room, s.Teacher}] = members
		}
		return out
	}
	if !reflect.DeepEqual(rosters(a), rosters(b)) {
		t.Errorf("membership sets differ: %v vs %v", rosters(a), rosters(b))
	}
}

func TestAggregate_NoEmptySessions(t *testing.T) {
	sessions := Aggregate(nil)
	if len(sessions) != 0 {
		t.Errorf("Aggregate(nil) = %v", sessions)
	}

	sessions = Aggregate([]Row{makeRow("Course 1", "0", "3", "1", "2", "101")})
	for _, s := range sessions {
		if len(s.Students) == 0 {
			t.Errorf("session with empty roster: %+v", s)
		}
	}
}

func TestBuildEvents(t *testing.T) {
	sessions := Aggregate([]Row{
		makeRow("Course 1", "10", "14", "3", "7", "101"),
	})

	events := BuildEvents(sessions)
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}

	e := events[0]
	if e.Weekday != "MON" {
		t.Errorf("weekday = %q", e.Weekday)
	}
	if e.Start.Hour() != 18 || e.Start.Minute() != 30 {
		t.Errorf("start = %02d:%02d, want 18:30", e.Start.Hour(), e.Start.Minute())
	}
	// Exact boundary: the presentation layer pads end times, not us.
	if e.End.Hour() != 19 || e.End.Minute() != 30 {
		t.Errorf("end = %02d:%02d, want 19:30", e.End.Hour(), e.End.Minute())
	}
}

func TestBuildEvents_SkipsSessionsWithInvalidSlots(t *testing.T) {
	// One valid session mixed with an Unknown-slot row and an
	// out-of-range row. The bad sessions drop out; the calendar renders.
	sessions := Aggregate([]Row{
		makeRow("Course 1", "10", "14", "3", "7", "101"),
		makeRow("Course 2", UnknownField, UnknownField, "3", "7", "102"),
		makeRow("Course 3", "120", "124", "3", "7", "103"),
	})
	if len(sessions) != 3 {
		t.Fatalf("len(sessions) = %d, want 3", len(sessions))
	}

	events := BuildEvents(sessions)
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Class.Raw != "Course 1" {
		t.Errorf("surviving event = %+v", events[0])
	}
}

package ops

import (
	"testing"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solution"
)

func TestSchedule_DefaultDimensionAndSelection(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	out, err := Schedule(database, config.DefaultConfig(), ScheduleInput{ID: id})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	if out.Dimension != "room" {
		t.Errorf("Dimension = %q, want config default room", out.Dimension)
	}
	// Rooms 3 and 4 exist; the first option is the default selection
	if out.Selection != "3" {
		t.Errorf("Selection = %q, want first option 3", out.Selection)
	}
	if len(out.Options) != 2 {
		t.Fatalf("Options = %v", out.Options)
	}
	if out.Options[0].Value != "3" || out.Options[0].Name != "Aula Grande" {
		t.Errorf("Options[0] = %+v", out.Options[0])
	}

	// Room 3 has one aggregated session with both students
	if len(out.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(out.Events))
	}
	ev := out.Events[0]
	if ev.ClassName != "Piano I" {
		t.Errorf("ClassName = %q", ev.ClassName)
	}
	if ev.Room != "Aula Grande" || ev.RoomID != "3" {
		t.Errorf("Room = %q (%q)", ev.Room, ev.RoomID)
	}
	if ev.Teacher != "Luis Prada" {
		t.Errorf("Teacher = %q", ev.Teacher)
	}
	if ev.Weekday != "MON" {
		t.Errorf("Weekday = %q", ev.Weekday)
	}
	if ev.StartLabel != "18:30" {
		t.Errorf("StartLabel = %q", ev.StartLabel)
	}
	// End slot 14 is 19:30; the displayed end pads one slot
	if ev.EndLabel != "19:45" {
		t.Errorf("EndLabel = %q", ev.EndLabel)
	}
	if len(ev.Students) != 2 || ev.Students[0] != "Ana Ruiz" || ev.Students[1] != "Ben Ortiz" {
		t.Errorf("Students = %v", ev.Students)
	}
}

func TestSchedule_TeacherDimension(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	out, err := Schedule(database, config.DefaultConfig(), ScheduleInput{
		ID:        id,
		Dimension: "teacher",
		Selection: "8",
	})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(out.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(out.Events))
	}
	ev := out.Events[0]
	if ev.ClassName != "Violin" {
		t.Errorf("ClassName = %q", ev.ClassName)
	}
	if ev.Weekday != "TUE" || ev.StartLabel != "16:15" || ev.EndLabel != "16:45" {
		t.Errorf("event = %+v", ev)
	}
	if len(ev.Students) != 1 || ev.Students[0] != "Clara Vega" {
		t.Errorf("Students = %v", ev.Students)
	}
}

func TestSchedule_StudentDimension(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	out, err := Schedule(database, config.DefaultConfig(), ScheduleInput{
		ID:        id,
		Dimension: "student",
		Selection: "102",
	})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(out.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(out.Events))
	}
	if out.Events[0].ClassName != "Piano I" {
		t.Errorf("ClassName = %q", out.Events[0].ClassName)
	}
	// Options span all enrolled students
	if len(out.Options) != 3 {
		t.Errorf("Options = %v", out.Options)
	}
}

func TestSchedule_UnknownSlotRowDoesNotBlankView(t *testing.T) {
	database := opsDB(t)

	// A row with the Unknown slot sentinel sits alongside valid rows.
	// The view renders the valid sessions instead of failing whole.
	payloads := fixturePayloads()
	payloads[solution.PayloadSchedule] = scheduleCSV + "\nCourse 10,Unknown,Unknown,3,30,25,7,20,40,104,0,0,0,0"
	loaded, err := Load(database, config.DefaultConfig(), LoadInput{Payloads: payloads})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out, err := Schedule(database, config.DefaultConfig(), ScheduleInput{ID: loaded.ID, Selection: "3"})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(out.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(out.Events))
	}
	if out.Events[0].ClassName != "Piano I" {
		t.Errorf("ClassName = %q", out.Events[0].ClassName)
	}
}

func TestSchedule_UnknownSelectionYieldsNoEvents(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	out, err := Schedule(database, config.DefaultConfig(), ScheduleInput{ID: id, Selection: "99"})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(out.Events) != 0 {
		t.Errorf("got %d events, want 0", len(out.Events))
	}
}

func TestSchedule_InvalidDimension(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "")

	_, err := Schedule(database, config.DefaultConfig(), ScheduleInput{ID: id, Dimension: "building"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

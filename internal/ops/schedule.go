package ops

import (
	"database/sql"
	"time"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/names"
	"github.com/jmonzo/atril/internal/timetable"
)

// ScheduleInput contains parameters for the Schedule operation.
type ScheduleInput struct {
	ID        string
	Label     string
	Dimension string // default: config DefaultDimension
	Selection string // default: first available option
}

// FilterOption is one selectable value along the active dimension,
// with its resolved display name.
type FilterOption struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// EventView is one calendar entry with every id resolved to a display
// name. End labels carry the 15-minute visual pad; the underlying times
// stay exact.
type EventView struct {
	ClassName  string    `json:"class_name"`
	ClassRaw   string    `json:"class_raw"`
	RoomID     string    `json:"room_id"`
	Room       string    `json:"room"`
	TeacherID  string    `json:"teacher_id"`
	Teacher    string    `json:"teacher"`
	Weekday    string    `json:"weekday"`
	StartLabel string    `json:"start_label"`
	EndLabel   string    `json:"end_label"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Students   []string  `json:"students"`
}

// ScheduleOutput contains the result of the Schedule operation.
type ScheduleOutput struct {
	ID        string         `json:"id"`
	Dimension string         `json:"dimension"`
	Selection string         `json:"selection"`
	Options   []FilterOption `json:"options"`
	Events    []EventView    `json:"events"`
}

// Schedule decodes a stored solution into the filtered calendar view:
// sessions along one dimension, with names resolved.
func Schedule(database *sql.DB, cfg *config.Config, input ScheduleInput) (*ScheduleOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Label)
	if err != nil {
		return nil, err
	}
	s, err := resolveSolution(database, addr, false)
	if err != nil {
		return nil, err
	}

	dimRaw := input.Dimension
	if dimRaw == "" && cfg != nil {
		dimRaw = cfg.DefaultDimension
	}
	if dimRaw == "" {
		dimRaw = string(timetable.DimensionRoom)
	}
	dim, err := timetable.ParseDimension(dimRaw)
	if err != nil {
		return nil, err
	}

	sessions, err := decodeSessions(s)
	if err != nil {
		return nil, err
	}
	indexes := nameIndexes(s)

	values := timetable.Options(sessions, dim)
	options := make([]FilterOption, 0, len(values))
	optKind := dimensionKind(dim)
	for _, v := range values {
		options = append(options, FilterOption{
			Value: v,
			Name:  indexes[optKind].ResolveString(v).Name,
		})
	}

	// An unspecified selection falls back to the first option, so a bare
	// request still renders a schedule.
	selection := input.Selection
	if selection == "" && len(values) > 0 {
		selection = values[0]
	}

	projected := timetable.Project(sessions, dim, selection)
	events := timetable.BuildEvents(projected)

	views := make([]EventView, 0, len(events))
	for _, ev := range events {
		views = append(views, newEventView(ev, indexes))
	}

	return &ScheduleOutput{
		ID:        s.ID,
		Dimension: string(dim),
		Selection: selection,
		Options:   options,
		Events:    views,
	}, nil
}

// dimensionKind maps a filter dimension to its name index.
func dimensionKind(dim timetable.Dimension) names.Kind {
	switch dim {
	case timetable.DimensionTeacher:
		return names.KindTeacher
	case timetable.DimensionStudent:
		return names.KindStudent
	default:
		return names.KindRoom
	}
}

// newEventView resolves an event's ids against the name indexes.
func newEventView(ev timetable.Event, indexes map[names.Kind]*names.Index) EventView {
	students := make([]string, 0, len(ev.Students))
	for _, id := range ev.Students {
		students = append(students, indexes[names.KindStudent].ResolveString(id).Name)
	}

	className := ev.Class.Raw
	if ev.Class.Kind != timetable.ClassUnknown {
		className = indexes[ev.Class.NameKind()].Resolve(ev.Class.Index).Name
	}

	// Sessions span [start, end] in slots; the visual end is one slot later.
	paddedEnd := ev.End.Add(timetable.SlotMinutes * time.Minute)

	return EventView{
		ClassName:  className,
		ClassRaw:   ev.Class.Raw,
		RoomID:     ev.Room,
		Room:       indexes[names.KindRoom].ResolveString(ev.Room).Name,
		TeacherID:  ev.Teacher,
		Teacher:    indexes[names.KindTeacher].ResolveString(ev.Teacher).Name,
		Weekday:    ev.Weekday,
		StartLabel: ev.Start.Format("15:04"),
		EndLabel:   paddedEnd.Format("15:04"),
		Start:      ev.Start,
		End:        ev.End,
		Students:   students,
	}
}

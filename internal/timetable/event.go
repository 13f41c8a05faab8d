package timetable

import (
	"time"
)

// Event is a session projected into absolute start/end date-times within
// the anchor week, ready for calendar display. Events are derived values:
// discarded and rebuilt whenever the filter or the session set changes.
// End boundaries are exact; the presentation layer adds its own 15-minute
// visual pad.
type Event struct {
	Class    ClassRef  `json:"class"`
	Room     string    `json:"room"`
	Teacher  string    `json:"teacher"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Weekday  string    `json:"weekday"`
	Students []string  `json:"students"`
}

// BuildEvents converts sessions to calendar events within the anchor
// week. Sessions whose slots don't validate are skipped rather than
// failing the whole projection: the Unknown sentinel is a legal row
// value, and partial data beats a blank calendar. The strict slot
// conversion operation is where an out-of-range slot is a hard error.
func BuildEvents(sessions []Session) []Event {
	events := make([]Event, 0, len(sessions))
	for _, s := range sessions {
		start, err := s.Start().Time(AnchorWeek)
		if err != nil {
			continue
		}
		end, err := s.End().Time(AnchorWeek)
		if err != nil {
			continue
		}
		events = append(events, Event{
			Class:    s.Class,
			Room:     s.Room,
			Teacher:  s.Teacher,
			Start:    start,
			End:      end,
			Weekday:  WeekdayLabel(start),
			Students: s.Students,
		})
	}
	return events
}

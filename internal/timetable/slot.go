package timetable

import (
	"fmt"
	"time"

	"github.com/jmonzo/atril/internal/errors"
)

// The solver models the week as 5 weekdays of 20 quarter-hour slots each,
// starting at 16:00 and ending at 21:00. Slot 0 is Monday 16:00, slot 99
// is Friday 20:45.
const (
	SlotsPerDay  = 20
	DaysPerWeek  = 5
	DayStartHour = 16
	SlotMinutes  = 15
	MaxSlot      = DaysPerWeek*SlotsPerDay - 1
)

// AnchorWeek is the fixed representative week every schedule is projected
// into: Monday, 2000-01-03. Only weekday and time-of-day carry meaning.
var AnchorWeek = time.Date(2000, time.January, 3, 0, 0, 0, 0, time.UTC)

// weekdayLabels are the three-letter labels for the five schedulable days.
var weekdayLabels = [DaysPerWeek]string{"MON", "TUE", "WED", "THU", "FRI"}

// shortDayNames are the mixed-case day names used in compact slot labels.
var shortDayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// InvalidTimeLabel is shown when a slot violates the exporter contract.
const InvalidTimeLabel = "Invalid Time"

// Slot is a 0-based quarter-hour position within the scheduling week.
type Slot int

// Valid reports whether the slot lies in the schedulable domain [0, 99].
func (s Slot) Valid() bool {
	return s >= 0 && s <= MaxSlot
}

// DayIndex returns the 0-based weekday (0 = Monday).
func (s Slot) DayIndex() int {
	return int(s) / SlotsPerDay
}

// Time converts the slot to an absolute date-time within the given anchor
// week. An out-of-range slot is a contract violation by the exporter and
// is reported, never clamped. The boundary is exact; any display padding
// of end times belongs to the presentation layer.
func (s Slot) Time(anchor time.Time) (time.Time, error) {
	if !s.Valid() {
		return time.Time{}, errors.NewInvalidSlot(int(s))
	}

	offset := int(s) % SlotsPerDay
	hour := DayStartHour + offset/4
	minute := (offset % 4) * SlotMinutes

	day := anchor.AddDate(0, 0, s.DayIndex())
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, anchor.Location()), nil
}

// Label renders the slot as a compact "Mon 18:30" display string, or
// InvalidTimeLabel when out of range.
func (s Slot) Label() string {
	t, err := s.Time(AnchorWeek)
	if err != nil {
		return InvalidTimeLabel
	}
	return fmt.Sprintf("%s %02d:%02d", shortDayNames[s.DayIndex()], t.Hour(), t.Minute())
}

// WeekdayLabel maps a date-time back to its weekday label (MON..FRI).
// Weekend dates return an empty string; they cannot arise from a valid slot.
func WeekdayLabel(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return weekdayLabels[0]
	case time.Tuesday:
		return weekdayLabels[1]
	case time.Wednesday:
		return weekdayLabels[2]
	case time.Thursday:
		return weekdayLabels[3]
	case time.Friday:
		return weekdayLabels[4]
	default:
		return ""
	}
}

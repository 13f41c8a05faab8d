package ops

import (
	"time"

	"github.com/jmonzo/atril/internal/timetable"
)

// SlotInfo describes one weekly time slot in calendar terms.
type SlotInfo struct {
	Slot    int    `json:"slot"`
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Label   string `json:"label"`
}

// ConvertSlot maps a solver slot number to its weekday and times. The
// end time carries the 15-minute display pad. Out-of-range slots are
// rejected, matching the exporter contract.
func ConvertSlot(slot int) (*SlotInfo, error) {
	s := timetable.Slot(slot)
	start, err := s.Time(timetable.AnchorWeek)
	if err != nil {
		return nil, err
	}
	end := start.Add(timetable.SlotMinutes * time.Minute)

	return &SlotInfo{
		Slot:    slot,
		Weekday: timetable.WeekdayLabel(start),
		Start:   start.Format("15:04"),
		End:     end.Format("15:04"),
		Label:   s.Label(),
	}, nil
}

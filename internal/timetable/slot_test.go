package timetable

import (
	"testing"

	"github.com/jmonzo/atril/internal/errors"
)

func TestSlotTime_Forward(t *testing.T) {
	tests := []struct {
		slot    Slot
		day     int
		hour    int
		minute  int
		weekday string
	}{
		{0, 0, 16, 0, "MON"},
		{10, 0, 18, 30, "MON"},
		{14, 0, 19, 30, "MON"},
		{19, 0, 20, 45, "MON"},
		{20, 1, 16, 0, "TUE"},
		{47, 2, 17, 45, "WED"},
		{99, 4, 20, 45, "FRI"},
	}

	for _, tt := range tests {
		got, err := tt.slot.Time(AnchorWeek)
		if err != nil {
			t.Fatalf("slot %d: %v", tt.slot, err)
		}
		if got.Day() != AnchorWeek.Day()+tt.day {
			t.Errorf("slot %d day = %d, want %d", tt.slot, got.Day(), AnchorWeek.Day()+tt.day)
		}
		if got.Hour() != tt.hour || got.Minute() != tt.minute {
			t.Errorf("slot %d time = %02d:%02d, want %02d:%02d", tt.slot, got.Hour(), got.Minute(), tt.hour, tt.minute)
		}
		if w := WeekdayLabel(got); w != tt.weekday {
			t.Errorf("slot %d weekday = %q, want %q", tt.slot, w, tt.weekday)
		}
	}
}

func TestSlotTime_WeekdayRoundTrip(t *testing.T) {
	// For every valid slot, the weekday of the converted date-time must
	// match the weekday implied by slot/20.
	labels := []string{"MON", "TUE", "WED", "THU", "FRI"}
	for s := Slot(0); s <= MaxSlot; s++ {
		dt, err := s.Time(AnchorWeek)
		if err != nil {
			t.Fatalf("slot %d: %v", s, err)
		}
		want := labels[int(s)/SlotsPerDay]
		if got := WeekdayLabel(dt); got != want {
			t.Errorf("slot %d weekday = %q, want %q", s, got, want)
		}
	}
}

func TestSlotTime_OutOfRange(t *testing.T) {
	for _, s := range []Slot{-1, 100, 500} {
		_, err := s.Time(AnchorWeek)
		if !errors.Is(err, errors.ErrInvalidSlot) {
			t.Errorf("slot %d error = %v, want INVALID_SLOT", s, err)
		}
		if err.Error() != "INVALID_SLOT: Invalid Time" {
			t.Errorf("slot %d error message = %q", s, err.Error())
		}
	}
}

func TestSlotLabel(t *testing.T) {
	if got := Slot(10).Label(); got != "Mon 18:30" {
		t.Errorf("Slot(10).Label() = %q, want %q", got, "Mon 18:30")
	}
	if got := Slot(20).Label(); got != "Tue 16:00" {
		t.Errorf("Slot(20).Label() = %q, want %q", got, "Tue 16:00")
	}
	if got := Slot(120).Label(); got != InvalidTimeLabel {
		t.Errorf("Slot(120).Label() = %q, want %q", got, InvalidTimeLabel)
	}
}

func TestWeekdayLabel_Weekend(t *testing.T) {
	sat := AnchorWeek.AddDate(0, 0, 5)
	if got := WeekdayLabel(sat); got != "" {
		t.Errorf("WeekdayLabel(saturday) = %q, want empty", got)
	}
}

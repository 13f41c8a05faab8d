package insights

import (
	"strconv"
	"strings"

	"github.com/jmonzo/atril/internal/timetable"
)

// SlotCount is one row of the student-count table: how many students are
// scheduled during one time slot.
type SlotCount struct {
	Slot  timetable.Slot `json:"slot"`
	Count int            `json:"count"`
}

// HeatCell is one cell of the weekly congestion matrix.
type HeatCell struct {
	Slot  timetable.Slot `json:"slot"`
	Label string         `json:"label"`
	Count int            `json:"count"`
	Color string         `json:"color"`
}

// HeatMatrix is the 5×20 congestion grid: one column per weekday, one row
// per quarter-hour slot, colored relative to the busiest observed slot.
type HeatMatrix struct {
	Days     []string     `json:"days"`
	Cells    [][]HeatCell `json:"cells"` // [day][slot-of-day]
	MaxCount int          `json:"max_count"`
}

// DecodeSlotCounts parses the decoded student-count table (header plus
// one row per slot). Rows with an unparseable slot or count are skipped;
// the table is advisory, not load-bearing.
func DecodeSlotCounts(rows [][]string) []SlotCount {
	if len(rows) <= 1 {
		return nil
	}

	counts := make([]SlotCount, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		slot, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		counts = append(counts, SlotCount{Slot: timetable.Slot(slot), Count: count})
	}
	return counts
}

// BuildHeatMatrix lays slot counts out on the weekly grid. Slots absent
// from the table count as zero; out-of-range slots are ignored.
func BuildHeatMatrix(counts []SlotCount) HeatMatrix {
	bySlot := make(map[timetable.Slot]int, len(counts))
	maxCount := 0
	for _, c := range counts {
		if !c.Slot.Valid() {
			continue
		}
		bySlot[c.Slot] = c.Count
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	days := []string{"MON", "TUE", "WED", "THU", "FRI"}
	cells := make([][]HeatCell, timetable.DaysPerWeek)
	for day := 0; day < timetable.DaysPerWeek; day++ {
		cells[day] = make([]HeatCell, timetable.SlotsPerDay)
		for off := 0; off < timetable.SlotsPerDay; off++ {
			slot := timetable.Slot(day*timetable.SlotsPerDay + off)
			count := bySlot[slot]
			cells[day][off] = HeatCell{
				Slot:  slot,
				Label: slot.Label(),
				Count: count,
				Color: heatColor(count, maxCount),
			}
		}
	}

	return HeatMatrix{Days: days, Cells: cells, MaxCount: maxCount}
}

// heatColor classifies a slot's load relative to the busiest slot.
func heatColor(count, maxCount int) string {
	if maxCount <= 0 {
		return ColorGreen
	}
	p := float64(count) / float64(maxCount)
	switch {
	case p < 0.20:
		return ColorGreen
	case p < 0.40:
		return ColorLightGreen
	case p < 0.60:
		return ColorYellow
	case p < 0.80:
		return ColorLightRed
	default:
		return ColorRed
	}
}

package insights

import "math"

// Color tags for severity buckets. The web layer maps tags to actual
// hex values; the pipeline only classifies.
const (
	ColorGreen      = "green"
	ColorLightGreen = "light-green"
	ColorYellow     = "yellow"
	ColorLightRed   = "light-red"
	ColorRed        = "red"
)

// Range is one caller-supplied severity bucket definition.
type Range struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Bucket is one nonempty output bucket.
type Bucket struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Color string  `json:"color"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Bucketize classifies values into the caller's ranges. With inclusiveMax
// a value matches [Min, Max]; otherwise [Min, Max). Which to use is fixed
// per metric at the call site: integer penalty scores use inclusive
// single-point ranges, continuous scores use half-open ones. Empty buckets
// are omitted and output order always follows the supplied range order,
// never count magnitude. NaN values match no range.
func Bucketize(values []float64, ranges []Range, inclusiveMax bool) []Bucket {
	buckets := make([]Bucket, 0, len(ranges))
	for _, r := range ranges {
		count := 0
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			if v < r.Min {
				continue
			}
			if inclusiveMax {
				if v <= r.Max {
					count++
				}
			} else if v < r.Max {
				count++
			}
		}
		if count > 0 {
			buckets = append(buckets, Bucket{
				Label: r.Label,
				Count: count,
				Color: r.Color,
				Min:   r.Min,
				Max:   r.Max,
			})
		}
	}
	return buckets
}

// MappingValues extracts the score values of an entity→score mapping for
// bucketization.
func MappingValues(m map[string]float64) []float64 {
	values := make([]float64, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return values
}

// PenaltyRanges classifies integer penalty scores (antiquity and sibling
// mismatch): one inclusive single-point bucket per score 0..4.
func PenaltyRanges() []Range {
	return []Range{
		{Min: 0, Max: 0, Label: "0", Color: ColorGreen},
		{Min: 1, Max: 1, Label: "1", Color: ColorLightGreen},
		{Min: 2, Max: 2, Label: "2", Color: ColorYellow},
		{Min: 3, Max: 3, Label: "3", Color: ColorLightRed},
		{Min: 4, Max: 4, Label: "4", Color: ColorRed},
	}
}

// TeacherUtilizationRanges classifies per-teacher utilization scores,
// half-open; low utilization is the bad end.
func TeacherUtilizationRanges() []Range {
	return []Range{
		{Min: 0, Max: 0.25, Label: "0 - 0.25", Color: ColorRed},
		{Min: 0.25, Max: 0.5, Label: "0.25 - 0.5", Color: ColorLightRed},
		{Min: 0.5, Max: 0.75, Label: "0.5 - 0.75", Color: ColorYellow},
		{Min: 0.75, Max: 0.9, Label: "0.75 - 0.9", Color: ColorLightGreen},
		{Min: 0.9, Max: math.Inf(1), Label: "0.9+", Color: ColorGreen},
	}
}

// RoomUnderuseRanges classifies per-room underuse scores, half-open;
// high underuse is the bad end.
func RoomUnderuseRanges() []Range {
	return []Range{
		{Min: 0, Max: 0.75, Label: "0 - 0.75", Color: ColorGreen},
		{Min: 0.75, Max: 1.5, Label: "0.75 - 1.5", Color: ColorLightGreen},
		{Min: 1.5, Max: 2.25, Label: "1.5 - 2.25", Color: ColorYellow},
		{Min: 2.25, Max: 3, Label: "2.25 - 3", Color: ColorLightRed},
		{Min: 3, Max: math.Inf(1), Label: "3+", Color: ColorRed},
	}
}

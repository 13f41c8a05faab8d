package insights

import "encoding/json"

// Gauge is a single continuous score rendered as a dial: the value scaled
// to [0, 100] plus a severity color.
type Gauge struct {
	Value  float64 `json:"value"`
	Scaled float64 `json:"scaled"`
	Color  string  `json:"color"`
}

// MarshalJSON emits NaN fields as null, matching Snapshot. A gauge built
// from a malformed metric stays red but must still serialize.
func (g Gauge) MarshalJSON() ([]byte, error) {
	type alias Gauge
	return json.Marshal(struct {
		alias
		Value  *float64 `json:"value"`
		Scaled *float64 `json:"scaled"`
	}{
		alias:  alias(g),
		Value:  nanToNull(g.Value),
		Scaled: nanToNull(g.Scaled),
	})
}

// NewGauge builds a gauge for a [0, 1] score. When invert is set the
// color scale is reversed: high is good (room utilization) instead of
// high is bad (workload balance index).
func NewGauge(value float64, invert bool) Gauge {
	scaled := value * 100
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 100 {
		scaled = 100
	}

	color := gaugeColor(value)
	if invert {
		color = invertColor(color)
	}
	return Gauge{Value: value, Scaled: scaled, Color: color}
}

// gaugeColor maps a [0, 1) score to a severity color, red end for high
// values. Out-of-domain values are red.
func gaugeColor(v float64) string {
	switch {
	case v >= 0 && v < 0.25:
		return ColorGreen
	case v >= 0.25 && v < 0.50:
		return ColorLightGreen
	case v >= 0.50 && v < 0.75:
		return ColorYellow
	case v >= 0.75 && v < 0.90:
		return ColorLightRed
	default:
		return ColorRed
	}
}

// invertColor mirrors a severity color across the scale.
func invertColor(c string) string {
	switch c {
	case ColorGreen:
		return ColorRed
	case ColorLightGreen:
		return ColorLightRed
	case ColorLightRed:
		return ColorLightGreen
	case ColorRed:
		return ColorGreen
	default:
		return c
	}
}

// NeedleAngle maps a missing-students percentage to the discrete dial
// angle of the five-section gauge. Pure table lookup against fixed
// severity thresholds, no interpolation; 180 marks an out-of-range value.
func NeedleAngle(value float64) int {
	switch {
	case value >= 0 && value < 5:
		return 193 // excellent
	case value >= 5 && value < 7.5:
		return 230 // great
	case value >= 7.5 && value < 10:
		return 270 // good
	case value >= 10 && value < 15:
		return 310 // fair
	case value >= 15 && value <= 100:
		return 347 // poor
	default:
		return 180
	}
}

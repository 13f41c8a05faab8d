package insights

import (
	"encoding/json"
	"math"

	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solvercsv"
)

// Snapshot holds the twelve solver quality metrics decoded from the
// single data row of the insights CSV. Constructed once per load and
// immutable afterward.
type Snapshot struct {
	WorkloadBalanceIndex      float64            `json:"workload_balance_index"`
	DailyWorkloadDeviation    map[string]float64 `json:"daily_workload_deviation"`
	UnderutilizedTeachers     map[string]float64 `json:"underutilized_teachers"`
	OverloadedTeachers        map[string]float64 `json:"overloaded_teachers"`
	StudentDistributionScore  float64            `json:"student_distribution_score"`
	RoomUtilizationRate       float64            `json:"room_utilization_rate"`
	PeakHourCongestion        map[string]float64 `json:"peak_hour_congestion"`
	RoomUnderuse              map[string]float64 `json:"room_underuse"`
	MissingCourseStudents     []string           `json:"missing_course_students"`
	MissingInstrumentStudents []string           `json:"missing_instrument_students"`
	AntiquityPenalties        map[string]float64 `json:"antiquity_penalties"`
	SiblingPenalties          map[string]float64 `json:"sibling_penalties"`
}

// DecodeSnapshot builds a Snapshot from a decoded insights table: header
// row plus exactly one data row. Individual malformed fields degrade to
// NaN or empty structures inside solvercsv; only a missing data row is a
// hard error, because then there is nothing to show at all.
func DecodeSnapshot(rows [][]string) (*Snapshot, error) {
	if len(rows) < 2 {
		return nil, errors.NewEmptyPayload("insights")
	}

	data := rows[1]
	field := func(i int) string {
		if i < len(data) {
			return data[i]
		}
		return ""
	}

	return &Snapshot{
		WorkloadBalanceIndex:      solvercsv.DecodeScalar(field(0)),
		DailyWorkloadDeviation:    solvercsv.DecodeMapping(field(1)),
		UnderutilizedTeachers:     solvercsv.DecodeMapping(field(2)),
		OverloadedTeachers:        solvercsv.DecodeMapping(field(3)),
		StudentDistributionScore:  solvercsv.DecodeScalar(field(4)),
		RoomUtilizationRate:       solvercsv.DecodeScalar(field(5)),
		PeakHourCongestion:        solvercsv.DecodeMapping(field(6)),
		RoomUnderuse:              solvercsv.DecodeMapping(field(7)),
		MissingCourseStudents:     solvercsv.DecodeSequence(field(8)),
		MissingInstrumentStudents: solvercsv.DecodeSequence(field(9)),
		AntiquityPenalties:        solvercsv.DecodeMapping(field(10)),
		SiblingPenalties:          solvercsv.DecodeMapping(field(11)),
	}, nil
}

// MarshalJSON emits NaN scalars as null. A malformed metric degrades to
// NaN at decode time, and encoding/json rejects NaN outright; one bad
// field must not make the whole snapshot unserializable.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type alias Snapshot
	return json.Marshal(struct {
		alias
		WorkloadBalanceIndex     *float64 `json:"workload_balance_index"`
		StudentDistributionScore *float64 `json:"student_distribution_score"`
		RoomUtilizationRate      *float64 `json:"room_utilization_rate"`
	}{
		alias:                    alias(s),
		WorkloadBalanceIndex:     nanToNull(s.WorkloadBalanceIndex),
		StudentDistributionScore: nanToNull(s.StudentDistributionScore),
		RoomUtilizationRate:      nanToNull(s.RoomUtilizationRate),
	})
}

// nanToNull maps NaN to a nil pointer, which marshals as JSON null.
func nanToNull(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

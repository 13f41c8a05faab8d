package ops

import (
	"database/sql"
	"sort"

	"github.com/jmonzo/atril/internal/insights"
	"github.com/jmonzo/atril/internal/names"
	"github.com/jmonzo/atril/internal/solvercsv"
)

// InsightsInput contains parameters for the Insights operation.
type InsightsInput struct {
	ID    string
	Label string
}

// ScoreRef is one entity with its metric score and resolved name.
type ScoreRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// NameRef is one entity reference with its resolved name.
type NameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InsightsOutput contains the decoded quality metrics of a solution,
// classified and name-resolved for display.
type InsightsOutput struct {
	ID       string             `json:"id"`
	Snapshot *insights.Snapshot `json:"snapshot"`

	WorkloadBalance     insights.Gauge `json:"workload_balance"`
	StudentDistribution insights.Gauge `json:"student_distribution"`
	RoomUtilization     insights.Gauge `json:"room_utilization"`

	MissingStudentPct  float64 `json:"missing_student_pct"`
	MissingNeedleAngle int     `json:"missing_needle_angle"`

	TeacherUtilizationBuckets []insights.Bucket `json:"teacher_utilization_buckets"`
	RoomUnderuseBuckets       []insights.Bucket `json:"room_underuse_buckets"`
	AntiquityBuckets          []insights.Bucket `json:"antiquity_buckets"`
	SiblingBuckets            []insights.Bucket `json:"sibling_buckets"`

	UnderutilizedTeachers     []ScoreRef `json:"underutilized_teachers"`
	OverloadedTeachers        []ScoreRef `json:"overloaded_teachers"`
	UnderusedRooms            []ScoreRef `json:"underused_rooms"`
	MissingCourseStudents     []NameRef  `json:"missing_course_students"`
	MissingInstrumentStudents []NameRef  `json:"missing_instrument_students"`
}

// Insights decodes and classifies the quality metrics of a stored
// solution.
func Insights(database *sql.DB, input InsightsInput) (*InsightsOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Label)
	if err != nil {
		return nil, err
	}
	s, err := resolveSolution(database, addr, false)
	if err != nil {
		return nil, err
	}

	rows, err := solvercsv.DecodeTable(s.InsightsCSV)
	if err != nil {
		return nil, err
	}
	snap, err := insights.DecodeSnapshot(rows)
	if err != nil {
		return nil, err
	}

	indexes := nameIndexes(s)

	missingPct := missingStudentPct(snap, indexes[names.KindStudent])

	return &InsightsOutput{
		ID:       s.ID,
		Snapshot: snap,

		WorkloadBalance:     insights.NewGauge(snap.WorkloadBalanceIndex, false),
		StudentDistribution: insights.NewGauge(snap.StudentDistributionScore, false),
		RoomUtilization:     insights.NewGauge(snap.RoomUtilizationRate, true),

		MissingStudentPct:  missingPct,
		MissingNeedleAngle: insights.NeedleAngle(missingPct),

		TeacherUtilizationBuckets: insights.Bucketize(
			insights.MappingValues(snap.UnderutilizedTeachers), insights.TeacherUtilizationRanges(), false),
		RoomUnderuseBuckets: insights.Bucketize(
			insights.MappingValues(snap.RoomUnderuse), insights.RoomUnderuseRanges(), false),
		AntiquityBuckets: insights.Bucketize(
			insights.MappingValues(snap.AntiquityPenalties), insights.PenaltyRanges(), true),
		SiblingBuckets: insights.Bucketize(
			insights.MappingValues(snap.SiblingPenalties), insights.PenaltyRanges(), true),

		UnderutilizedTeachers:     resolveScores(snap.UnderutilizedTeachers, indexes[names.KindTeacher]),
		OverloadedTeachers:        resolveScores(snap.OverloadedTeachers, indexes[names.KindTeacher]),
		UnderusedRooms:            resolveScores(snap.RoomUnderuse, indexes[names.KindRoom]),
		MissingCourseStudents:     resolveRefs(snap.MissingCourseStudents, indexes[names.KindStudent]),
		MissingInstrumentStudents: resolveRefs(snap.MissingInstrumentStudents, indexes[names.KindStudent]),
	}, nil
}

// missingStudentPct computes the share of enrolled students missing a
// course or instrument assignment, as a percentage of the roster.
func missingStudentPct(snap *insights.Snapshot, students *names.Index) float64 {
	total := students.Len()
	if total == 0 {
		return 0
	}

	missing := make(map[string]bool)
	for _, id := range snap.MissingCourseStudents {
		missing[id] = true
	}
	for _, id := range snap.MissingInstrumentStudents {
		missing[id] = true
	}

	return float64(len(missing)) / float64(total) * 100
}

// resolveScores turns an id to score mapping into a name-resolved
// listing, worst scores first.
func resolveScores(m map[string]float64, idx *names.Index) []ScoreRef {
	refs := make([]ScoreRef, 0, len(m))
	for id, score := range m {
		refs = append(refs, ScoreRef{
			ID:    id,
			Name:  idx.ResolveString(id).Name,
			Score: score,
		})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Score != refs[j].Score {
			return refs[i].Score > refs[j].Score
		}
		return refs[i].ID < refs[j].ID
	})
	return refs
}

// resolveRefs resolves a list of entity ids to display names.
func resolveRefs(ids []string, idx *names.Index) []NameRef {
	refs := make([]NameRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, NameRef{ID: id, Name: idx.ResolveString(id).Name})
	}
	return refs
}

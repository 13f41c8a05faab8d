package ops

import (
	"github.com/jmonzo/atril/internal/names"
	"github.com/jmonzo/atril/internal/solution"
	"github.com/jmonzo/atril/internal/solvercsv"
	"github.com/jmonzo/atril/internal/timetable"
)

// payloadForKind maps a name-table kind to the payload that carries it.
var payloadForKind = map[names.Kind]string{
	names.KindStudent:    solution.PayloadStudents,
	names.KindTeacher:    solution.PayloadTeachers,
	names.KindRoom:       solution.PayloadRooms,
	names.KindCourse:     solution.PayloadCourses,
	names.KindInstrument: solution.PayloadInstruments,
}

// nameIndexes decodes every name table of a stored solution. Payloads
// were verified at load time; a table that no longer decodes yields an
// empty index, whose fallback labels keep the output usable.
func nameIndexes(s *solution.Solution) map[names.Kind]*names.Index {
	indexes := make(map[names.Kind]*names.Index, len(names.Kinds))
	for _, kind := range names.Kinds {
		rows, err := solvercsv.DecodeTable(s.Payload(payloadForKind[kind]))
		if err != nil {
			rows = nil
		}
		indexes[kind] = names.Build(kind, rows)
	}
	return indexes
}

// decodeSessions decodes and aggregates the schedule payload of a stored
// solution.
func decodeSessions(s *solution.Solution) ([]timetable.Session, error) {
	table, err := solvercsv.DecodeTable(s.ScheduleCSV)
	if err != nil {
		return nil, err
	}
	rows := timetable.DecodeRows(table[1:])
	return timetable.Aggregate(rows), nil
}

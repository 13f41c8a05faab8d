package solution

import (
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solvercsv"
)

// Verify checks that a solution carries every payload the pipeline needs:
// all eight CSVs present and decodable, and the schedule holding at least
// a header and one assignment row. Returns INCOMPLETE_SOLUTION naming the
// payloads that fail.
func Verify(s *Solution) error {
	var missing []string
	for _, name := range PayloadNames {
		rows, err := solvercsv.DecodeTable(s.Payload(name))
		if err != nil {
			missing = append(missing, name)
			continue
		}
		if name == PayloadSchedule && len(rows) < 2 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.NewIncompleteSolution(missing)
	}
	return nil
}

// CountRows returns the number of assignment rows in the schedule payload
// (data rows below the header). Zero when the payload does not decode.
func CountRows(scheduleCSV string) int {
	rows, err := solvercsv.DecodeTable(scheduleCSV)
	if err != nil || len(rows) < 2 {
		return 0
	}
	return len(rows) - 1
}

package ops

import (
	"crypto/rand"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/db"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solution"
)

// LoadMode controls collision behavior.
type LoadMode string

const (
	LoadModeError   LoadMode = "error"   // default: fail on label collision
	LoadModeReplace LoadMode = "replace" // overwrite existing
)

// payloadFiles maps payload names to the file names the solver writes in
// an export directory.
var payloadFiles = map[string]string{
	solution.PayloadSchedule:      "solution.csv",
	solution.PayloadInsights:      "insights.csv",
	solution.PayloadStudentCounts: "student_count.csv",
	solution.PayloadStudents:      "student_names.csv",
	solution.PayloadTeachers:      "teacher_names.csv",
	solution.PayloadRooms:         "room_names.csv",
	solution.PayloadCourses:       "course_names.csv",
	solution.PayloadInstruments:   "instrument_names.csv",
}

// LoadInput contains parameters for the Load operation.
type LoadInput struct {
	Dir      string            // solver export directory, required unless Payloads given
	Payloads map[string]string // payload name -> CSV text, overrides Dir
	Label    *string           // optional save name
	Source   *string
	Mode     LoadMode // default: LoadModeError
}

// LoadOutput contains the result of the Load operation.
type LoadOutput struct {
	ID       string  `json:"id"`
	Label    *string `json:"label,omitempty"`
	RowCount int     `json:"row_count"`
	Replaced bool    `json:"replaced"`
}

// Load reads a solver export, verifies it, and stores it as a new
// solution. With mode replace an existing solution under the same label
// keeps its id and history but gets the new payloads.
func Load(database *sql.DB, cfg *config.Config, input LoadInput) (*LoadOutput, error) {
	if input.Mode == "" {
		input.Mode = LoadModeError
	}
	if input.Mode != LoadModeError && input.Mode != LoadModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}
	input.Source = cleanOptionalString(input.Source)

	s := &solution.Solution{}
	if err := readPayloads(s, input, cfg); err != nil {
		return nil, err
	}
	if err := solution.Verify(s); err != nil {
		return nil, err
	}
	s.RowCount = solution.CountRows(s.ScheduleCSV)

	// Normalize label if provided
	if input.Label != nil {
		normalized := solution.Normalize(*input.Label)
		if normalized == "" {
			return nil, errors.NewInvalidRequest("label must not be empty (omit it for unlabeled solutions)")
		}
		s.LabelRaw = input.Label
		s.LabelNorm = &normalized
	}

	s.Source = input.Source
	now := time.Now().Unix()
	s.CreatedAt = now
	s.UpdatedAt = now

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	s.ID = id

	if input.Mode == LoadModeReplace && s.LabelNorm != nil {
		existing, err := db.GetByLabel(database, *s.LabelNorm, false)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			s.ID = existing.ID
			if err := db.ReplaceByID(database, s); err != nil {
				return nil, err
			}
			return &LoadOutput{
				ID:       existing.ID,
				Label:    s.LabelRaw,
				RowCount: s.RowCount,
				Replaced: true,
			}, nil
		}
	}

	// mode:error, or replace with no existing label holder
	if err := db.Insert(database, s); err != nil {
		if err == db.ErrUniqueConstraint && s.LabelRaw != nil {
			return nil, errors.NewLabelAlreadyExists(*s.LabelRaw)
		}
		return nil, err
	}

	return &LoadOutput{
		ID:       s.ID,
		Label:    s.LabelRaw,
		RowCount: s.RowCount,
	}, nil
}

// readPayloads fills the solution's payloads from explicit text or from
// the export directory, enforcing the per-payload size cap.
func readPayloads(s *solution.Solution, input LoadInput, cfg *config.Config) error {
	maxBytes := 0
	if cfg != nil {
		maxBytes = cfg.MaxPayloadBytes
	}

	if input.Payloads != nil {
		for _, name := range solution.PayloadNames {
			text := input.Payloads[name]
			if maxBytes > 0 && len(text) > maxBytes {
				return errors.NewPayloadTooLarge(name, maxBytes, len(text))
			}
			s.SetPayload(name, text)
		}
		return nil
	}

	if input.Dir == "" {
		return errors.NewInvalidRequest("dir is required")
	}
	if info, err := os.Stat(input.Dir); err != nil || !info.IsDir() {
		return errors.NewInvalidRequest("dir must be an existing directory")
	}

	for _, name := range solution.PayloadNames {
		path := filepath.Join(input.Dir, payloadFiles[name])
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				// Missing files surface later as an incomplete solution
				continue
			}
			return errors.NewInternal(err)
		}
		if maxBytes > 0 && len(data) > maxBytes {
			return errors.NewPayloadTooLarge(name, maxBytes, len(data))
		}
		s.SetPayload(name, string(data))
	}
	return nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

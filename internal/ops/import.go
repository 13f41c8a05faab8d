package ops

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmonzo/atril/internal/config"
	"github.com/jmonzo/atril/internal/db"
	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solution"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // fail on collision (atomic)
	ImportModeReplace ImportMode = "replace" // overwrite on collision
	ImportModeRename  ImportMode = "rename"  // auto-suffix label on collision
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: error
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError represents an error that occurred during import.
type ImportError struct {
	Line    int    `json:"line"`
	ID      string `json:"id,omitempty"`
	Label   string `json:"label,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Import imports solutions from a JSONL export file.
func Import(database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeError
	}
	if input.Mode != ImportModeError && input.Mode != ImportModeReplace && input.Mode != ImportModeRename {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace, rename")
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Parse all records first
	records, parseErrors := parseExportFile(file)

	// For mode:error, fail on any parse errors
	if input.Mode == ImportModeError && len(parseErrors) > 0 {
		return &ImportOutput{
			Imported: 0,
			Skipped:  0,
			Errors:   parseErrors,
		}, nil
	}

	switch input.Mode {
	case ImportModeError:
		return importModeError(database, records)
	case ImportModeReplace:
		return importModeReplace(database, records, parseErrors)
	case ImportModeRename:
		return importModeRename(database, records, parseErrors)
	default:
		return nil, errors.NewInvalidRequest("invalid mode")
	}
}

// parseExportFile parses a JSONL export file into records.
func parseExportFile(file io.Reader) ([]solution.ExportRecord, []ImportError) {
	var records []solution.ExportRecord
	var parseErrors []ImportError

	scanner := bufio.NewScanner(file)
	// Solutions carry whole CSV payloads; lines can be large.
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		var record solution.ExportRecord
		if err := json.Unmarshal(line, &record); err != nil {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Code:    "PARSE_ERROR",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}

		// Skip header line
		if record.AtrilExport {
			continue
		}

		// Skip lines with no ID (invalid)
		if record.ID == "" {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Code:    "INVALID_RECORD",
				Message: "missing id field",
			})
			continue
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		parseErrors = append(parseErrors, ImportError{
			Line:    lineNum,
			Code:    "READ_ERROR",
			Message: fmt.Sprintf("failed to read file: %v", err),
		})
	}

	return records, parseErrors
}

// importModeError imports all records, aborting with no writes on any collision.
func importModeError(database *sql.DB, records []solution.ExportRecord) (*ImportOutput, error) {
	// Pre-check collisions before writing anything
	for _, record := range records {
		existing, err := db.GetByID(database, record.ID, true)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return &ImportOutput{
				Errors: []ImportError{{
					ID:      record.ID,
					Code:    "ID_COLLISION",
					Message: fmt.Sprintf("solution with id %q already exists", record.ID),
				}},
			}, nil
		}

		s := record.ToSolution()
		if s.LabelNorm != nil && s.DeletedAt == nil {
			exists, err := db.CheckLabelExists(database, *s.LabelNorm)
			if err != nil {
				return nil, err
			}
			if exists {
				label := ""
				if record.LabelRaw != nil {
					label = *record.LabelRaw
				}
				return &ImportOutput{
					Errors: []ImportError{{
						ID:      record.ID,
						Label:   label,
						Code:    "LABEL_COLLISION",
						Message: fmt.Sprintf("solution with label %q already exists", label),
					}},
				}, nil
			}
		}
	}

	imported := 0
	for _, record := range records {
		if err := db.Insert(database, record.ToSolution()); err != nil {
			return nil, err
		}
		imported++
	}

	return &ImportOutput{Imported: imported, Errors: []ImportError{}}, nil
}

// importModeReplace imports records, updating existing on collision.
func importModeReplace(database *sql.DB, records []solution.ExportRecord, parseErrors []ImportError) (*ImportOutput, error) {
	imported := 0
	skipped := len(parseErrors)
	importErrors := append([]ImportError{}, parseErrors...)

	for _, record := range records {
		s := record.ToSolution()

		existingByID, err := db.GetByID(database, record.ID, true)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}

		var existingByLabel *solution.Solution
		if s.LabelNorm != nil {
			existingByLabel, err = db.GetByLabel(database, *s.LabelNorm, true)
			if err != nil && !errors.Is(err, errors.ErrNotFound) {
				return nil, err
			}
		}

		// Ambiguous case: ID matches row A AND label matches different row B
		if existingByID != nil && existingByLabel != nil && existingByID.ID != existingByLabel.ID {
			label := ""
			if record.LabelRaw != nil {
				label = *record.LabelRaw
			}
			importErrors = append(importErrors, ImportError{
				ID:      record.ID,
				Label:   label,
				Code:    "AMBIGUOUS_COLLISION",
				Message: fmt.Sprintf("id %q matches existing solution but label %q matches different solution", record.ID, label),
			})
			skipped++
			continue
		}

		switch {
		case existingByID != nil:
			if err := db.UpdateFull(database, s); err != nil {
				return nil, err
			}
			imported++
		case existingByLabel != nil:
			s.ID = existingByLabel.ID
			if err := db.UpdateFull(database, s); err != nil {
				return nil, err
			}
			imported++
		default:
			if err := db.Insert(database, s); err != nil {
				return nil, err
			}
			imported++
		}
	}

	return &ImportOutput{Imported: imported, Skipped: skipped, Errors: importErrors}, nil
}

// importModeRename imports records, auto-renaming on collision.
func importModeRename(database *sql.DB, records []solution.ExportRecord, parseErrors []ImportError) (*ImportOutput, error) {
	imported := 0
	skipped := len(parseErrors)
	importErrors := append([]ImportError{}, parseErrors...)

	for _, record := range records {
		s := record.ToSolution()

		existingByID, err := db.GetByID(database, record.ID, true)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}

		// If ID collision, generate a fresh ULID for the incoming copy
		if existingByID != nil {
			newID, err := generateULID()
			if err != nil {
				return nil, errors.NewInternal(err)
			}
			s.ID = newID
		}

		if s.LabelNorm != nil && s.DeletedAt == nil {
			exists, err := db.CheckLabelExists(database, *s.LabelNorm)
			if err != nil {
				return nil, err
			}
			if exists {
				newLabel, err := db.FindUniqueLabel(database, *s.LabelNorm)
				if err != nil {
					label := ""
					if record.LabelRaw != nil {
						label = *record.LabelRaw
					}
					importErrors = append(importErrors, ImportError{
						ID:      record.ID,
						Label:   label,
						Code:    "RENAME_FAILED",
						Message: fmt.Sprintf("failed to find unique label: %v", err),
					})
					skipped++
					continue
				}
				s.LabelRaw = &newLabel
				s.LabelNorm = &newLabel
			}
		}

		if err := db.Insert(database, s); err != nil {
			label := ""
			if s.LabelRaw != nil {
				label = *s.LabelRaw
			}
			importErrors = append(importErrors, ImportError{
				ID:      s.ID,
				Label:   label,
				Code:    "INSERT_FAILED",
				Message: fmt.Sprintf("failed to insert: %v", err),
			})
			skipped++
			continue
		}
		imported++
	}

	return &ImportOutput{Imported: imported, Skipped: skipped, Errors: importErrors}, nil
}

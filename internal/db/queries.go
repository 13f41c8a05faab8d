package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmonzo/atril/internal/errors"
	"github.com/jmonzo/atril/internal/solution"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.AtrilError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

const solutionColumns = `id, label_raw, label_norm,
	schedule_csv, insights_csv, student_counts_csv,
	students_csv, teachers_csv, rooms_csv, courses_csv, instruments_csv,
	row_count, source, created_at, updated_at, deleted_at`

// Insert stores a new solution in the database.
func Insert(db *sql.DB, s *solution.Solution) error {
	labelRaw := toNullString(s.LabelRaw)
	labelNorm := toNullString(s.LabelNorm)
	source := toNullString(s.Source)

	query := `
		INSERT INTO solutions (
			id, label_raw, label_norm,
			schedule_csv, insights_csv, student_counts_csv,
			students_csv, teachers_csv, rooms_csv, courses_csv, instruments_csv,
			row_count, source, created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err := db.Exec(query,
		s.ID, labelRaw, labelNorm,
		s.ScheduleCSV, s.InsightsCSV, s.StudentCountsCSV,
		s.StudentsCSV, s.TeachersCSV, s.RoomsCSV, s.CoursesCSV, s.InstrumentsCSV,
		s.RowCount, source, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByID retrieves a solution by its ULID.
// If includeDeleted is false, soft-deleted solutions are excluded.
func GetByID(db *sql.DB, id string, includeDeleted bool) (*solution.Solution, error) {
	query := `SELECT ` + solutionColumns + ` FROM solutions WHERE id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	row := db.QueryRow(query, id)
	s, err := scanSolution(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return s, nil
}

// GetByLabel retrieves a solution by normalized label.
// If includeDeleted is false, soft-deleted solutions are excluded.
func GetByLabel(db *sql.DB, labelNorm string, includeDeleted bool) (*solution.Solution, error) {
	query := `SELECT ` + solutionColumns + ` FROM solutions WHERE label_norm = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	} else {
		// If both active and soft-deleted solutions exist for the same label,
		// prefer the active one; otherwise the most recently updated deleted one.
		query += " ORDER BY (deleted_at IS NULL) DESC, updated_at DESC LIMIT 1"
	}

	row := db.QueryRow(query, labelNorm)
	s, err := scanSolution(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(labelNorm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return s, nil
}

// CheckLabelExists checks if an active solution with the given label exists.
func CheckLabelExists(db *sql.DB, labelNorm string) (bool, error) {
	query := `
		SELECT 1 FROM solutions
		WHERE label_norm = ? AND deleted_at IS NULL
		LIMIT 1
	`

	var exists int
	err := db.QueryRow(query, labelNorm).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}

	return true, nil
}

// ReplaceByID overwrites the payloads of an existing solution.
// Sets updated_at to current timestamp.
// Does NOT change: id, label
func ReplaceByID(db *sql.DB, s *solution.Solution) error {
	source := toNullString(s.Source)
	now := time.Now().Unix()

	query := `
		UPDATE solutions
		SET schedule_csv = ?, insights_csv = ?, student_counts_csv = ?,
			students_csv = ?, teachers_csv = ?, rooms_csv = ?,
			courses_csv = ?, instruments_csv = ?,
			row_count = ?, source = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.Exec(query,
		s.ScheduleCSV, s.InsightsCSV, s.StudentCountsCSV,
		s.StudentsCSV, s.TeachersCSV, s.RoomsCSV,
		s.CoursesCSV, s.InstrumentsCSV,
		s.RowCount, source, now,
		s.ID,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(s.ID)
	}

	s.UpdatedAt = now

	return nil
}

// UpdateFull overwrites every mutable field of a solution by id, label
// and timestamps included. Used by import, which must restore records
// exactly as exported.
func UpdateFull(db *sql.DB, s *solution.Solution) error {
	labelRaw := toNullString(s.LabelRaw)
	labelNorm := toNullString(s.LabelNorm)
	source := toNullString(s.Source)
	var deletedAt sql.NullInt64
	if s.DeletedAt != nil {
		deletedAt = sql.NullInt64{Int64: *s.DeletedAt, Valid: true}
	}

	query := `
		UPDATE solutions
		SET label_raw = ?, label_norm = ?,
			schedule_csv = ?, insights_csv = ?, student_counts_csv = ?,
			students_csv = ?, teachers_csv = ?, rooms_csv = ?,
			courses_csv = ?, instruments_csv = ?,
			row_count = ?, source = ?, created_at = ?, updated_at = ?, deleted_at = ?
		WHERE id = ?
	`

	result, err := db.Exec(query,
		labelRaw, labelNorm,
		s.ScheduleCSV, s.InsightsCSV, s.StudentCountsCSV,
		s.StudentsCSV, s.TeachersCSV, s.RoomsCSV,
		s.CoursesCSV, s.InstrumentsCSV,
		s.RowCount, source, s.CreatedAt, s.UpdatedAt, deletedAt,
		s.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(s.ID)
	}

	return nil
}

// FindUniqueLabel returns the first "<base>-N" label not taken by an
// active solution, starting at N=2.
func FindUniqueLabel(db *sql.DB, base string) (string, error) {
	for i := 2; i < 1000; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		exists, err := CheckLabelExists(db, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.NewInternal(fmt.Errorf("no unique label found for %q", base))
}

// List returns summaries of active solutions ordered by updated_at
// descending, newest first. The total is the count of active solutions
// regardless of pagination.
func List(db *sql.DB, limit, offset int) ([]solution.SolutionSummary, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM solutions WHERE deleted_at IS NULL`
	if err := db.QueryRow(countQuery).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, label_raw, label_norm, row_count, source,
			created_at, updated_at, deleted_at
		FROM solutions
		WHERE deleted_at IS NULL
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	summaries := []solution.SolutionSummary{}
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// Latest returns the most recently updated active solution.
func Latest(db *sql.DB) (*solution.Solution, error) {
	query := `SELECT ` + solutionColumns + ` FROM solutions
		WHERE deleted_at IS NULL
		ORDER BY updated_at DESC
		LIMIT 1`

	row := db.QueryRow(query)
	s, err := scanSolution(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("latest")
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return s, nil
}

// SoftDelete marks a solution as deleted by setting deleted_at.
func SoftDelete(db *sql.DB, id string) error {
	now := time.Now().Unix()

	query := `
		UPDATE solutions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.Exec(query, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// Purge permanently removes soft-deleted solutions whose deleted_at is
// older than the cutoff. Returns the number of rows removed.
func Purge(db *sql.DB, olderThan int64) (int, error) {
	query := `DELETE FROM solutions WHERE deleted_at IS NOT NULL AND deleted_at < ?`

	result, err := db.Exec(query, olderThan)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	return int(rowsAffected), nil
}

// IterateAll streams every solution, including soft-deleted ones, to the
// callback in id order. Used by export.
func IterateAll(db *sql.DB, fn func(*solution.Solution) error) error {
	query := `SELECT ` + solutionColumns + ` FROM solutions ORDER BY id`

	rows, err := db.Query(query)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSolution(rows)
		if err != nil {
			return errors.NewInternal(err)
		}
		if err := fn(s); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

// scanSolution scans a single row into a Solution struct.
func scanSolution(row scanner) (*solution.Solution, error) {
	var (
		s         solution.Solution
		labelRaw  sql.NullString
		labelNorm sql.NullString
		source    sql.NullString
		deletedAt sql.NullInt64
	)

	err := row.Scan(
		&s.ID, &labelRaw, &labelNorm,
		&s.ScheduleCSV, &s.InsightsCSV, &s.StudentCountsCSV,
		&s.StudentsCSV, &s.TeachersCSV, &s.RoomsCSV, &s.CoursesCSV, &s.InstrumentsCSV,
		&s.RowCount, &source, &s.CreatedAt, &s.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	s.LabelRaw = fromNullString(labelRaw)
	s.LabelNorm = fromNullString(labelNorm)
	s.Source = fromNullString(source)
	if deletedAt.Valid {
		s.DeletedAt = &deletedAt.Int64
	}

	return &s, nil
}

// scanSummary scans a summary projection row.
func scanSummary(row scanner) (solution.SolutionSummary, error) {
	var (
		sum       solution.SolutionSummary
		labelRaw  sql.NullString
		labelNorm sql.NullString
		source    sql.NullString
		deletedAt sql.NullInt64
	)

	err := row.Scan(
		&sum.ID, &labelRaw, &labelNorm, &sum.RowCount, &source,
		&sum.CreatedAt, &sum.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return sum, err
	}

	sum.Label = fromNullString(labelRaw)
	sum.LabelNorm = fromNullString(labelNorm)
	sum.Source = fromNullString(source)
	if deletedAt.Valid {
		sum.DeletedAt = &deletedAt.Int64
	}

	return sum, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

package ops

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmonzo/atril/internal/db"
	"github.com/jmonzo/atril/internal/errors"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	OlderThanDays *int // optional, only purge if deleted_at < (now - N days)
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged  int    `json:"purged"`
	Message string `json:"message"`
}

// Purge permanently deletes soft-deleted solutions.
func Purge(database *sql.DB, input PurgeInput) (*PurgeOutput, error) {
	now := time.Now().Unix()
	cutoff := now + 1 // no age filter: everything soft-deleted qualifies
	if input.OlderThanDays != nil {
		if *input.OlderThanDays < 0 {
			return nil, errors.NewInvalidRequest("older_than_days must be non-negative")
		}
		cutoff = now - int64(*input.OlderThanDays)*86400
	}

	count, err := db.Purge(database, cutoff)
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{
		Purged:  count,
		Message: formatPurgeMessage(count, input.OlderThanDays),
	}, nil
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count int, olderThanDays *int) string {
	if count == 0 {
		return "No deleted solutions to purge"
	}

	word := "solution"
	if count > 1 {
		word = "solutions"
	}

	msg := fmt.Sprintf("Permanently deleted %d %s", count, word)
	if olderThanDays != nil {
		msg += fmt.Sprintf(" (deleted more than %d days ago)", *olderThanDays)
	}
	return msg
}

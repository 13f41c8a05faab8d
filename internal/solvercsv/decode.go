package solvercsv

import (
	"strings"

	"github.com/jmonzo/atril/internal/errors"
)

// DecodeTable splits a raw CSV payload into rows of raw field strings.
//
// The dialect is the minimal one the solver's exporter emits: fields are
// separated by commas, and a field may itself be a quoted JSON object or
// array containing commas. A quoted span starts at a field-leading `"` and
// ends at the matching unescaped `"`; the sequence `""` inside a quoted
// span is an escaped literal quote, not a terminator.
//
// The exporter is a trusted internal producer, so the decoder is lenient:
// an unterminated quote span folds the remainder of the line into the open
// field rather than failing. Only an entirely empty payload is an error.
func DecodeTable(text string) ([][]string, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, errors.NewEmptyPayload("csv")
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, splitFields(line))
	}
	return rows, nil
}

// splitLines splits text on newlines, dropping empty lines and trimming
// surrounding whitespace (the exporter terminates files with a newline).
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// splitFields tokenizes one line into fields on commas outside quoted spans.
func splitFields(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				// Escaped quote inside a quoted span: keep both characters,
				// the structure decoder unescapes them later.
				field.WriteByte('"')
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
			field.WriteByte('"')
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	// A still-open quote span at end of line degrades gracefully: the tail
	// is already part of the open field.
	fields = append(fields, field.String())
	return fields
}

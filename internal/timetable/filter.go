package timetable

import (
	"slices"
	"sort"

	"github.com/jmonzo/atril/internal/errors"
)

// Dimension selects which axis a schedule is filtered on.
type Dimension string

const (
	DimensionRoom    Dimension = "room"
	DimensionTeacher Dimension = "teacher"
	DimensionStudent Dimension = "student"
)

// ParseDimension validates a raw dimension string.
func ParseDimension(raw string) (Dimension, error) {
	switch Dimension(raw) {
	case DimensionRoom, DimensionTeacher, DimensionStudent:
		return Dimension(raw), nil
	default:
		return "", errors.NewInvalidRequest("dimension must be one of: room, teacher, student")
	}
}

// Project returns the sessions relevant to one selection along a
// dimension: equality on the session's own room or teacher id, roster
// membership for a student. An empty selection yields an empty projection,
// never "all sessions" — choosing a sensible default is the caller's job.
func Project(sessions []Session, dim Dimension, selected string) []Session {
	out := make([]Session, 0, len(sessions))
	if selected == "" {
		return out
	}

	for _, s := range sessions {
		switch dim {
		case DimensionRoom:
			if s.Room == selected {
				out = append(out, s)
			}
		case DimensionTeacher:
			if s.Teacher == selected {
				out = append(out, s)
			}
		case DimensionStudent:
			if slices.Contains(s.Students, selected) {
				out = append(out, s)
			}
		}
	}
	return out
}

// Options returns the distinct selectable values observed along a
// dimension, sorted numerically where possible (ids are numeric strings).
func Options(sessions []Session, dim Dimension) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)

	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}

	for _, s := range sessions {
		switch dim {
		case DimensionRoom:
			add(s.Room)
		case DimensionTeacher:
			add(s.Teacher)
		case DimensionStudent:
			for _, st := range s.Students {
				add(st)
			}
		}
	}

	sort.Slice(values, func(i, j int) bool {
		return lessNumericAware(values[i], values[j])
	})
	return values
}

// lessNumericAware orders numeric ids by value and falls back to
// lexicographic order for non-numeric values (numeric sorts first).
func lessNumericAware(a, b string) bool {
	ai, aok := atoi(a)
	bi, bok := atoi(b)
	switch {
	case aok && bok:
		return ai < bi
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

func atoi(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

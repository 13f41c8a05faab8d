package timetable

// Session is one scheduled class: all solution rows sharing a start slot,
// end slot, room and teacher, with the roster of enrolled students in row
// order. Sessions are rebuilt wholesale from each fresh solution load.
type Session struct {
	Class     ClassRef `json:"class"`
	StartSlot string   `json:"start_slot"`
	EndSlot   string   `json:"end_slot"`
	Room      string   `json:"room"`
	Teacher   string   `json:"teacher"`
	Students  []string `json:"students"`
}

// groupKey identifies a session. Rows with equal keys are one session.
type groupKey struct {
	start, end, room, teacher string
}

// Aggregate groups flat per-student rows into sessions. Sessions come out
// in first-seen order of their grouping key; a repeated key only appends
// its student to the existing roster. A session always has at least one
// student because it is only created in response to a row carrying one.
func Aggregate(rows []Row) []Session {
	index := make(map[groupKey]int, len(rows))
	sessions := make([]Session, 0, len(rows))

	for _, row := range rows {
		key := groupKey{row.StartSlot, row.EndSlot, row.Room, row.Teacher}
		if i, ok := index[key]; ok {
			sessions[i].Students = append(sessions[i].Students, row.Student)
			continue
		}
		index[key] = len(sessions)
		sessions = append(sessions, Session{
			Class:     row.Class,
			StartSlot: row.StartSlot,
			EndSlot:   row.EndSlot,
			Room:      row.Room,
			Teacher:   row.Teacher,
			Students:  []string{row.Student},
		})
	}
	return sessions
}

// Start returns the session's start slot (-1 when unparseable).
func (s Session) Start() Slot { return parseSlot(s.StartSlot) }

// End returns the session's end slot (-1 when unparseable).
func (s Session) End() Slot { return parseSlot(s.EndSlot) }

package entity

import (
	"sort"
	"time"
)

// Summary holds aggregate counts over a list of goals.
type Summary struct {
	Total      int
	Completed  int
	InProgress int
	Overdue    int
	Critical   int
}

// Summarize counts goals by status, priority and overdue state.
func Summarize(goals []Goal, now time.Time) Summary {
	s := Summary{Total: len(goals)}
	for i := range goals {
		g := &goals[i]
		switch g.Status {
		case StatusCompleted:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		}
		if g.IsOverdue(now) {
			s.Overdue++
		}
		if g.Priority == PriorityCritical {
			s.Critical++
		}
	}
	return s
}

// MostRecent returns up to n goals ordered by creation time, newest first.
// The input slice is left untouched.
func MostRecent(goals []Goal, n int) []Goal {
	out := make([]Goal, len(goals))
	copy(out, goals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

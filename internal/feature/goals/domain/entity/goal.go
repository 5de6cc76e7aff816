// Package entity defines the domain models for the goals feature.
package entity

import "time"

// Owner is the subset of the owning user embedded in every goal.
type Owner struct {
	ID    string
	Name  string
	Email string
}

// Goal represents a trackable objective assigned to exactly one user.
type Goal struct {
	ID          string
	Title       string
	Description *string    // nil when no description was given
	Status      Status
	Priority    Priority
	DueDate     *time.Time // nil when the goal has no due date
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      string
	Owner       Owner
}

// IsOverdue reports whether the goal has a due date strictly before now
// and is not completed. It is derived at read time and never stored.
func (g *Goal) IsOverdue(now time.Time) bool {
	if g.DueDate == nil {
		return false
	}
	return g.DueDate.Before(now) && g.Status != StatusCompleted
}

// Filter narrows a goal listing. Empty fields are ignored; all set fields
// must match.
type Filter struct {
	Status   string
	Priority string
	UserID   string
	// Search matches case-insensitively against title or description.
	Search string
}

package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus is returned when a value is not one of the goal statuses.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned when a value is not one of the goal priorities.
	ErrInvalidPriority = errors.New("invalid priority")
)

// Status is the progress state of a goal.
// Any status may be set from any other; there is no transition graph.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled}

// ParseStatus converts a wire value into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w %q: must be one of NOT_STARTED, IN_PROGRESS, COMPLETED, CANCELLED", ErrInvalidStatus, v)
	}
	return s, nil
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label returns the human readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Color returns the badge classes used when rendering the status.
func (s Status) Color() string {
	switch s {
	case StatusNotStarted:
		return "bg-gray-100 text-gray-800"
	case StatusInProgress:
		return "bg-blue-100 text-blue-800"
	case StatusCompleted:
		return "bg-green-100 text-green-800"
	case StatusCancelled:
		return "bg-red-100 text-red-800"
	}
	return ""
}

// Priority ranks goals for display ordering. It carries no numeric weight
// beyond its rank.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ParsePriority converts a wire value into a Priority.
func ParsePriority(v string) (Priority, error) {
	p := Priority(v)
	if !p.Valid() {
		return "", fmt.Errorf("%w %q: must be one of LOW, MEDIUM, HIGH, CRITICAL", ErrInvalidPriority, v)
	}
	return p, nil
}

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Rank orders priorities: LOW=1 up to CRITICAL=4. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	}
	return 0
}

// Label returns the human readable name of the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	}
	return string(p)
}

// Color returns the badge classes used when rendering the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "bg-gray-100 text-gray-800"
	case PriorityMedium:
		return "bg-yellow-100 text-yellow-800"
	case PriorityHigh:
		return "bg-orange-100 text-orange-800"
	case PriorityCritical:
		return "bg-red-100 text-red-800"
	}
	return ""
}

// Package entity defines the domain models for the users feature.
package entity

import "time"

// Role is the organisational role of a team member.
type Role string

const (
	RoleEmployee  Role = "EMPLOYEE"
	RoleManager   Role = "MANAGER"
	RoleHRManager Role = "HR_MANAGER"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHRManager, RoleAdmin:
		return true
	}
	return false
}

// User is a team member who can own goals.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

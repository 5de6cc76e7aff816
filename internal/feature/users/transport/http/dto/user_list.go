// Package dto defines data transfer objects for the users HTTP API.
package dto

// UserItem represents a team member in the API response.
type UserItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

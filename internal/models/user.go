package models

import "time"

// UserRole enumerates roles the academy API reports for a signed-in user.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleFaculty UserRole = "FACULTY"
	RoleStaff   UserRole = "STAFF"
)

// Valid returns true when the role is a supported value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStaff:
		return true
	default:
		return false
	}
}

// User mirrors the user object returned by the academy API.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      UserRole   `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Pagination mirrors the list metadata shared by upstream collections.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

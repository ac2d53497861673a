package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR admin - manages calendar, overrides, approvals
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID              string
	CompanyID       string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user can manage company attendance data
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

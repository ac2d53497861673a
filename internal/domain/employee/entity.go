package employee

import "time"

type Employee struct {
	ID             string
	CompanyID      string
	UserID         *string
	FullName       string
	Email          string
	Position       *string
	SaturdayPolicy string // rotating weekly-off rule, sanitized at the resolver boundary
	JoinedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

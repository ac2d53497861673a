package leave

import "time"

// Request statuses. The literals match what the resolution engine expects.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// LeaveRequest is an employee's request for one or more specific days off.
// Days are stored as an explicit date list rather than a range so the
// resolver can test membership directly.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	CompanyID  string
	LeaveType  string // "Half Day - ..." types mark half-day leave
	LeaveDates []time.Time
	Status     string
	Reason     *string
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}

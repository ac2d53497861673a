package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id, companyID string) (LeaveRequest, error)
	// GetApprovedForDate returns the approved request covering the date, if any.
	GetApprovedForDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID, companyID string) ([]LeaveRequest, error)
	ListByCompany(ctx context.Context, companyID, status string) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id, companyID, status string, approvedBy *string) error
}

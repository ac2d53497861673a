package leave

import "context"

// LeaveService defines business logic for leave requests
type LeaveService interface {
	// Submit creates a pending leave request for the authenticated employee
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)

	// GetMyLeaveRequests lists requests of the authenticated employee
	GetMyLeaveRequests(ctx context.Context) ([]LeaveRequestResponse, error)

	// ListLeaveRequests lists company requests, optionally by status (admin/manager)
	ListLeaveRequests(ctx context.Context, status string) ([]LeaveRequestResponse, error)

	// Approve marks a pending request approved
	Approve(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)

	// Reject marks a pending request rejected with a reason
	Reject(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
}

package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveServiceImpl struct {
	leaveRepo leave.LeaveRequestRepository
}

func NewLeaveService(leaveRepo leave.LeaveRequestRepository) leave.LeaveService {
	return &LeaveServiceImpl{leaveRepo: leaveRepo}
}

func claimsFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	employeeID, _ = claims["employee_id"].(string)
	return companyID, employeeID, nil
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if employeeID == "" {
		return leave.LeaveRequestResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	dates := make([]time.Time, len(req.LeaveDates))
	for i, d := range req.LeaveDates {
		parsed, err := civildate.Parse(d)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		dates[i] = parsed
	}

	if err := l.checkOverlap(ctx, employeeID, companyID, dates); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := l.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		LeaveType:  req.LeaveType,
		LeaveDates: dates,
		Status:     leave.StatusPending,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return mapLeaveToResponse(created), nil
}

// checkOverlap rejects a submission when a pending or approved request
// already covers one of the dates. Rejected requests do not block.
func (l *LeaveServiceImpl) checkOverlap(ctx context.Context, employeeID, companyID string, dates []time.Time) error {
	existing, err := l.leaveRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to list leave requests: %w", err)
	}

	covered := make(map[string]bool)
	for _, request := range existing {
		if request.Status == leave.StatusRejected {
			continue
		}
		for _, d := range request.LeaveDates {
			covered[civildate.FromTime(d)] = true
		}
	}
	for _, d := range dates {
		if covered[civildate.FromTime(d)] {
			return leave.ErrOverlappingLeaveRequest
		}
	}
	return nil
}

// GetMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyLeaveRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == "" {
		return nil, fmt.Errorf("employee_id claim is missing or invalid")
	}

	requests, err := l.leaveRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return mapLeavesToResponses(requests), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, status string) ([]leave.LeaveRequestResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := l.leaveRepo.ListByCompany(ctx, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return mapLeavesToResponses(requests), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return l.review(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return l.review(ctx, req, leave.StatusRejected)
}

func (l *LeaveServiceImpl) review(ctx context.Context, req leave.ReviewLeaveRequest, status string) (leave.LeaveRequestResponse, error) {
	companyID, reviewerID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.leaveRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	var approvedBy *string
	if reviewerID != "" {
		approvedBy = &reviewerID
	}
	if err := l.leaveRepo.UpdateStatus(ctx, req.ID, companyID, status, approvedBy); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request.Status = status
	request.ApprovedBy = approvedBy
	if req.Reason != nil {
		request.Reason = req.Reason
	}
	return mapLeaveToResponse(request), nil
}

func mapLeaveToResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	dates := make([]string, len(request.LeaveDates))
	for i, d := range request.LeaveDates {
		dates[i] = civildate.FromTime(d)
	}
	return leave.LeaveRequestResponse{
		ID:           request.ID,
		EmployeeID:   request.EmployeeID,
		EmployeeName: request.EmployeeName,
		LeaveType:    request.LeaveType,
		LeaveDates:   dates,
		Status:       request.Status,
		Reason:       request.Reason,
		ApprovedBy:   request.ApprovedBy,
		CreatedAt:    request.CreatedAt.Format(time.RFC3339),
	}
}

func mapLeavesToResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, len(requests))
	for i, request := range requests {
		responses[i] = mapLeaveToResponse(request)
	}
	return responses
}

package leave

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{
		"company_id":  "company-1",
		"employee_id": employeeID,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeLeaveRepo struct {
	requests []leave.LeaveRequest
	nextID   int
}

func (r *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.nextID++
	req.ID = "leave-" + strconv.Itoa(r.nextID)
	req.CreatedAt = time.Now()
	r.requests = append(r.requests, req)
	return req, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id, _ string) (leave.LeaveRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (r *fakeLeaveRepo) GetApprovedForDate(_ context.Context, _ string, _ time.Time, _ string) (*leave.LeaveRequest, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID, _ string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListByCompany(_ context.Context, _, status string) ([]leave.LeaveRequest, error) {
	if status == "" {
		return r.requests, nil
	}
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) UpdateStatus(_ context.Context, id, _, status string, approvedBy *string) error {
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i].Status = status
			r.requests[i].ApprovedBy = approvedBy
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(repo)
	ctx := authedContext(t, "employee-1")

	resp, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType:  "Casual Leave",
		LeaveDates: []string{"2025-04-10", "2025-04-11"},
	})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, []string{"2025-04-10", "2025-04-11"}, resp.LeaveDates)
	assert.Equal(t, "employee-1", resp.EmployeeID)
}

func TestSubmitRejectsOverlap(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(repo)
	ctx := authedContext(t, "employee-1")

	_, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType:  "Casual Leave",
		LeaveDates: []string{"2025-04-10"},
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType:  "Sick Leave",
		LeaveDates: []string{"2025-04-10"},
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeaveRequest)
}

func TestSubmitAllowsResubmitAfterRejection(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(repo)
	ctx := authedContext(t, "employee-1")

	first, err := svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType:  "Casual Leave",
		LeaveDates: []string{"2025-04-10"},
	})
	require.NoError(t, err)

	_, err = svc.Reject(authedContext(t, "admin-1"), leave.ReviewLeaveRequest{ID: first.ID})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveType:  "Sick Leave",
		LeaveDates: []string{"2025-04-10"},
	})
	assert.NoError(t, err)
}

func TestSubmitValidatesDates(t *testing.T) {
	svc := NewLeaveService(&fakeLeaveRepo{})

	_, err := svc.Submit(authedContext(t, "employee-1"), leave.SubmitLeaveRequest{
		LeaveType:  "Casual Leave",
		LeaveDates: []string{"10-04-2025"},
	})
	assert.Error(t, err)
}

func TestApproveSetsApprover(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(repo)

	submitted, err := svc.Submit(authedContext(t, "employee-1"), leave.SubmitLeaveRequest{
		LeaveType:  "Casual Leave",
		LeaveDates: []string{"2025-04-10"},
	})
	require.NoError(t, err)

	approved, err := svc.Approve(authedContext(t, "admin-1"), leave.ReviewLeaveRequest{ID: submitted.ID})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "admin-1", *approved.ApprovedBy)
}

func TestReviewRejectsAlreadyProcessed(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(repo)

	submitted, err := svc.Submit(authedContext(t, "employee-1"), leave.SubmitLeaveRequest{
		LeaveType:  "Casual Leave",
		LeaveDates: []string{"2025-04-10"},
	})
	require.NoError(t, err)

	_, err = svc.Approve(authedContext(t, "admin-1"), leave.ReviewLeaveRequest{ID: submitted.ID})
	require.NoError(t, err)

	_, err = svc.Reject(authedContext(t, "admin-1"), leave.ReviewLeaveRequest{ID: submitted.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestListLeaveRequestsFiltersByStatus(t *testing.T) {
	repo := &fakeLeaveRepo{}
	svc := NewLeaveService(repo)

	first, err := svc.Submit(authedContext(t, "employee-1"), leave.SubmitLeaveRequest{
		LeaveType:  "Casual Leave",
		LeaveDates: []string{"2025-04-10"},
	})
	require.NoError(t, err)
	_, err = svc.Submit(authedContext(t, "employee-2"), leave.SubmitLeaveRequest{
		LeaveType:  "Sick Leave",
		LeaveDates: []string{"2025-04-11"},
	})
	require.NoError(t, err)

	_, err = svc.Approve(authedContext(t, "admin-1"), leave.ReviewLeaveRequest{ID: first.ID})
	require.NoError(t, err)

	pending, err := svc.ListLeaveRequests(authedContext(t, "admin-1"), leave.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "employee-2", pending[0].EmployeeID)
}

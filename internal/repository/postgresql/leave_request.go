package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, employee_id, company_id, leave_type, leave_dates, status,
	reason, approved_by, approved_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveType, &lr.LeaveDates, &lr.Status,
		&lr.Reason, &lr.ApprovedBy, &lr.ApprovedAt, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	request.ID = uuid.NewString()
	query := `
		INSERT INTO leave_requests (id, employee_id, company_id, leave_type, leave_dates, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.CompanyID,
		request.LeaveType, request.LeaveDates, request.Status, request.Reason,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1 AND company_id = $2`
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// GetApprovedForDate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetApprovedForDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND company_id = $2
		  AND status = $3
		  AND $4::date = ANY(leave_dates)
		ORDER BY created_at DESC
		LIMIT 1
	`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, employeeID, companyID, leave.StatusApproved, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approved leave for date: %w", err)
	}
	return &lr, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID, companyID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ListByCompany implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByCompany(ctx context.Context, companyID, status string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.company_id, lr.leave_type, lr.leave_dates, lr.status,
		       lr.reason, lr.approved_by, lr.approved_at, lr.created_at, lr.updated_at,
		       e.full_name AS employee_name
		FROM leave_requests lr
		LEFT JOIN employees e ON e.id = lr.employee_id
		WHERE lr.company_id = $1
		  AND ($2 = '' OR lr.status = $2)
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list company leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveType, &lr.LeaveDates, &lr.Status,
			&lr.Reason, &lr.ApprovedBy, &lr.ApprovedAt, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id, companyID, status string, approvedBy *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND company_id = $4
	`

	tag, err := q.Exec(ctx, query, status, approvedBy, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveType, &lr.LeaveDates, &lr.Status,
			&lr.Reason, &lr.ApprovedBy, &lr.ApprovedAt, &lr.CreatedAt, &lr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

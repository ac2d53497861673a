package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceLogRepository struct {
	db *database.DB
}

func NewAttendanceLogRepository(db *database.DB) attendance.AttendanceLogRepository {
	return &attendanceLogRepository{db: db}
}

const attendanceLogColumns = `
	id, employee_id, company_id, date, sessions, breaks,
	status, is_half_day, half_day_reason, half_day_reason_code,
	late_minutes, total_working_hours, auto_logout_reason,
	overridden_by_admin, override_reason, created_at, updated_at
`

func scanAttendanceLog(row pgx.Row) (attendance.AttendanceLog, error) {
	var log attendance.AttendanceLog
	err := row.Scan(
		&log.ID, &log.EmployeeID, &log.CompanyID, &log.Date, &log.Sessions, &log.Breaks,
		&log.Status, &log.IsHalfDay, &log.HalfDayReason, &log.HalfDayReasonCode,
		&log.LateMinutes, &log.TotalWorkingHours, &log.AutoLogoutReason,
		&log.OverriddenByAdmin, &log.OverrideReason, &log.CreatedAt, &log.UpdatedAt,
	)
	return log, err
}

// Create implements attendance.AttendanceLogRepository.
func (r *attendanceLogRepository) Create(ctx context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	log.ID = uuid.NewString()
	query := `
		INSERT INTO attendance_logs (
			id, employee_id, company_id, date, sessions, breaks,
			status, is_half_day, half_day_reason, half_day_reason_code,
			late_minutes, total_working_hours, auto_logout_reason,
			overridden_by_admin, override_reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.ID, log.EmployeeID, log.CompanyID, log.Date, log.Sessions, log.Breaks,
		log.Status, log.IsHalfDay, log.HalfDayReason, log.HalfDayReasonCode,
		log.LateMinutes, log.TotalWorkingHours, log.AutoLogoutReason,
		log.OverriddenByAdmin, log.OverrideReason,
	).Scan(&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return attendance.AttendanceLog{}, fmt.Errorf("failed to create attendance log: %w", err)
	}

	return log, nil
}

// GetByID implements attendance.AttendanceLogRepository.
func (r *attendanceLogRepository) GetByID(ctx context.Context, id, companyID string) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceLogColumns + ` FROM attendance_logs WHERE id = $1 AND company_id = $2`
	log, err := scanAttendanceLog(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, attendance.ErrLogNotFound
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to get attendance log: %w", err)
	}
	return log, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceLogRepository.
func (r *attendanceLogRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceLogColumns + `
		FROM attendance_logs
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
		LIMIT 1
	`

	log, err := scanAttendanceLog(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no log for this day
		}
		return nil, fmt.Errorf("failed to get attendance log by date: %w", err)
	}
	return &log, nil
}

// ListByEmployeeRange implements attendance.AttendanceLogRepository.
func (r *attendanceLogRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceLogColumns + `
		FROM attendance_logs
		WHERE employee_id = $1 AND company_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		log, err := scanAttendanceLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// ListWithOpenSessionsBefore implements attendance.AttendanceLogRepository.
func (r *attendanceLogRepository) ListWithOpenSessionsBefore(ctx context.Context, date time.Time) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceLogColumns + `
		FROM attendance_logs
		WHERE date < $1 AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(sessions) AS s
			WHERE s->>'end' IS NULL
		)
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		log, err := scanAttendanceLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// Update implements attendance.AttendanceLogRepository.
func (r *attendanceLogRepository) Update(ctx context.Context, log attendance.AttendanceLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_logs
		SET sessions = $1, breaks = $2, status = $3, is_half_day = $4,
		    half_day_reason = $5, half_day_reason_code = $6,
		    late_minutes = $7, total_working_hours = $8, auto_logout_reason = $9,
		    overridden_by_admin = $10, override_reason = $11, updated_at = NOW()
		WHERE id = $12 AND company_id = $13
	`

	tag, err := q.Exec(ctx, query,
		log.Sessions, log.Breaks, log.Status, log.IsHalfDay,
		log.HalfDayReason, log.HalfDayReasonCode,
		log.LateMinutes, log.TotalWorkingHours, log.AutoLogoutReason,
		log.OverriddenByAdmin, log.OverrideReason,
		log.ID, log.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}
	return nil
}

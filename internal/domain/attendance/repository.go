package attendance

import (
	"context"
	"time"
)

type AttendanceLogRepository interface {
	Create(ctx context.Context, log AttendanceLog) (AttendanceLog, error)
	GetByID(ctx context.Context, id, companyID string) (AttendanceLog, error)
	// GetByEmployeeAndDate returns nil when no log exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*AttendanceLog, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]AttendanceLog, error)
	// ListWithOpenSessionsBefore returns logs from days before date that
	// still have a session awaiting clock-out, across all companies.
	ListWithOpenSessionsBefore(ctx context.Context, date time.Time) ([]AttendanceLog, error)
	Update(ctx context.Context, log AttendanceLog) error
}

package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens a session for the authenticated employee
	ClockIn(ctx context.Context) (LogResponse, error)

	// ClockOut closes the open session and recomputes working hours
	ClockOut(ctx context.Context) (LogResponse, error)

	// StartBreak opens a break inside the current session
	StartBreak(ctx context.Context) (LogResponse, error)

	// EndBreak closes the open break
	EndBreak(ctx context.Context) (LogResponse, error)

	// GetDailyStatus resolves the canonical status of one day for the
	// authenticated employee
	GetDailyStatus(ctx context.Context, req DailyStatusRequest) (resolution.ResolvedStatus, error)

	// GetRangeSummary resolves every day in the period and aggregates counts
	GetRangeSummary(ctx context.Context, req RangeSummaryRequest) (RangeSummaryResponse, error)

	// OverrideLog creates or updates a log with admin-authoritative fields
	OverrideLog(ctx context.Context, req OverrideLogRequest) (LogResponse, error)
}

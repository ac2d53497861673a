package attendance

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
)

// toResolutionLog projects a stored log onto the resolver's input shape.
// Returns nil for a missing log so the resolver takes its absent branch.
func toResolutionLog(log *attendance.AttendanceLog) *resolution.AttendanceLog {
	if log == nil {
		return nil
	}
	sessions := make([]resolution.Session, len(log.Sessions))
	for i, s := range log.Sessions {
		sessions[i] = resolution.Session{Start: s.Start, End: s.End}
	}
	breaks := make([]resolution.Break, len(log.Breaks))
	for i, b := range log.Breaks {
		breaks[i] = resolution.Break{Start: b.Start, End: b.End}
	}
	return &resolution.AttendanceLog{
		Sessions:          sessions,
		Breaks:            breaks,
		Status:            log.Status,
		IsHalfDay:         log.IsHalfDay,
		HalfDayReason:     log.HalfDayReason,
		HalfDayReasonCode: log.HalfDayReasonCode,
		LateMinutes:       log.LateMinutes,
		TotalWorkingHours: log.TotalWorkingHours,
		AutoLogoutReason:  log.AutoLogoutReason,
		OverriddenByAdmin: log.OverriddenByAdmin,
		OverrideReason:    log.OverrideReason,
	}
}

func toResolutionHolidays(holidays []holiday.Holiday) []resolution.Holiday {
	out := make([]resolution.Holiday, len(holidays))
	for i, h := range holidays {
		out[i] = resolution.Holiday{
			Date:        civildate.FromTime(h.Date),
			Name:        h.Name,
			IsTentative: h.IsTentative,
		}
	}
	return out
}

func toResolutionLeave(lr *leave.LeaveRequest) *resolution.LeaveRequest {
	if lr == nil {
		return nil
	}
	dates := make([]string, len(lr.LeaveDates))
	for i, d := range lr.LeaveDates {
		dates[i] = civildate.FromTime(d)
	}
	reason := ""
	if lr.Reason != nil {
		reason = *lr.Reason
	}
	return &resolution.LeaveRequest{
		Status:     lr.Status,
		LeaveDates: dates,
		LeaveType:  lr.LeaveType,
		Reason:     reason,
	}
}

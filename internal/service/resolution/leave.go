package resolution

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
)

// matchesLeave reports whether the date belongs to an approved leave request.
// Malformed entries in the day list are skipped.
func matchesLeave(date string, lr *resolution.LeaveRequest) bool {
	if lr == nil || lr.Status != resolution.LeaveStatusApproved {
		return false
	}
	for _, d := range lr.LeaveDates {
		if d == "" {
			continue
		}
		normalized, err := civildate.Normalize(d)
		if err != nil {
			continue
		}
		if normalized == date {
			return true
		}
	}
	return false
}

// leaveRule: an approved leave outranks weekly-off and any log. The working
// day flag still reflects a weekly-off overlap, so payroll can tell a leave
// day burned on a Saturday off from one burned on a working day.
func leaveRule(e *engine, in ruleInput) *resolution.ResolvedStatus {
	if !matchesLeave(in.date, in.leave) {
		return nil
	}

	lr := in.leave
	halfDay := lr.IsHalfDayType()
	result := &resolution.ResolvedStatus{
		Date:         in.date,
		Status:       resolution.StatusLeave,
		IsLeave:      true,
		IsHalfDay:    halfDay,
		IsWorkingDay: !isWeeklyOff(in.date, in.policy),
		StatusReason: fmt.Sprintf("Approved leave (%s)", lr.LeaveType),
		Leave: &resolution.LeaveInfo{
			LeaveType: lr.LeaveType,
			Reason:    lr.Reason,
			IsHalfDay: halfDay,
		},
	}

	if halfDay {
		reason := lr.Reason
		if reason == "" {
			reason = fmt.Sprintf("Half-day leave (%s)", lr.LeaveType)
		}
		result.HalfDayReason = &reason
	}
	return result
}

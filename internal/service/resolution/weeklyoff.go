package resolution

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
)

// isWeeklyOff decides whether the canonical date is a non-working day under
// the policy. Sunday is unconditionally off. A Saturday is off when the
// policy says all Saturdays are, or when its ordinal within the month (1st,
// 2nd, ...) matches the rotating rule. The ordinal comes purely from the
// day of month, never from scanning the rest of the month.
func isWeeklyOff(date string, policy resolution.WeeklyOffPolicy) bool {
	weekday, err := civildate.Weekday(date)
	if err != nil {
		return false
	}
	if weekday == time.Sunday {
		return true
	}
	if weekday != time.Saturday {
		return false
	}

	switch policy {
	case resolution.PolicyAllSaturdaysOff:
		return true
	case resolution.PolicyFirstThirdOff:
		n, err := civildate.MonthdayOrdinal(date)
		return err == nil && (n == 1 || n == 3)
	case resolution.PolicySecondFourthOff:
		n, err := civildate.MonthdayOrdinal(date)
		return err == nil && (n == 2 || n == 4)
	}
	return false
}

// weeklyOffRule: weekly off wins over anything the log recorded.
func weeklyOffRule(e *engine, in ruleInput) *resolution.ResolvedStatus {
	if !isWeeklyOff(in.date, in.policy) {
		return nil
	}

	weekday, _ := civildate.Weekday(in.date)
	reason := "Weekly off (Sunday)"
	if weekday == time.Saturday {
		n, _ := civildate.MonthdayOrdinal(in.date)
		reason = fmt.Sprintf("Weekly off (Saturday %d of month)", n)
	}

	return &resolution.ResolvedStatus{
		Date:         in.date,
		Status:       resolution.StatusWeeklyOff,
		IsWeeklyOff:  true,
		IsWorkingDay: false,
		StatusReason: reason,
	}
}

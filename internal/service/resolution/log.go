package resolution

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
)

// minFullDayHours is the working-hour threshold below which a half-day is
// explained as insufficient hours.
const minFullDayHours = 8

// logOutcome is the interpreter's verdict on a usable attendance log.
type logOutcome struct {
	status            resolution.Status
	statusReason      string
	isHalfDay         bool
	halfDayReason     *string
	halfDayReasonCode *resolution.HalfDayReasonCode
}

func isHalfDayStatus(s *string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), "half")
}

// interpretLog classifies a log that carries sessions or a persisted status.
// It returns nil when the log has neither; the resolver then falls through
// to absent / trust-the-log handling.
func (e *engine) interpretLog(date string, log *resolution.AttendanceLog) *logOutcome {
	hasSessions := log.HasSessions()
	hasStatus := log.Status != nil && *log.Status != ""

	switch {
	case !hasSessions && hasStatus:
		// Admin-created or overridden record: the persisted status and
		// half-day fields are authoritative, nothing is recomputed.
		out := &logOutcome{
			status:       resolution.Status(*log.Status),
			statusReason: "Recorded status (no sessions)",
			isHalfDay:    log.IsHalfDay || isHalfDayStatus(log.Status),
		}
		if log.OverriddenByAdmin {
			out.statusReason = "Status set by admin override"
		}
		if out.isHalfDay {
			out.halfDayReason = log.HalfDayReason
			if log.HalfDayReasonCode != nil {
				code := resolution.HalfDayReasonCode(*log.HalfDayReasonCode)
				out.halfDayReasonCode = &code
			}
			e.ensureHalfDayReason(date, out)
		}
		return out

	case hasSessions && (log.IsHalfDay || isHalfDayStatus(log.Status)):
		out := &logOutcome{
			status:    resolution.StatusHalfDay,
			isHalfDay: true,
		}
		out.halfDayReason, out.halfDayReasonCode = e.deriveHalfDayReason(log)
		e.ensureHalfDayReason(date, out)
		out.statusReason = *out.halfDayReason
		return out

	case hasSessions && hasStatus:
		out := &logOutcome{
			status:       resolution.Status(*log.Status),
			statusReason: "Attendance logged",
		}
		if out.status == resolution.StatusLate && log.LateMinutes > 0 {
			out.statusReason = lateArrivalReason(log.LateMinutes)
		}
		return out

	case hasSessions:
		return &logOutcome{
			status:       resolution.StatusPresent,
			statusReason: "Attendance logged",
		}
	}

	return nil
}

func lateArrivalReason(minutes int) string {
	return fmt.Sprintf("Late arrival (%d minutes late)", minutes)
}

// deriveHalfDayReason walks the half-day reason fallback chain, first match
// wins: persisted text, late arrival, early checkout, insufficient hours,
// manual marking, then a generic label with no code.
func (e *engine) deriveHalfDayReason(log *resolution.AttendanceLog) (*string, *resolution.HalfDayReasonCode) {
	if log.HalfDayReason != nil && *log.HalfDayReason != "" {
		var code *resolution.HalfDayReasonCode
		if log.HalfDayReasonCode != nil && *log.HalfDayReasonCode != "" {
			c := resolution.HalfDayReasonCode(*log.HalfDayReasonCode)
			code = &c
		}
		return log.HalfDayReason, code
	}

	if log.LateMinutes > 0 {
		return reasonWithCode(lateArrivalReason(log.LateMinutes), resolution.ReasonLateLogin)
	}

	if log.AutoLogoutReason != nil && *log.AutoLogoutReason != "" {
		return reasonWithCode("Early checkout: "+*log.AutoLogoutReason, resolution.ReasonEarlyLogout)
	}

	if log.TotalWorkingHours > 0 && log.TotalWorkingHours < minFullDayHours {
		reason := fmt.Sprintf("Insufficient working hours (%g hours worked, minimum required: %d hours)",
			log.TotalWorkingHours, minFullDayHours)
		return reasonWithCode(reason, resolution.ReasonInsufficientHours)
	}

	if log.OverriddenByAdmin {
		reason := "Manual half-day marking"
		if log.OverrideReason != nil && *log.OverrideReason != "" {
			reason = *log.OverrideReason
		}
		return reasonWithCode(reason, resolution.ReasonManualAdminMarking)
	}

	generic := "Half-day marked"
	return &generic, nil
}

func reasonWithCode(reason string, code resolution.HalfDayReasonCode) (*string, *resolution.HalfDayReasonCode) {
	return &reason, &code
}

// ensureHalfDayReason enforces the half-day invariant: a half-day outcome
// must never leave without a reason, even when every derivation rule came up
// empty.
func (e *engine) ensureHalfDayReason(date string, out *logOutcome) {
	if !out.isHalfDay {
		return
	}
	if out.halfDayReason != nil && *out.halfDayReason != "" {
		return
	}
	synthesized := "Half-day marked (reason not specified)"
	out.halfDayReason = &synthesized
	out.halfDayReasonCode = nil
	e.emit(date, resolution.DiagNoHalfDayReason, "half-day record had no derivable reason")
}

// attendanceLogRule: lowest-precedence structured branch, reached only when
// no holiday, leave or weekly-off claimed the day.
func attendanceLogRule(e *engine, in ruleInput) *resolution.ResolvedStatus {
	if in.log == nil {
		return nil
	}
	out := e.interpretLog(in.date, in.log)
	if out == nil {
		return nil
	}

	return &resolution.ResolvedStatus{
		Date:              in.date,
		Status:            out.status,
		IsAbsent:          out.status == resolution.StatusAbsent,
		IsHalfDay:         out.isHalfDay,
		IsWorkingDay:      true,
		StatusReason:      out.statusReason,
		HalfDayReason:     out.halfDayReason,
		HalfDayReasonCode: out.halfDayReasonCode,
	}
}

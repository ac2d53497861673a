package resolution

import (
	"strings"
	"time"
)

// Status is the closed set of daily attendance outcomes. The values are the
// exact display literals the API serializes, so handlers never remap them.
type Status string

const (
	StatusHoliday   Status = "Holiday"
	StatusLeave     Status = "Leave"
	StatusWeeklyOff Status = "Weekly Off"
	StatusPresent   Status = "Present"
	StatusLate      Status = "Late"
	StatusHalfDay   Status = "Half-day"
	StatusAbsent    Status = "Absent"
)

// HalfDayReasonCode classifies how a half-day reason was derived.
type HalfDayReasonCode string

const (
	ReasonLateLogin          HalfDayReasonCode = "LATE_LOGIN"
	ReasonEarlyLogout        HalfDayReasonCode = "EARLY_LOGOUT"
	ReasonInsufficientHours  HalfDayReasonCode = "INSUFFICIENT_WORKING_HOURS"
	ReasonManualAdminMarking HalfDayReasonCode = "MANUAL_ADMIN"
)

// WeeklyOffPolicy is the per-employee rotating Saturday rule. Sunday is off
// regardless of policy.
type WeeklyOffPolicy string

const (
	PolicyAllSaturdaysWorking WeeklyOffPolicy = "All Saturdays Working"
	PolicyAllSaturdaysOff     WeeklyOffPolicy = "All Saturdays Off"
	PolicyFirstThirdOff       WeeklyOffPolicy = "Week 1 & 3 Off"
	PolicySecondFourthOff     WeeklyOffPolicy = "Week 2 & 4 Off"
)

// SanitizePolicy maps a raw policy string to a known policy. Unknown or empty
// values fall back to All Saturdays Working: a wrong default must err on the
// side of a working day, never a silent day off.
func SanitizePolicy(raw string) (WeeklyOffPolicy, bool) {
	switch WeeklyOffPolicy(raw) {
	case PolicyAllSaturdaysWorking, PolicyAllSaturdaysOff, PolicyFirstThirdOff, PolicySecondFourthOff:
		return WeeklyOffPolicy(raw), true
	}
	return PolicyAllSaturdaysWorking, false
}

// Holiday is one company-wide non-working day. Tentative holidays never
// participate in resolution.
type Holiday struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	IsTentative bool   `json:"is_tentative"`
}

// Leave request statuses as persisted upstream.
const (
	LeaveStatusPending  = "Pending"
	LeaveStatusApproved = "Approved"
	LeaveStatusRejected = "Rejected"
)

// LeaveRequest is the slice of an approved-or-not leave request the engine
// needs: its status, its explicit day list, and its type/reason text.
type LeaveRequest struct {
	Status     string
	LeaveDates []string
	LeaveType  string
	Reason     string
}

// IsHalfDayType reports whether the leave type marks a half-day leave. The
// match is a case-sensitive substring by upstream data convention.
func (lr LeaveRequest) IsHalfDayType() bool {
	return strings.Contains(lr.LeaveType, "Half Day") || strings.Contains(lr.LeaveType, "Half-day")
}

// Session is one clock-in/clock-out pair inside a day's log.
type Session struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Break is a pause between sessions.
type Break struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// AttendanceLog is one employee's raw attendance record for one day. It may
// exist with zero sessions (admin-created or overridden). It is the
// lowest-precedence resolution input.
type AttendanceLog struct {
	Sessions          []Session
	Breaks            []Break
	Status            *string // persisted attendance status, if any
	IsHalfDay         bool
	HalfDayReason     *string
	HalfDayReasonCode *string
	LateMinutes       int
	TotalWorkingHours float64
	AutoLogoutReason  *string
	OverriddenByAdmin bool
	OverrideReason    *string
}

// HasSessions reports whether at least one session was recorded.
func (l *AttendanceLog) HasSessions() bool {
	return l != nil && len(l.Sessions) > 0
}

// Input carries everything a single-day resolution needs. The engine never
// mutates it.
type Input struct {
	Date           string
	Log            *AttendanceLog
	Holidays       []Holiday
	LeaveRequest   *LeaveRequest
	SaturdayPolicy string
}

// LeaveInfo describes the matched leave on a Leave day.
type LeaveInfo struct {
	LeaveType string `json:"leave_type"`
	Reason    string `json:"reason,omitempty"`
	IsHalfDay bool   `json:"is_half_day"`
}

// ResolvedStatus is the engine's output: one canonical status plus explicit
// boolean flags, never inferred downstream from the status string alone.
// Treated as immutable once built.
type ResolvedStatus struct {
	Date              string             `json:"date"`
	Status            Status             `json:"status"`
	IsHoliday         bool               `json:"is_holiday"`
	IsLeave           bool               `json:"is_leave"`
	IsWeeklyOff       bool               `json:"is_weekly_off"`
	IsAbsent          bool               `json:"is_absent"`
	IsHalfDay         bool               `json:"is_half_day"`
	IsWorkingDay      bool               `json:"is_working_day"`
	StatusReason      string             `json:"status_reason"`
	HalfDayReason     *string            `json:"half_day_reason,omitempty"`
	HalfDayReasonCode *HalfDayReasonCode `json:"half_day_reason_code,omitempty"`
	Holiday           *Holiday           `json:"holiday,omitempty"`
	Leave             *LeaveInfo         `json:"leave,omitempty"`
}

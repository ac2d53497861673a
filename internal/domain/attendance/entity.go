package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Session is one clock-in/clock-out pair. End is nil while the session is
// open.
type Session struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Break is a pause inside a session.
type Break struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// SessionList is stored as a JSONB column.
type SessionList []Session

// Value implements driver.Valuer for database storage
func (s SessionList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(SessionList{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *SessionList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return errors.New("unsupported type for SessionList")
}

// BreakList is stored as a JSONB column.
type BreakList []Break

// Value implements driver.Valuer for database storage
func (b BreakList) Value() (driver.Value, error) {
	if b == nil {
		return json.Marshal(BreakList{})
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner for database retrieval
func (b *BreakList) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	}
	return errors.New("unsupported type for BreakList")
}

// AttendanceLog is one employee's raw attendance record for one civil day.
// A log can exist without sessions when an admin created or overrode it.
type AttendanceLog struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	Date              time.Time
	Sessions          SessionList
	Breaks            BreakList
	Status            *string
	IsHalfDay         bool
	HalfDayReason     *string
	HalfDayReasonCode *string
	LateMinutes       int
	TotalWorkingHours float64
	AutoLogoutReason  *string
	OverriddenByAdmin bool
	OverrideReason    *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OpenSession returns the session awaiting clock-out, if any.
func (l *AttendanceLog) OpenSession() *Session {
	for i := range l.Sessions {
		if l.Sessions[i].End == nil {
			return &l.Sessions[i]
		}
	}
	return nil
}

// OpenBreak returns the break awaiting resumption, if any.
func (l *AttendanceLog) OpenBreak() *Break {
	for i := range l.Breaks {
		if l.Breaks[i].End == nil {
			return &l.Breaks[i]
		}
	}
	return nil
}

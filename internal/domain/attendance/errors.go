package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn = errors.New("you already have an open session today")
	ErrNotClockedIn     = errors.New("you have not clocked in yet")
	ErrBreakInProgress  = errors.New("a break is already in progress")
	ErrNoBreakToEnd     = errors.New("no break is in progress")
	ErrLogNotFound      = errors.New("attendance log not found")
)

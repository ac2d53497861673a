package attendance

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type DailyStatusRequest struct {
	Date string `json:"date"`
}

func (r *DailyStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeSummaryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *RangeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OverrideLogRequest lets an admin correct or hand-create a day's log. The
// persisted fields it sets are authoritative for resolution.
type OverrideLogRequest struct {
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	Status            *string `json:"status"`
	IsHalfDay         *bool   `json:"is_half_day"`
	HalfDayReason     *string `json:"half_day_reason"`
	HalfDayReasonCode *string `json:"half_day_reason_code"`
	OverrideReason    *string `json:"override_reason"`
}

func (r *OverrideLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LogResponse struct {
	ID                string    `json:"id"`
	EmployeeID        string    `json:"employee_id"`
	Date              string    `json:"date"`
	Sessions          []Session `json:"sessions"`
	Breaks            []Break   `json:"breaks"`
	Status            *string   `json:"status,omitempty"`
	IsHalfDay         bool      `json:"is_half_day"`
	HalfDayReason     *string   `json:"half_day_reason,omitempty"`
	LateMinutes       int       `json:"late_minutes"`
	TotalWorkingHours float64   `json:"total_working_hours"`
	OverriddenByAdmin bool      `json:"overridden_by_admin"`
}

// RangeSummaryResponse is the per-day resolution over a period plus counts
// per status, consumed by reports and summary listings.
type RangeSummaryResponse struct {
	StartDate string                      `json:"start_date"`
	EndDate   string                      `json:"end_date"`
	Days      []resolution.ResolvedStatus `json:"days"`
	Counts    map[resolution.Status]int   `json:"counts"`
}

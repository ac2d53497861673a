package leave

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	LeaveType  string   `json:"leave_type"`
	LeaveDates []string `json:"leave_dates"`
	Reason     *string  `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	if len(r.LeaveDates) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_dates",
			Message: "at least one leave date is required",
		})
	}
	for _, d := range r.LeaveDates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_dates",
				Message: "leave dates must be in YYYY-MM-DD format",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewLeaveRequest struct {
	ID     string  `json:"-"`
	Reason *string `json:"reason"`
}

type LeaveRequestResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	LeaveType    string   `json:"leave_type"`
	LeaveDates   []string `json:"leave_dates"`
	Status       string   `json:"status"`
	Reason       *string  `json:"reason,omitempty"`
	ApprovedBy   *string  `json:"approved_by,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

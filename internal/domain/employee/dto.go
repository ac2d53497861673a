package employee

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Position       *string `json:"position"`
	SaturdayPolicy string  `json:"saturday_policy"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}
	if _, ok := resolution.SanitizePolicy(r.SaturdayPolicy); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "saturday_policy",
			Message: "saturday_policy must be a known weekly-off policy",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSaturdayPolicyRequest struct {
	ID             string `json:"-"`
	SaturdayPolicy string `json:"saturday_policy"`
}

func (r *UpdateSaturdayPolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := resolution.SanitizePolicy(r.SaturdayPolicy); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "saturday_policy",
			Message: "saturday_policy must be a known weekly-off policy",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Position       *string `json:"position,omitempty"`
	SaturdayPolicy string  `json:"saturday_policy"`
}

package overtime

import "github.com/yahya12213/SiteManagement-sub010/internal/pkg/validator"

type CreateOvertimeRequestRequest struct {
	EmployeeID     string  `json:"employee_id"`
	Date           string  `json:"date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Reason         *string `json:"reason,omitempty"`
}

func (r *CreateOvertimeRequestRequest) Validate() error {
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
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}
	if r.EstimatedHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "estimated_hours",
			Message: "estimated_hours must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

package attendance

import (
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/validator"
)

// DayStatusResult is the calculator's output for one employee-day.
type DayStatusResult struct {
	Status            DayStatus `json:"status"`
	ScheduledStart    *string   `json:"scheduled_start,omitempty"` // HH:MM
	ScheduledEnd      *string   `json:"scheduled_end,omitempty"`
	LateMinutes       int       `json:"late_minutes"`
	EarlyLeaveMinutes int       `json:"early_leave_minutes"`
	GrossMinutes      int       `json:"gross_minutes"`
	NetWorkedMinutes  int       `json:"net_worked_minutes"`
	OvertimeMinutes   int       `json:"overtime_minutes"`
	OvertimeRate      *string   `json:"overtime_rate,omitempty"`
	HoursToRecover    *float64  `json:"hours_to_recover,omitempty"`
	Anomaly           bool      `json:"anomaly"`
	Note              *string   `json:"note,omitempty"`
}

type ClockRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateCorrectionRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	RequestedIn  *string `json:"requested_in,omitempty"`
	RequestedOut *string `json:"requested_out,omitempty"`
	Reason       *string `json:"reason,omitempty"`
}

func (r *CreateCorrectionRequest) Validate() error {
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
	if r.RequestedIn == nil && r.RequestedOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_in",
			Message: "at least one of requested_in/requested_out is required",
		})
	}
	if r.RequestedIn != nil {
		if _, err := validator.NormalizeClockTime(*r.RequestedIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_in",
				Message: "requested_in must be HH:MM or HH:MM:SS",
			})
		}
	}
	if r.RequestedOut != nil {
		if _, err := validator.NormalizeClockTime(*r.RequestedOut); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_out",
				Message: "requested_out must be HH:MM or HH:MM:SS",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter narrows attendance listings.
type ListFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

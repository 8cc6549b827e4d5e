package response

import (
	"errors"
	"net/http"

	"github.com/yahya12213/SiteManagement-sub010/internal/domain/approval"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/employee"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/notification"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/schedule"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in for this date")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No clock-in recorded for this date")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out for this date")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)

	// Overtime domain errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")

	// Approval domain errors
	case errors.Is(err, approval.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, approval.ErrUnknownStatus):
		Conflict(w, "Request has an unknown status")
	case errors.Is(err, approval.ErrNotAnEmployee):
		Forbidden(w, "Acting user does not map to an employee")
	case errors.Is(err, approval.ErrNoApproverAtLevel):
		Forbidden(w, "No approver configured at this level")
	case errors.Is(err, approval.ErrNotCurrentApprover):
		Forbidden(w, "Not the expected approver for the current level")
	case errors.Is(err, approval.ErrNotPermitted):
		Forbidden(w, "Not permitted to cancel this request")
	case errors.Is(err, approval.ErrAlreadyProcessed):
		Conflict(w, "Request already processed")
	case errors.Is(err, approval.ErrNotApproved):
		Conflict(w, "Request is not in an approved state")
	case errors.Is(err, approval.ErrCommentRequired):
		BadRequest(w, "A comment is required to reject a request", nil)
	case errors.Is(err, approval.ErrReasonRequired):
		BadRequest(w, "A reason is required to cancel a request", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

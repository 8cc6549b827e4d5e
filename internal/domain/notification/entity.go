package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeApprovalRequired  NotificationType = "approval_required"
	TypeRequestApproved   NotificationType = "request_approved"
	TypeRequestRejected   NotificationType = "request_rejected"
	TypeRequestCancelled  NotificationType = "request_cancelled"
	TypeAttendanceAnomaly NotificationType = "attendance_anomaly"
	TypeCorrectionApplied NotificationType = "correction_applied"
)

// Notification is delivered to a profile (not an employee id) so managers
// without an employee record of their own can still receive them.
type Notification struct {
	ID                 string           `json:"id"`
	RecipientProfileID string           `json:"recipient_profile_id"`
	Type               NotificationType `json:"type"`
	Title              string           `json:"title"`
	Message            string           `json:"message"`
	IsRead             bool             `json:"is_read"`
	ReadAt             *time.Time       `json:"read_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

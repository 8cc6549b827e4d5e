package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetApprovedForDate returns the approved leave covering the date for
	// the employee, or nil when none exists.
	GetApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*ApprovedLeave, error)

	// UpdateStatusGuarded transitions status only when the stored value
	// still equals expected; returns false when the guard did not match.
	UpdateStatusGuarded(ctx context.Context, id, expected, next string) (bool, error)

	// SetBalanceDeducted flips the balance_deducted flag.
	SetBalanceDeducted(ctx context.Context, id string, deducted bool) error
}

type BalanceRepository interface {
	// Deduct subtracts days from the employee's balance for the leave type.
	Deduct(ctx context.Context, employeeID, leaveTypeID string, days float64) error

	// Restore adds days back after a cancellation.
	Restore(ctx context.Context, employeeID, leaveTypeID string, days float64) error

	GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (Balance, error)
}

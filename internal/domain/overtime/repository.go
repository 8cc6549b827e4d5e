package overtime

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// GetApprovedForDate returns the employee's approved request for the
	// date, or nil when there is none.
	GetApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*Request, error)

	// UpdateStatusGuarded transitions status only when the stored value
	// still equals expected; returns false when the guard did not match.
	UpdateStatusGuarded(ctx context.Context, id, expected, next string) (bool, error)
}

type PeriodRepository interface {
	// ListActiveForEmployee returns the active periods on the date whose
	// assignment set includes the employee.
	ListActiveForEmployee(ctx context.Context, employeeID string, date time.Time) ([]Period, error)
}

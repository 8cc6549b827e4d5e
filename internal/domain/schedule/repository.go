package schedule

import (
	"context"
	"time"
)

type WorkScheduleRepository interface {
	GetByID(ctx context.Context, id string) (WorkSchedule, error)

	// GetDefault returns the schedule flagged is_default, or nil when the
	// organization has none.
	GetDefault(ctx context.Context) (*WorkSchedule, error)

	List(ctx context.Context) ([]WorkSchedule, error)
}

type EmployeeScheduleAssignmentRepository interface {
	// GetCovering returns the assignment whose [start_date, end_date] range
	// contains the date; when ranges overlap the most recently started
	// assignment wins. Nil when no assignment covers the date.
	GetCovering(ctx context.Context, employeeID string, date time.Time) (*EmployeeScheduleAssignment, error)

	GetByEmployeeID(ctx context.Context, employeeID string) ([]EmployeeScheduleAssignment, error)
}

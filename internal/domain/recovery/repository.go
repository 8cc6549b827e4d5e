package recovery

import (
	"context"
	"time"
)

type DeclarationRepository interface {
	// FindForEmployee returns the active declaration on the date whose scope
	// covers the employee (department, segment, centre or organization-wide),
	// or nil when there is none.
	FindForEmployee(ctx context.Context, employeeID string, date time.Time) (*Declaration, error)
}

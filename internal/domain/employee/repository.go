package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByProfileID resolves "who is acting" from an authenticated profile.
	GetByProfileID(ctx context.Context, profileID string) (Employee, error)
}

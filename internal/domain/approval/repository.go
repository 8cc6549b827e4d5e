package approval

import "context"

type ChainRepository interface {
	// GetChain returns the employee's approvers ordered by rank,
	// rank 0 first. An empty chain is not an error.
	GetChain(ctx context.Context, employeeID string) (Chain, error)
}

type RecordRepository interface {
	Append(ctx context.Context, rec Record) (Record, error)
	ListByRequest(ctx context.Context, kind RequestKind, requestID string) ([]Record, error)
}

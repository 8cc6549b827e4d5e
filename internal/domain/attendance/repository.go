package attendance

import (
	"context"
	"time"
)

type DailyRecordRepository interface {
	// Upsert inserts the record or merges it into the existing row for the
	// same (employee, date). Clock timestamps follow COALESCE semantics:
	// incoming values win only when present. Notes are appended.
	Upsert(ctx context.Context, rec DailyRecord) (DailyRecord, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*DailyRecord, error)

	List(ctx context.Context, filter ListFilter) ([]DailyRecord, int64, error)
}

type CorrectionRequestRepository interface {
	Create(ctx context.Context, req CorrectionRequest) (CorrectionRequest, error)
	GetByID(ctx context.Context, id string) (CorrectionRequest, error)

	// UpdateStatusGuarded transitions status only when the stored value
	// still equals expected; returns false when the guard did not match.
	UpdateStatusGuarded(ctx context.Context, id, expected, next string) (bool, error)
}

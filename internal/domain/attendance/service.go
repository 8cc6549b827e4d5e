package attendance

import (
	"context"
	"time"
)

// AttendanceService is the day-status surface exposed to handlers.
type AttendanceService interface {
	// ResolveDayStatus computes the authoritative status and minute
	// quantities for the employee-day. When both clock values are nil the
	// stored daily record's timestamps are used.
	ResolveDayStatus(ctx context.Context, employeeID string, date time.Time, clockIn, clockOut *time.Time) (DayStatusResult, error)

	ClockIn(ctx context.Context, req ClockRequest) (DailyRecord, error)
	ClockOut(ctx context.Context, req ClockRequest) (DailyRecord, error)

	List(ctx context.Context, filter ListFilter) ([]DailyRecord, int64, error)

	CreateCorrection(ctx context.Context, req CreateCorrectionRequest) (CorrectionRequest, error)
}

// CorrectionApplier rewrites the daily record for a correction request
// that reached terminal approval.
type CorrectionApplier interface {
	ApplyCorrection(ctx context.Context, req CorrectionRequest) error
}

package holiday

import (
	"context"
	"time"
)

type PublicHolidayRepository interface {
	// GetByDate returns the holiday on the date, or nil when the date is
	// not a holiday.
	GetByDate(ctx context.Context, date time.Time) (*PublicHoliday, error)

	ListByRange(ctx context.Context, start, end time.Time) ([]PublicHoliday, error)
}

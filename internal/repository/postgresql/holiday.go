package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/holiday"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type publicHolidayRepositoryImpl struct {
	db *database.DB
}

func NewPublicHolidayRepository(db *database.DB) holiday.PublicHolidayRepository {
	return &publicHolidayRepositoryImpl{db: db}
}

// GetByDate implements holiday.PublicHolidayRepository.
func (h *publicHolidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, name, created_at
		FROM public_holidays
		WHERE date = $1
	`

	var ph holiday.PublicHoliday
	err := q.QueryRow(ctx, query, date).Scan(&ph.ID, &ph.Date, &ph.Name, &ph.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get public holiday: %w", err)
	}

	return &ph, nil
}

// ListByRange implements holiday.PublicHolidayRepository.
func (h *publicHolidayRepositoryImpl) ListByRange(ctx context.Context, start, end time.Time) ([]holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, name, created_at
		FROM public_holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.PublicHoliday
	for rows.Next() {
		var ph holiday.PublicHoliday
		if err := rows.Scan(&ph.ID, &ph.Date, &ph.Name, &ph.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, ph)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}

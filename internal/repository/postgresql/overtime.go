package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type overtimeRequestRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRequestRepository(db *database.DB) overtime.RequestRepository {
	return &overtimeRequestRepositoryImpl{db: db}
}

const overtimeRequestColumns = `
	id, employee_id, date, estimated_hours, reason, status, created_at, updated_at
`

func scanOvertimeRequest(row pgx.Row) (overtime.Request, error) {
	var req overtime.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.EstimatedHours,
		&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements overtime.RequestRepository.
func (o *overtimeRequestRepositoryImpl) Create(ctx context.Context, newRequest overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO overtime_requests (id, employee_id, date, estimated_hours, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + overtimeRequestColumns

	created, err := scanOvertimeRequest(q.QueryRow(ctx, query,
		newRequest.ID, newRequest.EmployeeID, newRequest.Date,
		newRequest.EstimatedHours, newRequest.Reason, newRequest.Status,
	))
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return created, nil
}

// GetByID implements overtime.RequestRepository.
func (o *overtimeRequestRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, o.db)

	query := `SELECT ` + overtimeRequestColumns + ` FROM overtime_requests WHERE id = $1`

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, fmt.Errorf("failed to get overtime request with id %s: %w", id, err)
	}

	return req, nil
}

// GetApprovedForDate implements overtime.RequestRepository.
func (o *overtimeRequestRepositoryImpl) GetApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*overtime.Request, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT ` + overtimeRequestColumns + `
		FROM overtime_requests
		WHERE employee_id = $1 AND date = $2 AND status = 'approved'
		LIMIT 1
	`

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approved overtime request for employee %s: %w", employeeID, err)
	}

	return &req, nil
}

// UpdateStatusGuarded implements overtime.RequestRepository.
func (o *overtimeRequestRepositoryImpl) UpdateStatusGuarded(ctx context.Context, id, expected, next string) (bool, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		UPDATE overtime_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, next, id, expected).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update overtime request status: %w", err)
	}

	return true, nil
}

type overtimePeriodRepositoryImpl struct {
	db *database.DB
}

func NewOvertimePeriodRepository(db *database.DB) overtime.PeriodRepository {
	return &overtimePeriodRepositoryImpl{db: db}
}

// ListActiveForEmployee implements overtime.PeriodRepository.
func (o *overtimePeriodRepositoryImpl) ListActiveForEmployee(ctx context.Context, employeeID string, date time.Time) ([]overtime.Period, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT p.id, p.date, p.start_time, p.end_time, p.rate_type, p.active, p.created_at, p.updated_at
		FROM overtime_periods p
		JOIN overtime_period_assignments pa ON pa.period_id = p.id
		WHERE pa.employee_id = $1 AND p.date = $2 AND p.active = true
		ORDER BY p.start_time
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime periods for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var periods []overtime.Period
	for rows.Next() {
		var p overtime.Period
		err := rows.Scan(
			&p.ID, &p.Date, &p.StartTime, &p.EndTime, &p.RateType,
			&p.Active, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

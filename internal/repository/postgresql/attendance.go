package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type dailyRecordRepositoryImpl struct {
	db *database.DB
}

func NewDailyRecordRepository(db *database.DB) attendance.DailyRecordRepository {
	return &dailyRecordRepositoryImpl{db: db}
}

const dailyRecordColumns = `
	id, employee_id, date, clock_in_at, clock_out_at, day_status, late_minutes,
	early_leave_minutes, gross_minutes, net_worked_minutes, overtime_minutes,
	source, notes, created_at, updated_at
`

func scanDailyRecord(row pgx.Row) (attendance.DailyRecord, error) {
	var rec attendance.DailyRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockInAt, &rec.ClockOutAt,
		&rec.DayStatus, &rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.GrossMinutes,
		&rec.NetWorkedMinutes, &rec.OvertimeMinutes, &rec.Source, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Upsert implements attendance.DailyRecordRepository. One row per
// (employee, date): on conflict the computed fields are replaced, clock
// timestamps keep the stored value unless the incoming one is set, and a
// new note is appended rather than overwriting the trail.
func (d *dailyRecordRepositoryImpl) Upsert(ctx context.Context, rec attendance.DailyRecord) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO attendance_daily_records (
			id, employee_id, date, clock_in_at, clock_out_at, day_status, late_minutes,
			early_leave_minutes, gross_minutes, net_worked_minutes, overtime_minutes, source, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			clock_in_at = COALESCE(EXCLUDED.clock_in_at, attendance_daily_records.clock_in_at),
			clock_out_at = COALESCE(EXCLUDED.clock_out_at, attendance_daily_records.clock_out_at),
			day_status = EXCLUDED.day_status,
			late_minutes = EXCLUDED.late_minutes,
			early_leave_minutes = EXCLUDED.early_leave_minutes,
			gross_minutes = EXCLUDED.gross_minutes,
			net_worked_minutes = EXCLUDED.net_worked_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			source = EXCLUDED.source,
			notes = CASE
				WHEN EXCLUDED.notes IS NULL THEN attendance_daily_records.notes
				WHEN attendance_daily_records.notes IS NULL THEN EXCLUDED.notes
				ELSE attendance_daily_records.notes || E'\n' || EXCLUDED.notes
			END,
			updated_at = NOW()
		RETURNING ` + dailyRecordColumns

	saved, err := scanDailyRecord(q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Date, rec.ClockInAt, rec.ClockOutAt,
		rec.DayStatus, rec.LateMinutes, rec.EarlyLeaveMinutes, rec.GrossMinutes,
		rec.NetWorkedMinutes, rec.OvertimeMinutes, rec.Source, rec.Notes,
	))
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert daily record: %w", err)
	}

	return saved, nil
}

// GetByEmployeeAndDate implements attendance.DailyRecordRepository.
func (d *dailyRecordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.DailyRecord, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT ` + dailyRecordColumns + ` FROM attendance_daily_records WHERE employee_id = $1 AND date = $2`

	rec, err := scanDailyRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily record for employee %s: %w", employeeID, err)
	}

	return &rec, nil
}

// List implements attendance.DailyRecordRepository.
func (d *dailyRecordRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.DailyRecord, int64, error) {
	q := GetQuerier(ctx, d.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.EmployeeID != nil {
		addCondition("r.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.StartDate != nil {
		addCondition("r.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("r.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil {
		addCondition("r.day_status = $%d", *filter.Status)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance_daily_records r %s`, where)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.employee_id, r.date, r.clock_in_at, r.clock_out_at, r.day_status,
			r.late_minutes, r.early_leave_minutes, r.gross_minutes, r.net_worked_minutes,
			r.overtime_minutes, r.source, r.notes, r.created_at, r.updated_at, e.full_name
		FROM attendance_daily_records r
		JOIN employees e ON e.id = r.employee_id
		%s
		ORDER BY r.date DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		var rec attendance.DailyRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockInAt, &rec.ClockOutAt,
			&rec.DayStatus, &rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.GrossMinutes,
			&rec.NetWorkedMinutes, &rec.OvertimeMinutes, &rec.Source, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

type correctionRequestRepositoryImpl struct {
	db *database.DB
}

func NewCorrectionRequestRepository(db *database.DB) attendance.CorrectionRequestRepository {
	return &correctionRequestRepositoryImpl{db: db}
}

const correctionRequestColumns = `
	id, employee_id, date, requested_in, requested_out, reason, status, created_at, updated_at
`

func scanCorrectionRequest(row pgx.Row) (attendance.CorrectionRequest, error) {
	var req attendance.CorrectionRequest
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.RequestedIn, &req.RequestedOut,
		&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements attendance.CorrectionRequestRepository.
func (c *correctionRequestRepositoryImpl) Create(ctx context.Context, newRequest attendance.CorrectionRequest) (attendance.CorrectionRequest, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO attendance_correction_requests (id, employee_id, date, requested_in, requested_out, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + correctionRequestColumns

	created, err := scanCorrectionRequest(q.QueryRow(ctx, query,
		newRequest.ID, newRequest.EmployeeID, newRequest.Date,
		newRequest.RequestedIn, newRequest.RequestedOut, newRequest.Reason, newRequest.Status,
	))
	if err != nil {
		return attendance.CorrectionRequest{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.CorrectionRequestRepository.
func (c *correctionRequestRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.CorrectionRequest, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + correctionRequestColumns + ` FROM attendance_correction_requests WHERE id = $1`

	req, err := scanCorrectionRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.CorrectionRequest{}, attendance.ErrCorrectionNotFound
		}
		return attendance.CorrectionRequest{}, fmt.Errorf("failed to get correction request with id %s: %w", id, err)
	}

	return req, nil
}

// UpdateStatusGuarded implements attendance.CorrectionRequestRepository.
func (c *correctionRequestRepositoryImpl) UpdateStatusGuarded(ctx context.Context, id, expected, next string) (bool, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE attendance_correction_requests
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
		return false, fmt.Errorf("failed to update correction request status: %w", err)
	}

	return true, nil
}

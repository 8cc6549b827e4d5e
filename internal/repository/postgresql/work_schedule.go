package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/schedule"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

const workScheduleColumns = `
	id, name, is_default, generic_start_time, generic_end_time, break_minutes,
	tolerance_late_minutes, tolerance_early_leave_minutes, working_days, created_at, updated_at
`

func scanWorkSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var ws schedule.WorkSchedule
	err := row.Scan(
		&ws.ID, &ws.Name, &ws.IsDefault, &ws.GenericStart, &ws.GenericEnd, &ws.BreakMinutes,
		&ws.ToleranceLateMinutes, &ws.ToleranceEarlyLeaveMinutes, &ws.WorkingDays,
		&ws.CreatedAt, &ws.UpdatedAt,
	)
	return ws, err
}

// GetByID implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules WHERE id = $1`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule with id %s: %w", id, err)
	}

	if err := w.loadDays(ctx, &ws); err != nil {
		return schedule.WorkSchedule{}, err
	}

	return ws, nil
}

// GetDefault implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetDefault(ctx context.Context) (*schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules WHERE is_default = true LIMIT 1`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default work schedule: %w", err)
	}

	if err := w.loadDays(ctx, &ws); err != nil {
		return nil, err
	}

	return &ws, nil
}

// List implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) List(ctx context.Context) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		ws, err := scanWorkSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, ws)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range schedules {
		if err := w.loadDays(ctx, &schedules[i]); err != nil {
			return nil, err
		}
	}

	return schedules, nil
}

func (w *workScheduleRepositoryImpl) loadDays(ctx context.Context, ws *schedule.WorkSchedule) error {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT weekday, start_time, end_time
		FROM work_schedule_days
		WHERE work_schedule_id = $1
		ORDER BY weekday
	`

	rows, err := q.Query(ctx, query, ws.ID)
	if err != nil {
		return fmt.Errorf("failed to load days for work schedule %s: %w", ws.ID, err)
	}
	defer rows.Close()

	var days []schedule.ScheduleDay
	for rows.Next() {
		var d schedule.ScheduleDay
		if err := rows.Scan(&d.Weekday, &d.StartTime, &d.EndTime); err != nil {
			return err
		}
		days = append(days, d)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	ws.Days = days
	return nil
}

type employeeScheduleAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeScheduleAssignmentRepository(db *database.DB) schedule.EmployeeScheduleAssignmentRepository {
	return &employeeScheduleAssignmentRepositoryImpl{db: db}
}

// GetCovering implements schedule.EmployeeScheduleAssignmentRepository.
func (a *employeeScheduleAssignmentRepositoryImpl) GetCovering(ctx context.Context, employeeID string, date time.Time) (*schedule.EmployeeScheduleAssignment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, work_schedule_id, start_date, end_date, created_at, updated_at
		FROM employee_schedule_assignments
		WHERE employee_id = $1
			AND start_date <= $2
			AND (end_date IS NULL OR end_date >= $2)
		ORDER BY start_date DESC
		LIMIT 1
	`

	var asg schedule.EmployeeScheduleAssignment
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&asg.ID, &asg.EmployeeID, &asg.WorkScheduleID,
		&asg.StartDate, &asg.EndDate, &asg.CreatedAt, &asg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule assignment for employee %s: %w", employeeID, err)
	}

	return &asg, nil
}

// GetByEmployeeID implements schedule.EmployeeScheduleAssignmentRepository.
func (a *employeeScheduleAssignmentRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]schedule.EmployeeScheduleAssignment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, work_schedule_id, start_date, end_date, created_at, updated_at
		FROM employee_schedule_assignments
		WHERE employee_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule assignments for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var assignments []schedule.EmployeeScheduleAssignment
	for rows.Next() {
		var asg schedule.EmployeeScheduleAssignment
		err := rows.Scan(
			&asg.ID, &asg.EmployeeID, &asg.WorkScheduleID,
			&asg.StartDate, &asg.EndDate, &asg.CreatedAt, &asg.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, asg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

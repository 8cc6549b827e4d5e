package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, code, name, category, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Code, &lt.Name, &lt.Category, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type with id %s: %w", id, err)
	}

	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, code, name, category, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Code, &lt.Name, &lt.Category, &lt.CreatedAt, &lt.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, newRequest leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type_id, start_date, end_date, days_requested, reason, status, balance_deducted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)
		RETURNING id, employee_id, leave_type_id, start_date, end_date, days_requested, reason, status, balance_deducted, created_at, updated_at
	`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		newRequest.ID, newRequest.EmployeeID, newRequest.LeaveTypeID,
		newRequest.StartDate, newRequest.EndDate, newRequest.DaysRequested,
		newRequest.Reason, newRequest.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.LeaveTypeID,
		&created.StartDate, &created.EndDate, &created.DaysRequested,
		&created.Reason, &created.Status, &created.BalanceDeducted,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
			lr.days_requested, lr.reason, lr.status, lr.balance_deducted, lr.created_at, lr.updated_at,
			lt.code, lt.name, e.full_name
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
		&req.DaysRequested, &req.Reason, &req.Status, &req.BalanceDeducted,
		&req.CreatedAt, &req.UpdatedAt,
		&req.LeaveTypeCode, &req.LeaveTypeName, &req.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request with id %s: %w", id, err)
	}

	return req, nil
}

// GetApprovedForDate implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*leave.ApprovedLeave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT lr.id, lt.code
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.employee_id = $1
			AND lr.status = 'approved'
			AND $2 BETWEEN lr.start_date AND lr.end_date
		LIMIT 1
	`

	var approved leave.ApprovedLeave
	err := q.QueryRow(ctx, query, employeeID, date).Scan(&approved.RequestID, &approved.TypeCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approved leave for employee %s: %w", employeeID, err)
	}

	return &approved, nil
}

// UpdateStatusGuarded implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) UpdateStatusGuarded(ctx context.Context, id, expected, next string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
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
		return false, fmt.Errorf("failed to update leave request status: %w", err)
	}

	return true, nil
}

// SetBalanceDeducted implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) SetBalanceDeducted(ctx context.Context, id string, deducted bool) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET balance_deducted = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, deducted, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to set balance_deducted on leave request %s: %w", id, err)
	}

	return nil
}

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

// Deduct implements leave.BalanceRepository.
func (b *balanceRepositoryImpl) Deduct(ctx context.Context, employeeID, leaveTypeID string, days float64) error {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE leave_balances
		SET remaining_days = remaining_days - $1, updated_at = NOW()
		WHERE employee_id = $2 AND leave_type_id = $3 AND remaining_days >= $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, days, employeeID, leaveTypeID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrInsufficientBalance
		}
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}

	return nil
}

// Restore implements leave.BalanceRepository.
func (b *balanceRepositoryImpl) Restore(ctx context.Context, employeeID, leaveTypeID string, days float64) error {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE leave_balances
		SET remaining_days = remaining_days + $1, updated_at = NOW()
		WHERE employee_id = $2 AND leave_type_id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, days, employeeID, leaveTypeID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrBalanceNotFound
		}
		return fmt.Errorf("failed to restore leave balance: %w", err)
	}

	return nil
}

// GetByEmployeeAndType implements leave.BalanceRepository.
func (b *balanceRepositoryImpl) GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, employee_id, leave_type_id, remaining_days, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2
	`

	var balance leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveTypeID,
		&balance.RemainingDays, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

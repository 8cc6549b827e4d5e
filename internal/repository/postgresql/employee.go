package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/employee"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, profile_id, full_name, department_id, segment_id, centre_id, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.ProfileID, &emp.FullName,
		&emp.DepartmentID, &emp.SegmentID, &emp.CentreID,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// GetByProfileID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByProfileID(ctx context.Context, profileID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, profile_id, full_name, department_id, segment_id, centre_id, created_at, updated_at
		FROM employees
		WHERE profile_id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, profileID).Scan(
		&emp.ID, &emp.ProfileID, &emp.FullName,
		&emp.DepartmentID, &emp.SegmentID, &emp.CentreID,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with profile id %s: %w", profileID, err)
	}

	return emp, nil
}

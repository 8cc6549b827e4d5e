package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/approval"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/clock"
)

// Service handles leave request creation and read paths. Status
// transitions after creation belong to the approval engine.
type Service struct {
	clock clock.Clock

	leave.LeaveRequestRepository
	leave.LeaveTypeRepository
	leave.BalanceRepository
}

func NewService(
	clk clock.Clock,
	requestRepo leave.LeaveRequestRepository,
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
) *Service {
	return &Service{
		clock:                  clk,
		LeaveRequestRepository: requestRepo,
		LeaveTypeRepository:    typeRepo,
		BalanceRepository:      balanceRepo,
	}
}

// CreateRequest validates and stores a new leave request in pending state.
// Standard-category types require sufficient remaining balance up front;
// the actual deduction happens only on terminal approval.
func (s *Service) CreateRequest(ctx context.Context, req *leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	if leaveType.Category != leave.CategoryOther {
		balance, err := s.BalanceRepository.GetByEmployeeAndType(ctx, req.EmployeeID, req.LeaveTypeID)
		if err != nil && !errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.LeaveRequest{}, fmt.Errorf("failed to get leave balance: %w", err)
		}
		if err != nil || balance.RemainingDays < req.Days {
			return leave.LeaveRequest{}, leave.ErrInsufficientBalance
		}
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	now := s.clock.Now()

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		ID:            uuid.NewString(),
		EmployeeID:    req.EmployeeID,
		LeaveTypeID:   req.LeaveTypeID,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: req.Days,
		Reason:        req.Reason,
		Status:        approval.Pending().String(),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetRequest returns one leave request by id.
func (s *Service) GetRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	req, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// ListTypes returns the leave type taxonomy.
func (s *Service) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	types, err := s.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return types, nil
}

// GetBalance returns the employee's remaining days for a leave type.
func (s *Service) GetBalance(ctx context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	balance, err := s.BalanceRepository.GetByEmployeeAndType(ctx, employeeID, leaveTypeID)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.Balance{}, err
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return balance, nil
}

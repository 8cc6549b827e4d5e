package overtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/approval"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/clock"
)

// Service handles overtime request creation and reads. Approval is
// single-level (direct manager) and handled by the approval engine.
type Service struct {
	clock clock.Clock

	overtime.RequestRepository
	overtime.PeriodRepository
}

func NewService(clk clock.Clock, requestRepo overtime.RequestRepository, periodRepo overtime.PeriodRepository) *Service {
	return &Service{
		clock:             clk,
		RequestRepository: requestRepo,
		PeriodRepository:  periodRepo,
	}
}

// CreateRequest validates and stores a new overtime request in pending
// state.
func (s *Service) CreateRequest(ctx context.Context, req *overtime.CreateOvertimeRequestRequest) (overtime.Request, error) {
	if err := req.Validate(); err != nil {
		return overtime.Request{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	now := s.clock.Now()

	created, err := s.RequestRepository.Create(ctx, overtime.Request{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		Date:           date,
		EstimatedHours: req.EstimatedHours,
		Reason:         req.Reason,
		Status:         approval.Pending().String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}
	return created, nil
}

// GetRequest returns one overtime request by id.
func (s *Service) GetRequest(ctx context.Context, id string) (overtime.Request, error) {
	req, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, overtime.ErrRequestNotFound) {
			return overtime.Request{}, err
		}
		return overtime.Request{}, fmt.Errorf("failed to get overtime request: %w", err)
	}
	return req, nil
}

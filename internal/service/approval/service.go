package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/approval"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/employee"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/notification"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/clock"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
)

// Notifier delivers approval events to profiles. Optional; a nil notifier
// disables delivery.
type Notifier interface {
	NotifyProfile(ctx context.Context, profileID string, typ notification.NotificationType, title, message string)
}

// Service drives the pending -> approved_nX -> approved/rejected/cancelled
// state machine for leave, overtime and correction requests. The level
// check and the state update run inside one transaction with a status
// guard, so two approvers at the same rank cannot double-advance a
// request.
type Service struct {
	tx    database.TxRunner
	clock clock.Clock

	employee.EmployeeRepository
	approval.ChainRepository
	approval.RecordRepository
	leave.LeaveRequestRepository
	leave.LeaveTypeRepository
	leave.BalanceRepository
	overtime.RequestRepository
	attendance.CorrectionRequestRepository

	applier  attendance.CorrectionApplier
	notifier Notifier
}

func NewService(
	tx database.TxRunner,
	clk clock.Clock,
	employeeRepo employee.EmployeeRepository,
	chainRepo approval.ChainRepository,
	recordRepo approval.RecordRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
	overtimeRequestRepo overtime.RequestRepository,
	correctionRepo attendance.CorrectionRequestRepository,
	applier attendance.CorrectionApplier,
	notifier Notifier,
) *Service {
	return &Service{
		tx:                          tx,
		clock:                       clk,
		EmployeeRepository:          employeeRepo,
		ChainRepository:             chainRepo,
		RecordRepository:            recordRepo,
		LeaveRequestRepository:      leaveRequestRepo,
		LeaveTypeRepository:         leaveTypeRepo,
		BalanceRepository:           balanceRepo,
		RequestRepository:           overtimeRequestRepo,
		CorrectionRequestRepository: correctionRepo,
		applier:                     applier,
		notifier:                    notifier,
	}
}

// GetChain returns the employee's ordered approver list, rank 0 first.
func (s *Service) GetChain(ctx context.Context, employeeID string) (approval.Chain, error) {
	chain, err := s.ChainRepository.GetChain(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval chain: %w", err)
	}
	return chain, nil
}

// requestRef is the kind-independent view of a loaded request.
type requestRef struct {
	employeeID string
	status     string

	leave      *leave.LeaveRequest
	correction *attendance.CorrectionRequest
}

func (s *Service) loadRequest(ctx context.Context, kind approval.RequestKind, requestID string) (requestRef, error) {
	switch kind {
	case approval.KindLeave:
		req, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, leave.ErrLeaveRequestNotFound) {
				return requestRef{}, approval.ErrRequestNotFound
			}
			return requestRef{}, fmt.Errorf("failed to get leave request: %w", err)
		}
		return requestRef{employeeID: req.EmployeeID, status: req.Status, leave: &req}, nil
	case approval.KindOvertime:
		req, err := s.RequestRepository.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, overtime.ErrRequestNotFound) {
				return requestRef{}, approval.ErrRequestNotFound
			}
			return requestRef{}, fmt.Errorf("failed to get overtime request: %w", err)
		}
		return requestRef{employeeID: req.EmployeeID, status: req.Status}, nil
	case approval.KindCorrection:
		req, err := s.CorrectionRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, attendance.ErrCorrectionNotFound) {
				return requestRef{}, approval.ErrRequestNotFound
			}
			return requestRef{}, fmt.Errorf("failed to get correction request: %w", err)
		}
		return requestRef{employeeID: req.EmployeeID, status: req.Status, correction: &req}, nil
	}
	return requestRef{}, fmt.Errorf("unsupported request kind %q", kind)
}

func (s *Service) updateStatusGuarded(ctx context.Context, kind approval.RequestKind, requestID, expected, next string) error {
	var (
		ok  bool
		err error
	)
	switch kind {
	case approval.KindLeave:
		ok, err = s.LeaveRequestRepository.UpdateStatusGuarded(ctx, requestID, expected, next)
	case approval.KindOvertime:
		ok, err = s.RequestRepository.UpdateStatusGuarded(ctx, requestID, expected, next)
	case approval.KindCorrection:
		ok, err = s.CorrectionRequestRepository.UpdateStatusGuarded(ctx, requestID, expected, next)
	default:
		return fmt.Errorf("unsupported request kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if !ok {
		// Someone else advanced the request between our read and this
		// write; treat the stale transition as already processed.
		return approval.ErrAlreadyProcessed
	}
	return nil
}

func (s *Service) actingEmployee(ctx context.Context, profileID string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, approval.ErrNotAnEmployee
		}
		return employee.Employee{}, fmt.Errorf("failed to resolve acting employee: %w", err)
	}
	return emp, nil
}

// effectiveChain truncates the chain for request kinds with a shorter
// approval path: overtime requests stop at the direct manager.
func effectiveChain(kind approval.RequestKind, chain approval.Chain) approval.Chain {
	if kind == approval.KindOvertime && len(chain) > 1 {
		return chain[:1]
	}
	return chain
}

// Approve advances the request one level, or to terminal approved when the
// chain is exhausted.
func (s *Service) Approve(ctx context.Context, kind approval.RequestKind, requestID, approverProfileID string, comment *string) (approval.Decision, error) {
	if !kind.Valid() {
		return approval.Decision{}, fmt.Errorf("unsupported request kind %q", kind)
	}

	approver, err := s.actingEmployee(ctx, approverProfileID)
	if err != nil {
		return approval.Decision{}, err
	}

	ref, err := s.loadRequest(ctx, kind, requestID)
	if err != nil {
		return approval.Decision{}, err
	}

	state, err := approval.ParseState(ref.status)
	if err != nil {
		return approval.Decision{}, err
	}
	if state.IsTerminal() {
		return approval.Decision{}, approval.ErrAlreadyProcessed
	}
	level := state.Level()

	chain, err := s.GetChain(ctx, ref.employeeID)
	if err != nil {
		return approval.Decision{}, err
	}
	chain = effectiveChain(kind, chain)

	if err := chain.CanApprove(approver.ID, level); err != nil {
		return approval.Decision{}, err
	}

	next := state.Advance(len(chain))

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.updateStatusGuarded(ctx, kind, requestID, state.String(), next.String()); err != nil {
			return err
		}

		rec := approval.Record{
			ID:          uuid.NewString(),
			RequestKind: kind,
			RequestID:   requestID,
			Rank:        level,
			ApproverID:  approver.ID,
			Action:      "approved",
			Comment:     comment,
			DecidedAt:   s.clock.Now(),
		}
		if _, err := s.RecordRepository.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to append approval record: %w", err)
		}

		if next.Kind != approval.KindApproved {
			return nil
		}

		switch kind {
		case approval.KindLeave:
			return s.settleLeaveBalance(ctx, ref.leave)
		case approval.KindCorrection:
			return s.applier.ApplyCorrection(ctx, *ref.correction)
		}
		return nil
	})
	if err != nil {
		return approval.Decision{}, err
	}

	decision := approval.Decision{NewStatus: next.String(), IsFinal: next.Kind == approval.KindApproved}
	if next.Kind == approval.KindAtRank {
		rank := next.Rank
		decision.NextLevel = &rank
	}

	s.notifyTransition(ctx, kind, requestID, ref.employeeID, chain, next)

	return decision, nil
}

// settleLeaveBalance deducts the leave balance exactly once on terminal
// approval. The "other" category never touches the balance.
func (s *Service) settleLeaveBalance(ctx context.Context, req *leave.LeaveRequest) error {
	if req == nil || req.BalanceDeducted {
		return nil
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return fmt.Errorf("failed to get leave type: %w", err)
	}
	if leaveType.Category == leave.CategoryOther {
		return nil
	}

	if err := s.BalanceRepository.Deduct(ctx, req.EmployeeID, req.LeaveTypeID, req.DaysRequested); err != nil {
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}
	if err := s.LeaveRequestRepository.SetBalanceDeducted(ctx, req.ID, true); err != nil {
		return fmt.Errorf("failed to flag balance deduction: %w", err)
	}
	return nil
}

// Reject is terminal from any open level and requires a comment.
func (s *Service) Reject(ctx context.Context, kind approval.RequestKind, requestID, approverProfileID, comment string) (approval.Decision, error) {
	if !kind.Valid() {
		return approval.Decision{}, fmt.Errorf("unsupported request kind %q", kind)
	}
	if comment == "" {
		return approval.Decision{}, approval.ErrCommentRequired
	}

	approver, err := s.actingEmployee(ctx, approverProfileID)
	if err != nil {
		return approval.Decision{}, err
	}

	ref, err := s.loadRequest(ctx, kind, requestID)
	if err != nil {
		return approval.Decision{}, err
	}

	state, err := approval.ParseState(ref.status)
	if err != nil {
		return approval.Decision{}, err
	}
	if state.IsTerminal() {
		return approval.Decision{}, approval.ErrAlreadyProcessed
	}
	level := state.Level()

	chain, err := s.GetChain(ctx, ref.employeeID)
	if err != nil {
		return approval.Decision{}, err
	}
	chain = effectiveChain(kind, chain)

	if err := chain.CanApprove(approver.ID, level); err != nil {
		return approval.Decision{}, err
	}

	next := approval.Rejected()
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.updateStatusGuarded(ctx, kind, requestID, state.String(), next.String()); err != nil {
			return err
		}
		rec := approval.Record{
			ID:          uuid.NewString(),
			RequestKind: kind,
			RequestID:   requestID,
			Rank:        level,
			ApproverID:  approver.ID,
			Action:      "rejected",
			Comment:     &comment,
			DecidedAt:   s.clock.Now(),
		}
		if _, err := s.RecordRepository.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to append approval record: %w", err)
		}
		return nil
	})
	if err != nil {
		return approval.Decision{}, err
	}

	s.notifyTransition(ctx, kind, requestID, ref.employeeID, chain, next)

	return approval.Decision{NewStatus: next.String(), IsFinal: true}, nil
}

// Cancel reverses a terminal approval. Only the requester or a chain
// member may cancel, a reason is mandatory, and any balance deduction is
// restored.
func (s *Service) Cancel(ctx context.Context, kind approval.RequestKind, requestID, actingProfileID, reason string) (approval.Decision, error) {
	if !kind.Valid() {
		return approval.Decision{}, fmt.Errorf("unsupported request kind %q", kind)
	}
	if reason == "" {
		return approval.Decision{}, approval.ErrReasonRequired
	}

	actor, err := s.actingEmployee(ctx, actingProfileID)
	if err != nil {
		return approval.Decision{}, err
	}

	ref, err := s.loadRequest(ctx, kind, requestID)
	if err != nil {
		return approval.Decision{}, err
	}

	state, err := approval.ParseState(ref.status)
	if err != nil {
		return approval.Decision{}, err
	}
	if state.Kind != approval.KindApproved {
		return approval.Decision{}, approval.ErrNotApproved
	}

	chain, err := s.GetChain(ctx, ref.employeeID)
	if err != nil {
		return approval.Decision{}, err
	}
	if !canCancel(actor.ID, ref.employeeID, chain) {
		return approval.Decision{}, approval.ErrNotPermitted
	}

	next := approval.Cancelled()
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.updateStatusGuarded(ctx, kind, requestID, state.String(), next.String()); err != nil {
			return err
		}
		rec := approval.Record{
			ID:          uuid.NewString(),
			RequestKind: kind,
			RequestID:   requestID,
			Rank:        0,
			ApproverID:  actor.ID,
			Action:      "cancelled",
			Comment:     &reason,
			DecidedAt:   s.clock.Now(),
		}
		if _, err := s.RecordRepository.Append(ctx, rec); err != nil {
			return fmt.Errorf("failed to append approval record: %w", err)
		}

		if kind == approval.KindLeave && ref.leave != nil && ref.leave.BalanceDeducted {
			if err := s.BalanceRepository.Restore(ctx, ref.leave.EmployeeID, ref.leave.LeaveTypeID, ref.leave.DaysRequested); err != nil {
				return fmt.Errorf("failed to restore leave balance: %w", err)
			}
			if err := s.LeaveRequestRepository.SetBalanceDeducted(ctx, ref.leave.ID, false); err != nil {
				return fmt.Errorf("failed to clear balance deduction flag: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return approval.Decision{}, err
	}

	s.notifyTransition(ctx, kind, requestID, ref.employeeID, chain, next)

	return approval.Decision{NewStatus: next.String(), IsFinal: true}, nil
}

func canCancel(actorEmployeeID, requestEmployeeID string, chain approval.Chain) bool {
	if actorEmployeeID == requestEmployeeID {
		return true
	}
	for _, e := range chain {
		if e.ManagerID == actorEmployeeID {
			return true
		}
	}
	return false
}

// notifyTransition tells the next approver their decision is awaited, or
// the requester that their request reached a terminal state. Best-effort:
// delivery failures never fail the transition.
func (s *Service) notifyTransition(ctx context.Context, kind approval.RequestKind, requestID, requestEmployeeID string, chain approval.Chain, next approval.State) {
	if s.notifier == nil {
		return
	}

	if next.Kind == approval.KindAtRank {
		entry, ok := chain.ApproverAt(next.Rank)
		if !ok {
			return
		}
		manager, err := s.EmployeeRepository.GetByID(ctx, entry.ManagerID)
		if err != nil {
			return
		}
		s.notifier.NotifyProfile(ctx, manager.ProfileID, notification.TypeApprovalRequired,
			"Approval required",
			fmt.Sprintf("A %s request awaits your approval", kind))
		return
	}

	requester, err := s.EmployeeRepository.GetByID(ctx, requestEmployeeID)
	if err != nil {
		return
	}
	var typ notification.NotificationType
	var title string
	switch next.Kind {
	case approval.KindApproved:
		typ, title = notification.TypeRequestApproved, "Request approved"
	case approval.KindRejected:
		typ, title = notification.TypeRequestRejected, "Request rejected"
	case approval.KindCancelled:
		typ, title = notification.TypeRequestCancelled, "Request cancelled"
	default:
		return
	}
	s.notifier.NotifyProfile(ctx, requester.ProfileID, typ, title,
		fmt.Sprintf("Your %s request %s is now %s", kind, requestID, next.String()))
}

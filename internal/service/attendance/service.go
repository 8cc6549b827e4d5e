package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/holiday"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/recovery"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/schedule"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/clock"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/validator"
)

// DayResolver is the schedule lookup the calculator consults.
type DayResolver interface {
	ResolveDay(ctx context.Context, employeeID string, date time.Time) (schedule.ResolvedDay, error)
}

type AttendanceServiceImpl struct {
	clock    clock.Clock
	resolver DayResolver
	attendance.DailyRecordRepository
	attendance.CorrectionRequestRepository
	holiday.PublicHolidayRepository
	recovery.DeclarationRepository
	leave.LeaveRequestRepository
	overtime.RequestRepository
	overtime.PeriodRepository
}

func NewAttendanceService(
	clk clock.Clock,
	resolver DayResolver,
	dailyRecordRepo attendance.DailyRecordRepository,
	correctionRepo attendance.CorrectionRequestRepository,
	holidayRepo holiday.PublicHolidayRepository,
	recoveryRepo recovery.DeclarationRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	overtimeRequestRepo overtime.RequestRepository,
	overtimePeriodRepo overtime.PeriodRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		clock:                       clk,
		resolver:                    resolver,
		DailyRecordRepository:       dailyRecordRepo,
		CorrectionRequestRepository: correctionRepo,
		PublicHolidayRepository:     holidayRepo,
		DeclarationRepository:       recoveryRepo,
		LeaveRequestRepository:      leaveRequestRepo,
		RequestRepository:           overtimeRequestRepo,
		PeriodRepository:            overtimePeriodRepo,
	}
}

// gatherFacts collects the read-only facts the calculator consults. The
// approval engine's persisted outcomes (approved leave, approved overtime)
// are facts here, nothing more.
func (a *AttendanceServiceImpl) gatherFacts(ctx context.Context, employeeID string, date time.Time, clockIn, clockOut *time.Time) (DayFacts, error) {
	day, err := a.resolver.ResolveDay(ctx, employeeID, date)
	if err != nil {
		return DayFacts{}, err
	}

	hol, err := a.PublicHolidayRepository.GetByDate(ctx, date)
	if err != nil {
		return DayFacts{}, fmt.Errorf("failed to get holiday: %w", err)
	}

	rec, err := a.DeclarationRepository.FindForEmployee(ctx, employeeID, date)
	if err != nil {
		return DayFacts{}, fmt.Errorf("failed to get recovery declaration: %w", err)
	}

	lv, err := a.LeaveRequestRepository.GetApprovedForDate(ctx, employeeID, date)
	if err != nil {
		return DayFacts{}, fmt.Errorf("failed to get approved leave: %w", err)
	}

	otReq, err := a.RequestRepository.GetApprovedForDate(ctx, employeeID, date)
	if err != nil {
		return DayFacts{}, fmt.Errorf("failed to get approved overtime: %w", err)
	}

	periods, err := a.PeriodRepository.ListActiveForEmployee(ctx, employeeID, date)
	if err != nil {
		return DayFacts{}, fmt.Errorf("failed to list overtime periods: %w", err)
	}

	return DayFacts{
		Date:            date,
		ClockIn:         clockIn,
		ClockOut:        clockOut,
		Day:             day,
		Holiday:         hol,
		Leave:           lv,
		Recovery:        rec,
		OvertimeRequest: otReq,
		OvertimePeriods: periods,
	}, nil
}

// ResolveDayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ResolveDayStatus(ctx context.Context, employeeID string, date time.Time, clockIn, clockOut *time.Time) (attendance.DayStatusResult, error) {
	if clockIn == nil && clockOut == nil {
		existing, err := a.DailyRecordRepository.GetByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return attendance.DayStatusResult{}, fmt.Errorf("failed to get daily record: %w", err)
		}
		if existing != nil {
			clockIn = existing.ClockInAt
			clockOut = existing.ClockOutAt
		}
	}

	facts, err := a.gatherFacts(ctx, employeeID, date, clockIn, clockOut)
	if err != nil {
		return attendance.DayStatusResult{}, err
	}

	return Calculate(facts), nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.DailyRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyRecord{}, err
	}

	now := a.clock.Now()
	date := dayOf(now)

	existing, err := a.DailyRecordRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to get daily record: %w", err)
	}
	if existing != nil && existing.ClockInAt != nil {
		return attendance.DailyRecord{}, attendance.ErrAlreadyClockedIn
	}

	facts, err := a.gatherFacts(ctx, req.EmployeeID, date, &now, nil)
	if err != nil {
		return attendance.DailyRecord{}, err
	}
	result := Calculate(facts)

	rec := recordFromResult(req.EmployeeID, date, result)
	rec.ClockInAt = &now
	rec.Source = attendance.SourceClock

	saved, err := a.DailyRecordRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert daily record: %w", err)
	}
	return saved, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.DailyRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyRecord{}, err
	}

	now := a.clock.Now()
	date := dayOf(now)

	existing, err := a.DailyRecordRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to get daily record: %w", err)
	}
	if existing == nil || existing.ClockInAt == nil {
		return attendance.DailyRecord{}, attendance.ErrNotClockedIn
	}
	if existing.ClockOutAt != nil {
		return attendance.DailyRecord{}, attendance.ErrAlreadyClockedOut
	}

	facts, err := a.gatherFacts(ctx, req.EmployeeID, date, existing.ClockInAt, &now)
	if err != nil {
		return attendance.DailyRecord{}, err
	}
	result := Calculate(facts)

	rec := recordFromResult(req.EmployeeID, date, result)
	rec.ClockInAt = existing.ClockInAt
	rec.ClockOutAt = &now
	rec.Source = attendance.SourceClock

	saved, err := a.DailyRecordRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert daily record: %w", err)
	}
	return saved, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.DailyRecord, int64, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	records, total, err := a.DailyRecordRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily records: %w", err)
	}
	return records, total, nil
}

// CreateCorrection implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateCorrection(ctx context.Context, req attendance.CreateCorrectionRequest) (attendance.CorrectionRequest, error) {
	if err := req.Validate(); err != nil {
		return attendance.CorrectionRequest{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	corr := attendance.CorrectionRequest{
		ID:           uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		Date:         date,
		RequestedIn:  req.RequestedIn,
		RequestedOut: req.RequestedOut,
		Reason:       req.Reason,
		Status:       "pending",
	}

	created, err := a.CorrectionRequestRepository.Create(ctx, corr)
	if err != nil {
		return attendance.CorrectionRequest{}, fmt.Errorf("failed to create correction request: %w", err)
	}
	return created, nil
}

// ApplyCorrection implements attendance.CorrectionApplier. It runs on the
// approval engine's transaction when a correction request reaches terminal
// approval: requested times are normalized, merged over the existing
// record (provided values win), minutes recomputed, status forced to
// present and the source tagged as a correction.
func (a *AttendanceServiceImpl) ApplyCorrection(ctx context.Context, req attendance.CorrectionRequest) error {
	clockIn, err := combineRequested(req.Date, req.RequestedIn)
	if err != nil {
		return err
	}
	clockOut, err := combineRequested(req.Date, req.RequestedOut)
	if err != nil {
		return err
	}

	existing, err := a.DailyRecordRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return fmt.Errorf("failed to get daily record: %w", err)
	}
	if existing != nil {
		if clockIn == nil {
			clockIn = existing.ClockInAt
		}
		if clockOut == nil {
			clockOut = existing.ClockOutAt
		}
	}

	facts, err := a.gatherFacts(ctx, req.EmployeeID, req.Date, clockIn, clockOut)
	if err != nil {
		return err
	}
	result := Calculate(facts)

	rec := recordFromResult(req.EmployeeID, req.Date, result)
	rec.ClockInAt = clockIn
	rec.ClockOutAt = clockOut
	rec.DayStatus = attendance.StatusPresent
	rec.Source = attendance.SourceCorrection
	note := fmt.Sprintf("corrected via request %s", req.ID)
	rec.Notes = &note

	if _, err := a.DailyRecordRepository.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("failed to apply correction: %w", err)
	}
	return nil
}

// combineRequested builds a local timestamp on the request date from an
// HH:MM[:SS] string.
func combineRequested(date time.Time, wall *string) (*time.Time, error) {
	if wall == nil {
		return nil, nil
	}
	normalized, err := validator.NormalizeClockTime(*wall)
	if err != nil {
		return nil, err
	}
	parsed, err := time.Parse("15:04:05", normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid corrected time %q: %w", *wall, err)
	}
	combined := time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, date.Location())
	return &combined, nil
}

// recordFromResult seeds a fresh row id; when the upsert hits an existing
// (employee, date) row the stored id survives the conflict update.
func recordFromResult(employeeID string, date time.Time, result attendance.DayStatusResult) attendance.DailyRecord {
	return attendance.DailyRecord{
		ID:                uuid.NewString(),
		EmployeeID:        employeeID,
		Date:              date,
		DayStatus:         result.Status,
		LateMinutes:       result.LateMinutes,
		EarlyLeaveMinutes: result.EarlyLeaveMinutes,
		GrossMinutes:      result.GrossMinutes,
		NetWorkedMinutes:  result.NetWorkedMinutes,
		OvertimeMinutes:   result.OvertimeMinutes,
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/yahya12213/SiteManagement-sub010/internal/domain/schedule"
)

// Resolver finds the applicable work schedule and expected window for an
// employee-day: the date-covering assignment wins, else the organization
// default, else nothing.
type Resolver struct {
	schedule.WorkScheduleRepository
	schedule.EmployeeScheduleAssignmentRepository
}

func NewResolver(
	workScheduleRepo schedule.WorkScheduleRepository,
	assignmentRepo schedule.EmployeeScheduleAssignmentRepository,
) *Resolver {
	return &Resolver{
		WorkScheduleRepository:               workScheduleRepo,
		EmployeeScheduleAssignmentRepository: assignmentRepo,
	}
}

// ResolveDay returns the schedule outcome for the employee on the date.
// A ResolvedDay with a nil Schedule means no schedule applies and
// working-day status must be inferred by the caller.
func (r *Resolver) ResolveDay(ctx context.Context, employeeID string, date time.Time) (schedule.ResolvedDay, error) {
	assignment, err := r.EmployeeScheduleAssignmentRepository.GetCovering(ctx, employeeID, date)
	if err != nil {
		return schedule.ResolvedDay{}, fmt.Errorf("failed to get schedule assignment: %w", err)
	}

	var ws *schedule.WorkSchedule
	if assignment != nil {
		found, err := r.WorkScheduleRepository.GetByID(ctx, assignment.WorkScheduleID)
		if err != nil {
			return schedule.ResolvedDay{}, fmt.Errorf("failed to get work schedule: %w", err)
		}
		ws = &found
	} else {
		ws, err = r.WorkScheduleRepository.GetDefault(ctx)
		if err != nil {
			return schedule.ResolvedDay{}, fmt.Errorf("failed to get default work schedule: %w", err)
		}
	}

	return DayWindow(ws, date), nil
}

// DayWindow derives the expected start/end and working-day flag for the
// date from the schedule. Exposed for the day-status calculator and tests.
func DayWindow(ws *schedule.WorkSchedule, date time.Time) schedule.ResolvedDay {
	if ws == nil {
		return schedule.ResolvedDay{}
	}

	weekday := schedule.ISOWeekday(date)
	start, end := ws.DayTimes(weekday)

	working := ws.IsWorkingWeekday(weekday)
	if start == nil || end == nil {
		// No resolvable window means the date is not worked under this
		// schedule even if the weekday is in the working set.
		working = false
	}

	return schedule.ResolvedDay{
		Schedule:     ws,
		Start:        start,
		End:          end,
		IsWorkingDay: working,
	}
}

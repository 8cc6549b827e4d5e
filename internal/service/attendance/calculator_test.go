package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/holiday"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/recovery"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/schedule"
)

// Monday 2025-06-02.
var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func wall(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func wallPtr(h, m int) *time.Time {
	t := wall(h, m)
	return &t
}

// officeSchedule is 09:00-17:00, 60 min break, 15 min tolerance both
// ways, Monday through Friday.
func officeSchedule() *schedule.WorkSchedule {
	return &schedule.WorkSchedule{
		ID:                         "ws-office",
		Name:                       "Office",
		GenericStart:               wallPtr(9, 0),
		GenericEnd:                 wallPtr(17, 0),
		BreakMinutes:               60,
		ToleranceLateMinutes:       15,
		ToleranceEarlyLeaveMinutes: 15,
		WorkingDays:                []int{1, 2, 3, 4, 5},
	}
}

func officeDay() schedule.ResolvedDay {
	ws := officeSchedule()
	return schedule.ResolvedDay{
		Schedule:     ws,
		Start:        ws.GenericStart,
		End:          ws.GenericEnd,
		IsWorkingDay: true,
	}
}

func officeFacts(in, out *time.Time) DayFacts {
	return DayFacts{
		Date:     testDate,
		ClockIn:  in,
		ClockOut: out,
		Day:      officeDay(),
	}
}

func TestCalculateOnTimeFullDay(t *testing.T) {
	t.Parallel()

	res := Calculate(officeFacts(wallPtr(9, 0), wallPtr(17, 0)))

	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.Equal(t, 480, res.GrossMinutes)
	assert.Equal(t, 420, res.NetWorkedMinutes)
	assert.Equal(t, 0, res.LateMinutes)
	assert.Equal(t, 0, res.EarlyLeaveMinutes)
	assert.Equal(t, 0, res.OvertimeMinutes)
	require.NotNil(t, res.ScheduledStart)
	assert.Equal(t, "09:00", *res.ScheduledStart)
	require.NotNil(t, res.ScheduledEnd)
	assert.Equal(t, "17:00", *res.ScheduledEnd)
}

func TestCalculateWithinLateTolerance(t *testing.T) {
	t.Parallel()

	// 09:05 is inside the 15 minute tolerance: no lateness, and the
	// worked window starts at the actual clock-in.
	res := Calculate(officeFacts(wallPtr(9, 5), wallPtr(17, 0)))

	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.Equal(t, 0, res.LateMinutes)
	assert.Equal(t, 475, res.GrossMinutes)
	assert.Equal(t, 415, res.NetWorkedMinutes)
}

func TestCalculateLateToleranceBoundary(t *testing.T) {
	t.Parallel()

	// Exactly at start+tolerance is not late; one minute past is, and
	// the full delta counts.
	res := Calculate(officeFacts(wallPtr(9, 15), wallPtr(17, 0)))
	assert.Equal(t, 0, res.LateMinutes)
	assert.Equal(t, attendance.StatusPresent, res.Status)

	res = Calculate(officeFacts(wallPtr(9, 16), wallPtr(17, 0)))
	assert.Equal(t, 16, res.LateMinutes)
	assert.Equal(t, attendance.StatusLate, res.Status)
}

func TestCalculateLate(t *testing.T) {
	t.Parallel()

	res := Calculate(officeFacts(wallPtr(9, 30), wallPtr(17, 0)))

	assert.Equal(t, attendance.StatusLate, res.Status)
	assert.Equal(t, 30, res.LateMinutes)
	assert.Equal(t, 450, res.GrossMinutes)
	assert.Equal(t, 390, res.NetWorkedMinutes)
}

func TestCalculateEarlyLeave(t *testing.T) {
	t.Parallel()

	res := Calculate(officeFacts(wallPtr(9, 0), wallPtr(16, 30)))

	assert.Equal(t, attendance.StatusEarlyLeave, res.Status)
	assert.Equal(t, 30, res.EarlyLeaveMinutes)

	// Inside the tolerance nothing is counted.
	res = Calculate(officeFacts(wallPtr(9, 0), wallPtr(16, 50)))
	assert.Equal(t, 0, res.EarlyLeaveMinutes)
	assert.Equal(t, attendance.StatusPresent, res.Status)
}

func TestCalculateLateAndEarlyLeaveIsPartial(t *testing.T) {
	t.Parallel()

	res := Calculate(officeFacts(wallPtr(9, 30), wallPtr(16, 30)))

	assert.Equal(t, attendance.StatusPartial, res.Status)
	assert.Equal(t, 30, res.LateMinutes)
	assert.Equal(t, 30, res.EarlyLeaveMinutes)
}

func TestCalculateBreakDeductionFloor(t *testing.T) {
	t.Parallel()

	// 239 gross minutes: below the 4 hour floor, no break deduction.
	res := Calculate(officeFacts(wallPtr(9, 0), wallPtr(12, 59)))
	assert.Equal(t, 239, res.GrossMinutes)
	assert.Equal(t, 239, res.NetWorkedMinutes)

	// 240 gross minutes: the full break comes off.
	res = Calculate(officeFacts(wallPtr(9, 0), wallPtr(13, 0)))
	assert.Equal(t, 240, res.GrossMinutes)
	assert.Equal(t, 180, res.NetWorkedMinutes)
}

func TestCalculateClampsToScheduledWindow(t *testing.T) {
	t.Parallel()

	// Early arrival and staying past the end do not inflate gross time.
	res := Calculate(officeFacts(wallPtr(8, 0), wallPtr(18, 0)))

	assert.Equal(t, 480, res.GrossMinutes)
	assert.Equal(t, 420, res.NetWorkedMinutes)
	assert.Equal(t, 0, res.OvertimeMinutes)
	assert.Equal(t, attendance.StatusPresent, res.Status)
}

func TestCalculateNoClockIn(t *testing.T) {
	t.Parallel()

	res := Calculate(officeFacts(nil, nil))

	assert.Equal(t, attendance.StatusAbsent, res.Status)
	assert.True(t, res.Anomaly)
	assert.Equal(t, 0, res.NetWorkedMinutes)
}

func TestCalculateNoClockOutYet(t *testing.T) {
	t.Parallel()

	res := Calculate(officeFacts(wallPtr(9, 0), nil))
	assert.Equal(t, attendance.StatusPending, res.Status)

	res = Calculate(officeFacts(wallPtr(9, 45), nil))
	assert.Equal(t, attendance.StatusLate, res.Status)
	assert.Equal(t, 45, res.LateMinutes)
}

func TestCalculateWeekend(t *testing.T) {
	t.Parallel()

	// Saturday under a Monday-Friday schedule.
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	ws := officeSchedule()
	f := DayFacts{
		Date: saturday,
		Day: schedule.ResolvedDay{
			Schedule:     ws,
			Start:        ws.GenericStart,
			End:          ws.GenericEnd,
			IsWorkingDay: false,
		},
	}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusWeekend, res.Status)
	assert.False(t, res.Anomaly)
}

func TestCalculateWeekendWithoutSchedule(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	res := Calculate(DayFacts{Date: sunday})
	assert.Equal(t, attendance.StatusWeekend, res.Status)

	// A weekday without a schedule and without a clock-in is absent.
	res = Calculate(DayFacts{Date: testDate})
	assert.Equal(t, attendance.StatusAbsent, res.Status)
	assert.True(t, res.Anomaly)
}

func TestCalculateNoScheduleDefaults(t *testing.T) {
	t.Parallel()

	// Weekday, no schedule: 480 scheduled net is assumed and no
	// lateness can be derived without reference times.
	f := DayFacts{
		Date:     testDate,
		ClockIn:  wallPtr(9, 0),
		ClockOut: wallPtr(17, 0),
	}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.Equal(t, 480, res.GrossMinutes)
	assert.Equal(t, 480, res.NetWorkedMinutes)
	assert.Equal(t, 0, res.LateMinutes)
	assert.Nil(t, res.ScheduledStart)
}

func TestCalculateApprovedLeaveShortCircuits(t *testing.T) {
	t.Parallel()

	f := officeFacts(wallPtr(9, 0), wallPtr(17, 0))
	f.Leave = &leave.ApprovedLeave{RequestID: "lr-1", TypeCode: "sick"}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusSick, res.Status)
	assert.Equal(t, 0, res.GrossMinutes)
	assert.Equal(t, 0, res.NetWorkedMinutes)
}

func TestLeaveDayStatusMapping(t *testing.T) {
	t.Parallel()

	cases := map[string]attendance.DayStatus{
		"sick":      attendance.StatusSick,
		"maladie":   attendance.StatusSick,
		"MALADIE":   attendance.StatusSick,
		"mission":   attendance.StatusMission,
		"training":  attendance.StatusTraining,
		"formation": attendance.StatusTraining,
		"annual":    attendance.StatusLeave,
		"unpaid":    attendance.StatusLeave,
	}
	for code, want := range cases {
		assert.Equal(t, want, leaveDayStatus(code), code)
	}
}

func TestCalculateHoliday(t *testing.T) {
	t.Parallel()

	f := officeFacts(nil, nil)
	f.Holiday = &holiday.PublicHoliday{ID: "h-1", Date: testDate, Name: "Independence Day"}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusHoliday, res.Status)
	require.NotNil(t, res.Note)
	assert.Equal(t, "Independence Day", *res.Note)
}

func TestCalculateHolidayYieldsToLeave(t *testing.T) {
	t.Parallel()

	f := officeFacts(nil, nil)
	f.Holiday = &holiday.PublicHoliday{ID: "h-1", Date: testDate, Name: "Independence Day"}
	f.Leave = &leave.ApprovedLeave{RequestID: "lr-1", TypeCode: "annual"}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusLeave, res.Status)
}

func TestCalculateHolidayWithOvertimePeriod(t *testing.T) {
	t.Parallel()

	// A declared overtime period on a holiday does not short-circuit,
	// even when an approved leave also covers the date.
	f := officeFacts(wallPtr(9, 0), wallPtr(17, 0))
	f.Holiday = &holiday.PublicHoliday{ID: "h-1", Date: testDate, Name: "Independence Day"}
	f.Leave = &leave.ApprovedLeave{RequestID: "lr-1", TypeCode: "annual"}
	f.OvertimePeriods = []overtime.Period{
		{ID: "p-1", Date: testDate, StartTime: wall(9, 0), EndTime: wall(12, 0), RateType: overtime.RateSpecial, Active: true},
	}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusOvertime, res.Status)
	assert.Equal(t, 180, res.OvertimeMinutes)
	require.NotNil(t, res.OvertimeRate)
	assert.Equal(t, string(overtime.RateSpecial), *res.OvertimeRate)
	require.NotNil(t, res.Note)
	assert.Equal(t, "worked public holiday: Independence Day", *res.Note)
}

func TestCalculateOvertimeRequestCappedByEstimate(t *testing.T) {
	t.Parallel()

	f := officeFacts(wallPtr(9, 0), wallPtr(20, 0))
	f.OvertimeRequest = &overtime.Request{ID: "ot-1", EstimatedHours: 2, Status: "approved"}

	res := Calculate(f)
	// Three hours past the scheduled end, capped at the estimated two.
	assert.Equal(t, 120, res.OvertimeMinutes)
	assert.Nil(t, res.OvertimeRate)
	// Request-based overtime alone does not flip the status.
	assert.Equal(t, attendance.StatusPresent, res.Status)
}

func TestCalculateOvertimeRequestUnderEstimate(t *testing.T) {
	t.Parallel()

	f := officeFacts(wallPtr(9, 0), wallPtr(18, 0))
	f.OvertimeRequest = &overtime.Request{ID: "ot-1", EstimatedHours: 2, Status: "approved"}

	res := Calculate(f)
	assert.Equal(t, 60, res.OvertimeMinutes)
}

func TestCalculateOvertimePeriodsAccumulateAndPickRate(t *testing.T) {
	t.Parallel()

	f := officeFacts(wallPtr(9, 0), wallPtr(19, 0))
	f.OvertimePeriods = []overtime.Period{
		{ID: "p-1", StartTime: wall(17, 0), EndTime: wall(18, 0), RateType: overtime.RateNormal, Active: true},
		{ID: "p-2", StartTime: wall(18, 0), EndTime: wall(20, 0), RateType: overtime.RateExtended, Active: true},
	}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusOvertime, res.Status)
	// 60 from the first period plus the worked hour of the second.
	assert.Equal(t, 120, res.OvertimeMinutes)
	require.NotNil(t, res.OvertimeRate)
	assert.Equal(t, string(overtime.RateExtended), *res.OvertimeRate)
}

func TestCalculatePeriodOvertimeBeatsRequestOvertime(t *testing.T) {
	t.Parallel()

	f := officeFacts(wallPtr(9, 0), wallPtr(19, 0))
	f.OvertimeRequest = &overtime.Request{ID: "ot-1", EstimatedHours: 1, Status: "approved"}
	f.OvertimePeriods = []overtime.Period{
		{ID: "p-1", StartTime: wall(17, 0), EndTime: wall(19, 0), RateType: overtime.RateNormal, Active: true},
	}

	res := Calculate(f)
	// max(request 60, periods 120).
	assert.Equal(t, 120, res.OvertimeMinutes)
	assert.Equal(t, attendance.StatusOvertime, res.Status)
}

func TestCalculateRecoveryWorkdayOverridesEverything(t *testing.T) {
	t.Parallel()

	f := officeFacts(wallPtr(9, 30), wallPtr(17, 0))
	f.Recovery = &recovery.Declaration{ID: "rd-1", IsDayOff: false, Scope: recovery.ScopeAll, Active: true}
	f.Holiday = &holiday.PublicHoliday{ID: "h-1", Date: testDate, Name: "Independence Day"}

	res := Calculate(f)
	// Minutes are computed, but the status is forced back to recovery.
	assert.Equal(t, attendance.StatusRecovery, res.Status)
	assert.Equal(t, 30, res.LateMinutes)
	assert.Equal(t, 450, res.GrossMinutes)
	require.NotNil(t, res.Note)
	assert.Equal(t, "recovery workday", *res.Note)
}

func TestCalculateRecoveryDayOff(t *testing.T) {
	t.Parallel()

	f := officeFacts(nil, nil)
	f.Recovery = &recovery.Declaration{ID: "rd-1", IsDayOff: true, Scope: recovery.ScopeAll, Active: true}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusRecoveryOff, res.Status)
	require.NotNil(t, res.HoursToRecover)
	assert.InDelta(t, 8.0, *res.HoursToRecover, 0.001)
}

func TestCalculateRecoveryDayOffDefaultHours(t *testing.T) {
	t.Parallel()

	f := DayFacts{Date: testDate}
	f.Recovery = &recovery.Declaration{ID: "rd-1", IsDayOff: true, Scope: recovery.ScopeAll, Active: true}

	res := Calculate(f)
	assert.Equal(t, attendance.StatusRecoveryOff, res.Status)
	require.NotNil(t, res.HoursToRecover)
	assert.InDelta(t, 8.0, *res.HoursToRecover, 0.001)
}

func TestCalculatePresentThreshold(t *testing.T) {
	t.Parallel()

	// Scheduled net is 420; the present floor is 378 net minutes.
	// 09:00-16:18 gives 438 gross, 378 net: exactly at the threshold.
	res := Calculate(officeFacts(wallPtr(9, 0), wallPtr(16, 18)))
	assert.Equal(t, 378, res.NetWorkedMinutes)
	assert.Equal(t, 42, res.EarlyLeaveMinutes)
	assert.Equal(t, attendance.StatusEarlyLeave, res.Status)

	// Without an early-leave trigger the same net yields present: use a
	// short schedule day where leaving early is inside tolerance.
	f := officeFacts(wallPtr(9, 0), wallPtr(16, 50))
	res = Calculate(f)
	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.GreaterOrEqual(t, float64(res.NetWorkedMinutes), 0.9*420)
}

package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/holiday"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/recovery"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/schedule"
)

// Defaults used when no schedule resolves for the day.
const (
	defaultToleranceMinutes   = 15
	defaultScheduledNetMins   = 480
	defaultHoursToRecover     = 8.0
	breakDeductionFloorMins   = 240
	presentNetWorkedThreshold = 0.9
)

// DayFacts bundles everything the calculator consults for one
// employee-day. All of it is read-only; gathering is the service's job.
type DayFacts struct {
	Date     time.Time
	ClockIn  *time.Time
	ClockOut *time.Time

	Day             schedule.ResolvedDay
	Holiday         *holiday.PublicHoliday
	Leave           *leave.ApprovedLeave
	Recovery        *recovery.Declaration
	OvertimeRequest *overtime.Request
	OvertimePeriods []overtime.Period
}

// outcomeMode tags what a matched rule does: stop with its status, or run
// the minute computation anyway (optionally forcing the status afterwards).
type outcomeMode int

const (
	modeTerminal outcomeMode = iota
	modeContinue
	modeContinueAndOverride
)

type outcome struct {
	mode           outcomeMode
	status         attendance.DayStatus
	hoursToRecover *float64
	anomaly        bool
	note           *string
}

type statusRule struct {
	name string
	eval func(f DayFacts) *outcome
}

// statusRules is the priority chain: first match wins. The order is
// load-bearing; in particular, a holiday with a declared overtime period
// falls through to the minute computation and is never reconsidered as
// leave or weekend, while a holiday without one yields to an approved
// leave covering the same date.
var statusRules = []statusRule{
	{
		name: "recovery_workday",
		eval: func(f DayFacts) *outcome {
			if f.Recovery != nil && !f.Recovery.IsDayOff {
				return &outcome{mode: modeContinueAndOverride, status: attendance.StatusRecovery, note: notef("recovery workday")}
			}
			return nil
		},
	},
	{
		name: "recovery_day_off",
		eval: func(f DayFacts) *outcome {
			if f.Recovery != nil && f.Recovery.IsDayOff {
				hours := scheduledHours(f.Day)
				return &outcome{mode: modeTerminal, status: attendance.StatusRecoveryOff, hoursToRecover: &hours, note: notef("recovery day off")}
			}
			return nil
		},
	},
	{
		name: "holiday_with_overtime_period",
		eval: func(f DayFacts) *outcome {
			if f.Holiday != nil && len(f.OvertimePeriods) > 0 {
				return &outcome{mode: modeContinue, note: notef("worked public holiday: " + f.Holiday.Name)}
			}
			return nil
		},
	},
	{
		name: "approved_leave",
		eval: func(f DayFacts) *outcome {
			if f.Leave != nil {
				return &outcome{mode: modeTerminal, status: leaveDayStatus(f.Leave.TypeCode)}
			}
			return nil
		},
	},
	{
		name: "public_holiday",
		eval: func(f DayFacts) *outcome {
			if f.Holiday != nil {
				return &outcome{mode: modeTerminal, status: attendance.StatusHoliday, note: notef(f.Holiday.Name)}
			}
			return nil
		},
	},
	{
		name: "weekend",
		eval: func(f DayFacts) *outcome {
			if isWeekend(f) {
				return &outcome{mode: modeTerminal, status: attendance.StatusWeekend}
			}
			return nil
		},
	},
	{
		name: "missing_clock_in",
		eval: func(f DayFacts) *outcome {
			if f.ClockIn == nil {
				return &outcome{mode: modeTerminal, status: attendance.StatusAbsent, anomaly: true}
			}
			return nil
		},
	},
}

// Calculate produces the authoritative day status and minute quantities
// for one employee-day.
func Calculate(f DayFacts) attendance.DayStatusResult {
	for _, r := range statusRules {
		o := r.eval(f)
		if o == nil {
			continue
		}
		switch o.mode {
		case modeTerminal:
			res := baseResult(f)
			res.Status = o.status
			res.HoursToRecover = o.hoursToRecover
			res.Anomaly = o.anomaly
			res.Note = o.note
			return res
		case modeContinueAndOverride:
			res := computeMinutes(f, &o.status)
			res.Note = o.note
			return res
		case modeContinue:
			res := computeMinutes(f, nil)
			res.Note = o.note
			return res
		}
	}
	return computeMinutes(f, nil)
}

// computeMinutes runs the clock arithmetic and derives the status from the
// computed quantities. When override is non-nil the final status is forced
// to it after everything is computed (the recovery-workday case).
func computeMinutes(f DayFacts, override *attendance.DayStatus) attendance.DayStatusResult {
	res := baseResult(f)

	finish := func() attendance.DayStatusResult {
		if override != nil {
			res.Status = *override
		}
		return res
	}

	if f.ClockIn == nil {
		res.Status = attendance.StatusAbsent
		res.Anomaly = true
		return finish()
	}

	tolLate := defaultToleranceMinutes
	tolEarly := defaultToleranceMinutes
	breakMins := 0
	if f.Day.Schedule != nil {
		tolLate = f.Day.Schedule.ToleranceLateMinutes
		tolEarly = f.Day.Schedule.ToleranceEarlyLeaveMinutes
		breakMins = f.Day.Schedule.BreakMinutes
	}

	clockIn := minutesOfDay(*f.ClockIn)

	var schedStart, schedEnd *int
	if f.Day.Start != nil {
		m := minutesOfDay(*f.Day.Start)
		schedStart = &m
	}
	if f.Day.End != nil {
		m := minutesOfDay(*f.Day.End)
		schedEnd = &m
	}

	// Lateness only counts past the tolerance, strictly.
	if schedStart != nil {
		if d := clockIn - *schedStart; d > tolLate {
			res.LateMinutes = d
		}
	}

	if f.ClockOut == nil {
		if res.LateMinutes > 0 {
			res.Status = attendance.StatusLate
		} else {
			res.Status = attendance.StatusPending
		}
		return finish()
	}

	clockOut := minutesOfDay(*f.ClockOut)

	// Worked time is clamped to the scheduled window; time outside it only
	// counts through the overtime rules below.
	effStart := clockIn
	if schedStart != nil && *schedStart > effStart {
		effStart = *schedStart
	}
	effEnd := clockOut
	if schedEnd != nil && *schedEnd < effEnd {
		effEnd = *schedEnd
	}
	gross := effEnd - effStart
	if gross < 0 {
		gross = 0
	}
	res.GrossMinutes = gross

	net := gross
	if gross >= breakDeductionFloorMins {
		net -= breakMins
	}
	if net < 0 {
		net = 0
	}
	res.NetWorkedMinutes = net

	if schedEnd != nil {
		if d := *schedEnd - clockOut; d > tolEarly {
			res.EarlyLeaveMinutes = d
		}
	}

	var requestOT int
	if f.OvertimeRequest != nil && schedEnd != nil && clockOut > *schedEnd {
		requestOT = clockOut - *schedEnd
		if limit := int(f.OvertimeRequest.EstimatedHours * 60); requestOT > limit {
			requestOT = limit
		}
	}

	periodOT := 0
	var bestRate *overtime.RateType
	for _, p := range f.OvertimePeriods {
		pStart := minutesOfDay(p.StartTime)
		pEnd := minutesOfDay(p.EndTime)
		overlap := intersect(clockIn, clockOut, pStart, pEnd)
		if overlap <= 0 {
			continue
		}
		periodOT += overlap
		if bestRate == nil || overtime.RatePrecedence(p.RateType) > overtime.RatePrecedence(*bestRate) {
			rate := p.RateType
			bestRate = &rate
		}
	}

	res.OvertimeMinutes = requestOT
	if periodOT > res.OvertimeMinutes {
		res.OvertimeMinutes = periodOT
	}
	if bestRate != nil {
		rate := string(*bestRate)
		res.OvertimeRate = &rate
	}

	scheduledNet := defaultScheduledNetMins
	if schedStart != nil && schedEnd != nil {
		window := *schedEnd - *schedStart
		scheduledNet = window
		if window >= breakDeductionFloorMins {
			scheduledNet = window - breakMins
		}
	}

	switch {
	case periodOT > 0:
		res.Status = attendance.StatusOvertime
	case res.LateMinutes > 0 && res.EarlyLeaveMinutes > 0:
		res.Status = attendance.StatusPartial
	case res.LateMinutes > 0:
		res.Status = attendance.StatusLate
	case res.EarlyLeaveMinutes > 0:
		res.Status = attendance.StatusEarlyLeave
	case float64(net) >= presentNetWorkedThreshold*float64(scheduledNet):
		res.Status = attendance.StatusPresent
	default:
		res.Status = attendance.StatusPartial
	}

	return finish()
}

func baseResult(f DayFacts) attendance.DayStatusResult {
	res := attendance.DayStatusResult{}
	if f.Day.Start != nil {
		s := formatWall(*f.Day.Start)
		res.ScheduledStart = &s
	}
	if f.Day.End != nil {
		s := formatWall(*f.Day.End)
		res.ScheduledEnd = &s
	}
	return res
}

// leaveDayStatus maps a leave type code to the day status label.
func leaveDayStatus(code string) attendance.DayStatus {
	switch strings.ToLower(code) {
	case "sick", "maladie":
		return attendance.StatusSick
	case "mission":
		return attendance.StatusMission
	case "training", "formation":
		return attendance.StatusTraining
	default:
		return attendance.StatusLeave
	}
}

// isWeekend applies the schedule's working-day set when a schedule
// resolved, else the Saturday/Sunday heuristic.
func isWeekend(f DayFacts) bool {
	if f.Day.Schedule != nil {
		return !f.Day.IsWorkingDay
	}
	wd := schedule.ISOWeekday(f.Date)
	return wd == 6 || wd == 7
}

// scheduledHours is the expected working hours for the day, used for
// recovery-day-off bookkeeping.
func scheduledHours(day schedule.ResolvedDay) float64 {
	if day.Start == nil || day.End == nil {
		return defaultHoursToRecover
	}
	mins := minutesOfDay(*day.End) - minutesOfDay(*day.Start)
	if mins <= 0 {
		return defaultHoursToRecover
	}
	return float64(mins) / 60.0
}

func notef(s string) *string {
	return &s
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func intersect(aStart, aEnd, bStart, bEnd int) int {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	return end - start
}

func formatWall(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

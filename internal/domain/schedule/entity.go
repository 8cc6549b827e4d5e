package schedule

import "time"

// WorkSchedule is a named weekly timetable. Day-specific start/end times are
// preferred; when a weekday has no entry (or a nil time) the generic
// fallback applies. Times carry only their wall-clock component.
type WorkSchedule struct {
	ID                         string        `json:"id"`
	Name                       string        `json:"name"`
	IsDefault                  bool          `json:"is_default"`
	GenericStart               *time.Time    `json:"generic_start,omitempty"`
	GenericEnd                 *time.Time    `json:"generic_end,omitempty"`
	BreakMinutes               int           `json:"break_minutes"`
	ToleranceLateMinutes       int           `json:"tolerance_late_minutes"`
	ToleranceEarlyLeaveMinutes int           `json:"tolerance_early_leave_minutes"`
	WorkingDays                []int         `json:"working_days,omitempty"` // ISO weekdays, 1=Monday .. 7=Sunday
	Days                       []ScheduleDay `json:"days,omitempty"`
	CreatedAt                  time.Time     `json:"created_at"`
	UpdatedAt                  time.Time     `json:"updated_at"`
}

type ScheduleDay struct {
	Weekday   int        `json:"weekday"` // ISO weekday, 1=Monday .. 7=Sunday
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// EmployeeScheduleAssignment binds an employee to a schedule for a date
// range. A nil EndDate means the assignment is open-ended.
type EmployeeScheduleAssignment struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	WorkScheduleID string     `json:"work_schedule_id"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ResolvedDay is the schedule outcome for one employee-day: the applicable
// schedule (nil when none), the expected window for the date, and whether
// the date is a working day under that schedule.
type ResolvedDay struct {
	Schedule     *WorkSchedule `json:"schedule,omitempty"`
	Start        *time.Time    `json:"start,omitempty"`
	End          *time.Time    `json:"end,omitempty"`
	IsWorkingDay bool          `json:"is_working_day"`
}

// IsWorkingWeekday reports whether the ISO weekday belongs to the
// schedule's working-day set.
func (ws *WorkSchedule) IsWorkingWeekday(isoWeekday int) bool {
	for _, d := range ws.WorkingDays {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// DayTimes returns the expected start and end for the ISO weekday:
// day-specific times when present, else the generic fallback. Either
// result may be nil, in which case the date is not a working day.
func (ws *WorkSchedule) DayTimes(isoWeekday int) (start, end *time.Time) {
	start, end = ws.GenericStart, ws.GenericEnd
	for _, d := range ws.Days {
		if d.Weekday != isoWeekday {
			continue
		}
		if d.StartTime != nil {
			start = d.StartTime
		}
		if d.EndTime != nil {
			end = d.EndTime
		}
		break
	}
	return start, end
}

// ISOWeekday maps time.Weekday to ISO numbering with Sunday as 7.
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

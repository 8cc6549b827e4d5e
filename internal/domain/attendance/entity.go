package attendance

import "time"

// DayStatus is the authoritative outcome for one employee-day.
type DayStatus string

const (
	StatusPresent     DayStatus = "present"
	StatusLate        DayStatus = "late"
	StatusEarlyLeave  DayStatus = "early_leave"
	StatusPartial     DayStatus = "partial"
	StatusAbsent      DayStatus = "absent"
	StatusWeekend     DayStatus = "weekend"
	StatusHoliday     DayStatus = "holiday"
	StatusLeave       DayStatus = "leave"
	StatusSick        DayStatus = "sick"
	StatusMission     DayStatus = "mission"
	StatusTraining    DayStatus = "training"
	StatusRecovery    DayStatus = "recovery"
	StatusRecoveryOff DayStatus = "recovery_off"
	StatusOvertime    DayStatus = "overtime"
	StatusPending     DayStatus = "pending"
)

// Record source values.
const (
	SourceClock      = "clock"
	SourceCorrection = "correction"
)

// DailyRecord is the system of record for one employee-day. At most one
// row exists per (employee, date); writes go through a conflict-resolving
// upsert.
type DailyRecord struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	Date              time.Time  `json:"date"`
	ClockInAt         *time.Time `json:"clock_in_at,omitempty"`
	ClockOutAt        *time.Time `json:"clock_out_at,omitempty"`
	DayStatus         DayStatus  `json:"day_status"`
	LateMinutes       int        `json:"late_minutes"`
	EarlyLeaveMinutes int        `json:"early_leave_minutes"`
	GrossMinutes      int        `json:"gross_minutes"`
	NetWorkedMinutes  int        `json:"net_worked_minutes"`
	OvertimeMinutes   int        `json:"overtime_minutes"`
	Source            string     `json:"source"`
	Notes             *string    `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Joined for responses
	EmployeeName *string `json:"employee_name,omitempty"`
}

// CorrectionRequest asks to retroactively set a day's clock-in/out. It
// moves through the multi-level approval chain; terminal approval rewrites
// the daily record.
type CorrectionRequest struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Date         time.Time `json:"date"`
	RequestedIn  *string   `json:"requested_in,omitempty"` // HH:MM[:SS]
	RequestedOut *string   `json:"requested_out,omitempty"`
	Reason       *string   `json:"reason,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

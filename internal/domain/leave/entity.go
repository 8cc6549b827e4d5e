package leave

import "time"

// Category groups leave types; the "other" category never touches the
// leave balance.
type Category string

const (
	CategoryStandard Category = "standard"
	CategoryOther    Category = "other"
)

// LeaveType is the taxonomy record: code drives the day-status label
// mapping, category drives balance deduction.
type LeaveType struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeaveRequest is a time-off request. Status holds the persisted approval
// state string; it is mutated only by the approval engine.
type LeaveRequest struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	LeaveTypeID     string    `json:"leave_type_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	DaysRequested   float64   `json:"days_requested"`
	Reason          *string   `json:"reason,omitempty"`
	Status          string    `json:"status"`
	BalanceDeducted bool      `json:"balance_deducted"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined for responses
	LeaveTypeCode *string `json:"leave_type_code,omitempty"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	EmployeeName  *string `json:"employee_name,omitempty"`
}

// Balance tracks remaining days per employee and leave type.
type Balance struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	LeaveTypeID   string    `json:"leave_type_id"`
	RemainingDays float64   `json:"remaining_days"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ApprovedLeave is the read-only fact the day-status calculator consumes:
// an approved request covering a date, with its type code resolved.
type ApprovedLeave struct {
	RequestID string
	TypeCode  string
}

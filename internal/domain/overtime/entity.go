package overtime

import "time"

// RateType classifies an overtime period's pay rate.
type RateType string

const (
	RateNormal   RateType = "normal"
	RateExtended RateType = "extended"
	RateSpecial  RateType = "special"
)

// RatePrecedence orders rate types for tie-breaking when several periods
// overlap the same worked interval: special > extended > normal.
func RatePrecedence(r RateType) int {
	switch r {
	case RateSpecial:
		return 3
	case RateExtended:
		return 2
	default:
		return 1
	}
}

// Request is a single-day extra-hours request approved by the direct
// manager only.
type Request struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	Date           time.Time `json:"date"`
	EstimatedHours float64   `json:"estimated_hours"`
	Reason         *string   `json:"reason,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Period is an admin-declared time window eligible for an overtime rate,
// shared across its assigned employees. Start and end carry only their
// wall-clock component.
type Period struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	RateType  RateType  `json:"rate_type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

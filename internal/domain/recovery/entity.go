package recovery

import "time"

// Scope limits a declaration to part of the organization.
type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeDepartment Scope = "department"
	ScopeSegment    Scope = "segment"
	ScopeCentre     Scope = "centre"
)

// Declaration is an organization-declared exception day: either a day off
// owed to employees (IsDayOff) or a day that must be worked to repay an
// earlier day off.
type Declaration struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	IsDayOff  bool      `json:"is_day_off"`
	Scope     Scope     `json:"scope"`
	ScopeID   *string   `json:"scope_id,omitempty"` // department/segment/centre id; nil for ScopeAll
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

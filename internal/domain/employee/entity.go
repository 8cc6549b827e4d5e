package employee

import "time"

// Employee is the directory record the core reads. It is created and
// maintained by HR administration outside this module.
type Employee struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profile_id"`
	FullName     string    `json:"full_name"`
	DepartmentID *string   `json:"department_id,omitempty"`
	SegmentID    *string   `json:"segment_id,omitempty"`
	CentreID     *string   `json:"centre_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

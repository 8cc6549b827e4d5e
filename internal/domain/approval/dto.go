package approval

import "time"

// RequestKind names the request types the approval engine drives.
type RequestKind string

const (
	KindLeave      RequestKind = "leave"
	KindOvertime   RequestKind = "overtime"
	KindCorrection RequestKind = "correction"
)

func (k RequestKind) Valid() bool {
	switch k {
	case KindLeave, KindOvertime, KindCorrection:
		return true
	}
	return false
}

// Decision is the outcome of an approve/reject/cancel operation.
type Decision struct {
	NewStatus string `json:"new_status"`
	IsFinal   bool   `json:"is_final"`
	NextLevel *int   `json:"next_level,omitempty"`
}

// Record is one approval-trail entry: who decided what at which rank.
// Modeled as an ordered list so arbitrary chain depth needs no
// schema-level special-casing.
type Record struct {
	ID          string      `json:"id"`
	RequestKind RequestKind `json:"request_kind"`
	RequestID   string      `json:"request_id"`
	Rank        int         `json:"rank"`
	ApproverID  string      `json:"approver_id"`
	Action      string      `json:"action"` // approved / rejected / cancelled
	Comment     *string     `json:"comment,omitempty"`
	DecidedAt   time.Time   `json:"decided_at"`
}

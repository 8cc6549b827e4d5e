package approval

import "errors"

var (
	ErrUnknownStatus      = errors.New("unknown approval status")
	ErrNotAnEmployee      = errors.New("acting user does not map to an employee")
	ErrNoApproverAtLevel  = errors.New("no approver configured at this level")
	ErrNotCurrentApprover = errors.New("not the expected approver for the current level")
	ErrAlreadyProcessed   = errors.New("request is already in a terminal state")
	ErrNotApproved        = errors.New("request is not in an approved state")
	ErrCommentRequired    = errors.New("a comment is required to reject a request")
	ErrReasonRequired     = errors.New("a reason is required to cancel a request")
	ErrNotPermitted       = errors.New("not permitted to cancel this request")
	ErrRequestNotFound    = errors.New("request not found")
)

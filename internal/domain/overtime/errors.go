package overtime

import "errors"

var (
	ErrRequestNotFound = errors.New("overtime request not found")
)

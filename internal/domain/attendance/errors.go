package attendance

import "errors"

var (
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrCorrectionNotFound = errors.New("correction request not found")
	ErrAlreadyClockedIn   = errors.New("already clocked in for this date")
	ErrNotClockedIn       = errors.New("no clock-in recorded for this date")
	ErrAlreadyClockedOut  = errors.New("already clocked out for this date")
)

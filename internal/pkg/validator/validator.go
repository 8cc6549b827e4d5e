package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])(:([0-5][0-9]))?$`)

// NormalizeClockTime normalizes a wall time string to HH:MM:SS. Accepts
// HH:MM and HH:MM:SS; anything else is rejected.
func NormalizeClockTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	m := clockTimeRegex.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", s)
	}
	sec := m[4]
	if sec == "" {
		sec = "00"
	}
	return m[1] + ":" + m[2] + ":" + sec, nil
}

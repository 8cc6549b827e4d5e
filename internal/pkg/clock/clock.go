package clock

import "time"

// Clock provides the current time for timestamping clock events and
// approval decisions. Production code uses the real wall clock or an
// admin-anchored virtual clock; tests substitute a fixed instant.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Real returns a Clock backed by the system wall clock.
func Real() Clock {
	return realClock{}
}

// VirtualClock reports a fictitious current time anchored by an admin.
// The desired instant and the real instant captured at configuration
// time advance together: Now = desired + (realNow - referenceReal).
type VirtualClock struct {
	desired       time.Time
	referenceReal time.Time
}

func NewVirtual(desired, referenceReal time.Time) VirtualClock {
	return VirtualClock{desired: desired, referenceReal: referenceReal}
}

func (v VirtualClock) Now() time.Time {
	return v.desired.Add(time.Since(v.referenceReal))
}

// Fixed always returns the same instant. Intended for tests.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

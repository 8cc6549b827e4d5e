package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVirtualClock_AdvancesFromAnchor(t *testing.T) {
	t.Parallel()

	desired := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	referenceReal := time.Now().Add(-2 * time.Hour)

	v := NewVirtual(desired, referenceReal)
	got := v.Now()

	// Two hours of real time have elapsed since the anchor was captured,
	// so the virtual clock must read two hours past the desired instant.
	expected := desired.Add(2 * time.Hour)
	assert.WithinDuration(t, expected, got, 5*time.Second)
}

func TestFixed_Now(t *testing.T) {
	t.Parallel()

	instant := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, instant, Fixed(instant).Now())
}

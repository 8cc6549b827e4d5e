package holiday

import "time"

// PublicHoliday is a non-working calendar date. Admin-managed; read-only
// to the core.
type PublicHoliday struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeclockRecord is one clock-in/clock-out pair. ClockOut is nil while the
// session is open; at most one open record per user is enforced by the
// service, not by the schema.
type TimeclockRecord struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ClockIn   time.Time  `json:"clock_in"`
	ClockOut  *time.Time `json:"clock_out"`
	Notes     *string    `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

func (r *TimeclockRecord) Open() bool { return r.ClockOut == nil }

type TimeclockRequest struct {
	Notes *string `json:"notes"`
}

// StatsBucket is one bar of the statistics chart.
type StatsBucket struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// TimeclockStats is the full statistics payload, derived from the records on
// every read.
type TimeclockStats struct {
	Period      string        `json:"period"`
	Buckets     []StatsBucket `json:"buckets"`
	TodayHours  float64       `json:"today_hours"`
	WeekHours   float64       `json:"week_hours"`
	MonthHours  float64       `json:"month_hours"`
	TotalHours  float64       `json:"total_hours"`
	RecordCount int           `json:"record_count"`
	OpenSession bool          `json:"open_session"`
}

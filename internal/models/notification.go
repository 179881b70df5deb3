package models

import "time"

// PushFailure records one failed delivery attempt within a batch.
type PushFailure struct {
	TargetIndex int    `json:"target_index"`
	Reason      string `json:"reason"`
}

// NotificationOutcome is the result of one fan-out attempt for a record.
// Simulated marks the synthetic single-success outcome emitted when no
// push-capable targets are configured.
type NotificationOutcome struct {
	TargetCount  int           `json:"target_count"`
	SuccessCount int           `json:"success_count"`
	Failures     []PushFailure `json:"failures,omitempty"`
	Simulated    bool          `json:"simulated,omitempty"`
}

// Sighting is a citizen report that a missing person was seen.
type Sighting struct {
	ID         int64     `json:"id" db:"id"`
	PersonID   string    `json:"person_id" db:"person_id"`
	Lat        float64   `json:"lat" db:"reporter_lat"`
	Lng        float64   `json:"lng" db:"reporter_lng"`
	ReportedAt time.Time `json:"reported_at" db:"reported_at"`
	Status     string    `json:"status" db:"status"`
}

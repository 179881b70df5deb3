package models

import "time"

// DeviceToken is a registered push-notification destination.
// Tokens are unique; delivery failures deactivate rather than delete.
type DeviceToken struct {
	Token        string    `json:"token" db:"token"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	Platform     string    `json:"platform" db:"platform"`
	Active       bool      `json:"active" db:"active"`
	IsTest       bool      `json:"is_test" db:"is_test"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

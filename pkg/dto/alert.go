package dto

import "github.com/your-org/amber/internal/models"

// Live broadcast event names.
const (
	EventNewMissingPerson       = "new_missing_person"
	EventSightingReported       = "sighting_reported"
	EventManualNotificationSent = "manual_notification_sent"
)

// AlertEvent is the wire message for the live dashboard feed and the
// ALERTS queue: {"type": <event-name>, "data": <payload>}.
type AlertEvent struct {
	Type   string                      `json:"type"`
	Data   any                         `json:"data"`
	Result *models.NotificationOutcome `json:"result,omitempty"`
}

// SightingData is the payload of a sighting_reported event.
type SightingData struct {
	PersonID  string             `json:"person_id"`
	Location  models.Coordinates `json:"location"`
	Timestamp string             `json:"timestamp"`
}

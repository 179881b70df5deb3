package dto

import "github.com/your-org/amber/internal/models"

type RegisterTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
	Platform string `json:"platform"`
	IsTest   bool   `json:"is_test"`
}

type SightingRequest struct {
	PersonID         string             `json:"person_id" binding:"required"`
	ReporterLocation models.Coordinates `json:"reporter_location" binding:"required"`
	Timestamp        string             `json:"timestamp"`
}

// ManualNotificationRequest triggers an operator-initiated push for a record,
// optionally restricted to specific target tokens.
type ManualNotificationRequest struct {
	Person       PersonResponse `json:"person" binding:"required"`
	TargetTokens []string       `json:"target_tokens"`
	TestMode     bool           `json:"test_mode"`
}

type StatisticsResponse struct {
	TotalActive         int   `json:"total_active"`
	HighPriority        int   `json:"high_priority"`
	TodayFetches        int   `json:"today_fetches"`
	TodayFetchSuccesses int   `json:"today_fetch_successes"`
	TodayNotifications  int   `json:"today_notifications"`
	TodayPushSuccesses  int   `json:"today_push_successes"`
	NextFetchInSeconds  int64 `json:"next_fetch_in_seconds"`
}

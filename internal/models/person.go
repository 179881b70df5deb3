package models

import "time"

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusResolved Status = "RESOLVED"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MissingPerson is one ingested case from the registry.
// ID and CreatedAt are immutable after first persistence; Status only ever
// moves ACTIVE -> RESOLVED.
type MissingPerson struct {
	ID          string              `json:"id" db:"id"`
	Name        string              `json:"name,omitempty" db:"name"`
	Age         int                 `json:"age,omitempty" db:"age"` // 0 means unknown
	Gender      string              `json:"gender,omitempty" db:"gender"`
	Location    string              `json:"location,omitempty" db:"location"`
	Description string              `json:"description,omitempty" db:"description"`
	PhotoKey    string              `json:"photo_key,omitempty" db:"photo_key"`
	Priority    Priority            `json:"priority" db:"priority"`
	RiskFactors []string            `json:"risk_factors" db:"risk_factors"`
	Entities    map[string][]string `json:"entities" db:"entities"`
	Category    string              `json:"category,omitempty" db:"category"`
	Lat         float64             `json:"lat" db:"lat"`
	Lng         float64             `json:"lng" db:"lng"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
	Status      Status              `json:"status" db:"status"`
}

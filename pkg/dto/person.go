package dto

import (
	"time"

	"github.com/your-org/amber/internal/models"
)

// PersonResponse is the wire form of a missing-person record.
type PersonResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name,omitempty"`
	Age         int                 `json:"age,omitempty"`
	Gender      string              `json:"gender,omitempty"`
	Location    string              `json:"location,omitempty"`
	Description string              `json:"description,omitempty"`
	PhotoURL    string              `json:"photo_url,omitempty"`
	Priority    string              `json:"priority"`
	RiskFactors []string            `json:"risk_factors"`
	Entities    map[string][]string `json:"entities"`
	Category    string              `json:"category,omitempty"`
	Lat         float64             `json:"lat"`
	Lng         float64             `json:"lng"`
	CreatedAt   string              `json:"created_at"`
	Status      string              `json:"status"`
}

// FromPerson converts a stored record to its wire form. photoURL is the
// API path serving the stored photo, empty when no photo exists.
func FromPerson(p *models.MissingPerson, photoURL string) PersonResponse {
	return PersonResponse{
		ID:          p.ID,
		Name:        p.Name,
		Age:         p.Age,
		Gender:      p.Gender,
		Location:    p.Location,
		Description: p.Description,
		PhotoURL:    photoURL,
		Priority:    string(p.Priority),
		RiskFactors: p.RiskFactors,
		Entities:    p.Entities,
		Category:    p.Category,
		Lat:         p.Lat,
		Lng:         p.Lng,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		Status:      string(p.Status),
	}
}

// ToModel converts the wire form back to a record, used by the manual
// notification endpoint where the operator supplies the person inline.
func (r PersonResponse) ToModel() *models.MissingPerson {
	createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
	status := models.Status(r.Status)
	if status == "" {
		status = models.StatusActive
	}
	return &models.MissingPerson{
		ID:          r.ID,
		Name:        r.Name,
		Age:         r.Age,
		Gender:      r.Gender,
		Location:    r.Location,
		Description: r.Description,
		Priority:    models.Priority(r.Priority),
		RiskFactors: r.RiskFactors,
		Entities:    r.Entities,
		Category:    r.Category,
		Lat:         r.Lat,
		Lng:         r.Lng,
		CreatedAt:   createdAt,
		Status:      status,
	}
}

type PersonListResponse struct {
	Persons []PersonResponse `json:"persons"`
	Total   int              `json:"total"`
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/amber/internal/api/ws"
	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/storage"
	"github.com/your-org/amber/pkg/dto"
)

type SightingHandler struct {
	db  *storage.PostgresStore
	hub *ws.Hub
}

func NewSightingHandler(db *storage.PostgresStore, hub *ws.Hub) *SightingHandler {
	return &SightingHandler{db: db, hub: hub}
}

// Create records a citizen sighting report and pushes it to the live feed.
func (h *SightingHandler) Create(c *gin.Context) {
	var req dto.SightingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := h.db.GetPerson(c.Request.Context(), req.PersonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if person == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}

	reportedAt := time.Now()
	if req.Timestamp != "" {
		if t, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			reportedAt = t
		}
	}

	sighting := &models.Sighting{
		PersonID:   req.PersonID,
		Lat:        req.ReporterLocation.Lat,
		Lng:        req.ReporterLocation.Lng,
		ReportedAt: reportedAt,
	}
	if err := h.db.CreateSighting(c.Request.Context(), sighting); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.hub.BroadcastEvent(&dto.AlertEvent{
		Type: dto.EventSightingReported,
		Data: dto.SightingData{
			PersonID:  req.PersonID,
			Location:  req.ReporterLocation,
			Timestamp: reportedAt.UTC().Format(time.RFC3339),
		},
	})

	c.JSON(http.StatusCreated, gin.H{
		"sighting_id": sighting.ID,
		"status":      sighting.Status,
	})
}

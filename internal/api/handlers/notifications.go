package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/amber/internal/api/ws"
	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/notify"
	"github.com/your-org/amber/internal/storage"
	"github.com/your-org/amber/pkg/dto"
)

type NotificationHandler struct {
	db         *storage.PostgresStore
	dispatcher *notify.Dispatcher
	hub        *ws.Hub
}

func NewNotificationHandler(db *storage.PostgresStore, dispatcher *notify.Dispatcher, hub *ws.Hub) *NotificationHandler {
	return &NotificationHandler{db: db, dispatcher: dispatcher, hub: hub}
}

// Send triggers an operator-initiated push for a record. Target selection:
// explicit tokens from the request, test tokens in test mode, otherwise
// every active device.
func (h *NotificationHandler) Send(c *gin.Context) {
	var req dto.ManualNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Person.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing person id"})
		return
	}

	person := req.Person.ToModel()

	tokens := req.TargetTokens
	if len(tokens) == 0 && req.TestMode {
		testTokens, err := h.db.TestDeviceTokens(c.Request.Context(), 10)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, t := range testTokens {
			tokens = append(tokens, t.Token)
		}
	}

	var result *models.NotificationOutcome
	var err error
	if len(tokens) > 0 {
		result, err = h.dispatcher.DispatchTo(c.Request.Context(), person, tokens)
	} else {
		result, err = h.dispatcher.Dispatch(c.Request.Context(), person)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.hub.BroadcastEvent(&dto.AlertEvent{
		Type:   dto.EventManualNotificationSent,
		Data:   req.Person,
		Result: result,
	})

	c.JSON(http.StatusOK, result)
}

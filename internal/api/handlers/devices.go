package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/storage"
	"github.com/your-org/amber/pkg/dto"
)

type DeviceHandler struct {
	db *storage.PostgresStore
}

func NewDeviceHandler(db *storage.PostgresStore) *DeviceHandler {
	return &DeviceHandler{db: db}
}

// Register stores or refreshes a push token. Re-registering an existing
// token reactivates it.
func (h *DeviceHandler) Register(c *gin.Context) {
	var req dto.RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = "android"
	}

	token := models.DeviceToken{
		Token:        req.Token,
		OwnerID:      req.UserID,
		Platform:     platform,
		Active:       true,
		IsTest:       req.IsTest,
		RegisteredAt: time.Now(),
	}

	if err := h.db.UpsertDeviceToken(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "registered"})
}

// ListActive returns the current fan-out target set.
func (h *DeviceHandler) ListActive(c *gin.Context) {
	tokens, err := h.db.ActiveDeviceTokens(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens, "total": len(tokens)})
}

// ListTest returns recently registered test tokens for operator test sends.
func (h *DeviceHandler) ListTest(c *gin.Context) {
	tokens, err := h.db.TestDeviceTokens(c.Request.Context(), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens, "total": len(tokens)})
}

// Deactivate removes a token from the fan-out target set without deleting
// its registration history.
func (h *DeviceHandler) Deactivate(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	if err := h.db.DeactivateDeviceToken(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

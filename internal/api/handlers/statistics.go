package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/amber/internal/storage"
	"github.com/your-org/amber/pkg/dto"
)

// StatsStore is the slice of persistence the statistics endpoint reads.
type StatsStore interface {
	Statistics(ctx context.Context) (*storage.Statistics, error)
	LastFetchTime(ctx context.Context) (time.Time, error)
}

type StatisticsHandler struct {
	db StatsStore
	// fetchInterval is the registry rate-limit window, the same one the
	// poller's fetch cache enforces.
	fetchInterval time.Duration
}

func NewStatisticsHandler(db StatsStore, fetchInterval time.Duration) *StatisticsHandler {
	return &StatisticsHandler{db: db, fetchInterval: fetchInterval}
}

// Get summarises today's pipeline activity for the dashboard.
func (h *StatisticsHandler) Get(c *gin.Context) {
	stats, err := h.db.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var nextFetchIn int64
	if lastFetch, err := h.db.LastFetchTime(c.Request.Context()); err == nil && !lastFetch.IsZero() {
		remaining := time.Until(lastFetch.Add(h.fetchInterval))
		if remaining > 0 {
			nextFetchIn = int64(remaining.Seconds())
		}
	}

	c.JSON(http.StatusOK, dto.StatisticsResponse{
		TotalActive:         stats.TotalActive,
		HighPriority:        stats.HighPriority,
		TodayFetches:        stats.TodayFetches,
		TodayFetchSuccesses: stats.TodayFetchSuccesses,
		TodayNotifications:  stats.TodayNotifications,
		TodayPushSuccesses:  stats.TodayPushSuccesses,
		NextFetchInSeconds:  nextFetchIn,
	})
}

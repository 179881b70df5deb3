package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/amber/internal/storage"
	"github.com/your-org/amber/pkg/dto"
)

type fakeStatsStore struct {
	stats     *storage.Statistics
	lastFetch time.Time
}

func (f *fakeStatsStore) Statistics(ctx context.Context) (*storage.Statistics, error) {
	return f.stats, nil
}

func (f *fakeStatsStore) LastFetchTime(ctx context.Context) (time.Time, error) {
	return f.lastFetch, nil
}

func getStatistics(t *testing.T, h *StatisticsHandler) dto.StatisticsResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/statistics", nil)
	h.Get(c)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestStatisticsCountdownUsesFetchInterval(t *testing.T) {
	// The countdown counts toward the end of the registry rate-limit
	// window, not toward the next poll cycle.
	db := &fakeStatsStore{
		stats:     &storage.Statistics{TotalActive: 3, HighPriority: 1},
		lastFetch: time.Now().Add(-30 * time.Second),
	}
	h := NewStatisticsHandler(db, 300*time.Second)

	resp := getStatistics(t, h)
	assert.Equal(t, 3, resp.TotalActive)
	assert.InDelta(t, 270, resp.NextFetchInSeconds, 2)
}

func TestStatisticsCountdownZeroWhenWindowElapsed(t *testing.T) {
	db := &fakeStatsStore{
		stats:     &storage.Statistics{},
		lastFetch: time.Now().Add(-10 * time.Minute),
	}
	h := NewStatisticsHandler(db, 300*time.Second)

	resp := getStatistics(t, h)
	assert.Zero(t, resp.NextFetchInSeconds)
}

func TestStatisticsCountdownZeroWithoutFetchHistory(t *testing.T) {
	db := &fakeStatsStore{stats: &storage.Statistics{}}
	h := NewStatisticsHandler(db, 300*time.Second)

	resp := getStatistics(t, h)
	assert.Zero(t, resp.NextFetchInSeconds)
}

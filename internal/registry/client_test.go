package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/amber/internal/config"
)

func TestFlexStringUnmarshal(t *testing.T) {
	var rec RawRecord
	err := json.Unmarshal([]byte(`{
		"msspsnIdntfccd": 20250601,
		"nm": "홍길동",
		"ageNow": "82",
		"age": 79
	}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, "20250601", rec.ID.String())
	assert.Equal(t, 82, rec.AgeNow.Int())
	assert.Equal(t, 79, rec.Age.Int())
}

func TestFlexStringNullAndMalformed(t *testing.T) {
	var rec RawRecord
	err := json.Unmarshal([]byte(`{"msspsnIdntfccd": null, "ageNow": "unknown"}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, "", rec.ID.String())
	assert.Equal(t, 0, rec.AgeNow.Int())
}

func TestFetchPostsFormAndCachesResult(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-id", r.PostForm.Get("esntlId"))
		assert.Equal(t, "test-key", r.PostForm.Get("authKey"))
		assert.Equal(t, "50", r.PostForm.Get("rowSize"))
		assert.Equal(t, "1", r.PostForm.Get("page"))
		assert.Len(t, r.PostForm.Get("occrde"), 8)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"list": []map[string]any{
				{"msspsnIdntfccd": "1", "nm": "홍길동", "ageNow": "82"},
			},
			"totalCount": 1,
		})
	}))
	defer srv.Close()

	client := NewClient(config.RegistryConfig{
		URL:         srv.URL,
		EssentialID: "test-id",
		AuthKey:     "test-key",
		PageSize:    50,
		MinInterval: 5 * time.Minute,
		CacheTTL:    time.Hour,
	})

	records, attempted, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, attempted)
	require.Len(t, records, 1)
	assert.Equal(t, "홍길동", records[0].Name)

	// Second call within the TTL must be served from cache.
	records, attempted, err = client.Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, attempted)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, calls)
}

func TestFetchRateLimitedWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"list": []any{}, "totalCount": 0})
	}))
	defer srv.Close()

	client := NewClient(config.RegistryConfig{
		URL:         srv.URL,
		PageSize:    50,
		MinInterval: 5 * time.Minute,
		CacheTTL:    time.Nanosecond, // cache expires immediately
	})

	_, attempted, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, attempted)

	// Cache has expired but the rate limit still holds: skip, don't call out.
	records, attempted, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, attempted)
	assert.Nil(t, records)
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(config.RegistryConfig{
		URL:         srv.URL,
		PageSize:    50,
		MinInterval: 5 * time.Minute,
		CacheTTL:    time.Hour,
	})

	_, attempted, err := client.Fetch(context.Background())
	assert.True(t, attempted)
	assert.Error(t, err)
}

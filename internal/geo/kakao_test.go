package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/amber/internal/config"
	"github.com/your-org/amber/internal/models"
)

func TestLocateParsesFirstDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KakaoAK test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "서울특별시 강남구", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"documents":[{"x":"127.0276","y":"37.4979"},{"x":"0","y":"0"}]}`))
	}))
	defer srv.Close()

	g := NewKakaoGeocoder(config.GeocodeConfig{URL: srv.URL, RESTKey: "test-key"})

	got := g.Locate(context.Background(), "서울특별시 강남구")
	assert.Equal(t, models.Coordinates{Lat: 37.4979, Lng: 127.0276}, got)
}

func TestLocateEmptyAddressUsesFallback(t *testing.T) {
	g := NewKakaoGeocoder(config.GeocodeConfig{URL: "http://unused", RESTKey: "k"})
	assert.Equal(t, Fallback, g.Locate(context.Background(), ""))
}

func TestLocateFallsBackOnFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"upstream error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"no results", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"documents":[]}`))
		}},
		{"malformed coordinates", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"documents":[{"x":"not-a-number","y":"37.5"}]}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			g := NewKakaoGeocoder(config.GeocodeConfig{URL: srv.URL, RESTKey: "k"})
			assert.Equal(t, Fallback, g.Locate(context.Background(), "어딘가"))
		})
	}
}

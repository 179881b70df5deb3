package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/your-org/amber/internal/config"
	"github.com/your-org/amber/internal/models"
)

// Fallback is the national-centroid coordinate pair used whenever geocoding
// fails or the address is empty.
var Fallback = models.Coordinates{Lat: 36.5, Lng: 127.8}

type kakaoDocument struct {
	X string `json:"x"` // longitude
	Y string `json:"y"` // latitude
}

type kakaoResponse struct {
	Documents []kakaoDocument `json:"documents"`
}

// KakaoGeocoder resolves street addresses via the Kakao local API.
type KakaoGeocoder struct {
	cfg    config.GeocodeConfig
	client *http.Client
}

func NewKakaoGeocoder(cfg config.GeocodeConfig) *KakaoGeocoder {
	return &KakaoGeocoder{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Locate geocodes an address. Any failure degrades to the fallback pair;
// the error is logged, never returned.
func (g *KakaoGeocoder) Locate(ctx context.Context, address string) models.Coordinates {
	if address == "" {
		return Fallback
	}

	coords, err := g.locate(ctx, address)
	if err != nil {
		slog.Warn("geocode failed, using fallback", "address", address, "error", err)
		return Fallback
	}
	return coords
}

func (g *KakaoGeocoder) locate(ctx context.Context, address string) (models.Coordinates, error) {
	reqURL := g.cfg.URL + "?query=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Fallback, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+g.cfg.RESTKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return Fallback, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Fallback, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body kakaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Fallback, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(body.Documents) == 0 {
		return Fallback, fmt.Errorf("no geocode results")
	}

	doc := body.Documents[0]
	lat, err := strconv.ParseFloat(doc.Y, 64)
	if err != nil {
		return Fallback, fmt.Errorf("parse latitude %q: %w", doc.Y, err)
	}
	lng, err := strconv.ParseFloat(doc.X, 64)
	if err != nil {
		return Fallback, fmt.Errorf("parse longitude %q: %w", doc.X, err)
	}

	return models.Coordinates{Lat: lat, Lng: lng}, nil
}

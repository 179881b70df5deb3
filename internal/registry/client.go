package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/your-org/amber/internal/config"
)

// FlexString tolerates registry fields that arrive either as JSON strings
// or as bare numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = FlexString(b)
	return nil
}

func (s FlexString) String() string { return string(s) }

// Int parses the value as an integer, returning 0 when absent or malformed.
func (s FlexString) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(s)))
	if err != nil {
		return 0
	}
	return n
}

// RawRecord is one missing-person entry as returned by the registry.
type RawRecord struct {
	ID          FlexString `json:"msspsnIdntfccd"`
	Name        string     `json:"nm"`
	AgeNow      FlexString `json:"ageNow"`
	Age         FlexString `json:"age"`
	Gender      string     `json:"sexdstnDscd"`
	Address     string     `json:"occrAdres"`
	Description string     `json:"etcSpfeatr"`
	PhotoBase64 string     `json:"tknphotoFile"`
}

type listResponse struct {
	List       []RawRecord `json:"list"`
	TotalCount int         `json:"totalCount"`
}

// Client fetches today's records from the national registry behind the
// rate-limited cache.
type Client struct {
	cfg    config.RegistryConfig
	cache  *FetchCache
	client *http.Client
	now    func() time.Time
}

func NewClient(cfg config.RegistryConfig) *Client {
	return &Client{
		cfg:    cfg,
		cache:  NewFetchCache(cfg.MinInterval, cfg.CacheTTL),
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// Fetch returns today's records, serving from cache when possible and
// short-circuiting to an empty result when the rate limit forbids a call.
// attempted is true only when an outbound request was actually made.
func (c *Client) Fetch(ctx context.Context) (records []RawRecord, attempted bool, err error) {
	if cached, ok := c.cache.Cached(); ok {
		slog.Debug("serving registry records from cache", "count", len(cached))
		return cached, false, nil
	}

	if !c.cache.ShouldFetch() {
		slog.Debug("registry fetch rate-limited", "next_in", c.cache.NextFetchIn().String())
		return nil, false, nil
	}

	records, err = c.fetchRemote(ctx)
	if err != nil {
		return nil, true, err
	}

	c.cache.Update(records)
	return records, true, nil
}

func (c *Client) fetchRemote(ctx context.Context) ([]RawRecord, error) {
	form := url.Values{
		"esntlId": {c.cfg.EssentialID},
		"authKey": {c.cfg.AuthKey},
		"rowSize": {strconv.Itoa(c.cfg.PageSize)},
		"page":    {"1"},
		"occrde":  {c.now().Format("20060102")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}

	slog.Info("registry fetch complete", "count", len(body.List), "total", body.TotalCount)
	return body.List, nil
}

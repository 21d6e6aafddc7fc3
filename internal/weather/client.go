// Package weather provides current conditions for the island, used by the
// chat's weather answers.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	domerrors "github.com/inculture/skopelos-chatbot/internal/errors"
	"github.com/inculture/skopelos-chatbot/internal/locale"
)

const (
	// DefaultBaseURL is the weatherapi.com endpoint root.
	DefaultBaseURL = "https://api.weatherapi.com"
	// DefaultLocation is the place queried for current conditions.
	DefaultLocation = "Skopelos"
)

// Snapshot is the decoded current-conditions response.
type Snapshot struct {
	Current *Current `json:"current"`
}

// Current holds the fields the chat answer needs.
type Current struct {
	Condition  Condition `json:"condition"`
	TempC      float64   `json:"temp_c"`
	FeelsLikeC float64   `json:"feelslike_c"`
}

// Condition is the localized description of the sky.
type Condition struct {
	Text string `json:"text"`
}

// Client calls the current-conditions API.
type Client struct {
	baseURL    string
	apiKey     string
	location   string
	httpClient *http.Client
}

// NewClient creates a weather client. Empty baseURL and location use the defaults.
func NewClient(baseURL, apiKey, location string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if location == "" {
		location = DefaultLocation
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		location:   location,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) currentURL(l locale.Locale) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", c.location)
	q.Set("lang", l.String())
	return c.baseURL + "/v1/current.json?" + q.Encode()
}

// Current fetches current conditions with the condition text in locale l.
// A response without a current block yields a nil Current and no error.
func (c *Client) Current(ctx context.Context, l locale.Locale) (*Current, error) {
	wrap := domerrors.Op{Module: "weather", Name: "fetch_current"}
	target := c.currentURL(l)
	// Keep the key out of errors and logs.
	redacted := target
	if c.apiKey != "" {
		redacted = strings.Replace(target, "key="+url.QueryEscape(c.apiKey), "key=REDACTED", 1)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, wrap.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redacted
		}
		if domerrors.IsTimeout(err) {
			err = fmt.Errorf("%w: %w", domerrors.ErrTimeout, err)
		}
		return nil, wrap.Wrap(domerrors.NewAPIError(redacted, 0, err), "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := domerrors.NewAPIError(redacted, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return nil, wrap.Wrap(apiErr, "weather api returned an error")
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, wrap.Wrap(err, "failed to decompress response")
		}
		defer func() { _ = zr.Close() }()
		body = zr
	}

	var snap Snapshot
	if err := json.NewDecoder(body).Decode(&snap); err != nil {
		return nil, wrap.Wrap(err, "failed to parse response")
	}
	return snap.Current, nil
}

package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/corpix/uarand"
	"github.com/klauspost/compress/gzip"

	domerrors "github.com/inculture/skopelos-chatbot/internal/errors"
	"github.com/inculture/skopelos-chatbot/internal/locale"
)

// DefaultBaseURL is the production content API.
const DefaultBaseURL = "https://skopelos-admin.inculture.app/api"

const mainChaptersPath = "/main-chapters?populate[0]=mainStoryboards&populate[1]=mainStoryboards.thumbnail,mainStoryboards.tags"

// Client fetches the chapter catalog from the content API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a content API client.
// An empty userAgent picks a random browser User-Agent per request.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// MainChaptersURL returns the request URL for the chapter catalog in locale l.
func (c *Client) MainChaptersURL(l locale.Locale) string {
	return c.baseURL + mainChaptersPath + "&locale=" + url.QueryEscape(l.String())
}

// GetMainChapters fetches all chapters with their storyboards for locale l.
func (c *Client) GetMainChapters(ctx context.Context, l locale.Locale) ([]Chapter, error) {
	wrap := domerrors.Op{Module: "content", Name: "fetch_chapters"}
	target := c.MainChaptersURL(l)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, wrap.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.agent())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if domerrors.IsTimeout(err) {
			err = fmt.Errorf("%w: %w", domerrors.ErrTimeout, err)
		}
		return nil, wrap.Wrap(domerrors.NewAPIError(target, 0, err), "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := domerrors.NewAPIError(target, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return nil, wrap.Wrap(apiErr, "content api returned an error")
	}

	body, closeBody, err := decodedBody(resp)
	if err != nil {
		return nil, wrap.Wrap(err, "failed to decompress response")
	}
	defer closeBody()

	chapters, err := DecodeChapters(body)
	if err != nil {
		return nil, wrap.Wrap(err, "failed to parse response")
	}
	return chapters, nil
}

func (c *Client) agent() string {
	if c.userAgent != "" {
		return c.userAgent
	}
	return uarand.GetRandom()
}

// decodedBody transparently unwraps gzip-encoded responses.
func decodedBody(resp *http.Response) (io.Reader, func(), error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return resp.Body, func() {}, nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return zr, func() { _ = zr.Close() }, nil
}

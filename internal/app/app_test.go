package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inculture/skopelos-chatbot/internal/config"
	"github.com/inculture/skopelos-chatbot/internal/content"
	"github.com/inculture/skopelos-chatbot/internal/locale"
	"github.com/inculture/skopelos-chatbot/internal/logger"
	"github.com/inculture/skopelos-chatbot/internal/metrics"
	"github.com/inculture/skopelos-chatbot/internal/weather"
)

type fakeFetcher struct {
	mu      sync.Mutex
	locales []locale.Locale
	err     error
}

func (f *fakeFetcher) GetMainChapters(_ context.Context, l locale.Locale) ([]content.Chapter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locales = append(f.locales, l)
	if f.err != nil {
		return nil, f.err
	}
	return []content.Chapter{
		{ID: 3, Title: "Destinations", Storyboards: []content.Storyboard{{ID: 7, Title: "Beaches"}}},
		{ID: 4, Title: "Culture"},
	}, nil
}

func (f *fakeFetcher) calls() []locale.Locale {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]locale.Locale(nil), f.locales...)
}

type fakeWeather struct{}

func (fakeWeather) Current(context.Context, locale.Locale) (*weather.Current, error) {
	return &weather.Current{Condition: weather.Condition{Text: "sunny"}, TempC: 24.6, FeelsLikeC: 26.2}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		ShutdownTimeout: time.Second,
		MetricsUsername: "prometheus",
		Chat: config.ChatConfig{
			DefaultLocale:    locale.English,
			NavigationDelay:  10 * time.Millisecond,
			MaxMessageLength: 20,
			NavigationBuffer: 10,
		},
	}
}

// setupTestApp creates an Application backed by in-memory upstreams.
func setupTestApp(t *testing.T, weatherSource weather.Source) (*Application, *fakeFetcher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	fetcher := &fakeFetcher{}
	app := newApplication(testConfig(), logger.NewWithWriter("debug", io.Discard), metrics.New(registry), registry, fetcher, weatherSource)
	t.Cleanup(app.processor.Close)
	return app, fetcher
}

func doJSON(t *testing.T, app *Application, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestLivenessCheck(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodGet, "/livez", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", decode[map[string]any](t, w)["status"])
}

func TestReadinessCheck(t *testing.T) {
	app, _ := setupTestApp(t, fakeWeather{})

	w := doJSON(t, app, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "content not loaded", decode[map[string]any](t, w)["reason"])

	require.NoError(t, app.processor.Refresh(context.Background()))

	w = doJSON(t, app, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "ready", body["status"])
	contentStatus := body["content"].(map[string]any)
	assert.Equal(t, "en", contentStatus["locale"])
	assert.InDelta(t, 2, contentStatus["chapters"], 0)
	assert.InDelta(t, 1, contentStatus["seq"], 0)
	assert.InDelta(t, 1, contentStatus["latest_seq"], 0)
	weatherStatus := body["weather"].(map[string]any)
	assert.Equal(t, true, weatherStatus["enabled"])
	assert.Equal(t, true, weatherStatus["available"])
}

func TestGetChat(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodGet, "/api/chat", "")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[chatView](t, w)
	assert.Equal(t, locale.English, view.Locale)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, "bot", string(view.Messages[0].Origin))
	assert.Len(t, view.QuickReplies, 4)
	assert.NotEmpty(t, view.Labels.Send)
}

func TestPostMessage_Weather(t *testing.T) {
	app, _ := setupTestApp(t, fakeWeather{})
	require.NoError(t, app.processor.Refresh(context.Background()))

	w := doJSON(t, app, http.MethodPost, "/api/chat/messages", `{"text":"weather?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[messageResponse](t, w)
	assert.Equal(t, "weather", string(resp.Intent))
	assert.Equal(t, "The weather in Skopelos is sunny, temperature 25°C, feels like 26°C.", resp.Reply)
	assert.Nil(t, resp.Navigation)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "weather?", resp.Messages[1].Text)
}

func TestPostMessage_WeatherUnavailable(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodPost, "/api/chat/messages", `{"text":"weather"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "I can't retrieve the weather right now.", decode[messageResponse](t, w).Reply)
}

func TestPostMessage_ChapterNavigation(t *testing.T) {
	app, _ := setupTestApp(t, nil)
	require.NoError(t, app.processor.Refresh(context.Background()))

	w := doJSON(t, app, http.MethodPost, "/api/chat/messages", `{"text":"destinations"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[messageResponse](t, w)
	assert.Equal(t, "chapter_navigation", string(resp.Intent))
	require.NotNil(t, resp.Navigation)
	assert.Equal(t, 3, resp.Navigation.ChapterID)
	assert.True(t, resp.Navigation.Deferred)
	assert.Len(t, resp.Messages, 2, "navigation appends no bot turn")

	require.Eventually(t, func() bool {
		return len(app.recorder.Since(0)) == 1
	}, time.Second, 5*time.Millisecond)

	w = doJSON(t, app, http.MethodGet, "/api/navigation?since=0", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	events := body["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "MainChapters", events[0].(map[string]any)["route"])

	w = doJSON(t, app, http.MethodGet, "/api/navigation?since=1", "")
	assert.Empty(t, decode[map[string]any](t, w)["events"])
}

func TestPostMessage_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType string
	}{
		{"blank", `{"text":"   "}`, "invalid_input"},
		{"too long", `{"text":"` + strings.Repeat("a", 21) + `"}`, "validation"},
		{"not json", `text`, "invalid_body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t, nil)

			w := doJSON(t, app, http.MethodPost, "/api/chat/messages", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantType, decode[map[string]any](t, w)["type"])
			assert.Len(t, app.processor.Messages(), 1, "rejected input leaves the transcript untouched")
		})
	}
}

func TestResetChat(t *testing.T) {
	app, _ := setupTestApp(t, nil)
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/chat/messages", `{"text":"hello"}`).Code)
	require.Len(t, app.processor.Messages(), 3)

	w := doJSON(t, app, http.MethodPost, "/api/chat/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[chatView](t, w).Messages, 1)
}

func TestPutLocale(t *testing.T) {
	app, fetcher := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodPut, "/api/locale", `{"locale":"el"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "el", decode[map[string]any](t, w)["locale"])

	app.processor.Wait()
	assert.Equal(t, []locale.Locale{locale.Greek}, fetcher.calls())
	assert.Equal(t, locale.Greek, app.index.Snapshot().Locale)

	w = doJSON(t, app, http.MethodGet, "/api/chat", "")
	assert.Equal(t, locale.Greek, decode[chatView](t, w).Locale)
}

func TestPutLocale_Unsupported(t *testing.T) {
	app, fetcher := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodPut, "/api/locale", `{"locale":"fr"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unsupported_locale", decode[map[string]any](t, w)["type"])
	assert.Equal(t, locale.English, app.processor.Locale())
	assert.Empty(t, fetcher.calls())
}

func TestGetNavigation_InvalidSince(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodGet, "/api/navigation?since=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetContent(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodGet, "/api/content", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[content.Snapshot](t, w).Seq)

	require.NoError(t, app.processor.Refresh(context.Background()))

	snap := decode[content.Snapshot](t, doJSON(t, app, http.MethodGet, "/api/content", ""))
	assert.Equal(t, uint64(1), snap.Seq)
	require.Len(t, snap.Chapters, 2)
	assert.Equal(t, "Destinations", snap.Chapters[0].Title)
}

func TestContentRefreshFailureKeepsServing(t *testing.T) {
	app, fetcher := setupTestApp(t, nil)
	fetcher.err = errors.New("upstream down")

	app.runContentRefresh(context.Background())

	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, app, http.MethodGet, "/readyz", "").Code)
	w := doJSON(t, app, http.MethodPost, "/api/chat/messages", `{"text":"destinations"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[messageResponse](t, w)
	assert.Equal(t, "faq", string(resp.Intent), "without chapters the message falls through to the FAQ")
	assert.Equal(t, "See the destinations on the relevant page.", resp.Reply)
}

func TestRequestIDMiddleware(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodGet, "/livez", "")
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/livez", http.NoBody)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestSecurityHeaders(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	w := doJSON(t, app, http.MethodGet, "/livez", "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := setupTestApp(t, nil)
	doJSON(t, app, http.MethodPost, "/api/chat/messages", `{"text":"   "}`)

	w := doJSON(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("skopelos_http_errors_total")))
}

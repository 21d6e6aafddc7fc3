package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/inculture/skopelos-chatbot/internal/errors"
	"github.com/inculture/skopelos-chatbot/internal/locale"
)

func TestClient_MainChaptersURL(t *testing.T) {
	c := NewClient("https://cms.example.com/api/", time.Second, "")
	assert.Equal(t,
		"https://cms.example.com/api/main-chapters?populate[0]=mainStoryboards&populate[1]=mainStoryboards.thumbnail,mainStoryboards.tags&locale=en",
		c.MainChaptersURL(locale.English))
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("", time.Second, "")
	assert.Contains(t, c.MainChaptersURL(locale.Greek), DefaultBaseURL+"/main-chapters")
}

func TestClient_GetMainChapters(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/main-chapters", r.URL.Path)
		gotQuery = r.URL.Query().Get("locale")
		gotAgent = r.UserAgent()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleChapters))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, "skopelos-test/1.0")
	chapters, err := c.GetMainChapters(context.Background(), locale.Greek)
	require.NoError(t, err)
	assert.Len(t, chapters, 3)
	assert.Equal(t, "el", gotQuery)
	assert.Equal(t, "skopelos-test/1.0", gotAgent)
}

func TestClient_GetMainChapters_RandomUserAgent(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, "").GetMainChapters(context.Background(), locale.Greek)
	require.NoError(t, err)
	assert.NotEmpty(t, gotAgent)
	assert.NotContains(t, gotAgent, "Go-http-client")
}

func TestClient_GetMainChapters_Gzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		_, _ = zw.Write([]byte(sampleChapters))
		_ = zw.Close()
	}))
	defer srv.Close()

	chapters, err := NewClient(srv.URL, time.Second, "").GetMainChapters(context.Background(), locale.English)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, "Old Town", chapters[0].Storyboards[0].Title)
}

func TestClient_GetMainChapters_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, "").GetMainChapters(context.Background(), locale.Greek)
	require.Error(t, err)

	var apiErr *domerrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)

	var opErr *domerrors.OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, domerrors.Op{Module: "content", Name: "fetch_chapters"}, opErr.Op)
}

func TestClient_GetMainChapters_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, "").GetMainChapters(context.Background(), locale.Greek)
	assert.Error(t, err)
}

func TestClient_GetMainChapters_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, time.Second, "").GetMainChapters(ctx, locale.Greek)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_GetMainChapters_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 20*time.Millisecond, "").GetMainChapters(context.Background(), locale.English)
	require.Error(t, err)
	assert.ErrorIs(t, err, domerrors.ErrTimeout)
	assert.True(t, domerrors.IsTimeout(err))
}

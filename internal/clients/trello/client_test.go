package trello

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simsportal/sims-portal-backend/internal/platform/httpx"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

func TestBoardIDFromURL(t *testing.T) {
	id, err := BoardIDFromURL("https://trello.com/b/AbC123/sims-turkiye")
	require.NoError(t, err)
	assert.Equal(t, "AbC123", id)

	id, err = BoardIDFromURL("https://www.trello.com/b/XyZ9")
	require.NoError(t, err)
	assert.Equal(t, "XyZ9", id)

	for _, bad := range []string{"", "https://example.com/b/abc/x", "https://trello.com/c/abc/card", "::"} {
		_, err := BoardIDFromURL(bad)
		assert.Error(t, err, bad)
	}
}

func newTestClient(t *testing.T, base string, retries int) *Client {
	t.Helper()
	c, err := New(logger.Nop(), Config{
		Key:          "k",
		Token:        "tok",
		BaseURL:      base,
		Timeout:      2 * time.Second,
		MaxRetries:   retries,
		RetryBackoff: time.Millisecond,
	})
	require.NoError(t, err)
	return c
}

func TestOpenCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/boards/AbC123/cards/open", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.Equal(t, `OAuth oauth_consumer_key="k", oauth_token="tok"`, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","name":"Update 3W","shortUrl":"https://trello.com/c/1"},{"id":"2","name":"Basemap"}]`))
	}))
	defer srv.Close()

	cards, err := newTestClient(t, srv.URL, 0).OpenCards(context.Background(), "https://trello.com/b/AbC123/board")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Update 3W", cards[0].Name)
	assert.Equal(t, "https://trello.com/c/1", cards[0].ShortURL)
}

func TestOpenCards_NonSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, 2).OpenCards(context.Background(), "https://trello.com/b/AbC123/board")
	require.Error(t, err)
	var se *httpx.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestOpenCards_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cards, err := newTestClient(t, srv.URL, 1).OpenCards(context.Background(), "https://trello.com/b/AbC123/board")
	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.NotNil(t, cards)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(logger.Nop(), Config{Key: "k"})
	assert.Error(t, err)
}

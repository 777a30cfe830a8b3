package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/simsportal/sims-portal-backend/internal/clients/trello"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

func TestTrackerService_Fetch(t *testing.T) {
	ctx := context.Background()
	board := "https://trello.com/b/abc/board"

	res := NewTrackerService(logger.Nop(), nil).Fetch(ctx, board)
	assert.Equal(t, TrackerNotConfigured, res.Status)
	assert.NotNil(t, res.Cards)

	src := &fakeCards{cards: []trello.Card{{ID: "a"}}}
	svc := NewTrackerService(logger.Nop(), src)

	res = svc.Fetch(ctx, "  ")
	assert.Equal(t, TrackerNotConfigured, res.Status)
	assert.Zero(t, src.calls)

	res = svc.Fetch(ctx, board)
	assert.Equal(t, TrackerAvailable, res.Status)
	assert.Equal(t, 1, res.Count)

	src.cards = nil
	res = svc.Fetch(ctx, board)
	assert.Equal(t, TrackerAvailable, res.Status)
	assert.NotNil(t, res.Cards)
	assert.Zero(t, res.Count)

	src.err = errBoom
	res = svc.Fetch(ctx, board)
	assert.Equal(t, TrackerUnavailable, res.Status)
	assert.Empty(t, res.Cards)
}

func TestTrackerService_FetchKeepsCredentialsOutOfLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	const key, token = "KEYSECRET123", "TOKSECRET456"
	client, err := trello.New(log, trello.Config{
		Key:          key,
		Token:        token,
		BaseURL:      "http://127.0.0.1:1",
		Timeout:      time.Second,
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	})
	require.NoError(t, err)

	res := NewTrackerService(log, client).Fetch(context.Background(), "https://trello.com/b/abc/board")
	assert.Equal(t, TrackerUnavailable, res.Status)

	entries := logs.All()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		for name, val := range entry.ContextMap() {
			text := fmt.Sprint(val)
			assert.False(t, strings.Contains(text, key) || strings.Contains(text, token),
				"%q field %s carries a credential: %s", entry.Message, name, text)
		}
		assert.NotContains(t, entry.Message, key)
		assert.NotContains(t, entry.Message, token)
	}
}

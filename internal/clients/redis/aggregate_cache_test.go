package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

func TestNewAggregateCache_DisabledWithoutAddr(t *testing.T) {
	c, err := NewAggregateCache(logger.Nop(), Config{})
	require.NoError(t, err)
	assert.Nil(t, c)

	// nil cache behaves as a permanent miss
	var out map[string]int
	hit, err := c.GetJSON(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.SetJSON(context.Background(), "k", 1, time.Minute))
}

func TestAggregateCache_KeyPrefix(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()

	c := newAggregateCache(logger.Nop(), rdb, "")
	assert.Equal(t, "sims:learning:averages:org", c.key("learning:averages:org"))

	c = newAggregateCache(logger.Nop(), rdb, "portal-test")
	assert.Equal(t, "portal-test:x", c.key("x"))
}

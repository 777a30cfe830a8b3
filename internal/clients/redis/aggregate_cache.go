package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type Config struct {
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db" validate:"gte=0"`
	Prefix      string        `yaml:"prefix"`
	TTL         time.Duration `yaml:"ttl"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// AggregateCache keeps JSON-encoded dashboard aggregates in Redis.
type AggregateCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewAggregateCache returns (nil, nil) when no address is configured; the
// caller treats that as caching disabled.
func NewAggregateCache(log *logger.Logger, cfg Config) (*AggregateCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, nil
	}
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newAggregateCache(log, rdb, cfg.Prefix), nil
}

func newAggregateCache(log *logger.Logger, rdb *goredis.Client, prefix string) *AggregateCache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "sims"
	}
	return &AggregateCache{
		log:    log.With("service", "RedisAggregateCache"),
		rdb:    rdb,
		prefix: prefix,
	}
}

func (c *AggregateCache) key(k string) string {
	return c.prefix + ":" + k
}

func (c *AggregateCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A value we cannot decode is as good as a miss.
		c.log.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (c *AggregateCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), raw, ttl).Err()
}

func (c *AggregateCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

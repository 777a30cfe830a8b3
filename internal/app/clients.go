package app

import (
	"fmt"

	"github.com/simsportal/sims-portal-backend/internal/clients/redis"
	"github.com/simsportal/sims-portal-backend/internal/clients/trello"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type Clients struct {
	Trello *trello.Client
	Cache  *redis.AggregateCache
}

// wireClients builds the optional outbound clients. Unconfigured clients
// stay nil and the services degrade around them.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	if cfg.Trello.Configured() {
		tc, err := trello.New(log, cfg.Trello)
		if err != nil {
			return Clients{}, fmt.Errorf("init trello: %w", err)
		}
		out.Trello = tc
	} else {
		log.Warn("trello credentials missing; task tracker disabled")
	}

	cache, err := redis.NewAggregateCache(log, cfg.Redis)
	if err != nil {
		// The cache is an optimization; the dashboard reads through to postgres.
		log.Warn("redis unavailable; aggregate cache disabled", "error", err)
	} else if cache == nil {
		log.Info("redis not configured; aggregate cache disabled")
	}
	out.Cache = cache

	return out, nil
}

func (c Clients) Close() error {
	if c.Cache != nil {
		return c.Cache.Close()
	}
	return nil
}

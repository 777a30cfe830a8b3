package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/data/db"
	apphttp "github.com/simsportal/sims-portal-backend/internal/http"
	"github.com/simsportal/sims-portal-backend/internal/jobs/scheduler"
	"github.com/simsportal/sims-portal-backend/internal/observability"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type App struct {
	Log       *logger.Logger
	DB        *gorm.DB
	Router    *gin.Engine
	Cfg       Config
	Repos     Repos
	Services  Services
	Clients   Clients
	Metrics   *observability.Metrics
	Scheduler *scheduler.Scheduler

	pg           *db.PostgresService
	shutdownOtel func(context.Context) error
	cancel       context.CancelFunc
}

// New connects to postgres and wires the application.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	log.Info("Initializing tracing...")
	shutdownOtel := observability.InitOTel(ctx, log, cfg.Otel)

	pg, err := db.NewPostgresService(cfg.Database, log)
	if err != nil {
		_ = shutdownOtel(ctx)
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	a, err := NewWithDB(log, cfg, pg.DB())
	if err != nil {
		_ = pg.Close()
		_ = shutdownOtel(ctx)
		return nil, err
	}
	a.pg = pg
	a.shutdownOtel = shutdownOtel
	return a, nil
}

// NewWithDB wires the application around an existing connection.
func NewWithDB(log *logger.Logger, cfg Config, theDB *gorm.DB) (*App, error) {
	if theDB == nil {
		return nil, fmt.Errorf("app: nil db")
	}
	loc, err := scheduler.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, err
	}
	sqlDB, err := theDB.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients, loc)

	sched, err := wireScheduler(log, cfg, loc, serviceset, metrics)
	if err != nil {
		_ = clients.Close()
		return nil, err
	}

	handlerset := wireHandlers(log, sqlDB, serviceset)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:       log,
		DB:        theDB,
		Router:    router,
		Cfg:       cfg,
		Repos:     reposet,
		Services:  serviceset,
		Clients:   clients,
		Metrics:   metrics,
		Scheduler: sched,
	}, nil
}

// Start launches the background pieces: the job scheduler and the metrics
// listener.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Cfg.Scheduler.Enabled && a.Scheduler != nil {
		a.Scheduler.Start(ctx)
		a.Log.Info("scheduler started", "jobs", a.Scheduler.Jobs(), "timezone", a.Cfg.Scheduler.Timezone)
	}
	if a.Metrics != nil {
		a.Metrics.StartServer(ctx, a.Log, a.Cfg.Metrics.Addr)
	}
}

// Run serves HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("http server listening", "addr", a.Cfg.HTTP.Addr)
	srv := &apphttp.Server{Engine: a.Router}
	return srv.Run(ctx, a.Cfg.HTTP.Addr)
}

// RunJob executes one job immediately, outside its schedule.
func (a *App) RunJob(ctx context.Context, name string) error {
	if a == nil || a.Scheduler == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Scheduler.RunOnce(ctx, name)
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
		if a.Scheduler != nil {
			a.Scheduler.Wait()
		}
	}
	var errs []error
	if err := a.Clients.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	if a.pg != nil {
		if err := a.pg.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
	}
	if a.shutdownOtel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownOtel(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown otel: %w", err))
		}
	}
	a.Log.Sync()
	return errors.Join(errs...)
}

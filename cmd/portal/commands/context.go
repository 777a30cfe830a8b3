package commands

import (
	"fmt"

	"github.com/simsportal/sims-portal-backend/internal/app"
	"github.com/simsportal/sims-portal-backend/internal/platform/envutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

// AppContext is shared by every subcommand; Init fills it before RunE.
type AppContext struct {
	ConfigPath string
	Cfg        app.Config
	Log        *logger.Logger
}

func (a *AppContext) Init() error {
	if a.ConfigPath == "" {
		a.ConfigPath = envutil.String("CONFIG_PATH", "")
	}
	cfg, err := app.LoadConfig(a.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.Cfg = cfg

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.Log = log
	a.Log.Debug("configuration loaded", "config_path", a.ConfigPath, "log_mode", cfg.Log.Mode)
	return nil
}

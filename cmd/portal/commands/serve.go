package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/simsportal/sims-portal-backend/internal/app"
	"github.com/simsportal/sims-portal-backend/internal/data/db"
)

// ServeCmd runs the HTTP API and the job scheduler until SIGINT/SIGTERM.
func ServeCmd(appCtx *AppContext) *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run scheduled jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, appCtx.Log, appCtx.Cfg)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.Close(); cerr != nil {
					appCtx.Log.Warn("shutdown", "error", cerr)
				}
			}()

			if autoMigrate {
				appCtx.Log.Info("auto-migrating schema")
				if err := db.AutoMigrateAll(a.DB); err != nil {
					return fmt.Errorf("auto migrate: %w", err)
				}
			}

			g, gctx := errgroup.WithContext(ctx)
			a.Start(gctx)
			g.Go(func() error { return a.Run(gctx) })
			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			appCtx.Log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run gorm AutoMigrate before serving (development only)")
	return cmd
}

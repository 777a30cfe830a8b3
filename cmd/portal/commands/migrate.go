package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simsportal/sims-portal-backend/internal/data/db"
)

var migrateActions = []string{"up", "down", "version", "drop"}

// MigrateCmd applies the embedded SQL migrations.
func MigrateCmd(appCtx *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|version|drop]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrateActions,
		RunE: func(cmd *cobra.Command, args []string) error {
			action := args[0]
			appCtx.Log.Info("running migrations", "action", action, "db", appCtx.Cfg.Database.Name)
			if err := db.RunMigrations(appCtx.Cfg.Database, action, appCtx.Log); err != nil {
				return fmt.Errorf("migrate %s: %w", action, err)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simsportal/sims-portal-backend/cmd/portal/commands"
)

func main() {
	appCtx := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:           "portal",
		Short:         "SIMS portal backend",
		Long:          `Serves the SIMS portal emergency dashboard API and runs its scheduled jobs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx.Log != nil {
				appCtx.Log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&appCtx.ConfigPath, "config", "c", "", "Path to a YAML config file (defaults to $CONFIG_PATH)")

	rootCmd.AddCommand(commands.ServeCmd(appCtx))
	rootCmd.AddCommand(commands.MigrateCmd(appCtx))
	rootCmd.AddCommand(commands.JobsCmd(appCtx))
	rootCmd.AddCommand(commands.TokenCmd(appCtx))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

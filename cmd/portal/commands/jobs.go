package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simsportal/sims-portal-backend/internal/app"
	"github.com/simsportal/sims-portal-backend/internal/jobs/tasks"
)

func JobsCmd(appCtx *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and run scheduled jobs",
	}
	cmd.AddCommand(jobsListCmd(appCtx), jobsRunCmd(appCtx))
	return cmd
}

func jobsListCmd(appCtx *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print each job with its schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range jobNames() {
				rule := appCtx.Cfg.Scheduler.Jobs[name]
				if rule == "" {
					rule = "(manual)"
				}
				fmt.Fprintf(out, "%-24s %s\n", name, rule)
			}
			return nil
		},
	}
}

func jobsRunCmd(appCtx *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <name>",
		Short: "Run one job immediately",
		Long:  "Run one job immediately. Known jobs: " + strings.Join(jobNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), appCtx.Log, appCtx.Cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.RunJob(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("job %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "job %s completed\n", args[0])
			return nil
		},
	}
}

func jobNames() []string {
	return []string{tasks.SurgeAlertRefresh, tasks.AssignBadges, tasks.RefreshLearningStats}
}

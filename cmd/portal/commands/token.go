package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/simsportal/sims-portal-backend/internal/services"
)

// TokenCmd mints a signed access token for local testing and operations.
// The user is not looked up; the API rejects the token later if the user
// is missing or inactive.
func TokenCmd(appCtx *AppContext) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint an access token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			if ttl <= 0 {
				ttl = appCtx.Cfg.Auth.TokenTTL
			}
			auth := services.NewAuthService(appCtx.Log, nil, appCtx.Cfg.Auth.JWTSecret, appCtx.Cfg.Auth.Issuer)
			token, err := auth.IssueToken(uint(id), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to auth.token_ttl)")
	return cmd
}

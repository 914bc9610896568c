package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-marketplace.com/task-marketplace/internal/auth"
	"task-marketplace.com/task-marketplace/internal/constants"
	model "task-marketplace.com/task-marketplace/internal/models"
)

var (
	tokenUserID string
	tokenRole   string
	tokenTTL    time.Duration
)

// tokenCmd signs a bearer token with JWT_SECRET, for local use and tests
// against a running server.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ttl := tokenTTL
		if ttl <= 0 {
			ttl = time.Duration(cfg.JWTTTLMinutes) * time.Minute
		}

		token, err := auth.NewJWTManager(cfg.JWTSecret, ttl).Issue(model.Actor{
			ID:   tokenUserID,
			Role: constants.Role(tokenRole),
		})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id (token subject)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(constants.RoleCustomer), "customer, tasker or admin")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_TTL_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

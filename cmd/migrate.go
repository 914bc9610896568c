package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "task-marketplace.com/task-marketplace/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		database, err := openDatabase(cfg, logger)
		if err != nil {
			logger.Error("database unavailable", zap.Error(err))
			return err
		}

		if err := config.Migrate(database); err != nil {
			logger.Error("migration failed", zap.Error(err))
			return err
		}

		logger.Info("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

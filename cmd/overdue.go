package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	repository "task-marketplace.com/task-marketplace/internal/repositories"
	"task-marketplace.com/task-marketplace/internal/services"
)

var overdueLimit int

// overdueCmd lists active and scheduled tasks whose end date has passed.
// It only reports; nothing is transitioned.
var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Report open tasks past their end date",
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

		taskService := services.NewTaskService(services.Deps{
			Tasks:  repository.NewTaskRepository(database),
			Logger: logger,
		})

		tasks, err := taskService.ListOverdue(cmd.Context(), time.Now().UTC(), overdueLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tEND DATE\tCUSTOMER\tTITLE")
		for _, task := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				task.ID, task.Status, task.EndDate.Format(time.RFC3339), task.CustomerID, task.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		logger.Info("overdue report", zap.Int("count", len(tasks)))
		return nil
	},
}

func init() {
	overdueCmd.Flags().IntVar(&overdueLimit, "limit", 100, "maximum number of tasks to list")
	rootCmd.AddCommand(overdueCmd)
}

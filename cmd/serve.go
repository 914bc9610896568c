package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"task-marketplace.com/task-marketplace/internal/auth"
	config "task-marketplace.com/task-marketplace/internal/configs"
	httpapi "task-marketplace.com/task-marketplace/internal/http"
	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
	"task-marketplace.com/task-marketplace/internal/metrics"
	"task-marketplace.com/task-marketplace/internal/notifications"
	"task-marketplace.com/task-marketplace/internal/payments"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
	"task-marketplace.com/task-marketplace/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task marketplace HTTP API",
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

		notifier, closeNotifier, err := newNotifier(cfg, logger)
		if err != nil {
			logger.Error("event channel unavailable", zap.Error(err))
			return err
		}
		defer closeNotifier()

		m := metrics.New()
		deps := services.Deps{
			Tasks:   repository.NewTaskRepository(database),
			Events:  notifications.NewDispatcher(notifier, logger, m),
			Metrics: m,
			Logger:  logger,
		}

		releaser := payments.NewLedgerReleaser(repository.NewPaymentRepository(database), logger)
		gate := services.NewApprovalGate(
			repository.NewApprovalRepository(database),
			cfg.WaitingApprovalRoute,
			m,
			logger,
		)

		handler := httpapi.NewHandler(
			services.NewTaskService(deps),
			services.NewApplicationRegistry(deps, repository.NewApplicationRepository(database)),
			services.NewCompletionProtocol(deps, releaser),
			gate,
		)

		e := echo.New()
		e.HideBanner = true
		e.HTTPErrorHandler = httpapi.ErrorHandler(logger)
		e.Use(echomw.Recover(), middleware.RequestLogger(logger))

		httpapi.Register(e, handler, httpapi.Options{
			RateLimitPerMinute: cfg.RateLimit,
			Tokens:             auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute),
			Gate:               gate,
			Metrics:            m.Handler(),
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("HTTP server listening", zap.String("addr", cfg.AppURL))
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(echoCtx); err != nil {
			logger.Warn("HTTP server shutdown", zap.Error(err))
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	config "task-marketplace.com/task-marketplace/internal/configs"
	"task-marketplace.com/task-marketplace/internal/logging"
	"task-marketplace.com/task-marketplace/internal/notifications"
)

// bootstrap loads .env and the environment and builds the logger every
// command shares.
func bootstrap() (config.Config, *zap.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	})
	if err != nil {
		return cfg, nil, err
	}

	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}
	return cfg, logger, nil
}

func openDatabase(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", zap.String("driver", cfg.DatabaseDriver))
	return db, nil
}

// newNotifier returns the configured event channel and a func that closes
// its connection.
func newNotifier(cfg config.Config, logger *zap.Logger) (notifications.Notifier, func(), error) {
	switch cfg.Notifier {
	case config.NotifierRedis:
		client, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing task events to redis",
			zap.String("addr", cfg.RedisAddr),
			zap.String("channel", cfg.RedisEventsChannel),
		)
		return notifications.NewRedisNotifier(client, cfg.RedisEventsChannel), client.Close, nil

	case config.NotifierNATS:
		conn, err := config.NewNatsConnection(cfg.NatsURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing task events to nats",
			zap.String("url", cfg.NatsURL),
			zap.String("prefix", cfg.NatsSubjectPrefix),
		)
		return notifications.NewNatsNotifier(conn, cfg.NatsSubjectPrefix), func() {
			if err := conn.Drain(); err != nil {
				conn.Close()
			}
		}, nil

	default:
		return notifications.Nop{}, func() {}, nil
	}
}

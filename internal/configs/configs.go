package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	RateLimit              int
	ShutdownTimeoutSeconds int

	JWTSecret     string
	JWTTTLMinutes int

	WaitingApprovalRoute string

	Notifier           string
	RedisAddr          string
	RedisEventsChannel string
	NatsURL            string
	NatsSubjectPrefix  string

	LogLevel  string
	LogFormat string
	LogOutput string
}

const (
	NotifierNone  = "none"
	NotifierRedis = "redis"
	NotifierNATS  = "nats"
)

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	var errs []error
	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:         strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60, &errs),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20, &errs),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		JWTTTLMinutes:          getEnvAsInt("JWT_TTL_MINUTES", 60, &errs),
		WaitingApprovalRoute:   getEnv("WAITING_APPROVAL_ROUTE", "/tasker/waiting-approval"),
		Notifier:               strings.ToLower(getEnv("NOTIFIER", NotifierNone)),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisEventsChannel:     getEnv("REDIS_EVENTS_CHANNEL", "task_events"),
		NatsURL:                getEnv("NATS_URL", "nats://127.0.0.1:4222"),
		NatsSubjectPrefix:      getEnv("NATS_SUBJECT_PREFIX", "tasks"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "console"),
		LogOutput:              getEnv("LOG_OUTPUT", "stdout"),
	}

	errs = append(errs, validate(cfg)...)
	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}

func validate(cfg Config) []error {
	var errs []error
	if cfg.AppURL == "" {
		errs = append(errs, errors.New("APP_URL must not be empty (e.g. 127.0.0.1:8080)"))
	}
	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		errs = append(errs, errors.New("DATABASE_DRIVER must be sqlite or postgres"))
	}
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if cfg.JWTTTLMinutes <= 0 {
		errs = append(errs, errors.New("JWT_TTL_MINUTES must be greater than 0"))
	}
	if !strings.HasPrefix(cfg.WaitingApprovalRoute, "/") {
		errs = append(errs, errors.New("WAITING_APPROVAL_ROUTE must be an absolute path"))
	}
	switch cfg.Notifier {
	case NotifierNone, NotifierRedis, NotifierNATS:
	default:
		errs = append(errs, errors.New("NOTIFIER must be one of none, redis, nats"))
	}
	return errs
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid integer value for %s", key))
			return defaultVal
		}
		return i
	}
	return defaultVal
}

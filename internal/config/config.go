// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"sharenote/pkg/logger"
)

// EnvConfigPath - переменная окружения с путем к файлу конфигурации (.env или YAML).
const EnvConfigPath = "CONFIG_PATH"

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "loading sharenote service configuration"
	LogConfigLoaded     = "configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load читает конфигурацию из файла CONFIG_PATH, если он задан, иначе из окружения.
// Переменные окружения в обоих случаях имеют приоритет над значениями по умолчанию.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	path := os.Getenv(EnvConfigPath)
	log.Info(ctx, LogLoadingConfig, zap.String("path", path))

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Int("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.Duration("token_ttl", cfg.JWT.GetTokenTTL()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return &cfg, nil
}

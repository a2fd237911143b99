// Package db поднимает хранилище сервиса: применяет миграции и открывает пул соединений.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sharenote/internal/config"
	"sharenote/pkg/db/postgres"
	"sharenote/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing notes database"
	LogDBInitialized     = "notes database initialized successfully"
	LogMigrationStarting = "starting database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply database migrations"
	ErrDBConnection      = "failed to connect to database"
	ErrGetPath           = "failed to get path"
	ErrDBCheckConnection = "error checking the database connection"
)

const filePrefix = "file://"

// DB представляет соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// New применяет миграции из cfg.MigrationsDir и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsURL, err := MigrationsURL(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsURL))
	if err := postgres.MigrateDSN(ctx, cfg.GetDSN(), migrationsURL); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// MigrationsURL переводит каталог миграций в URL источника file:// для golang-migrate.
func MigrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filePrefix + filepath.ToSlash(dir), nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + filepath.ToSlash(absPath), nil
}

// Close закрывает пул соединений.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений, общий для всех репозиториев.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}

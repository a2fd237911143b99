package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpapi "sharenote/internal/api/http"
	authpg "sharenote/internal/auth/adapters/postgres"
	authservices "sharenote/internal/auth/adapters/services"
	authapp "sharenote/internal/auth/app"
	"sharenote/internal/config"
	"sharenote/internal/db"
	notespg "sharenote/internal/notes/adapters/postgres"
	"sharenote/internal/notes/adapters/users"
	notesapp "sharenote/internal/notes/app"
	"sharenote/pkg/logger"
	"sharenote/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LOGGER_MODE"
	EnvLoggerLevel = "LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrInitServices         = "failed to initialize auth services"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "sharenote service started"
	LogServiceShutdownDone = "sharenote service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		authSvc, err := authservices.NewServiceFactory(&cfg.JWT)
		if err != nil {
			log.Error(ctx, ErrInitServices, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		userRepo := authpg.NewUserRepository(database.Pool())
		authUseCase := authapp.NewAuthUseCase(userRepo, authSvc.PasswordService(), authSvc.TokenService())
		noteUseCase := notesapp.NewNoteUseCase(notespg.NewNoteRepository(database.Pool()), users.NewDirectory(userRepo))

		log.Info(ctx, LogInitHTTPServer)
		app := httpapi.NewApp(cfg.HTTP)
		httpapi.SetupRouter(app, httpapi.Dependencies{
			Auth:   authUseCase,
			Notes:  noteUseCase,
			Health: database,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				// Сервер не поднялся: запускаем ту же процедуру остановки, что и по сигналу.
				if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
					log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				}
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				if err := app.ShutdownWithContext(ctx); err != nil {
					return fmt.Errorf("%s: %w", LogStoppingHTTP, err)
				}
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesync/internal/notesync/adapters/cache"
	"notesync/internal/notesync/adapters/grpc/auth"
	"notesync/internal/notesync/adapters/grpc/notes"
	httpAdapter "notesync/internal/notesync/adapters/http"
	"notesync/internal/notesync/adapters/notify"
	"notesync/internal/notesync/app/gate"
	"notesync/internal/notesync/app/gateway"
	"notesync/internal/notesync/app/session"
	"notesync/internal/notesync/app/synchronizer"
	"notesync/internal/notesync/config"
	cachePort "notesync/internal/notesync/ports/cache"
	"notesync/internal/notesync/resilience"
	"notesync/pkg/logger"
	"notesync/pkg/shutdown"
)

const (
	ErrInitLogger       = "failed to initialize logger"
	ErrSyncLogger       = "failed to sync logger"
	ErrLoadConfig       = "failed to load configuration"
	ErrCreateAuthClient = "failed to create auth client"
	ErrCreateNoteClient = "failed to create notes client"
	ErrConnectRedis     = "failed to connect to redis"
	ErrHTTPServer       = "HTTP server stopped with error"

	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"

	LogServiceStarted      = "notesync started"
	LogSessionResolved     = "initial session resolved"
	LogServiceShutdownDone = "notesync shutdown complete"
	LogShutdownHookFailed  = "shutdown hook failed"
)

func main() {
	log, err := logger.NewLogger(logger.Development, os.Getenv("NOTESYNC_LOGGER_LEVEL"))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	if code := run(ctx); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context) int {
	defer syncLogger(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrInitLogger, zap.Error(err))
		return 1
	}
	logger.SetGlobalLogger(log)

	authClient, err := auth.NewAuthClient(ctx, &cfg.GRPC)
	if err != nil {
		log.Error(ctx, ErrCreateAuthClient, zap.Error(err))
		return 1
	}
	defer closeQuietly(ctx, "auth client", authClient.Close)

	profiles, err := newProfileCache(ctx, &cfg.Redis)
	if err != nil {
		log.Error(ctx, ErrConnectRedis, zap.Error(err))
		return 1
	}
	defer closeQuietly(ctx, "profile cache", profiles.Close)

	sessionStore := session.New(
		authClient,
		profiles,
		resilience.NewServiceResilience("auth", cfg.Resilience.CircuitBreaker(), cfg.Resilience.Retry()),
		session.Options{ProfileTTL: cfg.Redis.ProfileTTL},
	)

	notesClient, err := notes.NewNotesClient(ctx, &cfg.GRPC, sessionStore)
	if err != nil {
		log.Error(ctx, ErrCreateNoteClient, zap.Error(err))
		return 1
	}
	defer closeQuietly(ctx, "notes client", notesClient.Close)

	feed := notify.NewFeed(cfg.Notifications.Capacity)
	noteSync := synchronizer.New(
		gateway.New(notesClient,
			resilience.NewServiceResilience("notes", cfg.Resilience.CircuitBreaker(), cfg.Resilience.Retry())),
		feed,
	)
	accessGate := gate.New(sessionStore, feed)

	accessGate.Start(ctx)
	noteSync.Start(ctx, sessionStore)

	identity := sessionStore.ResolveSession(ctx)
	log.Info(ctx, LogSessionResolved, zap.Stringer("state", sessionStore.State().Kind),
		zap.Bool("authenticated", identity != nil))

	app := fiber.New(fiber.Config{
		AppName:      "notesync",
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})
	httpAdapter.SetupRouter(app, httpAdapter.Dependencies{
		Session:       sessionStore,
		Notes:         noteSync,
		Notifications: feed,
		Gate:          accessGate,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrHTTPServer, zap.Error(err))
		}
	}()
	log.Info(ctx, LogServiceStarted, zap.String("address", cfg.HTTP.GetAddress()))

	errs := shutdown.Wait(cfg.Shutdown.Timeout,
		func(hookCtx context.Context) error {
			return app.ShutdownWithContext(hookCtx)
		},
		func(context.Context) error {
			noteSync.Stop()
			accessGate.Stop()
			return nil
		},
	)
	for _, err := range errs {
		log.Warn(ctx, LogShutdownHookFailed, zap.Error(err))
	}

	log.Info(ctx, LogServiceShutdownDone)
	return 0
}

func newProfileCache(ctx context.Context, cfg *config.RedisConfig) (cachePort.Cache, error) {
	if !cfg.Enabled {
		return cache.NewNopCache(), nil
	}
	return cache.NewRedisCache(ctx, cfg)
}

func closeQuietly(ctx context.Context, name string, closeFn func() error) {
	if err := closeFn(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log(ctx).Warn(ctx, "failed to close "+name, zap.Error(err))
	}
}

func syncLogger(ctx context.Context) {
	err := logger.Log(ctx).Sync()
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.Contains(msg, ErrSyncStderr) || strings.Contains(msg, ErrSyncStdout) {
		return
	}
	if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
		panic(writeErr)
	}
}

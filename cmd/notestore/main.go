package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcAdapter "notesync/internal/notestore/adapters/grpc"
	"notesync/internal/notestore/adapters/memory"
	pgRepos "notesync/internal/notestore/adapters/postgres"
	"notesync/internal/notestore/adapters/services"
	"notesync/internal/notestore/app"
	"notesync/internal/notestore/config"
	"notesync/internal/notestore/ports/repositories"
	migrations "notesync/migrations/notestore"
	authv1 "notesync/pkg/api/auth/v1"
	notesv1 "notesync/pkg/api/notes/v1"
	"notesync/pkg/db/postgres"
	"notesync/pkg/logger"
	"notesync/pkg/shutdown"
)

const (
	ErrInitLogger      = "failed to initialize logger"
	ErrSyncLogger      = "failed to sync logger"
	ErrLoadConfig      = "failed to load configuration"
	ErrStartGRPCServer = "failed to start gRPC server"
	ErrOpenStorage     = "failed to open storage"
	ErrUnknownStorage  = "unknown storage driver"

	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"

	LogServiceStarted      = "note store started"
	LogServiceShutdownDone = "note store shutdown complete"
)

func main() {
	log, err := logger.NewLogger(logger.Development, os.Getenv("NOTESTORE_LOGGER_LEVEL"))
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

	repos, closeRepos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrOpenStorage, zap.Error(err))
		return 1
	}
	defer closeRepos()

	tokenSvc := services.NewJWT(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	authUC := app.NewAuthUseCase(
		repos.UserRepository(),
		repos.TokenRepository(),
		tokenSvc,
		services.NewBcrypt(cfg.JWT.BCryptCost),
	)
	notesUC := app.NewNoteUseCase(repos.NoteRepository(), tokenSvc)

	server := grpcAdapter.New(cfg.GRPC.GetAddress())
	server.RegisterService(func(r grpc.ServiceRegistrar) {
		authv1.RegisterAuthServiceServer(r, grpcAdapter.NewAuthHandler(authUC))
		notesv1.RegisterNoteServiceServer(r, grpcAdapter.NewNoteHandler(notesUC))
	})

	if err := server.Start(ctx); err != nil {
		log.Error(ctx, ErrStartGRPCServer, zap.Error(err))
		return 1
	}
	log.Info(ctx, LogServiceStarted, zap.String("address", cfg.GRPC.GetAddress()))

	errs := shutdown.Wait(cfg.Shutdown.Timeout, func(hookCtx context.Context) error {
		server.Stop(hookCtx)
		return nil
	})
	for _, err := range errs {
		log.Warn(ctx, "shutdown hook failed", zap.Error(err))
	}

	log.Info(ctx, LogServiceShutdownDone)
	return 0
}

type repositorySet interface {
	UserRepository() repositories.UserRepository
	TokenRepository() repositories.TokenRepository
	NoteRepository() repositories.NoteRepository
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositorySet, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return memory.NewRepositoryFactory(), func() {}, nil
	case config.StoragePostgres:
		dbURL := cfg.Postgres.GetConnectionURL()
		if err := postgres.Migrate(ctx, dbURL, migrations.FS); err != nil {
			return nil, nil, err
		}
		database, err := postgres.New(ctx, dbURL, cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			return nil, nil, err
		}
		return pgRepos.NewRepositoryFactory(database.Pool()), func() { database.Close(ctx) }, nil
	default:
		return nil, nil, fmt.Errorf("%s: %q", ErrUnknownStorage, cfg.Storage.Driver)
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

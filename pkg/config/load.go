// Package config загружает конфигурацию сервисов из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"notesync/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgEnvFileMissing          = "env file not found, using environment only"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет T из окружения. Если envFile задан и существует, значения
// сначала читаются из него, переменные окружения имеют приоритет.
func Load[T any](ctx context.Context, serviceName, envFile string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	if envFile != "" {
		if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
			log.Warn(ctx, msgEnvFileMissing, zap.String(attrPath, envFile))
			envFile = ""
		}
	}

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envFile))

	var cfg T
	var err error
	if envFile != "" {
		err = cleanenv.ReadConfig(envFile, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

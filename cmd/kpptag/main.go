// Command kpptag reads, tags and rewrites KPP chemical mechanisms.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/kpptag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kpptag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kpptag/internal/adapters/driving/cli"
	"github.com/custodia-labs/kpptag/internal/core/ports/driven"
	"github.com/custodia-labs/kpptag/internal/core/services"
	"github.com/custodia-labs/kpptag/internal/logger"
)

// Set by the linker.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the config file, optional snapshot database and services.
func bootstrap(configPath string) (*cli.Services, error) {
	var (
		configStore *file.ConfigStore
		err         error
	)
	if configPath != "" {
		configStore, err = file.OpenConfigFile(configPath)
	} else {
		configStore, err = file.NewConfigStore("")
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	var (
		mechanismStore driven.MechanismStore
		closeFn        func() error
	)
	if settings.StorageDir != "" {
		store, err := sqlite.NewStore(settings.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		logger.Debug("snapshots: %s", store.Path())
		mechanismStore = store.MechanismStore()
		closeFn = store.Close
	}

	return &cli.Services{
		Mechanism: services.NewMechanismService(mechanismStore),
		Settings:  settingsService,
		Close:     closeFn,
	}, nil
}

// Command seeder inserts the default projects into an empty database.
//
// It reads the same configuration as the server and applies pending
// migrations first.
package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
)

func main() {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("seeder").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("seeder", cfg.App.LogLevel)
	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	if err = storages.DB.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	projects := service.NewProjectService(storages.ProjectRepository, storages.UserRepository, log)

	inserted, err := projects.SeedProjects(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding projects failed")
	}

	if inserted == 0 {
		log.Info().Msg("projects already present, nothing to seed")
		return
	}
	log.Info().Int("inserted", inserted).Msg("projects seeded")
}

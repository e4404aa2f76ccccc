// Command migrate applies the lead store schema to Postgres.
package main

import (
	"errors"
	"flag"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"getloanoffer/config"
	"getloanoffer/logger"
)

func main() {
	cfg := config.Load()

	databaseURL := flag.String("database", cfg.DatabaseURL, "Postgres URL (defaults to DATABASE_URL)")
	migrationsPath := flag.String("path", "migrations", "path to the migrations directory")
	command := flag.String("command", "up", "up, down, version or force <version>")
	flag.Parse()

	if *databaseURL == "" {
		logger.Fatal("database URL is required: use -database or DATABASE_URL")
	}

	m, err := migrate.New("file://"+*migrationsPath, *databaseURL)
	if err != nil {
		logger.Fatal("failed to create migration instance", "path", *migrationsPath, "error", err)
	}
	defer m.Close()

	switch *command {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no migrations to run")
			return
		}
		if err != nil {
			logger.Fatal("failed to run migrations", "error", err)
		}
		logger.Info("migrations applied")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("failed to roll back migrations", "error", err)
		}
		logger.Info("migrations rolled back")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migrations applied")
			return
		}
		if err != nil {
			logger.Fatal("failed to read version", "error", err)
		}
		logger.Info("current version", "version", version, "dirty", dirty)

	case "force":
		version, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			logger.Fatal("force needs a version number", "arg", flag.Arg(0))
		}
		if err := m.Force(version); err != nil {
			logger.Fatal("failed to force version", "version", version, "error", err)
		}
		logger.Info("forced version", "version", version)

	default:
		logger.Fatal("unknown command", "command", *command)
	}
}

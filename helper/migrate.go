package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/postgres"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"

	defaultMigrationPath  = "migrations/postgres"
	defaultMigrationTable = "schema_migrations"
)

// Migrator locates the migration files and the database they apply to.
type Migrator struct {
	DatabaseURL string
	Path        string
	Table       string
}

// NewMigrator builds a Migrator for the configured write database.
func NewMigrator(config *config.Config) Migrator {
	return Migrator{
		DatabaseURL: postgres.WriteURL(*config),
		Path:        config.DB.Postgres.MigrationPath,
		Table:       config.DB.Postgres.MigrationTable,
	}
}

func (m Migrator) open() (*migrate.Migrate, error) {
	path := m.Path
	if path == "" {
		path = defaultMigrationPath
	}

	table := m.Table
	if table == "" {
		table = defaultMigrationTable
	}

	databaseURL, err := url.Parse(m.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing database url: %w", err)
	}

	query := databaseURL.Query()
	query.Set("x-migrations-table", table)
	databaseURL.RawQuery = query.Encode()

	mig, err := migrate.New("file://"+path, databaseURL.String())
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies action to the database.
func (m Migrator) Run(action string) error {
	mig, err := m.open()
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")
	case ActionVersion:
		version, dirty, err := mig.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", err)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration version")
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	return nil
}

func Up(config *config.Config) error {
	return NewMigrator(config).Run(ActionUp)
}

package migration

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Config describes where the SQL files live and which database to apply
// them to.
type Config struct {
	MigrationsPath string
	DatabaseURL    string
	Logger         *slog.Logger
}

// Runner applies schema migrations. The server runs it on startup via
// AutoMigrate; Down and Force exist for operator use.
type Runner struct {
	config *Config
	logger *slog.Logger
}

func NewRunner(config *Config) *Runner {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return &Runner{config: config, logger: logger}
}

// Up applies every pending migration.
func (r *Runner) Up() error {
	m, err := r.newMigrate()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			r.logger.Info("schema already up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	r.logger.Info("migrations applied")
	return nil
}

// Down rolls back the most recent migration.
func (r *Runner) Down() error {
	m, err := r.newMigrate()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		if err == migrate.ErrNoChange {
			r.logger.Info("nothing to roll back")
			return nil
		}
		return fmt.Errorf("rollback migration: %w", err)
	}

	r.logger.Info("migration rolled back")
	return nil
}

// Force overwrites the recorded version without running any SQL. Only
// useful to clear a dirty state once the failed migration has been
// repaired by hand.
func (r *Runner) Force(version int) error {
	m, err := r.newMigrate()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}

	r.logger.Warn("migration version forced", "version", version)
	return nil
}

// Version reports the current schema version and whether it is dirty.
// A database with no migrations applied yet reports version 0, clean.
func (r *Runner) Version() (uint, bool, error) {
	m, err := r.newMigrate()
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err == migrate.ErrNilVersion {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

func (r *Runner) newMigrate() (*migrate.Migrate, error) {
	db, err := sql.Open("postgres", r.config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+r.config.MigrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

// AutoMigrate brings the schema up to date on server startup. A dirty
// version is an error; it needs a manual Force after the broken migration
// is repaired, so the server refuses to start on top of it.
func AutoMigrate(dbURL, migrationsPath string, logger *slog.Logger) error {
	runner := NewRunner(&Config{
		MigrationsPath: migrationsPath,
		DatabaseURL:    dbURL,
		Logger:         logger,
	})

	version, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("schema dirty at version %d, repair and force before starting", version)
	}

	logger.Info("schema version", "version", version)
	return runner.Up()
}

package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/infras/postgres"
	"stayhub/migrations"
)

const defaultMigrationTable = "schema_migrations"

// Migrator wraps golang-migrate over the embedded schema.
type Migrator struct {
	m *migrate.Migrate
}

func NewMigrator(cfg *config.Config) (*Migrator, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m.Log = migrateLogger{}

	return &Migrator{m: m}, nil
}

func databaseURL(cfg *config.Config) string {
	table := cfg.DB.Postgres.MigrationTable
	if table == "" {
		table = defaultMigrationTable
	}

	u, err := url.Parse(postgres.WriteDSN(cfg))
	if err != nil {
		return postgres.WriteDSN(cfg)
	}

	query := u.Query()
	query.Set("x-migrations-table", table)
	u.RawQuery = query.Encode()

	return u.String()
}

func (mg *Migrator) Close() {
	srcErr, dbErr := mg.m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		log.Warn().Err(err).Msg("failed to close migrator")
	}
}

func (mg *Migrator) Up() error {
	return ignoreNoChange(mg.m.Up(), "apply migrations")
}

func (mg *Migrator) Steps(n int) error {
	return ignoreNoChange(mg.m.Steps(n), "step migrations")
}

// Drop rolls every migration back, leaving an empty schema.
func (mg *Migrator) Drop() error {
	return ignoreNoChange(mg.m.Down(), "roll back migrations")
}

func (mg *Migrator) Force(version int) error {
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}

	return nil
}

func (mg *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}

	return version, dirty, nil
}

func ignoreNoChange(err error, action string) error {
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return fmt.Errorf("failed to %s: %w", action, err)
}

// MigrateUp applies every pending migration. Used on boot when auto-migrate is on.
func MigrateUp(cfg *config.Config) error {
	mg, err := NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err = mg.Up(); err != nil {
		return err
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database schema is up to date")

	return nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	log.Debug().Msgf(format, v...)
}

func (migrateLogger) Verbose() bool {
	return false
}

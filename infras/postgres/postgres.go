package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"stayhub/config"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 20
	connMaxLifetime    = 30 * time.Minute
)

// Connection holds the primary (Write) and replica (Read) pools. Both point at the same
// database when no replica is configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	role     string
	host     string
	port     string
	username string
	password string
	name     string
	sslMode  string
}

func (e endpoint) dsn() string {
	query := url.Values{}
	if e.sslMode != "" {
		query.Set("sslmode", e.sslMode)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     "/" + e.name,
		RawQuery: query.Encode(),
	}

	return u.String()
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	write := endpoint{
		role:     "write",
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		name:     DatabaseName(cfg, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	}

	read := write
	if pg.Read.Host != "" {
		read = endpoint{
			role:     "read",
			host:     pg.Read.Host,
			port:     pg.Read.Port,
			username: pg.Read.Username,
			password: pg.Read.Password,
			name:     DatabaseName(cfg, pg.Read.Name),
			sslMode:  pg.Read.SSLMode,
		}
	} else {
		read.role = "read"
	}

	return &Connection{
		Read:  connect(read, pg.MaxRetry, pg.RetryWaitTime),
		Write: connect(write, pg.MaxRetry, pg.RetryWaitTime),
	}
}

// DatabaseName applies the configured prefix, used to keep per-environment databases apart.
func DatabaseName(cfg *config.Config, base string) string {
	return cfg.DB.Postgres.Prefix + base
}

// WriteDSN is the connection string migrations run against.
func WriteDSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	return endpoint{
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		name:     DatabaseName(cfg, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	}.dsn()
}

func connect(e endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	maxRetry = max(maxRetry, 1)

	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			log.Info().
				Str("role", e.role).
				Str("host", e.host).
				Str("db", e.name).
				Msg("Connected to postgres")

			return db
		}

		log.Error().
			Err(err).
			Str("role", e.role).
			Str("host", e.host).
			Int("attempt", attempt).
			Msg("Failed connecting to postgres, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	log.Error().Str("role", e.role).Msg("Giving up on postgres")

	return nil
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return errors.New("postgres connection not established")
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read pool: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	if c == nil {
		return nil
	}

	var errs []error

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	return errors.Join(errs...)
}

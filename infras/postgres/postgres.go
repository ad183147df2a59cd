package postgres

//nolint:revive
import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelbook/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection holds separate pools for reads and writes. Transactions always use Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	conn := &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Int("max_retry", cfg.DB.Postgres.MaxRetry).Msg("could not connect to database")
	}

	return conn
}

// WithTx runs fn inside a write transaction. It commits when fn returns nil and rolls back
// otherwise.
func (c *Connection) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// connect dials endpoint, retrying up to MaxRetry times with RetryWaitTime seconds between
// attempts. It returns nil when every attempt fails.
func connect(cfg *config.Config, role string, endpoint config.DatabaseEndpoint) *sqlx.DB {
	settings := cfg.DB.Postgres
	dsn := endpoint.URL(settings.Prefix, nil)

	logger := log.With().
		Str("role", role).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("database", settings.Prefix+endpoint.Name).
		Logger()

	for attempt := 1; attempt <= max(settings.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			configurePool(db, settings.MaxOpenConns, settings.MaxIdleConns, settings.ConnMaxLifetimeSeconds)
			logger.Info().Msg("connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("failed connecting to database")

		time.Sleep(time.Duration(settings.RetryWaitTime) * time.Second)
	}

	return nil
}

func configurePool(db *sqlx.DB, maxOpen, maxIdle, lifetimeSeconds int) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}

	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}

	if lifetimeSeconds > 0 {
		db.SetConnMaxLifetime(time.Duration(lifetimeSeconds) * time.Second)
	}
}

// Package postgres is the relational store of the shortener.
//
// The adapter never fails the caller on connection problems: it records
// whether the database is usable and the rest of the service falls back
// to the file store when it is not.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/KretovDmitry/fallback-shortener/internal/errs"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/models"
	"github.com/KretovDmitry/fallback-shortener/migrations"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	sqldblogger "github.com/simukti/sqldb-logger"
)

type URLRepository struct {
	db     *sql.DB
	logger logger.Logger
	config config.Database
	// connected is set during startup only.
	connected atomic.Bool
}

// NewURLRepository creates a disconnected adapter. Call Connect before use.
func NewURLRepository(config *config.Config, logger logger.Logger) (*URLRepository, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &URLRepository{config: config.Database, logger: logger}, nil
}

// Connect opens the database and verifies it with a ping. Failed pings are
// retried with exponential backoff up to the configured number of attempts.
// It reports whether the database is usable; failures are only logged.
func (ur *URLRepository) Connect(ctx context.Context) bool {
	dsn := ur.config.DataSourceName()

	raw, err := sql.Open("pgx", dsn)
	if err != nil {
		ur.logger.Errorf("open database: %v", err)
		return false
	}
	// Every statement goes through the application logger.
	db := sqldblogger.OpenDriver(dsn, raw.Driver(), ur.logger,
		sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
		sqldblogger.WithSQLQueryAsMessage(true),
	)
	_ = raw.Close()

	attempts := ur.config.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)

	ping := func() error {
		ctx, cancel := context.WithTimeout(ctx, ur.config.ConnectTimeout)
		defer cancel()
		return db.PingContext(ctx)
	}
	notify := func(err error, next time.Duration) {
		ur.logger.Warnf("database is not reachable, retrying in %s: %v", next, err)
	}

	if err = backoff.RetryNotify(ping, policy, notify); err != nil {
		ur.logger.Errorf("connect to database after %d attempt(s), using file storage: %v", attempts, err)
		if err = db.Close(); err != nil {
			ur.logger.Errorf("close database: %v", err)
		}
		return false
	}

	ur.db = db
	ur.connected.Store(true)
	ur.logger.Info("connected to database")

	return true
}

// EnsureSchema creates the urls table if it does not exist.
// On failure the adapter is marked disconnected.
func (ur *URLRepository) EnsureSchema(ctx context.Context) error {
	if !ur.Connected() {
		return errs.ErrStoreUnavailable
	}

	done := make(chan error, 1)
	go func() { done <- migrations.Up(ur.db) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		ur.connected.Store(false)
		ur.logger.Errorf("ensure schema, using file storage: %v", err)
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}

// GetAll returns every stored mapping, oldest first.
// It returns an empty list when disconnected or on any failure.
func (ur *URLRepository) GetAll(ctx context.Context) models.Mappings {
	const q = `
		SELECT
			short_code, original_url, click_count, created_time
		FROM
			urls
		ORDER BY
			created_time, short_code
	`

	all := models.Mappings{}
	if !ur.Connected() {
		return all
	}

	ctx, cancel := context.WithTimeout(ctx, ur.config.QueryTimeout)
	defer cancel()

	rows, err := ur.db.QueryContext(ctx, q)
	if err != nil {
		ur.logger.Errorf("retrieve urls with query (%s): %v", formatQuery(q), wrapPgError(err))
		return all
	}
	defer func() {
		if err = rows.Close(); err != nil {
			ur.logger.Errorf("close rows: %v", err)
		}
	}()

	for rows.Next() {
		var (
			m       models.URLMapping
			created sql.NullTime
		)
		if err = rows.Scan(&m.ShortCode, &m.OriginalURL, &m.ClickCount, &created); err != nil {
			ur.logger.Errorf("retrieve urls with query (%s): %v", formatQuery(q), err)
			return models.Mappings{}
		}
		m.CreatedTime = created.Time
		all = append(all, m)
	}

	if err = rows.Err(); err != nil {
		ur.logger.Errorf("retrieve urls with query (%s): %v", formatQuery(q), err)
		return models.Mappings{}
	}

	return all
}

// Insert stores a mapping. An existing code is left untouched, so
// repeated calls are idempotent.
func (ur *URLRepository) Insert(ctx context.Context, m models.URLMapping) error {
	const q = `
		INSERT INTO urls
			(short_code, original_url)
		VALUES
			($1, $2)
		ON CONFLICT (short_code) DO NOTHING
	`

	if !ur.Connected() {
		return errs.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, ur.config.QueryTimeout)
	defer cancel()

	if _, err := ur.db.ExecContext(ctx, q, m.ShortCode, m.OriginalURL); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil
		}
		err = fmt.Errorf("%w: save url %q with query (%s): %w",
			errs.ErrPersistenceFailure, m.ShortCode, formatQuery(q), wrapPgError(err))
		ur.logger.Error(err)
		return err
	}

	return nil
}

// IncrementClick adds one click to the code. A missing code is a no-op.
func (ur *URLRepository) IncrementClick(ctx context.Context, code string) {
	const q = `
		UPDATE urls
		SET
			click_count = click_count + 1
		WHERE
			short_code = $1
	`

	if !ur.Connected() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, ur.config.QueryTimeout)
	defer cancel()

	if _, err := ur.db.ExecContext(ctx, q, code); err != nil {
		ur.logger.Errorf("increment clicks of %q with query (%s): %v",
			code, formatQuery(q), wrapPgError(err))
	}
}

// Connected reports whether the database is in use.
func (ur *URLRepository) Connected() bool {
	return ur.connected.Load()
}

// Close releases the connection pool.
func (ur *URLRepository) Close() error {
	ur.connected.Store(false)
	if ur.db == nil {
		return nil
	}
	return ur.db.Close()
}

// formatQuery removes tabs and replaces newlines with spaces in the given query string.
func formatQuery(q string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(q, "\t", ""), "\n", " "))
}

// wrapPgError replaces a PgError with a human-friendly one.
func wrapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return formatPgError(pgErr)
	}
	return err
}

// formatPgError formats a PgError into a human-friendly error message.
func formatPgError(err *pgconn.PgError) error {
	return fmt.Errorf("SQL Error: %s, Detail: %s, Where: %s, Code: %s, SQLState: %s",
		err.Message,
		err.Detail,
		err.Where,
		err.Code,
		err.SQLState(),
	)
}

// Package database opens the PostgreSQL pool the API and sitrackctl share.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"sitrack/internal/config"
	"sitrack/internal/logging"
)

const (
	applicationName = "sitrack"
	pingTimeout     = 5 * time.Second
)

var (
	sqlOpen = sql.Open
	// after is swapped in tests so retries do not sleep.
	after = time.After
)

// BuildPostgresDSN renders c as a pgx URL. Session settings travel as runtime
// parameters: application_name, TimeZone and statement_timeout in milliseconds.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", errors.New("invalid database config: host, port, user and name are required")
	}
	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return "", fmt.Errorf("invalid database time zone %q: %w", c.TimeZone, err)
		}
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	q.Set("application_name", applicationName)
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.TimeZone != "" {
		q.Set("timezone", c.TimeZone)
	}
	if c.StatementTimeoutSec > 0 {
		q.Set("statement_timeout", strconv.Itoa(c.StatementTimeoutSec*1000))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Open returns a traced pool once the server answers a ping. A server that is
// still starting gets c.ConnectAttempts tries, c.ConnectRetryDelaySec apart.
func Open(ctx context.Context, c config.DatabaseConfig, log *logging.Logger) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL, semconv.DBName(c.Name)),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	if err := waitReady(ctx, db, c, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}

func waitReady(ctx context.Context, db *sql.DB, c config.DatabaseConfig, log *logging.Logger) error {
	attempts := max(c.ConnectAttempts, 1)
	delay := time.Duration(c.ConnectRetryDelaySec) * time.Second

	for i := 1; ; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if i == attempts {
			return fmt.Errorf("db ping after %d attempts: %w", i, err)
		}
		log.Warn("database_not_ready", map[string]any{
			"host":     c.Host,
			"attempt":  i,
			"attempts": attempts,
			"error":    err.Error(),
		})
		select {
		case <-ctx.Done():
			return fmt.Errorf("db ping: %w", ctx.Err())
		case <-after(delay):
		}
	}
}

// RegisterStats exports the pool's connection counters under db_name.
func RegisterStats(reg prometheus.Registerer, db *sql.DB, name string) error {
	if err := reg.Register(collectors.NewDBStatsCollector(db, name)); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}

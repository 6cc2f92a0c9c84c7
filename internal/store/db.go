package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type DB struct {
	Pool    *sql.DB
	Dialect Dialect
}

// Open connects to the jobs database. DSNs starting with postgres:// or
// postgresql:// go through pgx; anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string) (*DB, error) {
	d := dialectFor(dsn)

	source := dsn
	if d.Name == sqliteDialect.Name {
		// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
		source = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dsn)
	}

	pool, err := sql.Open(d.Driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}

	// one writer, one transaction
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}

	return &DB{Pool: pool, Dialect: d}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}

// Begin starts the run-wide transaction every pass writes through.
func (d *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{tx: tx, d: d.Dialect}, nil
}

// IsPostgresDSN reports whether dsn names a Postgres server rather than a
// SQLite file.
func IsPostgresDSN(dsn string) bool {
	l := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(l, "postgres://") || strings.HasPrefix(l, "postgresql://")
}

// Describe returns dsn safe for logs and reports: Postgres passwords are
// masked, file paths pass through.
func Describe(dsn string) string {
	if !IsPostgresDSN(dsn) {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "postgres://(unparseable)"
	}
	return u.Redacted()
}

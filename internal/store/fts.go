package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// RebuildSearchIndex rebuilds the jobs_fts full-text index after a run so
// search reflects the cleaned text. It is a no-op for Postgres and for SQLite
// databases without the index.
func (d *DB) RebuildSearchIndex(ctx context.Context) (rebuilt bool, err error) {
	if d.Dialect.Name != sqliteDialect.Name {
		return false, nil
	}

	var one int
	err = d.Pool.QueryRowContext(ctx,
		`SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'jobs_fts' LIMIT 1;`,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up jobs_fts: %w", err)
	}

	if _, err := d.Pool.ExecContext(ctx, `INSERT INTO jobs_fts(jobs_fts) VALUES('rebuild');`); err != nil {
		return false, fmt.Errorf("rebuild jobs_fts: %w", err)
	}
	return true, nil
}

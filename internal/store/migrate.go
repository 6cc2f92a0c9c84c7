package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const qualityScoreColumn = "quality_score"

// EnsureQualityScoreColumn adds jobs.quality_score when it is missing. It
// reports whether the column was added; an existing column is the normal
// steady state and not an error.
func (d *DB) EnsureQualityScoreColumn(ctx context.Context) (added bool, err error) {
	exists, err := columnExists(ctx, d.Pool, d.Dialect, "jobs", qualityScoreColumn)
	if err != nil {
		return false, fmt.Errorf("check %s column: %w", qualityScoreColumn, err)
	}
	if exists {
		return false, nil
	}

	_, err = d.Pool.ExecContext(ctx, `ALTER TABLE jobs ADD COLUMN quality_score INTEGER DEFAULT 0`)
	if err != nil {
		if isDuplicateColumn(err) {
			return false, nil
		}
		return false, fmt.Errorf("add %s column: %w", qualityScoreColumn, err)
	}
	return true, nil
}

func columnExists(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, d Dialect, table, col string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, d.Rebind(columnQuery(d)), table, col).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// columnQuery looks a column up in the table the connection resolves by
// default; on Postgres that is the first schema of the search path.
func columnQuery(d Dialect) string {
	if d.Name == postgresDialect.Name {
		return `
SELECT 1
FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?
LIMIT 1;`
	}
	return `
SELECT 1
FROM pragma_table_info(?)
WHERE name = ?
LIMIT 1;`
}

func isDuplicateColumn(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.DuplicateColumn
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}

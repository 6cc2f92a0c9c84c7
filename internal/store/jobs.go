package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jobclean/internal/domain"
)

// Tx is the run-wide transaction. All reads see the writes of earlier passes.
type Tx struct {
	tx *sql.Tx
	d  Dialect
}

type SourceCount struct {
	Source string
	Count  int
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback is safe to defer after Commit.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return fmt.Errorf("rollback: %w", err)
}

// Active returns a snapshot of every active listing, ordered by id.
func (t *Tx) Active(ctx context.Context) ([]domain.Listing, error) {
	rows, err := t.tx.QueryContext(ctx, t.d.Rebind(`
SELECT id, title, description, company_name, status, source,
       salary_min, salary_max, job_type, quality_score, updated_at
FROM jobs
WHERE status = ?
ORDER BY id;`), string(domain.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("query active jobs: %w", err)
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		var (
			l                                         domain.Listing
			title, desc, company, status, src, jt, ua sql.NullString
			smin, smax                                sql.NullFloat64
			score                                     sql.NullInt64
		)
		if err := rows.Scan(&l.ID, &title, &desc, &company, &status, &src,
			&smin, &smax, &jt, &score, &ua); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		l.Title = title.String
		l.Description = desc.String
		l.CompanyName = company.String
		l.Status = domain.Status(status.String)
		l.Source = src.String
		l.JobType = jt.String
		l.QualityScore = int(score.Int64)
		l.UpdatedAt = ua.String
		if smin.Valid {
			v := smin.Float64
			l.SalaryMin = &v
		}
		if smax.Valid {
			v := smax.Float64
			l.SalaryMax = &v
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return out, nil
}

// Update writes the non-nil fields of c and refreshes updated_at.
func (t *Tx) Update(ctx context.Context, id int64, c domain.Change) error {
	if c.Empty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	if c.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *c.Title)
	}
	if c.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *c.Description)
	}
	if c.CompanyName != nil {
		sets = append(sets, "company_name = ?")
		args = append(args, *c.CompanyName)
	}
	if c.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*c.Status))
	}
	if c.QualityScore != nil {
		sets = append(sets, "quality_score = ?")
		args = append(args, *c.QualityScore)
	}
	sets = append(sets, "updated_at = "+t.d.Now)
	args = append(args, id)

	query := "UPDATE jobs SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := t.tx.ExecContext(ctx, t.d.Rebind(query), args...); err != nil {
		return fmt.Errorf("update job %d: %w", id, err)
	}
	return nil
}

// CountBySource counts every listing (any status) per source tag.
func (t *Tx) CountBySource(ctx context.Context) ([]SourceCount, error) {
	rows, err := t.tx.QueryContext(ctx, `
SELECT COALESCE(source, ''), COUNT(*)
FROM jobs
GROUP BY COALESCE(source, '')
ORDER BY COUNT(*) DESC, COALESCE(source, '');`)
	if err != nil {
		return nil, fmt.Errorf("count by source: %w", err)
	}
	defer rows.Close()

	var out []SourceCount
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan source count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (t *Tx) CountActive(ctx context.Context) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, t.d.Rebind(`SELECT COUNT(*) FROM jobs WHERE status = ?`),
		string(domain.StatusActive)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active: %w", err)
	}
	return n, nil
}

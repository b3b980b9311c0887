package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL report repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const reportColumns = `
	id, user_id, type, title, description, city, state,
	lat, lon, severity, status, created_at, updated_at
`

// Insert stores a new report.
func (r *PostgresRepository) Insert(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		rep.ID,
		rep.UserID,
		string(rep.Type),
		rep.Title,
		rep.Description,
		rep.City,
		nullIfEmpty(rep.State),
		rep.Lat,
		rep.Lon,
		string(rep.Severity),
		string(rep.Status),
		rep.CreatedAt,
		rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

// Get returns a report by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE id = $1
	`
	return r.scanReport(r.pool.QueryRow(ctx, query, id))
}

// ListByCity returns a page of reports for a city, newest first.
func (r *PostgresRepository) ListByCity(ctx context.Context, city string, f Filter) (*ListResult, error) {
	where := `WHERE lower(city) = lower($1)`
	args := []any{city}
	return r.list(ctx, where, args, f)
}

// ListByUser returns a page of reports submitted by a user.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, f Filter) (*ListResult, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	return r.list(ctx, where, args, f)
}

// UpdateStatus moves a report to a new status.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	query := `
		UPDATE reports
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("updating report status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, where string, args []any, f Filter) (*ListResult, error) {
	if f.Type != "" {
		args = append(args, string(f.Type))
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var total int
	countQuery := `SELECT count(*) FROM reports ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting reports: %w", err)
	}

	query := `
		SELECT ` + reportColumns + `
		FROM reports ` + where + `
		ORDER BY created_at DESC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1) + ` OFFSET ` + fmt.Sprintf("$%d", len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	result := &ListResult{Total: total, Limit: limit, Offset: offset}
	for rows.Next() {
		rep, err := r.scanReport(rows)
		if err != nil {
			return nil, err
		}
		result.Reports = append(result.Reports, rep)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	var typ, severity, status string
	var state *string

	err := row.Scan(
		&rep.ID,
		&rep.UserID,
		&typ,
		&rep.Title,
		&rep.Description,
		&rep.City,
		&state,
		&rep.Lat,
		&rep.Lon,
		&severity,
		&status,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	rep.Type = Type(typ)
	rep.Severity = Severity(severity)
	rep.Status = Status(status)
	if state != nil {
		rep.State = *state
	}
	return &rep, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

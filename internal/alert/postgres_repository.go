package alert

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL alert repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const alertColumns = `
	id, type, severity, title, message, city, state,
	valid_from, valid_until, is_active, issued_by, metadata, created_at
`

// severityRank is inlined into queries so "most severe first" ordering
// does not depend on the lexical order of the enum strings.
const severityRank = `
	CASE severity
		WHEN 'emergency' THEN 3
		WHEN 'critical' THEN 2
		WHEN 'warning' THEN 1
		ELSE 0
	END
`

// Insert stores a new alert.
func (r *PostgresRepository) Insert(ctx context.Context, a *Alert) error {
	metadata, err := json.Marshal(a.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.pool.Exec(ctx, query,
		a.ID,
		string(a.Type),
		string(a.Severity),
		a.Title,
		a.Message,
		a.City,
		a.State,
		a.ValidFrom,
		a.ValidUntil,
		a.IsActive,
		a.IssuedBy,
		metadata,
		a.CreatedAt,
	)
	return err
}

// Get returns an alert by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	a, err := scanAlert(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// ActiveForCity returns active alerts for a city, most severe first.
func (r *PostgresRepository) ActiveForCity(ctx context.Context, city string, f Filter) ([]*Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE lower(city) = lower($1)
		  AND is_active
		  AND (valid_until IS NULL OR valid_until > now())
		  AND ($2 = '' OR type = $2)
		  AND ($3 = '' OR severity = $3)
		ORDER BY ` + severityRank + ` DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, city, string(f.Type), string(f.Severity))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAlerts(rows)
}

// HasActiveOverlap reports whether an active same-city same-type alert
// with severity at or above the given one exists.
func (r *PostgresRepository) HasActiveOverlap(ctx context.Context, city string, t Type, s Severity) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE lower(city) = lower($1)
			  AND type = $2
			  AND is_active
			  AND (valid_until IS NULL OR valid_until > now())
			  AND ` + severityRank + ` >= $3
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, city, string(t), s.Rank()).Scan(&exists)
	return exists, err
}

// History returns a page of alerts for a city, newest first.
func (r *PostgresRepository) History(ctx context.Context, city string, t Type, page Page) (*HistoryResult, error) {
	limit := page.Limit
	if limit <= 0 {
		limit = 50
	}

	countQuery := `
		SELECT count(*) FROM alerts
		WHERE lower(city) = lower($1) AND ($2 = '' OR type = $2)
	`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, city, string(t)).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE lower(city) = lower($1) AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, city, string(t), limit, page.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts, err := collectAlerts(rows)
	if err != nil {
		return nil, err
	}

	return &HistoryResult{
		Alerts:  alerts,
		Total:   total,
		HasMore: page.Skip+len(alerts) < total,
	}, nil
}

func collectAlerts(rows pgx.Rows) ([]*Alert, error) {
	var alerts []*Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func scanAlert(row pgx.Row) (*Alert, error) {
	var a Alert
	var typ, severity string
	var metadata []byte

	err := row.Scan(
		&a.ID,
		&typ,
		&severity,
		&a.Title,
		&a.Message,
		&a.City,
		&a.State,
		&a.ValidFrom,
		&a.ValidUntil,
		&a.IsActive,
		&a.IssuedBy,
		&metadata,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Type = Type(typ)
	a.Severity = Severity(severity)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)

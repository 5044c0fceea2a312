package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrJobNotFound signals the quoted job does not exist.
var ErrJobNotFound = errors.New("quote: job not found")

// Repository handles data access for quotes.
type Repository interface {
	Create(ctx context.Context, tradespersonID string, params CreateParams) (Quote, error)
	ListByTradesperson(ctx context.Context, tradespersonID string) ([]Quote, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed quote repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Create(ctx context.Context, tradespersonID string, params CreateParams) (Quote, error) {
	const insertSQL = `
		INSERT INTO tradesperson_quotes (tradesperson_id, job_id, quote_amount, breakdown, valid_until,
			terms_conditions, includes_materials, estimated_duration_hours, start_date_estimate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, tradesperson_id, job_id, quote_amount, breakdown, valid_until,
			terms_conditions, includes_materials, estimated_duration_hours, start_date_estimate, status, created_at
	`

	var q Quote
	err := r.pool.QueryRow(ctx, insertSQL,
		tradespersonID,
		params.JobID,
		params.QuoteAmount,
		params.Breakdown,
		params.ValidUntil,
		params.TermsConditions,
		params.IncludesMaterials,
		params.EstimatedDurationHours,
		params.StartDateEstimate,
	).Scan(
		&q.ID,
		&q.TradespersonID,
		&q.JobID,
		&q.QuoteAmount,
		&q.Breakdown,
		&q.ValidUntil,
		&q.TermsConditions,
		&q.IncludesMaterials,
		&q.EstimatedDurationHours,
		&q.StartDateEstimate,
		&q.Status,
		&q.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Quote{}, ErrJobNotFound
		}
		return Quote{}, fmt.Errorf("quote: create: %w", err)
	}

	return q, nil
}

// ListByTradesperson returns all quotes by a tradesperson, newest first,
// joined with job and poster details. Aggregate stats are left to the
// consuming client.
func (r *PGRepository) ListByTradesperson(ctx context.Context, tradespersonID string) ([]Quote, error) {
	const query = `
		SELECT q.id, q.tradesperson_id, q.job_id, q.quote_amount, q.breakdown, q.valid_until,
		       q.terms_conditions, q.includes_materials, q.estimated_duration_hours,
		       q.start_date_estimate, q.status, q.created_at,
		       j.title, j.description, u.first_name, u.last_name
		FROM tradesperson_quotes q
		JOIN jobs j ON q.job_id = j.id
		JOIN users u ON j.user_id = u.id
		WHERE q.tradesperson_id = $1
		ORDER BY q.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tradespersonID)
	if err != nil {
		return nil, fmt.Errorf("quote: list by tradesperson: %w", err)
	}
	defer rows.Close()

	quotes := []Quote{}
	for rows.Next() {
		var q Quote
		if err := rows.Scan(
			&q.ID,
			&q.TradespersonID,
			&q.JobID,
			&q.QuoteAmount,
			&q.Breakdown,
			&q.ValidUntil,
			&q.TermsConditions,
			&q.IncludesMaterials,
			&q.EstimatedDurationHours,
			&q.StartDateEstimate,
			&q.Status,
			&q.CreatedAt,
			&q.JobTitle,
			&q.JobDescription,
			&q.PosterFirstName,
			&q.PosterLastName,
		); err != nil {
			return nil, fmt.Errorf("quote: scan: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quote: iterate: %w", err)
	}

	return quotes, nil
}

package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrDuplicate signals the tradesperson has already applied for the job.
	ErrDuplicate = errors.New("application: already applied for this job")
	// ErrJobNotFound signals the applied-for job does not exist.
	ErrJobNotFound = errors.New("application: job not found")
)

// Repository handles data access for job applications.
type Repository interface {
	Create(ctx context.Context, tradespersonID string, params ApplyParams) (Application, error)
	Exists(ctx context.Context, jobID, tradespersonID string) (bool, error)
	ListByTradesperson(ctx context.Context, tradespersonID string) ([]Application, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed application repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new application. The UNIQUE (job_id, tradesperson_id)
// constraint makes concurrent duplicate submissions lose cleanly; the
// service's existence pre-check only provides the friendlier common path.
func (r *PGRepository) Create(ctx context.Context, tradespersonID string, params ApplyParams) (Application, error) {
	const insertSQL = `
		INSERT INTO job_applications (job_id, tradesperson_id, message, proposed_start_date,
			proposed_duration_hours, proposed_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, job_id, tradesperson_id, message, proposed_start_date,
			proposed_duration_hours, proposed_price, status, created_at
	`

	var app Application
	err := r.pool.QueryRow(ctx, insertSQL,
		params.JobID,
		tradespersonID,
		params.Message,
		params.ProposedStartDate,
		params.ProposedDurationHours,
		params.ProposedPrice,
	).Scan(
		&app.ID,
		&app.JobID,
		&app.TradespersonID,
		&app.Message,
		&app.ProposedStartDate,
		&app.ProposedDurationHours,
		&app.ProposedPrice,
		&app.Status,
		&app.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Application{}, ErrDuplicate
			case "23503":
				return Application{}, ErrJobNotFound
			}
		}
		return Application{}, fmt.Errorf("application: create: %w", err)
	}

	return app, nil
}

// Exists reports whether the tradesperson already applied for the job.
func (r *PGRepository) Exists(ctx context.Context, jobID, tradespersonID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM job_applications WHERE job_id = $1 AND tradesperson_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, jobID, tradespersonID).Scan(&exists); err != nil {
		return false, fmt.Errorf("application: exists: %w", err)
	}

	return exists, nil
}

// ListByTradesperson returns all applications by a tradesperson, newest
// first, joined with job and poster contact details.
func (r *PGRepository) ListByTradesperson(ctx context.Context, tradespersonID string) ([]Application, error) {
	const query = `
		SELECT a.id, a.job_id, a.tradesperson_id, a.message, a.proposed_start_date,
		       a.proposed_duration_hours, a.proposed_price, a.status, a.created_at,
		       j.title, j.description, j.location, j.budget_min, j.budget_max, j.timeline,
		       u.first_name, u.last_name, u.phone, u.email
		FROM job_applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON j.user_id = u.id
		WHERE a.tradesperson_id = $1
		ORDER BY a.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tradespersonID)
	if err != nil {
		return nil, fmt.Errorf("application: list by tradesperson: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		var app Application
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.TradespersonID,
			&app.Message,
			&app.ProposedStartDate,
			&app.ProposedDurationHours,
			&app.ProposedPrice,
			&app.Status,
			&app.CreatedAt,
			&app.JobTitle,
			&app.JobDescription,
			&app.JobLocation,
			&app.JobBudgetMin,
			&app.JobBudgetMax,
			&app.JobTimeline,
			&app.PosterFirstName,
			&app.PosterLastName,
			&app.PosterPhone,
			&app.PosterEmail,
		); err != nil {
			return nil, fmt.Errorf("application: scan: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("application: iterate: %w", err)
	}

	return apps, nil
}

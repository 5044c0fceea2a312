package job

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals the requested job does not exist.
	ErrNotFound = errors.New("job: not found")
	// ErrHasDependents signals the job still has messages, quotes or
	// applications referencing it and cannot be deleted.
	ErrHasDependents = errors.New("job: has dependent records")
)

// Repository handles data access for jobs.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (Job, error)
	List(ctx context.Context, filters Filters) ([]Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	Update(ctx context.Context, id string, params UpdateParams) (Job, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]Job, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed job repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Create(ctx context.Context, userID string, params CreateParams) (Job, error) {
	const insertSQL = `
		INSERT INTO jobs (user_id, category_id, title, description, location, budget_min, budget_max, timeline, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, category_id, title, description, location, budget_min, budget_max, timeline, images, status, created_at, updated_at
	`

	images := params.Images
	if images == nil {
		images = []string{}
	}

	row := r.pool.QueryRow(ctx, insertSQL,
		userID,
		params.CategoryID,
		params.Title,
		params.Description,
		params.Location,
		params.BudgetMin,
		params.BudgetMax,
		params.Timeline,
		images,
	)

	j, err := scanJob(row)
	if err != nil {
		return Job{}, fmt.Errorf("job: create: %w", err)
	}

	return j, nil
}

func (r *PGRepository) List(ctx context.Context, filters Filters) ([]Job, error) {
	if filters.Status == "" {
		filters.Status = StatusOpen
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 10
	}

	base := `
		SELECT j.id, j.user_id, j.category_id, j.title, j.description, j.location,
		       j.budget_min, j.budget_max, j.timeline, j.images, j.status,
		       j.created_at, j.updated_at, u.first_name, u.last_name, c.name
		FROM jobs j
		JOIN users u ON j.user_id = u.id
		JOIN categories c ON j.category_id = c.id
	`
	where := []string{"j.status = $1"}
	args := []any{filters.Status}

	if filters.CategoryID != "" {
		where = append(where, fmt.Sprintf("j.category_id = $%d", len(args)+1))
		args = append(args, filters.CategoryID)
	}
	if filters.Location != "" {
		where = append(where, fmt.Sprintf("j.location ILIKE $%d", len(args)+1))
		args = append(args, "%"+filters.Location+"%")
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY j.created_at DESC LIMIT %d OFFSET %d",
		base, strings.Join(where, " AND "), filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("job: list: %w", err)
	}
	defer rows.Close()

	return collectJoinedJobs(rows)
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (Job, error) {
	const query = `
		SELECT j.id, j.user_id, j.category_id, j.title, j.description, j.location,
		       j.budget_min, j.budget_max, j.timeline, j.images, j.status,
		       j.created_at, j.updated_at, u.first_name, u.last_name, c.name
		FROM jobs j
		JOIN users u ON j.user_id = u.id
		JOIN categories c ON j.category_id = c.id
		WHERE j.id = $1
	`

	j, err := scanJoinedJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, fmt.Errorf("job: get by id: %w", err)
	}

	return j, nil
}

// Update applies a COALESCE partial update; nil params keep stored values.
func (r *PGRepository) Update(ctx context.Context, id string, params UpdateParams) (Job, error) {
	const updateSQL = `
		UPDATE jobs
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    category_id = COALESCE($4, category_id),
		    location = COALESCE($5, location),
		    budget_min = COALESCE($6, budget_min),
		    budget_max = COALESCE($7, budget_max),
		    timeline = COALESCE($8, timeline),
		    images = COALESCE($9, images),
		    status = COALESCE($10, status),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, user_id, category_id, title, description, location, budget_min, budget_max, timeline, images, status, created_at, updated_at
	`

	row := r.pool.QueryRow(ctx, updateSQL,
		id,
		params.Title,
		params.Description,
		params.CategoryID,
		params.Location,
		params.BudgetMin,
		params.BudgetMax,
		params.Timeline,
		params.Images,
		params.Status,
	)

	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, fmt.Errorf("job: update: %w", err)
	}

	return j, nil
}

// Delete hard-deletes a job. The ON DELETE RESTRICT constraints on
// messages, quotes and applications refuse deletion while dependents exist.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasDependents
		}
		return fmt.Errorf("job: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PGRepository) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	const query = `
		SELECT j.id, j.user_id, j.category_id, j.title, j.description, j.location,
		       j.budget_min, j.budget_max, j.timeline, j.images, j.status,
		       j.created_at, j.updated_at, u.first_name, u.last_name, c.name
		FROM jobs j
		JOIN users u ON j.user_id = u.id
		JOIN categories c ON j.category_id = c.id
		WHERE j.user_id = $1
		ORDER BY j.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("job: list by user: %w", err)
	}
	defer rows.Close()

	return collectJoinedJobs(rows)
}

func collectJoinedJobs(rows pgx.Rows) ([]Job, error) {
	jobs := []Job{}
	for rows.Next() {
		j, err := scanJoinedJob(rows)
		if err != nil {
			return nil, fmt.Errorf("job: scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("job: iterate: %w", err)
	}

	return jobs, nil
}

func scanJob(row pgx.Row) (Job, error) {
	var j Job
	err := row.Scan(
		&j.ID,
		&j.UserID,
		&j.CategoryID,
		&j.Title,
		&j.Description,
		&j.Location,
		&j.BudgetMin,
		&j.BudgetMax,
		&j.Timeline,
		&j.Images,
		&j.Status,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	return j, err
}

func scanJoinedJob(row pgx.Row) (Job, error) {
	var j Job
	err := row.Scan(
		&j.ID,
		&j.UserID,
		&j.CategoryID,
		&j.Title,
		&j.Description,
		&j.Location,
		&j.BudgetMin,
		&j.BudgetMax,
		&j.Timeline,
		&j.Images,
		&j.Status,
		&j.CreatedAt,
		&j.UpdatedAt,
		&j.PosterFirstName,
		&j.PosterLastName,
		&j.CategoryName,
	)
	return j, err
}

package tradesperson

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
	// ErrNotFound signals the requested tradesperson does not exist.
	ErrNotFound = errors.New("tradesperson: not found")
	// ErrProfileExists signals the user already has a tradesperson profile.
	ErrProfileExists = errors.New("tradesperson: profile already exists")
)

// Repository handles data access for tradesperson profiles, portfolio items
// and reviews.
type Repository interface {
	CreateProfile(ctx context.Context, userID string, params RegisterParams) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	UpdateProfile(ctx context.Context, id string, params UpdateParams) (Profile, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]Profile, error)
	Featured(ctx context.Context, limit int) ([]Profile, error)
	AddPortfolioItem(ctx context.Context, tradespersonID string, params PortfolioParams) (PortfolioItem, error)
	GetPortfolio(ctx context.Context, tradespersonID string) ([]PortfolioItem, error)
	AddReview(ctx context.Context, params ReviewParams) (Review, error)
	GetReviews(ctx context.Context, tradespersonID string, limit int) ([]Review, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed tradesperson repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const profileColumns = `t.id, t.user_id, t.business_name, t.years_experience, t.qualifications,
	t.certifications, t.specializations, t.service_cities, t.service_postcodes,
	t.hourly_rate, t.callout_fee, t.emergency_services,
	t.identity_verified, t.qualifications_verified, t.insurance_verified,
	t.dbs_verified, t.financial_verified, t.overall_verified,
	t.overall_rating, t.total_reviews, t.is_active, t.featured,
	t.created_at, t.updated_at,
	u.first_name, u.last_name, u.email, u.phone, u.profile_image`

// CreateProfile inserts the profile, applies the five mock verification
// checks and recomputes the overall flag in a single transaction, so a crash
// can never leave a partially verified profile behind.
func (r *PGRepository) CreateProfile(ctx context.Context, userID string, params RegisterParams) (Profile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("tradesperson: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertSQL = `
		INSERT INTO tradespeople (user_id, business_name, years_experience, qualifications,
			certifications, specializations, service_cities, service_postcodes,
			hourly_rate, callout_fee, emergency_services)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id string
	err = tx.QueryRow(ctx, insertSQL,
		userID,
		params.BusinessName,
		params.YearsExperience,
		orEmpty(params.Qualifications),
		orEmpty(params.Certifications),
		orEmpty(params.Specializations),
		orEmpty(params.ServiceCities),
		orEmpty(params.ServicePostcodes),
		params.HourlyRate,
		params.CalloutFee,
		params.EmergencyServices,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Profile{}, ErrProfileExists
		}
		return Profile{}, fmt.Errorf("tradesperson: insert profile: %w", err)
	}

	// Mock verification: each check is its own write, matching the real
	// verification flow where checks complete independently.
	for _, column := range []string{
		"identity_verified",
		"qualifications_verified",
		"insurance_verified",
		"dbs_verified",
		"financial_verified",
	} {
		query := fmt.Sprintf(`UPDATE tradespeople SET %s = TRUE, updated_at = now() WHERE id = $1`, column)
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return Profile{}, fmt.Errorf("tradesperson: set %s: %w", column, err)
		}
	}

	// overall_verified is derived, never set independently.
	const recomputeSQL = `
		UPDATE tradespeople
		SET overall_verified = identity_verified AND qualifications_verified
			AND insurance_verified AND dbs_verified AND financial_verified,
		    updated_at = now()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, recomputeSQL, id); err != nil {
		return Profile{}, fmt.Errorf("tradesperson: recompute verification: %w", err)
	}

	profile, err := getByIDTx(ctx, tx, id)
	if err != nil {
		return Profile{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Profile{}, fmt.Errorf("tradesperson: commit: %w", err)
	}

	return profile, nil
}

// GetByUserID retrieves the profile owned by a user.
func (r *PGRepository) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM tradespeople t JOIN users u ON t.user_id = u.id WHERE t.user_id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("tradesperson: get by user id: %w", err)
	}

	return p, nil
}

// GetByID retrieves a profile by its primary key.
func (r *PGRepository) GetByID(ctx context.Context, id string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM tradespeople t JOIN users u ON t.user_id = u.id WHERE t.id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("tradesperson: get by id: %w", err)
	}

	return p, nil
}

func getByIDTx(ctx context.Context, tx pgx.Tx, id string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM tradespeople t JOIN users u ON t.user_id = u.id WHERE t.id = $1`

	p, err := scanProfile(tx.QueryRow(ctx, query, id))
	if err != nil {
		return Profile{}, fmt.Errorf("tradesperson: reload profile: %w", err)
	}
	return p, nil
}

// UpdateProfile applies the allow-listed partial update. The column list is
// fixed here; request keys never reach the query.
func (r *PGRepository) UpdateProfile(ctx context.Context, id string, params UpdateParams) (Profile, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.BusinessName != nil {
		add("business_name", *params.BusinessName)
	}
	if params.YearsExperience != nil {
		add("years_experience", *params.YearsExperience)
	}
	if params.Qualifications != nil {
		add("qualifications", params.Qualifications)
	}
	if params.Certifications != nil {
		add("certifications", params.Certifications)
	}
	if params.Specializations != nil {
		add("specializations", params.Specializations)
	}
	if params.ServiceCities != nil {
		add("service_cities", params.ServiceCities)
	}
	if params.ServicePostcodes != nil {
		add("service_postcodes", params.ServicePostcodes)
	}
	if params.HourlyRate != nil {
		add("hourly_rate", *params.HourlyRate)
	}
	if params.CalloutFee != nil {
		add("callout_fee", *params.CalloutFee)
	}
	if params.EmergencyServices != nil {
		add("emergency_services", *params.EmergencyServices)
	}
	if params.IsActive != nil {
		add("is_active", *params.IsActive)
	}

	query := fmt.Sprintf(`UPDATE tradespeople SET %s WHERE id = $1 RETURNING id`, strings.Join(set, ", "))

	var updatedID string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("tradesperson: update profile: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// Search finds active profiles matching the criteria, best rated first.
func (r *PGRepository) Search(ctx context.Context, criteria SearchCriteria) ([]Profile, error) {
	base := `SELECT ` + profileColumns + ` FROM tradespeople t JOIN users u ON t.user_id = u.id`
	where := []string{"t.is_active = TRUE"}
	args := []any{}

	if criteria.City != "" {
		args = append(args, criteria.City)
		n := len(args)
		args = append(args, "%"+criteria.City+"%")
		where = append(where, fmt.Sprintf("($%d = ANY(t.service_cities) OR u.city ILIKE $%d)", n, n+1))
	}
	if criteria.Postcode != "" {
		args = append(args, criteria.Postcode)
		where = append(where, fmt.Sprintf("$%d = ANY(t.service_postcodes)", len(args)))
	}
	if criteria.MinRating > 0 {
		args = append(args, criteria.MinRating)
		where = append(where, fmt.Sprintf("t.overall_rating >= $%d", len(args)))
	}
	if criteria.MaxHourlyRate > 0 {
		args = append(args, criteria.MaxHourlyRate)
		where = append(where, fmt.Sprintf("t.hourly_rate <= $%d", len(args)))
	}
	if criteria.Verified {
		where = append(where, "t.overall_verified = TRUE")
	}
	if criteria.Specialization != "" {
		args = append(args, criteria.Specialization)
		where = append(where, fmt.Sprintf("$%d = ANY(t.specializations)", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.overall_rating DESC, t.total_reviews DESC",
		base, strings.Join(where, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tradesperson: search: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

// Featured returns up to limit active, featured profiles, best rated first.
func (r *PGRepository) Featured(ctx context.Context, limit int) ([]Profile, error) {
	if limit <= 0 || limit > 50 {
		limit = 6
	}

	query := `SELECT ` + profileColumns + `
		FROM tradespeople t
		JOIN users u ON t.user_id = u.id
		WHERE t.is_active = TRUE AND t.featured = TRUE
		ORDER BY t.overall_rating DESC, t.total_reviews DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("tradesperson: featured: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

// AddPortfolioItem stores a new portfolio entry for the profile.
func (r *PGRepository) AddPortfolioItem(ctx context.Context, tradespersonID string, params PortfolioParams) (PortfolioItem, error) {
	const insertSQL = `
		INSERT INTO tradesperson_portfolio (tradesperson_id, title, description, project_type,
			before_image, after_image, additional_images, project_value, completion_date, customer_testimonial)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, tradesperson_id, title, description, project_type, before_image,
			after_image, additional_images, project_value, completion_date, customer_testimonial, created_at
	`

	var item PortfolioItem
	err := r.pool.QueryRow(ctx, insertSQL,
		tradespersonID,
		params.Title,
		params.Description,
		params.ProjectType,
		params.BeforeImage,
		params.AfterImage,
		orEmpty(params.AdditionalImages),
		params.ProjectValue,
		params.CompletionDate,
		params.CustomerTestimonial,
	).Scan(
		&item.ID,
		&item.TradespersonID,
		&item.Title,
		&item.Description,
		&item.ProjectType,
		&item.BeforeImage,
		&item.AfterImage,
		&item.AdditionalImages,
		&item.ProjectValue,
		&item.CompletionDate,
		&item.CustomerTestimonial,
		&item.CreatedAt,
	)
	if err != nil {
		return PortfolioItem{}, fmt.Errorf("tradesperson: add portfolio item: %w", err)
	}

	return item, nil
}

// GetPortfolio returns portfolio entries, most recent completion first.
func (r *PGRepository) GetPortfolio(ctx context.Context, tradespersonID string) ([]PortfolioItem, error) {
	const query = `
		SELECT id, tradesperson_id, title, description, project_type, before_image,
			after_image, additional_images, project_value, completion_date, customer_testimonial, created_at
		FROM tradesperson_portfolio
		WHERE tradesperson_id = $1
		ORDER BY completion_date DESC NULLS LAST, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tradespersonID)
	if err != nil {
		return nil, fmt.Errorf("tradesperson: get portfolio: %w", err)
	}
	defer rows.Close()

	items := []PortfolioItem{}
	for rows.Next() {
		var item PortfolioItem
		if err := rows.Scan(
			&item.ID,
			&item.TradespersonID,
			&item.Title,
			&item.Description,
			&item.ProjectType,
			&item.BeforeImage,
			&item.AfterImage,
			&item.AdditionalImages,
			&item.ProjectValue,
			&item.CompletionDate,
			&item.CustomerTestimonial,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("tradesperson: scan portfolio: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tradesperson: iterate portfolio: %w", err)
	}

	return items, nil
}

// AddReview inserts the review and recomputes the profile's aggregates in
// the same transaction. overall_rating is the plain mean rounded to two
// decimal places; total_reviews is the row count.
func (r *PGRepository) AddReview(ctx context.Context, params ReviewParams) (Review, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Review{}, fmt.Errorf("tradesperson: begin review tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertSQL = `
		INSERT INTO tradesperson_reviews (tradesperson_id, customer_id, job_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tradesperson_id, customer_id, job_id, rating, comment, created_at
	`

	var rev Review
	err = tx.QueryRow(ctx, insertSQL,
		params.TradespersonID,
		params.CustomerID,
		params.JobID,
		params.Rating,
		params.Comment,
	).Scan(&rev.ID, &rev.TradespersonID, &rev.CustomerID, &rev.JobID, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Review{}, ErrNotFound
		}
		return Review{}, fmt.Errorf("tradesperson: insert review: %w", err)
	}

	const recomputeSQL = `
		UPDATE tradespeople
		SET overall_rating = (
		        SELECT ROUND(AVG(rating)::numeric, 2)
		        FROM tradesperson_reviews
		        WHERE tradesperson_id = $1
		    ),
		    total_reviews = (
		        SELECT COUNT(*)
		        FROM tradesperson_reviews
		        WHERE tradesperson_id = $1
		    ),
		    updated_at = now()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, recomputeSQL, params.TradespersonID); err != nil {
		return Review{}, fmt.Errorf("tradesperson: recompute rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Review{}, fmt.Errorf("tradesperson: commit review: %w", err)
	}

	return rev, nil
}

// GetReviews returns up to limit reviews, newest first.
func (r *PGRepository) GetReviews(ctx context.Context, tradespersonID string, limit int) ([]Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	const query = `
		SELECT tr.id, tr.tradesperson_id, tr.customer_id, tr.job_id, tr.rating, tr.comment, tr.created_at,
		       u.first_name, u.last_name
		FROM tradesperson_reviews tr
		JOIN users u ON tr.customer_id = u.id
		WHERE tr.tradesperson_id = $1
		ORDER BY tr.created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, tradespersonID, limit)
	if err != nil {
		return nil, fmt.Errorf("tradesperson: get reviews: %w", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rev Review
		if err := rows.Scan(
			&rev.ID,
			&rev.TradespersonID,
			&rev.CustomerID,
			&rev.JobID,
			&rev.Rating,
			&rev.Comment,
			&rev.CreatedAt,
			&rev.CustomerFirstName,
			&rev.CustomerLastName,
		); err != nil {
			return nil, fmt.Errorf("tradesperson: scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tradesperson: iterate reviews: %w", err)
	}

	return reviews, nil
}

func collectProfiles(rows pgx.Rows) ([]Profile, error) {
	profiles := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("tradesperson: scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tradesperson: iterate profiles: %w", err)
	}

	return profiles, nil
}

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.BusinessName,
		&p.YearsExperience,
		&p.Qualifications,
		&p.Certifications,
		&p.Specializations,
		&p.ServiceCities,
		&p.ServicePostcodes,
		&p.HourlyRate,
		&p.CalloutFee,
		&p.EmergencyServices,
		&p.IdentityVerified,
		&p.QualificationsVerified,
		&p.InsuranceVerified,
		&p.DBSVerified,
		&p.FinancialVerified,
		&p.OverallVerified,
		&p.OverallRating,
		&p.TotalReviews,
		&p.IsActive,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.ProfileImage,
	)
	return p, err
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

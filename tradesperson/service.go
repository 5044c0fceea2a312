package tradesperson

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrForbidden signals the caller is acting under a tradesperson id that is
// not their own.
var ErrForbidden = errors.New("tradesperson: not authorized")

// Service exposes business-level tradesperson operations.
type Service struct {
	repo Repository
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates the service-provider profile for a user. A user may own
// at most one profile; verification is mocked immediately after creation.
func (s *Service) Register(ctx context.Context, userID string, params RegisterParams) (Profile, error) {
	if userID == "" {
		return Profile{}, fmt.Errorf("tradesperson: missing user id")
	}
	if strings.TrimSpace(params.BusinessName) == "" {
		return Profile{}, fmt.Errorf("tradesperson: business name is required")
	}
	if params.YearsExperience < 0 {
		return Profile{}, fmt.Errorf("tradesperson: years of experience must not be negative")
	}
	if params.HourlyRate != nil && *params.HourlyRate < 0 {
		return Profile{}, fmt.Errorf("tradesperson: hourly rate must not be negative")
	}

	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return Profile{}, ErrProfileExists
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	return s.repo.CreateProfile(ctx, userID, params)
}

// GetByUserID returns the profile owned by a user.
func (s *Service) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// GetDetail returns the public detail view: profile plus portfolio plus the
// latest five reviews.
func (s *Service) GetDetail(ctx context.Context, id string) (Detail, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	portfolio, err := s.repo.GetPortfolio(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	reviews, err := s.repo.GetReviews(ctx, id, 5)
	if err != nil {
		return Detail{}, err
	}

	return Detail{Profile: profile, Portfolio: portfolio, Reviews: reviews}, nil
}

// UpdateProfile applies the allow-listed update to the caller's own profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, params UpdateParams) (Profile, error) {
	if params.HourlyRate != nil && *params.HourlyRate < 0 {
		return Profile{}, fmt.Errorf("tradesperson: hourly rate must not be negative")
	}
	if params.CalloutFee != nil && *params.CalloutFee < 0 {
		return Profile{}, fmt.Errorf("tradesperson: callout fee must not be negative")
	}
	if params.YearsExperience != nil && *params.YearsExperience < 0 {
		return Profile{}, fmt.Errorf("tradesperson: years of experience must not be negative")
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	return s.repo.UpdateProfile(ctx, existing.ID, params)
}

// Search finds active profiles matching the criteria.
func (s *Service) Search(ctx context.Context, criteria SearchCriteria) ([]Profile, error) {
	return s.repo.Search(ctx, criteria)
}

// Featured returns up to limit featured profiles.
func (s *Service) Featured(ctx context.Context, limit int) ([]Profile, error) {
	return s.repo.Featured(ctx, limit)
}

// Authorize resolves the caller's profile and requires that its id equal the
// supplied tradesperson id. This is the guard for every tradesperson-scoped
// sub-resource: a valid token is not enough to act under someone else's
// profile id, whether or not that id resolves.
func (s *Service) Authorize(ctx context.Context, userID, tradespersonID string) (Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, ErrForbidden
		}
		return Profile{}, err
	}
	if profile.ID != tradespersonID {
		return Profile{}, ErrForbidden
	}

	return profile, nil
}

// AddPortfolioItem stores a portfolio entry under the caller's own profile.
func (s *Service) AddPortfolioItem(ctx context.Context, userID, tradespersonID string, params PortfolioParams) (PortfolioItem, error) {
	for field, value := range map[string]string{
		"title":       params.Title,
		"description": params.Description,
		"projectType": params.ProjectType,
	} {
		if strings.TrimSpace(value) == "" {
			return PortfolioItem{}, fmt.Errorf("tradesperson: %s is required", field)
		}
	}

	if _, err := s.Authorize(ctx, userID, tradespersonID); err != nil {
		return PortfolioItem{}, err
	}

	return s.repo.AddPortfolioItem(ctx, tradespersonID, params)
}

// AddReview records a customer review and recomputes the profile's rating
// aggregates atomically with the insert.
func (s *Service) AddReview(ctx context.Context, params ReviewParams) (Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return Review{}, fmt.Errorf("tradesperson: rating must be between 1 and 5")
	}
	if params.CustomerID == "" {
		return Review{}, fmt.Errorf("tradesperson: missing customer id")
	}

	if _, err := s.repo.GetByID(ctx, params.TradespersonID); err != nil {
		return Review{}, err
	}

	return s.repo.AddReview(ctx, params)
}

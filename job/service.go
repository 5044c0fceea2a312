package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotOwner signals the caller is authenticated but does not own the job.
var ErrNotOwner = errors.New("job: not owned by caller")

// Service exposes business-level job operations. Every mutating operation
// loads the job first and refuses to touch rows the caller does not own.
type Service struct {
	repo Repository
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new job post for the given poster.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (Job, error) {
	if userID == "" {
		return Job{}, fmt.Errorf("job: missing poster user id")
	}
	for field, value := range map[string]string{
		"title":       params.Title,
		"description": params.Description,
		"location":    params.Location,
		"timeline":    params.Timeline,
		"categoryId":  params.CategoryID,
	} {
		if strings.TrimSpace(value) == "" {
			return Job{}, fmt.Errorf("job: %s is required", field)
		}
	}
	if params.BudgetMin < 0 || params.BudgetMax < 0 {
		return Job{}, fmt.Errorf("job: budget must not be negative")
	}
	if params.BudgetMin > params.BudgetMax {
		return Job{}, fmt.Errorf("job: minimum budget exceeds maximum")
	}

	return s.repo.Create(ctx, userID, params)
}

// List returns jobs matching the filters, defaulting to open jobs.
func (s *Service) List(ctx context.Context, filters Filters) ([]Job, error) {
	if filters.Status != "" && !ValidStatus(filters.Status) {
		return nil, fmt.Errorf("job: unknown status %q", filters.Status)
	}
	return s.repo.List(ctx, filters)
}

// GetByID returns a job in any status.
func (s *Service) GetByID(ctx context.Context, id string) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update after verifying ownership. Status may be
// set to any of the four values; no transition ordering is enforced.
func (s *Service) Update(ctx context.Context, userID, jobID string, params UpdateParams) (Job, error) {
	if params.Status != nil && !ValidStatus(*params.Status) {
		return Job{}, fmt.Errorf("job: unknown status %q", *params.Status)
	}
	if params.BudgetMin != nil && *params.BudgetMin < 0 {
		return Job{}, fmt.Errorf("job: budget must not be negative")
	}
	if params.BudgetMax != nil && *params.BudgetMax < 0 {
		return Job{}, fmt.Errorf("job: budget must not be negative")
	}

	existing, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if existing.UserID != userID {
		return Job{}, ErrNotOwner
	}

	return s.repo.Update(ctx, jobID, params)
}

// Delete hard-deletes a job after verifying ownership. Deletion is refused
// while messages, quotes or applications still reference the job.
func (s *Service) Delete(ctx context.Context, userID, jobID string) error {
	existing, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, jobID)
}

// ListByUser returns all jobs posted by a user, in any status, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	return s.repo.ListByUser(ctx, userID)
}

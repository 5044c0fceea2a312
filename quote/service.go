package quote

import (
	"context"
	"fmt"
)

// Service exposes business-level quote operations. Callers are expected to
// have passed the tradesperson ownership guard before reaching this service.
type Service struct {
	repo Repository
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new quote for a job.
func (s *Service) Create(ctx context.Context, tradespersonID string, params CreateParams) (Quote, error) {
	if tradespersonID == "" {
		return Quote{}, fmt.Errorf("quote: missing tradesperson id")
	}
	if params.JobID == "" {
		return Quote{}, fmt.Errorf("quote: job id is required")
	}
	if params.QuoteAmount <= 0 {
		return Quote{}, fmt.Errorf("quote: quote amount must be positive")
	}
	if params.EstimatedDurationHours <= 0 {
		return Quote{}, fmt.Errorf("quote: estimated duration is required")
	}

	return s.repo.Create(ctx, tradespersonID, params)
}

// ListByTradesperson returns all quotes for the tradesperson, newest first.
func (s *Service) ListByTradesperson(ctx context.Context, tradespersonID string) ([]Quote, error) {
	return s.repo.ListByTradesperson(ctx, tradespersonID)
}

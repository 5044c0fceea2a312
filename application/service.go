package application

import (
	"context"
	"fmt"
	"strings"
)

// Service exposes business-level application operations. Callers are
// expected to have passed the tradesperson ownership guard before reaching
// this service.
type Service struct {
	repo Repository
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Apply records a tradesperson's interest in a job. A second application
// for the same job is rejected; the existence pre-check catches the common
// case and the unique constraint closes the race under concurrent submits.
func (s *Service) Apply(ctx context.Context, tradespersonID string, params ApplyParams) (Application, error) {
	if tradespersonID == "" {
		return Application{}, fmt.Errorf("application: missing tradesperson id")
	}
	if params.JobID == "" {
		return Application{}, fmt.Errorf("application: job id is required")
	}
	if strings.TrimSpace(params.Message) == "" {
		return Application{}, fmt.Errorf("application: message is required")
	}

	exists, err := s.repo.Exists(ctx, params.JobID, tradespersonID)
	if err != nil {
		return Application{}, err
	}
	if exists {
		return Application{}, ErrDuplicate
	}

	return s.repo.Create(ctx, tradespersonID, params)
}

// ListByTradesperson returns all applications for the tradesperson, newest
// first.
func (s *Service) ListByTradesperson(ctx context.Context, tradespersonID string) ([]Application, error) {
	return s.repo.ListByTradesperson(ctx, tradespersonID)
}

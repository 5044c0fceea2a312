package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotParticipant signals the caller is not a party of the conversation
// they are trying to read or write.
var ErrNotParticipant = errors.New("message: not a participant")

// Service exposes business-level messaging operations. The guard here is
// the identity itself: the authenticated user must be the sender (writes)
// or the requested party (reads); no ownership lookup is involved.
type Service struct {
	repo Repository
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Send appends a message to a job conversation. The sender must be the
// authenticated user and one of the two recorded parties.
func (s *Service) Send(ctx context.Context, authUserID string, params SendParams) (Message, error) {
	if params.JobID == "" {
		return Message{}, fmt.Errorf("message: job id is required")
	}
	if strings.TrimSpace(params.Body) == "" {
		return Message{}, fmt.Errorf("message: message text is required")
	}
	if params.SenderType != SenderHomeowner && params.SenderType != SenderTradesperson {
		return Message{}, fmt.Errorf("message: sender type must be homeowner or tradesperson")
	}
	if params.SenderID != authUserID {
		return Message{}, ErrNotParticipant
	}
	if params.SenderID != params.TradespersonID && params.SenderID != params.HomeownerID {
		return Message{}, ErrNotParticipant
	}

	return s.repo.Create(ctx, params)
}

// ListForJob returns a job's conversation, oldest first. The requester must
// be the user named in the request.
func (s *Service) ListForJob(ctx context.Context, authUserID, jobID, userID string) ([]Message, error) {
	if userID != authUserID {
		return nil, ErrNotParticipant
	}

	return s.repo.ListForJob(ctx, jobID, userID)
}

// Conversations returns the user's inbox view. The requester must be the
// user named in the request.
func (s *Service) Conversations(ctx context.Context, authUserID, userID string) ([]Conversation, error) {
	if userID != authUserID {
		return nil, ErrNotParticipant
	}

	return s.repo.Conversations(ctx, userID)
}

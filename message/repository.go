package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrJobNotFound signals the conversation's job does not exist.
var ErrJobNotFound = errors.New("message: job not found")

// Repository handles data access for messages.
type Repository interface {
	Create(ctx context.Context, params SendParams) (Message, error)
	ListForJob(ctx context.Context, jobID, userID string) ([]Message, error)
	Conversations(ctx context.Context, userID string) ([]Conversation, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed message repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Create(ctx context.Context, params SendParams) (Message, error) {
	const insertSQL = `
		INSERT INTO messages (job_id, tradesperson_id, homeowner_id, sender_id, sender_type, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, job_id, tradesperson_id, homeowner_id, sender_id, sender_type, message, created_at
	`

	var m Message
	err := r.pool.QueryRow(ctx, insertSQL,
		params.JobID,
		params.TradespersonID,
		params.HomeownerID,
		params.SenderID,
		params.SenderType,
		params.Body,
	).Scan(&m.ID, &m.JobID, &m.TradespersonID, &m.HomeownerID, &m.SenderID, &m.SenderType, &m.Body, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Message{}, ErrJobNotFound
		}
		return Message{}, fmt.Errorf("message: create: %w", err)
	}

	return m, nil
}

// ListForJob returns the conversation for a job limited to threads the user
// is a party of, in creation order (oldest first).
func (r *PGRepository) ListForJob(ctx context.Context, jobID, userID string) ([]Message, error) {
	const query = `
		SELECT id, job_id, tradesperson_id, homeowner_id, sender_id, sender_type, message, created_at
		FROM messages
		WHERE job_id = $1 AND (tradesperson_id = $2 OR homeowner_id = $2)
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("message: list for job: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.JobID, &m.TradespersonID, &m.HomeownerID, &m.SenderID, &m.SenderType, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("message: scan: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("message: iterate: %w", err)
	}

	return messages, nil
}

// Conversations summarizes every job thread the user participates in,
// most recent activity first.
func (r *PGRepository) Conversations(ctx context.Context, userID string) ([]Conversation, error) {
	const query = `
		SELECT DISTINCT
			j.id, j.title, j.status,
			u.first_name, u.last_name, u.email,
			(SELECT COUNT(*) FROM messages m2 WHERE m2.job_id = j.id) AS message_count,
			(SELECT MAX(created_at) FROM messages m2 WHERE m2.job_id = j.id) AS last_message_at
		FROM messages m
		JOIN jobs j ON m.job_id = j.id
		JOIN users u ON (m.tradesperson_id = u.id OR m.homeowner_id = u.id)
		WHERE (m.tradesperson_id = $1 OR m.homeowner_id = $1) AND u.id != $1
		ORDER BY last_message_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("message: conversations: %w", err)
	}
	defer rows.Close()

	conversations := []Conversation{}
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(
			&c.JobID,
			&c.JobTitle,
			&c.JobStatus,
			&c.CounterpartFirstName,
			&c.CounterpartLastName,
			&c.CounterpartEmail,
			&c.MessageCount,
			&c.LastMessageAt,
		); err != nil {
			return nil, fmt.Errorf("message: scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("message: iterate conversations: %w", err)
	}

	return conversations, nil
}

package message

import "time"

type SenderType string

const (
	SenderHomeowner    SenderType = "homeowner"
	SenderTradesperson SenderType = "tradesperson"
)

// Message is one entry in a per-job conversation. TradespersonID and
// HomeownerID are the user ids of the two parties; SenderID names which of
// them wrote it. Messages are append-only and immutable once created.
type Message struct {
	ID             string
	JobID          string
	TradespersonID string
	HomeownerID    string
	SenderID       string
	SenderType     SenderType
	Body           string
	CreatedAt      time.Time
}

// SendParams contains the fields for a new message.
type SendParams struct {
	JobID          string
	TradespersonID string
	HomeownerID    string
	SenderID       string
	SenderType     SenderType
	Body           string
}

// Conversation summarizes one job's message thread for a user's inbox view.
type Conversation struct {
	JobID                string
	JobTitle             string
	JobStatus            string
	CounterpartFirstName string
	CounterpartLastName  string
	CounterpartEmail     string
	MessageCount         int
	LastMessageAt        time.Time
}

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"glasslink/message"
)

// MessagesHandler serves the per-job conversation endpoints.
type MessagesHandler struct {
	msgSvc *message.Service
}

func NewMessagesHandler(msgSvc *message.Service) *MessagesHandler {
	return &MessagesHandler{msgSvc: msgSvc}
}

type messagePayload struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	TradespersonID string    `json:"tradespersonId"`
	HomeownerID    string    `json:"homeownerId"`
	SenderID       string    `json:"senderId"`
	SenderType     string    `json:"senderType"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toMessagePayload(m message.Message) messagePayload {
	return messagePayload{
		ID:             m.ID,
		JobID:          m.JobID,
		TradespersonID: m.TradespersonID,
		HomeownerID:    m.HomeownerID,
		SenderID:       m.SenderID,
		SenderType:     string(m.SenderType),
		Message:        m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

type sendMessageRequest struct {
	JobID          string `json:"jobId"`
	TradespersonID string `json:"tradespersonId"`
	HomeownerID    string `json:"homeownerId"`
	SenderType     string `json:"senderType"`
	Message        string `json:"message"`
}

// Send appends a message to a job thread. The sender is always the
// authenticated user; the body cannot speak for anyone else.
func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	authUserID := userIDFrom(r)
	sent, err := h.msgSvc.Send(r.Context(), authUserID, message.SendParams{
		JobID:          req.JobID,
		TradespersonID: req.TradespersonID,
		HomeownerID:    req.HomeownerID,
		SenderID:       authUserID,
		SenderType:     message.SenderType(req.SenderType),
		Body:           req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMessagePayload(sent))
}

// ListForJob returns a job's conversation oldest first.
func (h *MessagesHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	msgs, err := h.msgSvc.ListForJob(r.Context(), userIDFrom(r), vars["jobId"], vars["userId"])
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]messagePayload, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessagePayload(m))
	}
	writeJSON(w, http.StatusOK, out)
}

type conversationPayload struct {
	JobID                string    `json:"jobId"`
	JobTitle             string    `json:"jobTitle"`
	JobStatus            string    `json:"jobStatus"`
	CounterpartFirstName string    `json:"counterpartFirstName"`
	CounterpartLastName  string    `json:"counterpartLastName"`
	CounterpartEmail     string    `json:"counterpartEmail"`
	MessageCount         int       `json:"messageCount"`
	LastMessageAt        time.Time `json:"lastMessageAt"`
}

// Conversations returns the caller's inbox summary, latest activity first.
func (h *MessagesHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.msgSvc.Conversations(r.Context(), userIDFrom(r), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]conversationPayload, 0, len(convs))
	for _, c := range convs {
		out = append(out, conversationPayload{
			JobID:                c.JobID,
			JobTitle:             c.JobTitle,
			JobStatus:            c.JobStatus,
			CounterpartFirstName: c.CounterpartFirstName,
			CounterpartLastName:  c.CounterpartLastName,
			CounterpartEmail:     c.CounterpartEmail,
			MessageCount:         c.MessageCount,
			LastMessageAt:        c.LastMessageAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

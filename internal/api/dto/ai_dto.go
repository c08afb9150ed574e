package dto

import "github.com/spec-kit/helpdesk-console/internal/domain"

// GenerateRequest asks the backend for an AI-drafted reply. The
// conversation history is derived by the caller from the in-memory
// thread.
type GenerateRequest struct {
	TicketSubject       string                    `json:"ticket_subject"`
	TicketDescription   string                    `json:"ticket_description"`
	ConversationHistory []domain.ConversationTurn `json:"conversation_history,omitempty"`
}

// GenerateResponse carries the drafted text and the model that
// produced it.
type GenerateResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

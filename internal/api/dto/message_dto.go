package dto

import "github.com/spec-kit/helpdesk-console/internal/domain"

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	TicketID   int64  `json:"ticket_id"`
	SenderID   string `json:"sender_id"`
	Content    string `json:"content"`
	IsInternal bool   `json:"is_internal,omitempty"`
}

// MessageListResponse is the per-ticket listing envelope.
type MessageListResponse struct {
	Messages []domain.Message `json:"messages"`
}

// MessageResponse is the single-message envelope.
type MessageResponse struct {
	Message *domain.Message `json:"message"`
}

// SearchRequest queries message content. Ranking semantics are owned
// by the backend.
type SearchRequest struct {
	Query      string `json:"query"`
	MatchCount int    `json:"match_count,omitempty"`
}

// SearchResult is one ranked hit, descending by similarity.
type SearchResult struct {
	ID         int64   `json:"id"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// SearchResponse is the search envelope.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

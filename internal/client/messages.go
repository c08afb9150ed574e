package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// ListMessages returns the conversation thread for a ticket in
// creation order.
func (c *Client) ListMessages(ctx context.Context, ticketID int64) ([]domain.Message, error) {
	var envelope dto.MessageListResponse
	path := fmt.Sprintf("/api/messages/%d", ticketID)
	if err := c.do(ctx, c.http, http.MethodGet, path, nil, nil, &envelope, "messages"); err != nil {
		return nil, err
	}
	if envelope.Messages == nil {
		return []domain.Message{}, nil
	}
	return envelope.Messages, nil
}

// CreateMessage appends a message to a ticket's thread and returns it
// with server-assigned identifier and timestamp.
func (c *Client) CreateMessage(ctx context.Context, req dto.CreateMessageRequest) (*domain.Message, error) {
	var envelope dto.MessageResponse
	if err := c.do(ctx, c.http, http.MethodPost, "/api/messages", nil, req, &envelope, "message"); err != nil {
		return nil, err
	}
	return envelope.Message, nil
}

// SearchMessages returns hits ranked by descending similarity.
// Ranking semantics belong to the backend.
func (c *Client) SearchMessages(ctx context.Context, query string) ([]dto.SearchResult, error) {
	var envelope dto.SearchResponse
	req := dto.SearchRequest{Query: query}
	if err := c.do(ctx, c.http, http.MethodPost, "/api/messages/search", nil, req, &envelope, "search"); err != nil {
		return nil, err
	}
	if envelope.Results == nil {
		return []dto.SearchResult{}, nil
	}
	return envelope.Results, nil
}

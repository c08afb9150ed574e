package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// ListTickets returns tickets matching the filter in server order.
// An empty result is an empty slice, not an error.
func (c *Client) ListTickets(ctx context.Context, filter dto.TicketFilter) ([]domain.Ticket, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.CustomerID != "" {
		query.Set("customer_id", filter.CustomerID)
	}

	var envelope dto.TicketListResponse
	if err := c.do(ctx, c.http, http.MethodGet, "/api/tickets", query, nil, &envelope, "tickets"); err != nil {
		return nil, err
	}
	if envelope.Tickets == nil {
		return []domain.Ticket{}, nil
	}
	return envelope.Tickets, nil
}

// GetTicket fetches a single ticket by identifier.
func (c *Client) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	var envelope dto.TicketResponse
	path := fmt.Sprintf("/api/tickets/%d", id)
	if err := c.do(ctx, c.http, http.MethodGet, path, nil, nil, &envelope, "ticket"); err != nil {
		return nil, err
	}
	return envelope.Ticket, nil
}

// CreateTicket submits a new ticket and returns it with the
// server-assigned identifier and timestamp.
func (c *Client) CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*domain.Ticket, error) {
	var envelope dto.TicketResponse
	if err := c.do(ctx, c.http, http.MethodPost, "/api/tickets", nil, req, &envelope, "ticket"); err != nil {
		return nil, err
	}
	return envelope.Ticket, nil
}

// UpdateTicket applies a partial update; omitted fields stay unchanged
// server-side. Returns the ticket reflecting the patch.
func (c *Client) UpdateTicket(ctx context.Context, id int64, req dto.UpdateTicketRequest) (*domain.Ticket, error) {
	var envelope dto.TicketResponse
	path := fmt.Sprintf("/api/tickets/%d", id)
	if err := c.do(ctx, c.http, http.MethodPatch, path, nil, req, &envelope, "ticket"); err != nil {
		return nil, err
	}
	return envelope.Ticket, nil
}

package dto

import "github.com/spec-kit/helpdesk-console/internal/domain"

// TicketFilter narrows ticket listings. Zero values mean unfiltered.
type TicketFilter struct {
	Status     domain.TicketStatus
	CustomerID string
}

// CreateTicketRequest payload. Priority is optional; the backend
// defaults it to medium.
type CreateTicketRequest struct {
	CustomerID  string                `json:"customer_id"`
	Subject     string                `json:"subject"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority,omitempty"`
}

// UpdateTicketRequest carries a partial update. Nil fields are left
// unchanged server-side.
type UpdateTicketRequest struct {
	Status   *domain.TicketStatus   `json:"status,omitempty"`
	Priority *domain.TicketPriority `json:"priority,omitempty"`
}

// TicketListResponse is the listing envelope.
type TicketListResponse struct {
	Tickets []domain.Ticket `json:"tickets"`
}

// TicketResponse is the single-ticket envelope.
type TicketResponse struct {
	Ticket *domain.Ticket `json:"ticket"`
}

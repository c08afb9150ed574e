package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusResolved TicketStatus = "resolved"
	TicketStatusClosed   TicketStatus = "closed"
)

// Valid reports whether the status is one of the enumerated values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// Valid reports whether the priority is one of the enumerated values.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// CustomerProfile is contact info the backend may embed alongside a
// ticket or message. Absence degrades display only, never an error.
type CustomerProfile struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

// DisplayName returns the best available label for the customer.
func (p *CustomerProfile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	return p.Email
}

// Ticket is the client-side view of a support case. Identifier and
// created_at are server-assigned; status and priority are mutated only
// through the update operation, subject and description never.
type Ticket struct {
	ID             int64            `json:"id"`
	CustomerID     string           `json:"customer_id"`
	Subject        string           `json:"subject"`
	Description    string           `json:"description"`
	Status         TicketStatus     `json:"status"`
	Priority       TicketPriority   `json:"priority"`
	SentimentScore *float64         `json:"sentiment_score"`
	Tags           *string          `json:"tags"`
	CreatedAt      time.Time        `json:"created_at"`
	Profile        *CustomerProfile `json:"profiles,omitempty"`
}

// SentimentLabel buckets the externally computed score for display.
// The score itself is opaque to this layer.
func (t *Ticket) SentimentLabel() string {
	if t.SentimentScore == nil {
		return "N/A"
	}
	switch {
	case *t.SentimentScore > 0:
		return "Positive"
	case *t.SentimentScore < -0.3:
		return "Negative"
	default:
		return "Neutral"
	}
}

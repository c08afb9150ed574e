package controller

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
)

// ListScope selects which tickets a screen requests. The admin queue
// asks for open tickets across all customers; the personal dashboard
// asks for every status belonging to the current customer.
type ListScope struct {
	Status              domain.TicketStatus
	CurrentCustomerOnly bool
}

// StatusCounts aggregates a listing by status for the dashboard.
type StatusCounts struct {
	Open     int
	Resolved int
	Closed   int
	Total    int
}

// ListController owns the ticket-list screen state: one fetched list,
// an in-memory substring filter over it, and a refresh that replaces
// the list atomically. A failed refresh never clears already-loaded
// data.
type ListController struct {
	mu      sync.Mutex
	api     TicketAPI
	session Identity
	notices notifier
	logger  *zap.Logger

	scope   ListScope
	phase   Phase
	tickets []domain.Ticket
	query   string
	loadSeq uint64
	closed  bool
}

// NewListController constructs the controller for the given scope.
func NewListController(api TicketAPI, session Identity, dispatcher events.Dispatcher, logger *zap.Logger, scope ListScope) *ListController {
	return &ListController{
		api:     api,
		session: session,
		notices: notifier{dispatcher: dispatcher},
		logger:  noopLogger(logger),
		scope:   scope,
		phase:   PhaseIdle,
	}
}

// Load fetches the list according to the scope. Also used for explicit
// refresh; the previous data stays visible until the replacement
// arrives. Results that land after Close, or after a newer Load
// started, are discarded.
func (c *ListController) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	filter := dto.TicketFilter{Status: c.scope.Status}
	if c.scope.CurrentCustomerOnly {
		user, ok := c.session.Current()
		if !ok {
			c.mu.Unlock()
			return errNotSignedIn(c.notices)
		}
		filter.CustomerID = user.ID
	}
	c.phase = PhaseLoading
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	tickets, err := c.api.ListTickets(ctx, filter)

	c.mu.Lock()
	if c.closed || seq != c.loadSeq {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		// Keep whatever was on screen before the failed refresh.
		if c.tickets == nil {
			c.phase = PhaseError
		} else {
			c.phase = PhaseReady
		}
		c.mu.Unlock()
		c.logger.Error("failed to fetch tickets", zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to load tickets")
		return err
	}
	c.tickets = tickets
	c.phase = PhaseReady
	c.mu.Unlock()
	return nil
}

// Phase returns the lifecycle state of the list.
func (c *ListController) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// SetQuery updates the client-side substring filter. No refetch.
func (c *ListController) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// Query returns the current filter string.
func (c *ListController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Tickets returns the full fetched list in server order.
func (c *ListController) Tickets() []domain.Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Ticket(nil), c.tickets...)
}

// Visible returns the list filtered by the query: a case-insensitive
// substring match over subject and description.
func (c *ListController) Visible() []domain.Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.query == "" {
		return append([]domain.Ticket(nil), c.tickets...)
	}
	needle := strings.ToLower(c.query)
	visible := make([]domain.Ticket, 0, len(c.tickets))
	for _, ticket := range c.tickets {
		if strings.Contains(strings.ToLower(ticket.Subject), needle) ||
			strings.Contains(strings.ToLower(ticket.Description), needle) {
			visible = append(visible, ticket)
		}
	}
	return visible
}

// Stats aggregates the fetched list by status.
func (c *ListController) Stats() StatusCounts {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := StatusCounts{Total: len(c.tickets)}
	for _, ticket := range c.tickets {
		switch ticket.Status {
		case domain.TicketStatusOpen:
			counts.Open++
		case domain.TicketStatusResolved:
			counts.Resolved++
		case domain.TicketStatusClosed:
			counts.Closed++
		}
	}
	return counts
}

// Close tears the controller down; in-flight results are dropped.
func (c *ListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func errNotSignedIn(notices notifier) error {
	notices.publish(events.NoticeError, "Not signed in")
	return ErrNotSignedIn
}

package controller

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/events"
)

// fallbackCustomerID attributes created tickets when no session
// identity is available, matching the legacy console behavior.
const fallbackCustomerID = "demo-user"

// CreateController owns the new-ticket form: subject and description
// must both be non-empty before submission is allowed. On success the
// form resets, the surface closes, and the owner refetches its list so
// server-assigned fields (id, created_at, default priority) are
// authoritative — no in-place insert.
type CreateController struct {
	mu      sync.Mutex
	api     TicketAPI
	session Identity
	notices notifier
	logger  *zap.Logger

	onCreated func()

	subject     string
	description string
	open        bool
	creating    bool
	closed      bool
}

// CreateDeps bundles the create controller's collaborators. OnCreated
// runs after a successful submission so the owning screen can refresh.
type CreateDeps struct {
	Tickets    TicketAPI
	Session    Identity
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	OnCreated  func()
}

// NewCreateController constructs the controller.
func NewCreateController(deps CreateDeps) *CreateController {
	return &CreateController{
		api:       deps.Tickets,
		session:   deps.Session,
		notices:   notifier{dispatcher: deps.Dispatcher},
		logger:    noopLogger(deps.Logger),
		onCreated: deps.OnCreated,
	}
}

// Open shows the creation surface with an empty form.
func (c *CreateController) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.subject = ""
	c.description = ""
}

// Cancel hides the surface without submitting.
func (c *CreateController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.creating {
		return
	}
	c.open = false
	c.subject = ""
	c.description = ""
}

// IsOpen reports whether the creation surface is showing.
func (c *CreateController) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetSubject updates the form's subject field.
func (c *CreateController) SetSubject(subject string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subject = subject
}

// SetDescription updates the form's description field.
func (c *CreateController) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.description = description
}

// Subject returns the form's subject field.
func (c *CreateController) Subject() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subject
}

// Description returns the form's description field.
func (c *CreateController) Description() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.description
}

// Creating reports whether a submission is outstanding.
func (c *CreateController) Creating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creating
}

// CanSubmit gates submission on both fields being non-empty and no
// submission already in flight.
func (c *CreateController) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *CreateController) canSubmitLocked() bool {
	return c.open && !c.creating &&
		strings.TrimSpace(c.subject) != "" &&
		strings.TrimSpace(c.description) != ""
}

// Submit creates the ticket for the current customer. Priority is left
// to the backend default.
func (c *CreateController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || !c.canSubmitLocked() {
		c.mu.Unlock()
		return nil
	}
	customerID := fallbackCustomerID
	if user, ok := c.session.Current(); ok {
		customerID = user.ID
	}
	req := dto.CreateTicketRequest{
		CustomerID:  customerID,
		Subject:     c.subject,
		Description: c.description,
	}
	c.creating = true
	c.mu.Unlock()

	_, err := c.api.CreateTicket(ctx, req)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.creating = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to create ticket", zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to create ticket")
		return err
	}
	c.open = false
	c.subject = ""
	c.description = ""
	c.mu.Unlock()

	c.notices.publish(events.NoticeSuccess, "Ticket created")
	if c.onCreated != nil {
		c.onCreated()
	}
	return nil
}

// Close tears the controller down; in-flight results are dropped.
func (c *CreateController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

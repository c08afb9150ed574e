package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// fallbackSenderID attributes messages when no session identity is
// available, matching the legacy console behavior.
const fallbackSenderID = "agent-demo"

// DetailController owns one ticket's conversation screen: the ticket,
// its thread, the compose field, and the status actions. The ticket
// and thread load together; a partial result is treated as a load
// failure.
type DetailController struct {
	mu       sync.Mutex
	tickets  TicketAPI
	messages MessageAPI
	ai       AIAPI
	session  Identity
	notices  notifier
	logger   *zap.Logger

	ticketID int64
	phase    Phase
	ticket   *domain.Ticket
	thread   []domain.Message
	notFound bool

	compose        string
	sending        bool
	drafting       bool
	updatingStatus bool
	closed         bool
}

// DetailDeps bundles the detail controller's collaborators.
type DetailDeps struct {
	Tickets    TicketAPI
	Messages   MessageAPI
	AI         AIAPI
	Session    Identity
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDetailController constructs the controller for one ticket.
func NewDetailController(deps DetailDeps, ticketID int64) *DetailController {
	return &DetailController{
		tickets:  deps.Tickets,
		messages: deps.Messages,
		ai:       deps.AI,
		session:  deps.Session,
		notices:  notifier{dispatcher: deps.Dispatcher},
		logger:   noopLogger(deps.Logger),
		ticketID: ticketID,
		phase:    PhaseIdle,
	}
}

// Load fetches the ticket and its messages in parallel. Both must
// succeed; otherwise the screen reports not-found or load failure with
// no partial rendering.
func (c *DetailController) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.phase = PhaseLoading
	c.notFound = false
	id := c.ticketID
	c.mu.Unlock()

	var (
		wg        sync.WaitGroup
		ticket    *domain.Ticket
		thread    []domain.Message
		ticketErr error
		threadErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ticket, ticketErr = c.tickets.GetTicket(ctx, id)
	}()
	go func() {
		defer wg.Done()
		thread, threadErr = c.messages.ListMessages(ctx, id)
	}()
	wg.Wait()

	err := ticketErr
	if err == nil {
		err = threadErr
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.phase = PhaseError
		c.ticket = nil
		c.thread = nil
		c.notFound = apperrors.IsNotFound(err)
		c.mu.Unlock()
		c.logger.Error("failed to load ticket", zap.Int64("ticket_id", id), zap.Error(err))
		if apperrors.IsNotFound(err) {
			c.notices.publish(events.NoticeError, "Ticket not found")
		} else {
			c.notices.publish(events.NoticeError, "Failed to load ticket")
		}
		return err
	}
	c.ticket = ticket
	c.thread = thread
	c.phase = PhaseReady
	c.mu.Unlock()
	return nil
}

// Phase returns the lifecycle state of the screen data.
func (c *DetailController) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// NotFound reports whether the last load failed because the ticket
// does not exist.
func (c *DetailController) NotFound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notFound
}

// Ticket returns the loaded ticket, nil before a successful load.
func (c *DetailController) Ticket() *domain.Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticket == nil {
		return nil
	}
	ticket := *c.ticket
	return &ticket
}

// Messages returns the thread in creation order.
func (c *DetailController) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.thread...)
}

// Compose returns the compose field contents.
func (c *DetailController) Compose() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compose
}

// SetCompose replaces the compose field contents.
func (c *DetailController) SetCompose(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compose = text
}

// Sending reports whether a message send is outstanding.
func (c *DetailController) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// Drafting reports whether AI draft generation is outstanding.
func (c *DetailController) Drafting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drafting
}

// UpdatingStatus reports whether a status change is outstanding.
func (c *DetailController) UpdatingStatus() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatingStatus
}

// Send posts the compose field as a new message. Empty or
// whitespace-only content is rejected locally. On success the returned
// message is appended to the in-memory thread, no refetch, and the
// compose field is cleared.
func (c *DetailController) Send(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || c.sending || c.ticket == nil {
		c.mu.Unlock()
		return nil
	}
	content := c.compose
	if strings.TrimSpace(content) == "" {
		c.mu.Unlock()
		return apperrors.NewValidationError("message content required")
	}
	senderID := fallbackSenderID
	if user, ok := c.session.Current(); ok {
		senderID = user.ID
	}
	req := dto.CreateMessageRequest{
		TicketID: c.ticket.ID,
		SenderID: senderID,
		Content:  content,
	}
	c.sending = true
	c.mu.Unlock()

	message, err := c.messages.CreateMessage(ctx, req)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.sending = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to send message", zap.Int64("ticket_id", req.TicketID), zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to send message")
		return err
	}
	c.thread = append(c.thread, *message)
	c.compose = ""
	c.mu.Unlock()
	return nil
}

// RequestDraft asks the backend for an AI draft built from the current
// in-memory thread and places it into the compose field for human
// review. It never auto-sends. On failure the compose field is left
// untouched.
func (c *DetailController) RequestDraft(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || c.drafting || c.ticket == nil {
		c.mu.Unlock()
		return nil
	}
	id := c.ticket.ID
	req := dto.GenerateRequest{
		TicketSubject:       c.ticket.Subject,
		TicketDescription:   c.ticket.Description,
		ConversationHistory: domain.ConversationHistory(c.thread),
	}
	c.drafting = true
	c.mu.Unlock()

	result, err := c.ai.GenerateResponse(ctx, req)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.drafting = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to generate draft", zap.Int64("ticket_id", id), zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to generate AI response")
		return err
	}
	c.compose = result.Response
	c.mu.Unlock()
	c.notices.publish(events.NoticeSuccess, "AI response generated")
	return nil
}

// ChangeStatus patches the ticket status. The local status field is
// replaced only after the server acknowledges; nothing is optimistic.
// Requesting the current status is accepted and forwarded as-is.
func (c *DetailController) ChangeStatus(ctx context.Context, status domain.TicketStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid status %q", status))
	}
	c.mu.Lock()
	if c.closed || c.updatingStatus || c.ticket == nil {
		c.mu.Unlock()
		return nil
	}
	id := c.ticket.ID
	c.updatingStatus = true
	c.mu.Unlock()

	updated, err := c.tickets.UpdateTicket(ctx, id, dto.UpdateTicketRequest{Status: &status})

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.updatingStatus = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to update ticket", zap.Int64("ticket_id", id), zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to update ticket")
		return err
	}
	if c.ticket != nil {
		c.ticket.Status = updated.Status
	}
	c.mu.Unlock()
	c.notices.publish(events.NoticeSuccess, fmt.Sprintf("Ticket marked as %s", updated.Status))
	return nil
}

// ChangePriority patches the ticket priority through the same partial
// update contract.
func (c *DetailController) ChangePriority(ctx context.Context, priority domain.TicketPriority) error {
	if !priority.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid priority %q", priority))
	}
	c.mu.Lock()
	if c.closed || c.updatingStatus || c.ticket == nil {
		c.mu.Unlock()
		return nil
	}
	id := c.ticket.ID
	c.updatingStatus = true
	c.mu.Unlock()

	updated, err := c.tickets.UpdateTicket(ctx, id, dto.UpdateTicketRequest{Priority: &priority})

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.updatingStatus = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to update ticket", zap.Int64("ticket_id", id), zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to update ticket")
		return err
	}
	if c.ticket != nil {
		c.ticket.Priority = updated.Priority
	}
	c.mu.Unlock()
	c.notices.publish(events.NoticeSuccess, fmt.Sprintf("Priority set to %s", updated.Priority))
	return nil
}

// Close tears the controller down; in-flight results are dropped.
func (c *DetailController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

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

// DraftFallback replaces the draft when generation fails, so the
// operator can still type a reply manually instead of being blocked.
const DraftFallback = "Failed to generate draft. Please type your reply."

// QuickReplyController drives the admin quick-reply surface: opening
// it for a ticket immediately requests an AI draft (fetching the
// thread for context first), the operator reviews or rewrites the
// draft, and Send posts it under a fixed operator identity.
type QuickReplyController struct {
	mu       sync.Mutex
	messages MessageAPI
	ai       AIAPI
	notices  notifier
	logger   *zap.Logger

	operatorID string
	onSent     func()

	ticket     *domain.Ticket
	draft      string
	generating bool
	sending    bool
	open       bool
	openSeq    uint64
	closed     bool
}

// QuickReplyDeps bundles the quick-reply controller's collaborators.
// OnSent runs after a successful send so the owning screen can refresh
// its list.
type QuickReplyDeps struct {
	Messages   MessageAPI
	AI         AIAPI
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	OperatorID string
	OnSent     func()
}

// NewQuickReplyController constructs the controller.
func NewQuickReplyController(deps QuickReplyDeps) *QuickReplyController {
	return &QuickReplyController{
		messages:   deps.Messages,
		ai:         deps.AI,
		notices:    notifier{dispatcher: deps.Dispatcher},
		logger:     noopLogger(deps.Logger),
		operatorID: deps.OperatorID,
		onSent:     deps.OnSent,
	}
}

// Open shows the review surface for the given ticket and
// unconditionally starts draft generation. Generation failure
// substitutes the fallback text rather than blocking the surface.
// Results from a surface that has since been reopened or cancelled
// are discarded.
func (c *QuickReplyController) Open(ctx context.Context, ticket domain.Ticket) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	snapshot := ticket
	c.ticket = &snapshot
	c.draft = ""
	c.open = true
	c.generating = true
	c.openSeq++
	seq := c.openSeq
	c.mu.Unlock()

	draft := c.generateDraft(ctx, ticket)

	c.mu.Lock()
	if c.closed || !c.open || seq != c.openSeq {
		c.mu.Unlock()
		return
	}
	c.generating = false
	c.draft = draft
	c.mu.Unlock()
}

// generateDraft fetches the thread for context and asks the backend
// for a draft, degrading to the fallback text on any failure.
func (c *QuickReplyController) generateDraft(ctx context.Context, ticket domain.Ticket) string {
	thread, err := c.messages.ListMessages(ctx, ticket.ID)
	if err != nil {
		c.logger.Error("failed to fetch messages for draft", zap.Int64("ticket_id", ticket.ID), zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to generate AI draft")
		return DraftFallback
	}
	result, err := c.ai.GenerateResponse(ctx, dto.GenerateRequest{
		TicketSubject:       ticket.Subject,
		TicketDescription:   ticket.Description,
		ConversationHistory: domain.ConversationHistory(thread),
	})
	if err != nil {
		c.logger.Error("failed to generate draft", zap.Int64("ticket_id", ticket.ID), zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to generate AI draft")
		return DraftFallback
	}
	return result.Response
}

// IsOpen reports whether the review surface is showing.
func (c *QuickReplyController) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Ticket returns the ticket under review, nil when the surface is
// closed.
func (c *QuickReplyController) Ticket() *domain.Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open || c.ticket == nil {
		return nil
	}
	ticket := *c.ticket
	return &ticket
}

// Draft returns the current draft text.
func (c *QuickReplyController) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft lets the operator edit the draft freely before sending.
func (c *QuickReplyController) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generating {
		return
	}
	c.draft = text
}

// Generating reports whether the draft is still being produced.
func (c *QuickReplyController) Generating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generating
}

// Sending reports whether a send is outstanding.
func (c *QuickReplyController) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// CanSend gates the send control: the surface must be open with a
// non-empty draft and neither generation nor a previous send may be in
// progress.
func (c *QuickReplyController) CanSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSendLocked()
}

func (c *QuickReplyController) canSendLocked() bool {
	return c.open && !c.generating && !c.sending && strings.TrimSpace(c.draft) != ""
}

// Send posts the draft as a message attributed to the operator
// identity, closes the surface, and triggers the owner's list refresh.
func (c *QuickReplyController) Send(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || !c.canSendLocked() {
		c.mu.Unlock()
		return nil
	}
	req := dto.CreateMessageRequest{
		TicketID: c.ticket.ID,
		SenderID: c.operatorID,
		Content:  c.draft,
	}
	c.sending = true
	c.mu.Unlock()

	_, err := c.messages.CreateMessage(ctx, req)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.sending = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to send reply", zap.Int64("ticket_id", req.TicketID), zap.Error(err))
		c.notices.publish(events.NoticeError, "Failed to send reply")
		return err
	}
	c.open = false
	c.draft = ""
	c.ticket = nil
	c.mu.Unlock()

	c.notices.publish(events.NoticeSuccess, "Reply sent")
	if c.onSent != nil {
		c.onSent()
	}
	return nil
}

// Cancel discards the draft and hides the surface with no side
// effects.
func (c *QuickReplyController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sending {
		return
	}
	c.open = false
	c.generating = false
	c.draft = ""
	c.ticket = nil
}

// Close tears the controller down; in-flight results are dropped.
func (c *QuickReplyController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

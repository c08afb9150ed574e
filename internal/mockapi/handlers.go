package mockapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// TicketsHandler serves the ticket endpoints.
type TicketsHandler struct {
	store *Store
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(store *Store) *TicketsHandler {
	return &TicketsHandler{store: store}
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	filter := dto.TicketFilter{
		Status:     domain.TicketStatus(c.Query("status")),
		CustomerID: c.Query("customer_id"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return apperrors.NewValidationError("invalid status filter")
	}
	return c.JSON(dto.TicketListResponse{Tickets: h.store.ListTickets(filter)})
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	ticket, ok := h.store.GetTicket(id)
	if !ok {
		return apperrors.NewNotFound("ticket")
	}
	return c.JSON(dto.TicketResponse{Ticket: ticket})
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.CustomerID == "" || strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("customer_id, subject, description required")
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return apperrors.NewValidationError("invalid priority")
	}
	ticket := h.store.CreateTicket(req)
	return c.Status(fiber.StatusCreated).JSON(dto.TicketResponse{Ticket: ticket})
}

// Update PATCH /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	ticket, err := h.store.UpdateTicket(id, req)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketResponse{Ticket: ticket})
}

// MessagesHandler serves the message endpoints.
type MessagesHandler struct {
	store *Store
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(store *Store) *MessagesHandler {
	return &MessagesHandler{store: store}
}

// ListByTicket GET /api/messages/:ticket_id.
func (h *MessagesHandler) ListByTicket(c *fiber.Ctx) error {
	ticketID, err := parseID(c.Params("ticket_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageListResponse{Messages: h.store.ListMessages(ticketID)})
}

// Create POST /api/messages.
func (h *MessagesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.TicketID == 0 || req.SenderID == "" || strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("ticket_id, sender_id, content required")
	}
	message, err := h.store.CreateMessage(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: message})
}

// Search POST /api/messages/search.
func (h *MessagesHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if strings.TrimSpace(req.Query) == "" {
		return apperrors.NewValidationError("query required")
	}
	return c.JSON(dto.SearchResponse{Results: h.store.SearchMessages(req.Query, req.MatchCount)})
}

// AIHandler serves the draft-generation endpoint with canned output.
type AIHandler struct {
	// Latency simulates inference time so the console's generating
	// indicators are observable during development.
	Latency time.Duration
	// Model reported in responses.
	Model string
}

// NewAIHandler constructs handler with development defaults.
func NewAIHandler() *AIHandler {
	return &AIHandler{Latency: 300 * time.Millisecond, Model: "mock-helpdesk-1"}
}

// Generate POST /api/ai/generate-response.
func (h *AIHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if strings.TrimSpace(req.TicketSubject) == "" {
		return apperrors.NewValidationError("ticket_subject required")
	}

	if h.Latency > 0 {
		select {
		case <-c.UserContext().Done():
			return c.UserContext().Err()
		case <-time.After(h.Latency):
		}
	}

	return c.JSON(dto.GenerateResponse{
		Response: draftFor(req),
		Model:    h.Model,
	})
}

// draftFor produces a deterministic, vaguely on-topic reply from the
// subject and the last customer turn.
func draftFor(req dto.GenerateRequest) string {
	var lastCustomer string
	for _, turn := range req.ConversationHistory {
		if turn.Role == domain.ConversationRoleUser {
			lastCustomer = turn.Content
		}
	}
	draft := fmt.Sprintf("Hi, thanks for reaching out about %q. We looked into the issue you described", req.TicketSubject)
	if lastCustomer != "" {
		draft += fmt.Sprintf(" and your note %q", truncate(lastCustomer, 80))
	}
	draft += ". We'll follow up with a fix shortly; please let us know if anything changes in the meantime."
	return draft
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid identifier")
	}
	return id, nil
}

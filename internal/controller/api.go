// Package controller holds the per-screen view-state machines. Each
// controller owns its screen's loading/error/data state, invokes the
// resource client through narrow interfaces, and applies the minimal
// local state transition implied by a successful mutation. Controllers
// are constructed with their dependencies injected and torn down with
// Close; results that arrive after Close are silently dropped.
package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
)

// TicketAPI is the slice of the resource client used by ticket screens.
type TicketAPI interface {
	ListTickets(ctx context.Context, filter dto.TicketFilter) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, id int64) (*domain.Ticket, error)
	CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, id int64, req dto.UpdateTicketRequest) (*domain.Ticket, error)
}

// MessageAPI is the slice of the resource client used by thread screens.
type MessageAPI interface {
	ListMessages(ctx context.Context, ticketID int64) ([]domain.Message, error)
	CreateMessage(ctx context.Context, req dto.CreateMessageRequest) (*domain.Message, error)
	SearchMessages(ctx context.Context, query string) ([]dto.SearchResult, error)
}

// AIAPI is the draft-generation slice of the resource client.
type AIAPI interface {
	GenerateResponse(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error)
}

// Identity supplies the current session identity to controllers.
type Identity interface {
	Current() (*domain.User, bool)
}

// ErrNotSignedIn is returned when an operation needs a session
// identity and none is established.
var ErrNotSignedIn = errors.New("no session identity")

// Phase is the lifecycle state of a controller's primary data.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// notifier publishes user-facing notices, tolerating a nil dispatcher
// in tests.
type notifier struct {
	dispatcher events.Dispatcher
}

func (n notifier) publish(level events.NoticeLevel, text string) {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Publish(events.Notice{Level: level, Text: text})
}

func noopLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

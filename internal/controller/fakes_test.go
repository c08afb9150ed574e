package controller

import (
	"context"
	"sync"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
)

// fakeAPI implements TicketAPI, MessageAPI and AIAPI with injectable
// responses and call recording.
type fakeAPI struct {
	mu sync.Mutex

	tickets    []domain.Ticket
	ticket     *domain.Ticket
	messages   []domain.Message
	message    *domain.Message
	results    []dto.SearchResult
	draft      *dto.GenerateResponse
	updated    *domain.Ticket
	created    *domain.Ticket

	listErr     error
	getErr      error
	createErr   error
	updateErr   error
	messagesErr error
	sendErr     error
	searchErr   error
	draftErr    error

	listCalls   []dto.TicketFilter
	sendCalls   []dto.CreateMessageRequest
	createCalls []dto.CreateTicketRequest
	updateCalls []dto.UpdateTicketRequest
	draftCalls  []dto.GenerateRequest
	searchCalls []string
}

func (f *fakeAPI) ListTickets(ctx context.Context, filter dto.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Ticket(nil), f.tickets...), nil
}

func (f *fakeAPI) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.ticket, nil
}

func (f *fakeAPI) CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeAPI) UpdateTicket(ctx context.Context, id int64, req dto.UpdateTicketRequest) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, req)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeAPI) ListMessages(ctx context.Context, ticketID int64) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.messagesErr != nil {
		return nil, f.messagesErr
	}
	return append([]domain.Message(nil), f.messages...), nil
}

func (f *fakeAPI) CreateMessage(ctx context.Context, req dto.CreateMessageRequest) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls = append(f.sendCalls, req)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.message, nil
}

func (f *fakeAPI) SearchMessages(ctx context.Context, query string) ([]dto.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return append([]dto.SearchResult(nil), f.results...), nil
}

func (f *fakeAPI) GenerateResponse(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draftCalls = append(f.draftCalls, req)
	if f.draftErr != nil {
		return nil, f.draftErr
	}
	return f.draft, nil
}

// fakeIdentity implements Identity.
type fakeIdentity struct {
	user *domain.User
}

func (f *fakeIdentity) Current() (*domain.User, bool) {
	if f.user == nil {
		return nil, false
	}
	user := *f.user
	return &user, true
}

// recorder captures published notices.
type recorder struct {
	mu      sync.Mutex
	notices []events.Notice
}

func (r *recorder) Publish(notice events.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *recorder) Subscribe(events.NoticeHandler) {}

func (r *recorder) last() (events.Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return events.Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

func agentIdentity() *fakeIdentity {
	return &fakeIdentity{user: &domain.User{
		ID:    "00000000-0000-0000-0000-000000000001",
		Email: "demo@test.com",
		Role:  domain.UserRoleAgent,
	}}
}

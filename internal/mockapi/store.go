// Package mockapi is the development stub backend: it serves the same
// HTTP contract the console consumes, from an in-memory store, so the
// console and the integration tests have a live endpoint without the
// real backend. It is not the production service.
package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// listLimit caps ticket listings, mirroring the real backend.
const listLimit = 50

// Store keeps tickets and messages in memory. Identifiers and
// creation timestamps are assigned here, like the real backend does.
type Store struct {
	mu            sync.RWMutex
	tickets       map[int64]*domain.Ticket
	messages      map[int64][]domain.Message
	nextTicketID  int64
	nextMessageID int64
	now           func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		tickets:       make(map[int64]*domain.Ticket),
		messages:      make(map[int64][]domain.Message),
		nextTicketID:  1,
		nextMessageID: 1,
		now:           time.Now,
	}
}

// CreateTicket inserts a ticket with server-assigned id, created_at,
// open status, and the medium priority default.
func (s *Store) CreateTicket(req dto.CreateTicketRequest) *domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	priority := req.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	ticket := &domain.Ticket{
		ID:          s.nextTicketID,
		CustomerID:  req.CustomerID,
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CreatedAt:   s.now().UTC(),
	}
	s.nextTicketID++
	s.tickets[ticket.ID] = ticket

	copied := *ticket
	return &copied
}

// GetTicket fetches a ticket by id.
func (s *Store) GetTicket(id int64) (*domain.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, false
	}
	copied := *ticket
	return &copied, true
}

// ListTickets returns tickets matching the filter, newest first,
// capped at the listing limit.
func (s *Store) ListTickets(filter dto.TicketFilter) []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Ticket, 0, len(s.tickets))
	for _, ticket := range s.tickets {
		if filter.Status != "" && ticket.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && ticket.CustomerID != filter.CustomerID {
			continue
		}
		result = append(result, *ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > listLimit {
		result = result[:listLimit]
	}
	return result
}

// UpdateTicket applies a partial update. Nil fields stay unchanged.
func (s *Store) UpdateTicket(id int64, req dto.UpdateTicketRequest) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket")
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status")
		}
		ticket.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority")
		}
		ticket.Priority = *req.Priority
	}
	copied := *ticket
	return &copied, nil
}

// ListMessages returns a ticket's thread in creation order.
func (s *Store) ListMessages(ticketID int64) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread := s.messages[ticketID]
	result := make([]domain.Message, len(thread))
	copy(result, thread)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// CreateMessage appends a message to an existing ticket's thread.
func (s *Store) CreateMessage(req dto.CreateMessageRequest) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[req.TicketID]; !ok {
		return nil, apperrors.NewNotFound("ticket")
	}
	message := domain.Message{
		ID:         s.nextMessageID,
		TicketID:   req.TicketID,
		SenderID:   req.SenderID,
		Content:    req.Content,
		IsInternal: req.IsInternal,
		CreatedAt:  s.now().UTC(),
	}
	s.nextMessageID++
	s.messages[req.TicketID] = append(s.messages[req.TicketID], message)

	copied := message
	return &copied, nil
}

// SearchMessages ranks messages by naive token overlap with the
// query. The real backend does embedding-based retrieval; the stub
// only needs plausible descending-similarity output.
func (s *Store) SearchMessages(query string, matchCount int) []dto.SearchResult {
	if matchCount <= 0 {
		matchCount = 5
	}
	terms := tokenize(query)
	if len(terms) == 0 {
		return []dto.SearchResult{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]dto.SearchResult, 0)
	for _, thread := range s.messages {
		for _, message := range thread {
			similarity := overlap(terms, tokenize(message.Content))
			if similarity > 0 {
				results = append(results, dto.SearchResult{
					ID:         message.ID,
					Content:    message.Content,
					Similarity: similarity,
				})
			}
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity == results[j].Similarity {
			return results[i].ID < results[j].ID
		}
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > matchCount {
		results = results[:matchCount]
	}
	return results
}

func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.Trim(field, ".,!?;:\"'()")
		if token != "" {
			tokens[token] = struct{}{}
		}
	}
	return tokens
}

// overlap is the fraction of query terms present in the candidate.
func overlap(query, candidate map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matched := 0
	for term := range query {
		if _, ok := candidate[term]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

package mockapi

import (
	"fmt"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

func fixedClockStore(t *testing.T) *Store {
	t.Helper()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	return s
}

func TestCreateTicketDefaults(t *testing.T) {
	s := fixedClockStore(t)

	ticket := s.CreateTicket(dto.CreateTicketRequest{
		CustomerID:  "cust-1",
		Subject:     "  Login broken  ",
		Description: "500 on submit",
	})

	if ticket.ID != 1 {
		t.Errorf("got id %d", ticket.ID)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("got status %s, want open default", ticket.Status)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Errorf("got priority %s, want medium default", ticket.Priority)
	}
	if ticket.Subject != "Login broken" {
		t.Errorf("subject not trimmed: %q", ticket.Subject)
	}
	if ticket.CreatedAt.IsZero() || ticket.CreatedAt.Location() != time.UTC {
		t.Errorf("got created_at %v", ticket.CreatedAt)
	}
}

func TestListTicketsNewestFirstAndFiltered(t *testing.T) {
	s := fixedClockStore(t)
	for i := 0; i < 3; i++ {
		s.CreateTicket(dto.CreateTicketRequest{CustomerID: "cust-1", Subject: fmt.Sprintf("t%d", i), Description: "d"})
	}
	other := s.CreateTicket(dto.CreateTicketRequest{CustomerID: "cust-2", Subject: "other", Description: "d"})
	status := domain.TicketStatusResolved
	if _, err := s.UpdateTicket(1, dto.UpdateTicketRequest{Status: &status}); err != nil {
		t.Fatal(err)
	}

	all := s.ListTickets(dto.TicketFilter{})
	if len(all) != 4 {
		t.Fatalf("got %d tickets", len(all))
	}
	if all[0].ID != other.ID {
		t.Errorf("newest first violated: %+v", all[0])
	}

	open := s.ListTickets(dto.TicketFilter{Status: domain.TicketStatusOpen})
	for _, ticket := range open {
		if ticket.Status != domain.TicketStatusOpen {
			t.Errorf("status filter leaked %s", ticket.Status)
		}
	}
	if len(open) != 3 {
		t.Errorf("got %d open tickets", len(open))
	}

	mine := s.ListTickets(dto.TicketFilter{CustomerID: "cust-1"})
	if len(mine) != 3 {
		t.Errorf("got %d tickets for cust-1", len(mine))
	}
}

func TestListTicketsCapped(t *testing.T) {
	s := fixedClockStore(t)
	for i := 0; i < listLimit+10; i++ {
		s.CreateTicket(dto.CreateTicketRequest{CustomerID: "cust-1", Subject: "s", Description: "d"})
	}
	if got := len(s.ListTickets(dto.TicketFilter{})); got != listLimit {
		t.Errorf("got %d tickets, want cap %d", got, listLimit)
	}
}

func TestUpdateTicketPartial(t *testing.T) {
	s := fixedClockStore(t)
	created := s.CreateTicket(dto.CreateTicketRequest{CustomerID: "c", Subject: "s", Description: "d", Priority: domain.TicketPriorityHigh})

	status := domain.TicketStatusResolved
	updated, err := s.UpdateTicket(created.ID, dto.UpdateTicketRequest{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if updated.Status != domain.TicketStatusResolved {
		t.Errorf("got status %s", updated.Status)
	}
	if updated.Priority != domain.TicketPriorityHigh {
		t.Error("omitted priority must stay unchanged")
	}

	bad := domain.TicketStatus("archived")
	if _, err := s.UpdateTicket(created.ID, dto.UpdateTicketRequest{Status: &bad}); !apperrors.IsValidation(err) {
		t.Errorf("got %v, want validation", err)
	}
	if _, err := s.UpdateTicket(999, dto.UpdateTicketRequest{Status: &status}); !apperrors.IsNotFound(err) {
		t.Errorf("got %v, want not-found", err)
	}
}

func TestMessagesOrderedAndScoped(t *testing.T) {
	s := fixedClockStore(t)
	ticket := s.CreateTicket(dto.CreateTicketRequest{CustomerID: "c", Subject: "s", Description: "d"})

	for _, content := range []string{"first", "second", "third"} {
		if _, err := s.CreateMessage(dto.CreateMessageRequest{TicketID: ticket.ID, SenderID: "c", Content: content}); err != nil {
			t.Fatal(err)
		}
	}

	thread := s.ListMessages(ticket.ID)
	if len(thread) != 3 {
		t.Fatalf("got %d messages", len(thread))
	}
	for i, want := range []string{"first", "second", "third"} {
		if thread[i].Content != want {
			t.Errorf("position %d: got %q, want %q", i, thread[i].Content, want)
		}
	}

	if got := s.ListMessages(999); len(got) != 0 {
		t.Errorf("unknown ticket should have empty thread, got %v", got)
	}
	if _, err := s.CreateMessage(dto.CreateMessageRequest{TicketID: 999, SenderID: "c", Content: "x"}); !apperrors.IsNotFound(err) {
		t.Errorf("got %v, want not-found", err)
	}
}

func TestSearchMessagesRanksByOverlap(t *testing.T) {
	s := fixedClockStore(t)
	ticket := s.CreateTicket(dto.CreateTicketRequest{CustomerID: "c", Subject: "s", Description: "d"})
	for _, content := range []string{
		"the refund was issued yesterday",
		"refund requested",
		"completely unrelated note",
	} {
		if _, err := s.CreateMessage(dto.CreateMessageRequest{TicketID: ticket.ID, SenderID: "c", Content: content}); err != nil {
			t.Fatal(err)
		}
	}

	results := s.SearchMessages("refund issued", 5)
	if len(results) != 2 {
		t.Fatalf("got %d results: %+v", len(results), results)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Error("results must be descending by similarity")
	}
	if results[0].Content != "the refund was issued yesterday" {
		t.Errorf("got top hit %q", results[0].Content)
	}

	if got := s.SearchMessages("refund", 1); len(got) != 1 {
		t.Errorf("match count cap ignored, got %d", len(got))
	}
	if got := s.SearchMessages("   ", 5); len(got) != 0 {
		t.Errorf("empty query should yield nothing, got %v", got)
	}
}

func TestSeedProducesUsableFixtures(t *testing.T) {
	s := NewStore()
	s.Seed()

	tickets := s.ListTickets(dto.TicketFilter{})
	if len(tickets) != 3 {
		t.Fatalf("got %d seeded tickets", len(tickets))
	}
	demo := s.ListTickets(dto.TicketFilter{CustomerID: "00000000-0000-0000-0000-000000000001"})
	if len(demo) != 2 {
		t.Errorf("got %d tickets for the demo customer", len(demo))
	}

	var sawAgentReply bool
	for _, ticket := range tickets {
		for _, message := range s.ListMessages(ticket.ID) {
			if message.IsFromAgent() {
				sawAgentReply = true
			}
		}
	}
	if !sawAgentReply {
		t.Error("seed should include at least one agent reply")
	}
}

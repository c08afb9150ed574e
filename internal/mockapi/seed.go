package mockapi

import (
	"time"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// Seed loads a small fixture set so a fresh stub is immediately
// usable from the console.
func (s *Store) Seed() {
	demoCustomer := "00000000-0000-0000-0000-000000000001"

	base := s.now().Add(-48 * time.Hour)
	s.seedTicket(base, dto.CreateTicketRequest{
		CustomerID:  demoCustomer,
		Subject:     "Cannot reset my password",
		Description: "The reset link in the email returns a 404 page.",
		Priority:    domain.TicketPriorityHigh,
	}, []string{
		"I already tried three different browsers.",
		"agent: Thanks for the report, we are looking into the expired link issue.",
	})

	s.seedTicket(base.Add(6*time.Hour), dto.CreateTicketRequest{
		CustomerID:  demoCustomer,
		Subject:     "Invoice totals look wrong",
		Description: "My last invoice double-counts the seat add-on.",
	}, []string{
		"The extra line item is 49 EUR.",
	})

	s.seedTicket(base.Add(20*time.Hour), dto.CreateTicketRequest{
		CustomerID:  "6f1c9d2e-2f34-4bc0-9a51-2f9f6f0a7c41",
		Subject:     "Export job stuck at 90%",
		Description: "CSV export has been running for two hours without finishing.",
		Priority:    domain.TicketPriorityCritical,
	}, nil)
}

func (s *Store) seedTicket(createdAt time.Time, req dto.CreateTicketRequest, replies []string) {
	ticket := s.CreateTicket(req)

	s.mu.Lock()
	s.tickets[ticket.ID].CreatedAt = createdAt.UTC()
	s.mu.Unlock()

	for i, content := range replies {
		sender := req.CustomerID
		if len(content) > 7 && content[:7] == "agent: " {
			sender = "agent-demo"
			content = content[7:]
		}
		message, err := s.CreateMessage(dto.CreateMessageRequest{
			TicketID: ticket.ID,
			SenderID: sender,
			Content:  content,
		})
		if err != nil {
			continue
		}
		s.mu.Lock()
		thread := s.messages[ticket.ID]
		for j := range thread {
			if thread[j].ID == message.ID {
				thread[j].CreatedAt = createdAt.Add(time.Duration(i+1) * 10 * time.Minute).UTC()
			}
		}
		s.mu.Unlock()
	}
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(config.APIConfig{
		BaseURL:                server.URL,
		RequestTimeoutSeconds:  5,
		GenerateTimeoutSeconds: 5,
	}, zap.NewNop())
}

func TestListTicketsBuildsQuery(t *testing.T) {
	var gotPath, gotQuery string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(dto.TicketListResponse{Tickets: []domain.Ticket{{ID: 7, Subject: "Login broken"}}})
	}))

	tickets, err := c.ListTickets(context.Background(), dto.TicketFilter{
		Status:     domain.TicketStatusOpen,
		CustomerID: "cust-1",
	})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if gotPath != "/api/tickets" {
		t.Errorf("got path %q", gotPath)
	}
	if gotQuery != "customer_id=cust-1&status=open" {
		t.Errorf("got query %q", gotQuery)
	}
	if len(tickets) != 1 || tickets[0].ID != 7 {
		t.Errorf("got tickets %+v", tickets)
	}
}

func TestListTicketsEmptyIsNotError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tickets": null}`))
	}))

	tickets, err := c.ListTickets(context.Background(), dto.TicketFilter{})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if tickets == nil || len(tickets) != 0 {
		t.Errorf("got %v, want empty non-nil slice", tickets)
	}
}

func TestGetTicketNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	}))

	_, err := c.GetTicket(context.Background(), 99)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("got %v, want not-found", err)
	}
}

func TestCreateTicketValidationRejection(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"subject required"}`, http.StatusUnprocessableEntity)
	}))

	_, err := c.CreateTicket(context.Background(), dto.CreateTicketRequest{CustomerID: "cust-1"})
	if !apperrors.IsValidation(err) {
		t.Fatalf("got %v, want validation", err)
	}
}

func TestServerErrorIsTransport(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.ListMessages(context.Background(), 1)
	if !apperrors.IsTransport(err) {
		t.Fatalf("got %v, want transport", err)
	}
}

func TestNetworkFailureIsTransport(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	c := New(config.APIConfig{BaseURL: baseURL, RequestTimeoutSeconds: 1, GenerateTimeoutSeconds: 1}, zap.NewNop())
	_, err := c.GetTicket(context.Background(), 1)
	if !apperrors.IsTransport(err) {
		t.Fatalf("got %v, want transport", err)
	}
}

func TestUpdateTicketSendsPartialPatch(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(dto.TicketResponse{Ticket: &domain.Ticket{ID: 3, Status: domain.TicketStatusResolved}})
	}))

	status := domain.TicketStatusResolved
	updated, err := c.UpdateTicket(context.Background(), 3, dto.UpdateTicketRequest{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("got method %s", gotMethod)
	}
	if _, present := gotBody["priority"]; present {
		t.Error("omitted priority should not be serialized")
	}
	if gotBody["status"] != "resolved" {
		t.Errorf("got body %v", gotBody)
	}
	if updated.Status != domain.TicketStatusResolved {
		t.Errorf("got status %s", updated.Status)
	}
}

func TestCreateMessageUnwrapsEnvelope(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.MessageResponse{Message: &domain.Message{ID: 11, TicketID: 3, Content: "on it"}})
	}))

	message, err := c.CreateMessage(context.Background(), dto.CreateMessageRequest{TicketID: 3, SenderID: "agent-demo", Content: "on it"})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if message.ID != 11 || message.TicketID != 3 {
		t.Errorf("got %+v", message)
	}
}

func TestSearchMessagesPostsQuery(t *testing.T) {
	var gotReq dto.SearchRequest
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(dto.SearchResponse{Results: []dto.SearchResult{{ID: 1, Content: "refund issued", Similarity: 0.9}}})
	}))

	results, err := c.SearchMessages(context.Background(), "refund")
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if gotReq.Query != "refund" {
		t.Errorf("got query %q", gotReq.Query)
	}
	if len(results) != 1 || results[0].Similarity != 0.9 {
		t.Errorf("got results %+v", results)
	}
}

func TestGenerateResponseDecodesDraft(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ai/generate-response" {
			t.Errorf("got path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(dto.GenerateResponse{Response: "Thanks for reaching out.", Model: "mock-helpdesk-1"})
	}))

	out, err := c.GenerateResponse(context.Background(), dto.GenerateRequest{TicketSubject: "Login broken"})
	if err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}
	if out.Response != "Thanks for reaching out." || out.Model != "mock-helpdesk-1" {
		t.Errorf("got %+v", out)
	}
}

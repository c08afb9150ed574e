package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
)

func newCreate(api *fakeAPI, session Identity, notices events.Dispatcher, onCreated func()) *CreateController {
	return NewCreateController(CreateDeps{
		Tickets:    api,
		Session:    session,
		Dispatcher: notices,
		OnCreated:  onCreated,
	})
}

func TestCanSubmitRequiresBothFields(t *testing.T) {
	c := newCreate(&fakeAPI{}, agentIdentity(), nil, nil)

	if c.CanSubmit() {
		t.Error("closed form must not submit")
	}
	c.Open()
	if c.CanSubmit() {
		t.Error("empty form must not submit")
	}
	c.SetSubject("Login broken")
	if c.CanSubmit() {
		t.Error("missing description must not submit")
	}
	c.SetDescription("  ")
	if c.CanSubmit() {
		t.Error("whitespace description must not submit")
	}
	c.SetDescription("500 on submit")
	if !c.CanSubmit() {
		t.Error("complete form should submit")
	}
}

func TestSubmitUsesSessionCustomerAndOmitsPriority(t *testing.T) {
	created := false
	api := &fakeAPI{created: &domain.Ticket{ID: 10}}
	notices := &recorder{}
	c := newCreate(api, agentIdentity(), notices, func() { created = true })

	c.Open()
	c.SetSubject("Login broken")
	c.SetDescription("500 on submit")
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	req := api.createCalls[0]
	if req.CustomerID != "00000000-0000-0000-0000-000000000001" {
		t.Errorf("got customer %q", req.CustomerID)
	}
	if req.Priority != "" {
		t.Error("priority should be left to the backend default")
	}
	if c.IsOpen() {
		t.Error("form should close after success")
	}
	if c.Subject() != "" || c.Description() != "" {
		t.Error("form should reset after success")
	}
	if !created {
		t.Error("OnCreated hook should fire")
	}
	if notice, ok := notices.last(); !ok || notice.Text != "Ticket created" {
		t.Errorf("got notice %+v", notice)
	}
}

func TestSubmitFallsBackWhenSignedOut(t *testing.T) {
	api := &fakeAPI{created: &domain.Ticket{ID: 10}}
	c := newCreate(api, &fakeIdentity{}, nil, nil)

	c.Open()
	c.SetSubject("s")
	c.SetDescription("d")
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if api.createCalls[0].CustomerID != "demo-user" {
		t.Errorf("got customer %q, want fallback", api.createCalls[0].CustomerID)
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("boom")}
	notices := &recorder{}
	c := newCreate(api, agentIdentity(), notices, nil)

	c.Open()
	c.SetSubject("Login broken")
	c.SetDescription("500 on submit")
	if err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected failure")
	}
	if !c.IsOpen() {
		t.Error("form should stay open for retry")
	}
	if c.Subject() != "Login broken" || c.Description() != "500 on submit" {
		t.Error("input must survive a failed submission")
	}
	if notice, ok := notices.last(); !ok || notice.Text != "Failed to create ticket" {
		t.Errorf("got notice %+v", notice)
	}
}

func TestCancelResetsForm(t *testing.T) {
	c := newCreate(&fakeAPI{}, agentIdentity(), nil, nil)

	c.Open()
	c.SetSubject("half-typed")
	c.Cancel()

	if c.IsOpen() {
		t.Error("form should be closed")
	}
	c.Open()
	if c.Subject() != "" {
		t.Error("reopened form should be empty")
	}
}

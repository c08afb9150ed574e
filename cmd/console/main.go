package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/client"
	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/observability"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	api := client.New(cfg.API, logger)
	sessions := session.NewManager(cfg.Session, cfg.Demo, logger)
	dispatcher := events.NewInMemoryDispatcher()

	model := tui.New(tui.Deps{
		Tickets:    api,
		Messages:   api,
		AI:         api,
		Session:    sessions,
		Dispatcher: dispatcher,
		Logger:     logger,
		OperatorID: cfg.Demo.OperatorID,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Fatal("program exited", zap.Error(err))
	}
}

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// Manager holds the current session identity for the lifetime of the
// process and persists it so a restart restores the session. It is
// injected into controllers at construction; there is no ambient
// global state.
type Manager struct {
	mu      sync.RWMutex
	path    string
	demo    domain.User
	current *domain.User
	loading bool
	logger  *zap.Logger
}

// NewManager creates a Manager in the loading state. Callers must run
// Init before trusting Current; until then the identity is neither
// "signed in" nor "signed out".
func NewManager(cfg config.SessionConfig, demo config.DemoConfig, logger *zap.Logger) *Manager {
	return &Manager{
		path: cfg.FilePath,
		demo: domain.User{
			ID:    demo.UserID,
			Email: demo.UserEmail,
			Name:  demo.UserName,
			Role:  domain.UserRole(demo.UserRole),
		},
		loading: true,
		logger:  logger,
	}
}

// Init restores a persisted session if one exists and clears the
// loading flag. A missing file means signed out; an unreadable file is
// treated the same way rather than failing startup.
func (m *Manager) Init() {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer func() { m.loading = false }()

	raw, err := os.ReadFile(m.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("unable to read session file", zap.String("path", m.path), zap.Error(err))
		}
		return
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		m.logger.Warn("discarding corrupt session file", zap.String("path", m.path), zap.Error(err))
		return
	}
	m.current = &user
	m.logger.Info("session restored", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
}

// Loading reports whether initialization has completed. Consumers must
// gate on this before treating a nil identity as signed out.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Current returns the session identity. The second result is false
// while loading or when signed out; a stale or default identity is
// never returned.
func (m *Manager) Current() (*domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loading || m.current == nil {
		return nil, false
	}
	user := *m.current
	return &user, true
}

// Login deterministically establishes the demo identity and persists
// it. Placeholder for a real identity-provider exchange.
func (m *Manager) Login() (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := m.demo
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	if err := os.WriteFile(m.path, raw, 0o600); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.current = &user
	m.loading = false
	m.logger.Info("logged in", zap.String("user_id", user.ID))
	return &user, nil
}

// Logout clears the identity and any persisted trace.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	m.logger.Info("logged out")
	return nil
}

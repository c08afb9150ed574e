package controller

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/events"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// SearchController owns the message-search screen. Ranking is the
// backend's business; results are shown in the order received.
type SearchController struct {
	mu      sync.Mutex
	api     MessageAPI
	notices notifier
	logger  *zap.Logger

	query     string
	results   []dto.SearchResult
	phase     Phase
	searchSeq uint64
	closed    bool
}

// NewSearchController constructs the controller.
func NewSearchController(api MessageAPI, dispatcher events.Dispatcher, logger *zap.Logger) *SearchController {
	return &SearchController{
		api:     api,
		notices: notifier{dispatcher: dispatcher},
		logger:  noopLogger(logger),
		phase:   PhaseIdle,
	}
}

// Search submits the query. Empty queries are rejected locally. Stale
// results (superseded by a newer search, or arriving after Close) are
// discarded.
func (c *SearchController) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return apperrors.NewValidationError("search query required")
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.query = query
	c.phase = PhaseLoading
	c.searchSeq++
	seq := c.searchSeq
	c.mu.Unlock()

	results, err := c.api.SearchMessages(ctx, query)

	c.mu.Lock()
	if c.closed || seq != c.searchSeq {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		if c.results == nil {
			c.phase = PhaseError
		} else {
			c.phase = PhaseReady
		}
		c.mu.Unlock()
		c.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		c.notices.publish(events.NoticeError, "Search failed")
		return err
	}
	c.results = results
	c.phase = PhaseReady
	c.mu.Unlock()
	return nil
}

// Query returns the last submitted query.
func (c *SearchController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Results returns the last result set in backend rank order.
func (c *SearchController) Results() []dto.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]dto.SearchResult(nil), c.results...)
}

// Phase returns the lifecycle state of the result set.
func (c *SearchController) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Close tears the controller down; in-flight results are dropped.
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

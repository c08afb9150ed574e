package client

import (
	"context"
	"net/http"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
)

// GenerateResponse asks the backend to draft a reply. Long-running:
// the backend runs LLM inference, so this uses the generate deadline
// rather than the regular request timeout.
func (c *Client) GenerateResponse(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	var out dto.GenerateResponse
	if err := c.do(ctx, c.generate, http.MethodPost, "/api/ai/generate-response", nil, req, &out, "ai draft"); err != nil {
		return nil, err
	}
	return &out, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/config"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// Client performs typed calls against the helpdesk backend. It holds
// no state beyond its configuration; every operation is a single
// request/response round trip, side-effect free on failure.
type Client struct {
	baseURL  string
	http     *http.Client
	generate *http.Client
	logger   *zap.Logger
}

// New constructs a Client for the configured base URL. Draft
// generation gets its own, longer deadline because the backend runs
// LLM inference for it.
func New(cfg config.APIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.RequestTimeout()},
		generate: &http.Client{Timeout: cfg.GenerateTimeout()},
		logger:   logger,
	}
}

// do executes one round trip: encode the optional body, classify any
// non-2xx status into the client error taxonomy, decode the success
// envelope into out. Error bodies are carried opaquely.
func (c *Client) do(ctx context.Context, httpClient *http.Client, method, path string, query url.Values, body any, out any, resource string) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewTransportError(fmt.Sprintf("encode %s request", resource), 0, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.NewTransportError(fmt.Sprintf("build %s request", resource), 0, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return apperrors.NewTransportError(fmt.Sprintf("%s request failed", resource), 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewTransportError(fmt.Sprintf("read %s response", resource), resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return apperrors.FromStatus(resp.StatusCode, resource, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewTransportError(fmt.Sprintf("decode %s response", resource), resp.StatusCode, err)
	}
	return nil
}

// Package planner is the HTTP client for the AI planning backend. It sends
// free-text requests to the agent endpoint and decodes the returned event
// plan, and reads the backend's vendor directory.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

const (
	planEventPath = "/api/agent/plan_event"

	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 4 << 20
)

// Client talks to the planning backend. It is safe for concurrent use.
type Client struct {
	baseURL      string
	http         *http.Client
	logger       *slog.Logger
	tracer       Tracer
	sendExisting bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero or negative means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTracer(t Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithExistingDetails makes PlanEvent send the current plan alongside the
// query so the backend can refine it instead of starting over.
func WithExistingDetails(on bool) Option {
	return func(c *Client) { c.sendExisting = on }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  slog.New(slog.DiscardHandler),
		tracer:  NopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// planRequest is the body of POST /api/agent/plan_event.
type planRequest struct {
	Query           string           `json:"query"`
	ExistingDetails *state.EventPlan `json:"existing_details,omitempty"`
}

// PlanEvent sends query to the planner and returns the plan it produced.
// existing is sent only when the client was built WithExistingDetails.
//
// Errors are *TransportError, *APIError or *DecodeError. There are no
// retries.
func (c *Client) PlanEvent(ctx context.Context, query string, existing *state.EventPlan) (*state.EventPlan, error) {
	req := planRequest{Query: query}
	if c.sendExisting {
		req.ExistingDetails = existing
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding plan request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, planEventPath, body, FallbackMessage)
	if err != nil {
		return nil, err
	}

	plan, err := state.ParsePlan(data)
	if err != nil {
		c.logger.Warn("planner returned an undecodable plan", "error", err, "bytes", len(data))
		return nil, &DecodeError{Err: err}
	}

	c.logger.Info("plan received",
		"event_name", plan.EventName,
		"action_items", len(plan.ActionItems),
		"components", len(plan.RequiredComponents),
	)
	return plan, nil
}

// do performs one request and returns the body of a 2xx response. fallback
// is the APIError message used when the backend gives no detail.
func (c *Client) do(ctx context.Context, method, path string, body []byte, fallback string) ([]byte, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.tracer.TraceRequest(method, url, body)
	c.logger.Debug("planner request", "method", method, "url", url)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		c.tracer.TraceError(method, url, err, elapsed)
		c.logger.Error("planner request failed", "method", method, "url", url, "error", err, "elapsed", elapsed)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	if err != nil {
		c.tracer.TraceError(method, url, err, elapsed)
		c.logger.Error("reading planner response failed", "url", url, "error", err)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}

	c.tracer.TraceResponse(method, url, resp.StatusCode, data, elapsed)
	c.logger.Debug("planner response", "method", method, "url", url, "status", resp.StatusCode, "elapsed", elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(data),
			fallback:   fallback,
		}
		c.logger.Warn("planner returned an error status", "url", url, "status", resp.StatusCode, "detail", apiErr.Detail)
		return nil, apiErr
	}

	return data, nil
}

// parseDetail extracts the "detail" string from an error body. Bodies that
// are not JSON, or whose detail is missing, empty or not a string (FastAPI
// validation errors send a list), yield "".
func parseDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil {
		return ""
	}
	return detail
}

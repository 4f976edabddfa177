// Package chat drives the chat panel: it turns a submitted line into a
// planning request and records the exchange in the shared state.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/GopalTomar/AI-Event-Planner/internal/planner"
	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

const (
	// ConfirmationText is the agent reply after a plan is received.
	ConfirmationText = "I have created a new event plan for you based on your request. You can see the details on the dashboard."

	errorReplyPrefix = "I'm sorry, I encountered an error: "
)

var errEmptyPlan = errors.New(planner.FallbackMessage)

// Planner produces an event plan from a free-text request.
type Planner interface {
	PlanEvent(ctx context.Context, query string, existing *state.EventPlan) (*state.EventPlan, error)
}

// Reply is the outcome of one accepted submit.
type Reply struct {
	Message state.ChatMessage
	Plan    *state.EventPlan // nil on failure
	Err     error
}

// Session owns the submit lifecycle for one chat panel. At most one request
// is in flight at a time.
type Session struct {
	mu      sync.Mutex
	store   state.Store
	planner Planner
	logger  *slog.Logger
}

// NewSession creates a Session. A nil logger discards log output.
func NewSession(store state.Store, p Planner, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{store: store, planner: p, logger: logger}
}

// Begin accepts input for submission. Blank input, or input submitted while
// a request is in flight, is ignored and ok is false. Otherwise the raw
// input is appended as a user message, the loading flag is set, and the
// trimmed query is returned for Request.
func (s *Session) Begin(input string) (query string, ok bool) {
	query = strings.TrimSpace(input)
	if query == "" {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.IsLoading() {
		s.logger.Debug("submit ignored, request in flight")
		return "", false
	}

	s.store.AddMessage(state.SenderUser, input)
	s.store.SetLoading(true)
	return query, true
}

// Request sends query to the planner along with the current plan. It does
// not touch the transcript; pass its result to Complete.
func (s *Session) Request(ctx context.Context, query string) (*state.EventPlan, error) {
	s.logger.Info("planning request", "query_len", len(query))
	return s.planner.PlanEvent(ctx, query, s.store.CurrentEvent())
}

// Complete records the outcome of a request begun with Begin. On success the
// confirmation is appended before the plan is replaced; on failure the error
// is appended and the plan is left as it was. The loading flag is cleared
// either way.
func (s *Session) Complete(plan *state.EventPlan, err error) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.store.SetLoading(false)

	if err == nil && plan == nil {
		err = errEmptyPlan
	}

	if err != nil {
		s.logger.Error("planning request failed", "error", err)
		msg := s.store.AddMessage(state.SenderAgent, ErrorReply(err))
		return Reply{Message: msg, Err: err}
	}

	msg := s.store.AddMessage(state.SenderAgent, ConfirmationText)
	s.store.UpdateCurrentEvent(plan)
	s.logger.Info("plan applied", "event_name", plan.EventName)
	return Reply{Message: msg, Plan: plan}
}

// Send runs one submit synchronously: Begin, Request, Complete. ok is false
// when the input was ignored.
func (s *Session) Send(ctx context.Context, input string) (reply Reply, ok bool) {
	query, ok := s.Begin(input)
	if !ok {
		return Reply{}, false
	}
	plan, err := s.Request(ctx, query)
	return s.Complete(plan, err), true
}

// ErrorReply returns the agent message shown for err.
func ErrorReply(err error) string {
	return errorReplyPrefix + err.Error()
}

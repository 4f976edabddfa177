package chat

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync"
	"testing"

	"github.com/GopalTomar/AI-Event-Planner/internal/planner"
	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

// mockPlanner implements Planner for tests.
type mockPlanner struct {
	mu       sync.Mutex
	plan     *state.EventPlan
	err      error
	queries  []string
	existing []*state.EventPlan
	block    chan struct{}
}

func (m *mockPlanner) PlanEvent(_ context.Context, query string, existing *state.EventPlan) (*state.EventPlan, error) {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	m.existing = append(m.existing, existing)
	return m.plan, m.err
}

func (m *mockPlanner) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

func floatPtr(f float64) *float64 { return &f }

func weddingPlan() *state.EventPlan {
	return &state.EventPlan{
		EventName:   "Wedding",
		Budget:      floatPtr(100000),
		ActionItems: []string{"Book venue", "Send invites"},
	}
}

func TestBegin_IgnoresBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n "} {
		store := state.NewMemoryStore()
		s := NewSession(store, &mockPlanner{}, nil)

		if _, ok := s.Begin(input); ok {
			t.Errorf("Begin(%q): expected input to be ignored", input)
		}
		if n := len(store.Messages()); n != 1 {
			t.Errorf("Begin(%q): transcript grew to %d", input, n)
		}
		if store.IsLoading() {
			t.Errorf("Begin(%q): loading set for ignored input", input)
		}
	}
}

func TestBegin_IgnoresWhileLoading(t *testing.T) {
	store := state.NewMemoryStore()
	s := NewSession(store, &mockPlanner{}, nil)

	if _, ok := s.Begin("first"); !ok {
		t.Fatal("first submit should be accepted")
	}
	if _, ok := s.Begin("second"); ok {
		t.Fatal("submit while loading should be ignored")
	}

	msgs := store.Messages()
	if len(msgs) != 2 || msgs[1].Text != "first" {
		t.Errorf("unexpected transcript %+v", msgs)
	}
}

func TestBegin_AppendsRawInputAndTrimsQuery(t *testing.T) {
	store := state.NewMemoryStore()
	s := NewSession(store, &mockPlanner{}, nil)

	query, ok := s.Begin("  Plan a wedding  ")
	if !ok {
		t.Fatal("expected submit to be accepted")
	}
	if query != "Plan a wedding" {
		t.Errorf("query = %q", query)
	}

	msgs := store.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != state.SenderUser || last.Text != "  Plan a wedding  " {
		t.Errorf("user message = %+v", last)
	}
	if !store.IsLoading() {
		t.Error("expected loading=true after Begin")
	}
}

func TestSend_Success(t *testing.T) {
	store := state.NewMemoryStore()
	p := &mockPlanner{plan: weddingPlan()}
	s := NewSession(store, p, nil)

	reply, ok := s.Send(context.Background(), "Plan a wedding for 100 guests")
	if !ok {
		t.Fatal("expected submit to be accepted")
	}
	if reply.Err != nil {
		t.Fatalf("unexpected error: %v", reply.Err)
	}

	msgs := store.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected welcome + user + agent, got %d messages", len(msgs))
	}
	if msgs[1].Sender != state.SenderUser || msgs[1].Text != "Plan a wedding for 100 guests" {
		t.Errorf("user message = %+v", msgs[1])
	}
	if msgs[2].Sender != state.SenderAgent || msgs[2].Text != ConfirmationText {
		t.Errorf("agent message = %+v", msgs[2])
	}

	plan := store.CurrentEvent()
	if plan == nil || plan.EventName != "Wedding" {
		t.Fatalf("plan = %+v", plan)
	}
	if store.IsLoading() {
		t.Error("expected loading=false after completion")
	}
	if p.queries[0] != "Plan a wedding for 100 guests" {
		t.Errorf("planner query = %q", p.queries[0])
	}
}

func TestSend_ErrorLeavesPlanUnchanged(t *testing.T) {
	store := state.NewMemoryStore()
	store.UpdateCurrentEvent(&state.EventPlan{EventName: "Existing"})

	p := &mockPlanner{err: errors.New("planner unavailable")}
	s := NewSession(store, p, nil)

	reply, ok := s.Send(context.Background(), "change it")
	if !ok {
		t.Fatal("expected submit to be accepted")
	}
	if reply.Err == nil {
		t.Fatal("expected an error")
	}

	msgs := store.Messages()
	last := msgs[len(msgs)-1]
	if last.Text != "I'm sorry, I encountered an error: planner unavailable" {
		t.Errorf("agent message = %q", last.Text)
	}
	if got := store.CurrentEvent(); got == nil || got.EventName != "Existing" {
		t.Errorf("plan should be unchanged, got %+v", got)
	}
	if store.IsLoading() {
		t.Error("expected loading=false after failure")
	}
}

func TestSend_NilPlanWithoutErrorIsFailure(t *testing.T) {
	store := state.NewMemoryStore()
	s := NewSession(store, &mockPlanner{}, nil)

	reply, _ := s.Send(context.Background(), "q")
	if reply.Err == nil {
		t.Fatal("expected an error for an empty plan")
	}
	if store.CurrentEvent() != nil {
		t.Error("plan should stay absent")
	}
}

func TestSend_PassesCurrentPlan(t *testing.T) {
	store := state.NewMemoryStore()
	store.UpdateCurrentEvent(&state.EventPlan{EventName: "Draft"})
	p := &mockPlanner{plan: weddingPlan()}
	s := NewSession(store, p, nil)

	s.Send(context.Background(), "refine")

	if p.existing[0] == nil || p.existing[0].EventName != "Draft" {
		t.Errorf("existing = %+v", p.existing[0])
	}
}

func TestSend_OneReplyPerSubmit(t *testing.T) {
	store := state.NewMemoryStore()
	p := &mockPlanner{plan: weddingPlan()}
	s := NewSession(store, p, nil)

	for _, q := range []string{"one", "  ", "two", "three"} {
		s.Send(context.Background(), q)
	}

	msgs := store.Messages()
	// welcome + 3 accepted submits * (user + agent)
	if len(msgs) != 7 {
		t.Fatalf("expected 7 messages, got %d", len(msgs))
	}
	for i := 1; i < len(msgs); i += 2 {
		if msgs[i].Sender != state.SenderUser || msgs[i+1].Sender != state.SenderAgent {
			t.Errorf("messages %d/%d out of order: %s then %s", i, i+1, msgs[i].Sender, msgs[i+1].Sender)
		}
	}
	if p.calls() != 3 {
		t.Errorf("expected 3 planner calls, got %d", p.calls())
	}
}

func TestSend_ConcurrentSubmitsOneInFlight(t *testing.T) {
	store := state.NewMemoryStore()
	p := &mockPlanner{plan: weddingPlan(), block: make(chan struct{})}
	s := NewSession(store, p, nil)

	accepted := make(chan bool, 5)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := s.Send(context.Background(), "go")
			accepted <- ok
		}()
	}

	for !store.IsLoading() {
		runtime.Gosched()
	}
	close(p.block)
	wg.Wait()
	close(accepted)

	n := 0
	for ok := range accepted {
		if ok {
			n++
		}
	}
	if n < 1 {
		t.Fatal("expected at least one accepted submit")
	}
	if p.calls() != n {
		t.Errorf("planner calls %d != accepted submits %d", p.calls(), n)
	}
	if got := len(store.Messages()); got != 1+2*n {
		t.Errorf("expected %d messages, got %d", 1+2*n, got)
	}
}

func TestSend_BackendErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"detail":"planner unavailable"}`)
	}))
	defer srv.Close()

	store := state.NewMemoryStore()
	s := NewSession(store, planner.New(srv.URL), nil)

	s.Send(context.Background(), "Plan a wedding")

	msgs := store.Messages()
	if got := msgs[len(msgs)-1].Text; got != "I'm sorry, I encountered an error: planner unavailable" {
		t.Errorf("agent message = %q", got)
	}
	if store.CurrentEvent() != nil {
		t.Error("plan should remain absent")
	}
}

func TestSend_BackendSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"event_name":"Wedding","budget":100000,"action_items":["Book venue","Send invites"]}`)
	}))
	defer srv.Close()

	store := state.NewMemoryStore()
	s := NewSession(store, planner.New(srv.URL), nil)

	reply, _ := s.Send(context.Background(), "Plan a wedding for 100 guests")
	if reply.Err != nil {
		t.Fatalf("unexpected error: %v", reply.Err)
	}
	plan := store.CurrentEvent()
	if plan == nil || plan.EventName != "Wedding" || len(plan.ActionItems) != 2 {
		t.Errorf("plan = %+v", plan)
	}
}

func TestSend_BackendNonFiniteNumbersAreAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"event_name":"Gala","number_of_guests":"NaN","budget":"Inf"}`)
	}))
	defer srv.Close()

	store := state.NewMemoryStore()
	s := NewSession(store, planner.New(srv.URL), nil)

	if reply, _ := s.Send(context.Background(), "Plan a gala"); reply.Err != nil {
		t.Fatalf("unexpected error: %v", reply.Err)
	}
	plan := store.CurrentEvent()
	if plan == nil || plan.EventName != "Gala" {
		t.Fatalf("plan = %+v", plan)
	}
	if plan.NumberOfGuests != nil {
		t.Errorf("guests = %d, want absent", *plan.NumberOfGuests)
	}
	if plan.Budget != nil {
		t.Errorf("budget = %v, want absent", *plan.Budget)
	}
}

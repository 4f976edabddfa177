package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the interface for the shared event state.
// All methods must be thread-safe.
type Store interface {
	// AddMessage appends a chat message to the end of the transcript and
	// returns the stored copy. Existing entries are never modified.
	AddMessage(sender Sender, text string) ChatMessage

	// UpdateCurrentEvent replaces the current plan wholesale. A nil plan
	// clears it.
	UpdateCurrentEvent(plan *EventPlan)

	// SetLoading sets the in-flight request flag.
	SetLoading(loading bool)

	// IsLoading reports whether a planning request is in flight.
	IsLoading() bool

	// CurrentEvent returns a copy of the current plan, or nil.
	CurrentEvent() *EventPlan

	// Messages returns a copy of the transcript in insertion order.
	Messages() []ChatMessage

	// Snapshot returns a consistent copy of plan, transcript and flag.
	Snapshot() Snapshot

	// OnChange registers a listener called after every mutation.
	OnChange(fn ChangeListener)
}

// ChangeListener is a callback invoked after the store is mutated.
// Listeners are called outside the store lock and may read the store, but
// must not block for long: they run on the mutating goroutine.
type ChangeListener func(c Change)

// MemoryStore is a thread-safe in-memory implementation of Store.
type MemoryStore struct {
	mu          sync.RWMutex
	plan        *EventPlan
	planVersion uint64
	messages    []ChatMessage
	loading     bool
	listeners   []ChangeListener

	now   func() time.Time
	newID func() string
}

// NewMemoryStore creates a store holding only the welcome message.
func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{
		now:   time.Now,
		newID: uuid.NewString,
	}
	ms.messages = append(ms.messages, ms.newMessage(SenderAgent, WelcomeText))
	return ms
}

func (ms *MemoryStore) newMessage(sender Sender, text string) ChatMessage {
	return ChatMessage{
		ID:        ms.newID(),
		Sender:    sender,
		Text:      text,
		Timestamp: ms.now(),
	}
}

// OnChange registers a listener that is called after every mutation.
// Listeners are invoked synchronously outside the store lock.
func (ms *MemoryStore) OnChange(fn ChangeListener) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.listeners = append(ms.listeners, fn)
}

// Watch returns a channel that receives a value after mutations. Sends are
// coalesced: while a notification is pending, further ones are dropped, so
// a reader always re-reads the store with Snapshot rather than relying on
// the Change it received.
func (ms *MemoryStore) Watch() <-chan Change {
	ch := make(chan Change, 1)
	ms.OnChange(func(c Change) {
		select {
		case ch <- c:
		default:
		}
	})
	return ch
}

func (ms *MemoryStore) notify(listeners []ChangeListener, c Change) {
	for _, fn := range listeners {
		fn(c)
	}
}

// AddMessage appends a message to the transcript.
func (ms *MemoryStore) AddMessage(sender Sender, text string) ChatMessage {
	ms.mu.Lock()
	msg := ms.newMessage(sender, text)
	ms.messages = append(ms.messages, msg)
	listeners := ms.listeners
	ms.mu.Unlock()

	ms.notify(listeners, Change{Kind: ChangeMessage})
	return msg
}

// UpdateCurrentEvent replaces the current plan. The store keeps its own
// copy, so later changes to plan by the caller are not visible.
func (ms *MemoryStore) UpdateCurrentEvent(plan *EventPlan) {
	ms.mu.Lock()
	ms.plan = plan.Clone()
	ms.planVersion++
	listeners := ms.listeners
	ms.mu.Unlock()

	ms.notify(listeners, Change{Kind: ChangePlan})
}

// SetLoading sets the loading flag. Setting it to its current value is not
// a change and notifies nobody.
func (ms *MemoryStore) SetLoading(loading bool) {
	ms.mu.Lock()
	if ms.loading == loading {
		ms.mu.Unlock()
		return
	}
	ms.loading = loading
	listeners := ms.listeners
	ms.mu.Unlock()

	ms.notify(listeners, Change{Kind: ChangeLoading})
}

// IsLoading reports whether a planning request is in flight.
func (ms *MemoryStore) IsLoading() bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.loading
}

// CurrentEvent returns a deep copy of the current plan, or nil.
func (ms *MemoryStore) CurrentEvent() *EventPlan {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.plan.Clone()
}

// Messages returns a copy of the transcript.
func (ms *MemoryStore) Messages() []ChatMessage {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.copyMessages()
}

// Snapshot returns a deep copy of the store taken under one read lock.
func (ms *MemoryStore) Snapshot() Snapshot {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return Snapshot{
		Plan:        ms.plan.Clone(),
		Messages:    ms.copyMessages(),
		Loading:     ms.loading,
		PlanVersion: ms.planVersion,
	}
}

// copyMessages copies the transcript. Caller must hold ms.mu.
func (ms *MemoryStore) copyMessages() []ChatMessage {
	out := make([]ChatMessage, len(ms.messages))
	copy(out, ms.messages)
	return out
}

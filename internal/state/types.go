package state

import "time"

// WelcomeText is the agent message every transcript starts with.
const WelcomeText = `Hello! How can I help you plan your event today? Try something like, "I want to plan a wedding for 100 people in New York."`

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

type ChatMessage struct {
	ID        string
	Sender    Sender
	Text      string
	Timestamp time.Time
}

// EventPlan is the plan produced by the backend agent. Every field is
// optional; nil pointers and empty strings mean the backend omitted it.
type EventPlan struct {
	EventName          string      `json:"event_name,omitempty" yaml:"event_name,omitempty"`
	EventType          string      `json:"event_type,omitempty" yaml:"event_type,omitempty"`
	EventDate          string      `json:"event_date,omitempty" yaml:"event_date,omitempty"`
	NumberOfGuests     *int64      `json:"number_of_guests,omitempty" yaml:"number_of_guests,omitempty"`
	Budget             *float64    `json:"budget,omitempty" yaml:"budget,omitempty"`
	RequiredComponents []Component `json:"required_components,omitempty" yaml:"required_components,omitempty"`
	ActionItems        []string    `json:"action_items,omitempty" yaml:"action_items,omitempty"`
}

// Component is one vendor category the plan calls for (venue, caterer, ...).
type Component struct {
	ComponentType string `json:"component_type,omitempty" yaml:"component_type,omitempty"`
	Details       string `json:"details,omitempty" yaml:"details,omitempty"`
	Preferences   string `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// BudgetValue returns the plan budget, or 0 when absent.
func (p *EventPlan) BudgetValue() float64 {
	if p == nil || p.Budget == nil {
		return 0
	}
	return *p.Budget
}

// Clone returns a deep copy of the plan. A nil plan clones to nil.
func (p *EventPlan) Clone() *EventPlan {
	if p == nil {
		return nil
	}
	cp := *p
	if p.NumberOfGuests != nil {
		n := *p.NumberOfGuests
		cp.NumberOfGuests = &n
	}
	if p.Budget != nil {
		b := *p.Budget
		cp.Budget = &b
	}
	if p.RequiredComponents != nil {
		cp.RequiredComponents = make([]Component, len(p.RequiredComponents))
		copy(cp.RequiredComponents, p.RequiredComponents)
	}
	if p.ActionItems != nil {
		cp.ActionItems = make([]string, len(p.ActionItems))
		copy(cp.ActionItems, p.ActionItems)
	}
	return &cp
}

// Snapshot is a point-in-time copy of the whole store.
type Snapshot struct {
	Plan        *EventPlan
	Messages    []ChatMessage
	Loading     bool
	PlanVersion uint64
}

type ChangeKind int

const (
	ChangeMessage ChangeKind = iota
	ChangePlan
	ChangeLoading
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeMessage:
		return "message"
	case ChangePlan:
		return "plan"
	case ChangeLoading:
		return "loading"
	default:
		return "unknown"
	}
}

type Change struct {
	Kind ChangeKind
}

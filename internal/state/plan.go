package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// rawPlan mirrors EventPlan with the numeric fields left undecoded. The
// planner is an LLM behind an HTTP API and is known to emit numbers as
// strings ("100", "5,00,000").
type rawPlan struct {
	EventName          json.RawMessage `json:"event_name"`
	EventType          json.RawMessage `json:"event_type"`
	EventDate          json.RawMessage `json:"event_date"`
	NumberOfGuests     json.RawMessage `json:"number_of_guests"`
	Budget             json.RawMessage `json:"budget"`
	RequiredComponents json.RawMessage `json:"required_components"`
	ActionItems        json.RawMessage `json:"action_items"`
}

// UnmarshalJSON decodes a plan leniently. Fields of an unexpected shape are
// left empty rather than failing the whole plan; only a body that is not a
// JSON object is an error.
func (p *EventPlan) UnmarshalJSON(data []byte) error {
	var raw rawPlan
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = EventPlan{
		EventName: decodeText(raw.EventName),
		EventType: decodeText(raw.EventType),
		EventDate: decodeText(raw.EventDate),
	}

	if f, ok := decodeNumber(raw.NumberOfGuests); ok && f >= math.MinInt64 && f < math.MaxInt64 {
		n := int64(f)
		p.NumberOfGuests = &n
	}
	if f, ok := decodeNumber(raw.Budget); ok {
		p.Budget = &f
	}

	p.ActionItems = decodeActionItems(raw.ActionItems)
	p.RequiredComponents = decodeComponents(raw.RequiredComponents)

	return nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeText renders strings as-is and any other scalar in its JSON form.
func decodeText(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

// decodeNumber accepts JSON numbers and numeric strings. Digit group
// separators and a leading currency glyph are tolerated in strings. NaN and
// infinities are rejected.
func decodeNumber(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "₹$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func decodeActionItems(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		// Every string is a row, blank ones included.
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		if text := decodeText(item); text != "" {
			out = append(out, text)
			continue
		}
		// Some responses carry {"task": "..."} objects instead of strings.
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err == nil {
			for _, key := range []string{"task", "title", "description", "name"} {
				if text := decodeText(obj[key]); text != "" {
					out = append(out, text)
					break
				}
			}
		}
	}
	return out
}

func decodeComponents(raw json.RawMessage) []Component {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]Component, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			if text := decodeText(item); text != "" {
				out = append(out, Component{ComponentType: text})
			}
			continue
		}
		out = append(out, Component{
			ComponentType: decodeText(obj["component_type"]),
			Details:       decodeText(obj["details"]),
			Preferences:   decodeText(obj["preferences"]),
		})
	}
	return out
}

// ParsePlan decodes a planner response body.
func ParsePlan(data []byte) (*EventPlan, error) {
	if isNull(data) {
		return nil, fmt.Errorf("decoding event plan: empty body")
	}
	var p EventPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding event plan: %w", err)
	}
	return &p, nil
}

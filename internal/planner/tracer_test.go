package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNopTracer_DoesNotPanic(t *testing.T) {
	var tr NopTracer
	tr.TraceRequest("POST", "http://x/api/agent/plan_event", []byte(`{}`))
	tr.TraceResponse("POST", "http://x/api/agent/plan_event", 200, nil, time.Second)
	tr.TraceError("POST", "http://x/api/agent/plan_event", errors.New("boom"), time.Second)
}

func TestFileTracer_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	tr := NewFileTracer(&buf)
	tr.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }

	tr.TraceRequest("POST", "http://x/api/agent/plan_event", []byte(`{"query":"q"}`))
	tr.TraceResponse("POST", "http://x/api/agent/plan_event", 500, []byte(`{"detail":"d"}`), 1500*time.Microsecond)
	tr.TraceError("GET", "http://x/api/agent/venues", errors.New("refused"), time.Millisecond)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}

	var entries []traceEntry
	for _, line := range lines {
		var e traceEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}

	if entries[0].Type != "request" || entries[0].Body != `{"query":"q"}` {
		t.Errorf("request entry = %+v", entries[0])
	}
	if entries[0].Timestamp != "2026-10-17T09:30:00Z" {
		t.Errorf("ts = %q", entries[0].Timestamp)
	}
	if entries[1].Type != "response" || entries[1].Status != 500 || entries[1].ElapsedMS != 1.5 {
		t.Errorf("response entry = %+v", entries[1])
	}
	if entries[2].Type != "error" || entries[2].Error != "refused" || entries[2].Method != "GET" {
		t.Errorf("error entry = %+v", entries[2])
	}
}

func TestFileTracer_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	tr := NewFileTracer(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.TraceRequest("POST", "http://x", []byte(`{}`))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !json.Valid([]byte(line)) {
			t.Errorf("interleaved or invalid line: %q", line)
		}
	}
}

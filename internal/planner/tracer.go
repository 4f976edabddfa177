package planner

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Tracer records every exchange with the planning backend.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// TraceRequest records an outgoing request and its body.
	TraceRequest(method, url string, body []byte)

	// TraceResponse records a completed response.
	TraceResponse(method, url string, status int, body []byte, elapsed time.Duration)

	// TraceError records a request that never produced a response.
	TraceError(method, url string, err error, elapsed time.Duration)
}

// NopTracer discards everything. It is the default when --debug is not set.
type NopTracer struct{}

func (NopTracer) TraceRequest(string, string, []byte)                      {}
func (NopTracer) TraceResponse(string, string, int, []byte, time.Duration) {}
func (NopTracer) TraceError(string, string, error, time.Duration)          {}

// traceEntry is one JSONL line written by FileTracer.
type traceEntry struct {
	Timestamp string  `json:"ts"`
	Type      string  `json:"type"`
	Method    string  `json:"method"`
	URL       string  `json:"url"`
	Status    int     `json:"status,omitempty"`
	ElapsedMS float64 `json:"elapsed_ms,omitempty"`
	Body      string  `json:"body,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// FileTracer writes one JSON object per line to an io.Writer.
type FileTracer struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewFileTracer creates a FileTracer that writes to w.
func NewFileTracer(w io.Writer) *FileTracer {
	return &FileTracer{w: w, now: time.Now}
}

func (t *FileTracer) TraceRequest(method, url string, body []byte) {
	t.write(traceEntry{
		Type:   "request",
		Method: method,
		URL:    url,
		Body:   string(body),
	})
}

func (t *FileTracer) TraceResponse(method, url string, status int, body []byte, elapsed time.Duration) {
	t.write(traceEntry{
		Type:      "response",
		Method:    method,
		URL:       url,
		Status:    status,
		ElapsedMS: millis(elapsed),
		Body:      string(body),
	})
}

func (t *FileTracer) TraceError(method, url string, err error, elapsed time.Duration) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	t.write(traceEntry{
		Type:      "error",
		Method:    method,
		URL:       url,
		ElapsedMS: millis(elapsed),
		Error:     msg,
	})
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// write serialises entry as a single line. Serialisation errors are dropped
// so tracing never interferes with a request.
func (t *FileTracer) write(entry traceEntry) {
	entry.Timestamp = t.now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s\n", data)
}

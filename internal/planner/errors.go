package planner

import "fmt"

// FallbackMessage is surfaced when the planner fails without a usable
// detail message.
const FallbackMessage = "Failed to get a plan from the AI agent."

// TransportError reports that the request never completed: the backend was
// unreachable, the connection dropped, or the context was cancelled.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return "could not reach the planning service"
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx response. Error returns the backend's detail
// verbatim when it sent one.
type APIError struct {
	StatusCode int
	Detail     string

	fallback string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.fallback != "" {
		return e.fallback
	}
	return FallbackMessage
}

// DecodeError is a 2xx response whose body could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected response from the planning service: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

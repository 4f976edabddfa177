package tui

import (
	"context"
	"sync"
)

// ShutdownManager coordinates a clean exit: in-flight backend requests are
// cancelled, then trace and log files are closed.
type ShutdownManager struct {
	// CancelRequests cancels the context planning and vendor requests run
	// under.
	CancelRequests context.CancelFunc

	// Cleanup closes trace and log files.
	Cleanup func()

	once sync.Once
}

// NewShutdownManager creates an empty ShutdownManager.
func NewShutdownManager() *ShutdownManager {
	return &ShutdownManager{}
}

// Shutdown cancels requests and runs Cleanup. Only the first call has any
// effect, so it can be wired to both the quit key and a signal handler.
func (sm *ShutdownManager) Shutdown() {
	sm.once.Do(func() {
		if sm.CancelRequests != nil {
			sm.CancelRequests()
		}
		if sm.Cleanup != nil {
			sm.Cleanup()
		}
	})
}

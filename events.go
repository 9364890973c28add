package gateAuth

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// EventType defines a public type used by gateAuth APIs.
//
// EventType instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventType string

const (
	// EventStatusChanged is an exported constant or variable used by the session core.
	EventStatusChanged EventType = "status_changed"
	// EventSessionExpired is an exported constant or variable used by the session core.
	EventSessionExpired EventType = "session_expired"
	// EventBootstrapStarted is an exported constant or variable used by the session core.
	EventBootstrapStarted EventType = "bootstrap_started"
	// EventBootstrapSucceeded is an exported constant or variable used by the session core.
	EventBootstrapSucceeded EventType = "bootstrap_succeeded"
	// EventBootstrapFailed is an exported constant or variable used by the session core.
	EventBootstrapFailed EventType = "bootstrap_failed"
	// EventServerDown is an exported constant or variable used by the session core.
	EventServerDown EventType = "server_down"
	// EventServerUp is an exported constant or variable used by the session core.
	EventServerUp EventType = "server_up"
	// EventLoggedOut is an exported constant or variable used by the session core.
	EventLoggedOut EventType = "logged_out"
	// EventAuthenticated is an exported constant or variable used by the session core.
	EventAuthenticated EventType = "authenticated"
)

// SessionEvent is the asynchronous notification delivered to the host UI
// layer. Events carry derived state only; they never expose tokens.
type SessionEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      EventType         `json:"event_type"`
	Status    AuthStatus        `json:"status,omitempty"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// EventSink receives session events from the dispatcher. Emit must be safe
// for concurrent use and should return promptly; slow sinks cause drops when
// the buffer fills.
type EventSink interface {
	Emit(ctx context.Context, event SessionEvent)
}

// NoOpSink defines a public type used by gateAuth APIs.
//
// NoOpSink instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type NoOpSink struct{}

// Emit describes the emit operation and its observable behavior.
//
// Emit may return an error when input validation, dependency calls, or security checks fail.
// Emit does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (NoOpSink) Emit(context.Context, SessionEvent) {}

// ChannelSink defines a public type used by gateAuth APIs.
//
// ChannelSink instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChannelSink struct {
	events chan SessionEvent
}

// NewChannelSink describes the newchannelsink operation and its observable behavior.
//
// NewChannelSink may return an error when input validation, dependency calls, or security checks fail.
// NewChannelSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan SessionEvent, buffer),
	}
}

// Emit describes the emit operation and its observable behavior.
//
// Emit may return an error when input validation, dependency calls, or security checks fail.
// Emit does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ChannelSink) Emit(ctx context.Context, event SessionEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events describes the events operation and its observable behavior.
//
// Events may return an error when input validation, dependency calls, or security checks fail.
// Events does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ChannelSink) Events() <-chan SessionEvent {
	return s.events
}

// JSONWriterSink defines a public type used by gateAuth APIs.
//
// JSONWriterSink instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
//
// NewJSONWriterSink may return an error when input validation, dependency calls, or security checks fail.
// NewJSONWriterSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit describes the emit operation and its observable behavior.
//
// Emit may return an error when input validation, dependency calls, or security checks fail.
// Emit does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *JSONWriterSink) Emit(_ context.Context, event SessionEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

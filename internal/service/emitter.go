package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples services from any UI layer
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for notifying observers of state changes.
// A GUI shell can implement it by forwarding to its event bus; services
// stay independently testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// NopEmitter discards every event. Used where no observer is wired.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, string, any) {}

package store

import (
	"context"
	"sync"
)

// Memory is an in-process [TokenStore] backend. It is the default for tests
// and for hosts that bridge persistence themselves (e.g. native secure
// storage on the device).
type Memory struct {
	mu     sync.Mutex
	record Record
	exists bool
}

// NewMemory describes the newmemory operation and its observable behavior.
//
// NewMemory may return an error when input validation, dependency calls, or security checks fail.
// NewMemory does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMemory() *Memory {
	return &Memory{}
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) Load(_ context.Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.exists {
		return Record{}, nil
	}
	return m.record.Clone(), nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) Save(_ context.Context, record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record = record.Clone()
	m.exists = true
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record = Record{}
	m.exists = false
	return nil
}

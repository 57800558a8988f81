package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/pokerclub/internal/dependencies/ids"
)

// MockIDs hands out queued IDs, then falls back to a numbered sequence
type MockIDs struct {
	mu     sync.Mutex
	queue  []string
	issued int
}

var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates an empty MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// Queue adds IDs to be returned by subsequent NewID calls
func (m *MockIDs) Queue(values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, values...)
}

// NewID returns the next queued ID or "id-N"
func (m *MockIDs) NewID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	if len(m.queue) > 0 {
		id := m.queue[0]
		m.queue = m.queue[1:]
		return id
	}
	return fmt.Sprintf("id-%d", m.issued)
}

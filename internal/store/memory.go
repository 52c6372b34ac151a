package store

import "sync"

// Memory is an in-memory history for testing and restricted hosts.
type Memory struct {
	mu    sync.RWMutex
	lines []string
}

// NewMemory creates a new in-memory history.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records one accepted line.
func (m *Memory) Append(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
	return nil
}

// Recent returns up to limit lines, oldest first.
func (m *Memory) Recent(limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines := m.lines
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return append([]string(nil), lines...), nil
}

// Close is a no-op for memory history.
func (m *Memory) Close() error {
	return nil
}

package persist

import (
	"context"
	"sync"
)

// Memory is an in-process snapshot store used by tests and as a fallback
// when no backend is configured.
type Memory[S any] struct {
	mu      sync.Mutex
	snap    S
	present bool

	// Injectable failures for exercising the persistence error policy.
	LoadErr error
	SaveErr error

	saves int
}

func NewMemory[S any]() *Memory[S] {
	return &Memory[S]{}
}

func (m *Memory[S]) Load(ctx context.Context) (S, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		var zero S
		return zero, false, m.LoadErr
	}
	return m.snap, m.present, nil
}

func (m *Memory[S]) Save(ctx context.Context, snap S) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.snap = snap
	m.present = true
	m.saves++
	return nil
}

// Saves reports how many saves succeeded.
func (m *Memory[S]) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

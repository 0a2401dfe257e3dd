// Package store provides an in-memory Store implementation.
package store

import (
	"context"
	"sync"

	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	catalog *schedule.Catalog
	shifts  []schedule.Assignment
}

func NewMemory() *Memory {
	return &Memory{catalog: schedule.NewCatalog(nil, nil)}
}

func (m *Memory) LoadCatalog(_ context.Context) (*schedule.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog.Clone(), nil
}

func (m *Memory) SaveCatalog(_ context.Context, c *schedule.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = c.Clone()
	return nil
}

func (m *Memory) LoadLedger(_ context.Context) (*schedule.Ledger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return schedule.NewLedger(m.shifts), nil
}

func (m *Memory) SaveLedger(_ context.Context, l *schedule.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts = l.All()
	return nil
}

// WithLock executes fn with the store locked against all other access.
// On error the pre-lock state is restored, so a failed bracket leaves
// nothing behind.
func (m *Memory) WithLock(_ context.Context, fn func(schedule.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapCatalog := m.catalog.Clone()
	snapShifts := append([]schedule.Assignment(nil), m.shifts...)

	if err := fn(&memoryView{parent: m}); err != nil {
		m.catalog = snapCatalog
		m.shifts = snapShifts
		return err
	}
	return nil
}

// memoryView gives WithLock callers access without re-acquiring the lock.
type memoryView struct {
	parent *Memory
}

func (v *memoryView) LoadCatalog(_ context.Context) (*schedule.Catalog, error) {
	return v.parent.catalog.Clone(), nil
}

func (v *memoryView) SaveCatalog(_ context.Context, c *schedule.Catalog) error {
	v.parent.catalog = c.Clone()
	return nil
}

func (v *memoryView) LoadLedger(_ context.Context) (*schedule.Ledger, error) {
	return schedule.NewLedger(v.parent.shifts), nil
}

func (v *memoryView) SaveLedger(_ context.Context, l *schedule.Ledger) error {
	v.parent.shifts = l.All()
	return nil
}

/*
engine.go - Load/mutate/save coordination

PURPOSE:
  Engine is the single entry point callers (HTTP handlers, CLI commands,
  tests) use. Each operation brackets exactly one mutation or query:
  load the snapshot, apply the change in memory, save the snapshot back.
  A save only happens after the in-memory mutation fully succeeded, so a
  failed operation never leaves a partial write behind.

SEE ALSO:
  - store.go:  Store and LockingStore
  - ledger.go: The mutations themselves
*/
package schedule

import (
	"context"
	"io"
)

// Engine coordinates engine operations over an injected Store.
type Engine struct {
	Store Store
}

// NewEngine creates an engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{Store: store}
}

// withLock runs fn exclusively when the store supports it. Without the
// capability the caller is responsible for serializing mutations, per
// the Store contract.
func (e *Engine) withLock(ctx context.Context, fn func(Store) error) error {
	if ls, ok := e.Store.(LockingStore); ok {
		return ls.WithLock(ctx, fn)
	}
	return fn(e.Store)
}

// =============================================================================
// QUERIES
// =============================================================================

// Shifts returns a snapshot of every assignment in ledger order.
func (e *Engine) Shifts(ctx context.Context) ([]Assignment, error) {
	ledger, err := e.Store.LoadLedger(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.All(), nil
}

// Catalog returns the current rule catalog.
func (e *Engine) Catalog(ctx context.Context) (*Catalog, error) {
	return e.Store.LoadCatalog(ctx)
}

// ExportCSV writes the full ledger as CSV, sorted by date.
func (e *Engine) ExportCSV(ctx context.Context, w io.Writer, withBOM bool) error {
	shifts, err := e.Shifts(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, shifts, withBOM)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Create books an employee into a slot on a date, enforcing the capacity
// rule against the currently loaded catalog, and persists the ledger.
func (e *Engine) Create(ctx context.Context, date, slotType, employee string) (Assignment, error) {
	var created Assignment
	err := e.withLock(ctx, func(s Store) error {
		catalog, err := s.LoadCatalog(ctx)
		if err != nil {
			return err
		}
		ledger, err := s.LoadLedger(ctx)
		if err != nil {
			return err
		}
		created, err = ledger.Create(date, slotType, employee, catalog)
		if err != nil {
			return err
		}
		return s.SaveLedger(ctx, ledger)
	})
	return created, err
}

// Delete removes the assignment with the given ID and persists the
// ledger. Unknown IDs fail with ErrAssignmentNotFound.
func (e *Engine) Delete(ctx context.Context, id string) (Assignment, error) {
	var removed Assignment
	err := e.withLock(ctx, func(s Store) error {
		ledger, err := s.LoadLedger(ctx)
		if err != nil {
			return err
		}
		removed, err = ledger.Delete(id)
		if err != nil {
			return err
		}
		return s.SaveLedger(ctx, ledger)
	})
	return removed, err
}

// ReplaceCatalog validates the raw definitions and swaps the persisted
// catalog wholesale. On a validation error nothing is saved and the
// prior catalog stays in effect.
func (e *Engine) ReplaceCatalog(ctx context.Context, shiftDefs, leaveDefs []RuleDefinition) (*Catalog, error) {
	catalog, err := BuildCatalog(shiftDefs, leaveDefs)
	if err != nil {
		return nil, err
	}
	err = e.withLock(ctx, func(s Store) error {
		return s.SaveCatalog(ctx, catalog)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

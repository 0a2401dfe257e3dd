/*
store.go - Persistence interface between the engine and durable storage

PURPOSE:
  The engine holds no process-wide state and performs no I/O. Callers
  supply a Store; every engine operation loads a wholesale snapshot,
  mutates it in memory, and saves it back wholesale. There is no partial
  or streaming write.

LOCK DISCIPLINE:
  The capacity check and ID-based delete are read-modify-write sequences.
  When the engine is embedded in a concurrent server, each
  load-mutate-save bracket must be exclusive against the shared store or
  interleaved calls can lose updates. Stores that can guarantee that
  exclusivity implement LockingStore; the engine uses WithLock whenever
  it is available.

IMPLEMENTATIONS:
  - schedule/store:  In-memory (tests, dev)
  - store/jsonfile:  JSON files in the reference encoding
  - store/sqlite:    SQLite

SEE ALSO:
  - engine.go: The load/mutate/save brackets
*/
package schedule

import "context"

// Store loads and saves wholesale snapshots of the catalog and ledger.
// A store with no persisted data returns an empty catalog or ledger,
// never nil.
type Store interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
	SaveCatalog(ctx context.Context, c *Catalog) error

	LoadLedger(ctx context.Context) (*Ledger, error)
	SaveLedger(ctx context.Context, l *Ledger) error
}

// LockingStore extends Store with scoped mutual exclusion. WithLock runs
// fn with the store locked against every other WithLock caller and every
// direct Load/Save, making one load-mutate-save bracket atomic.
type LockingStore interface {
	Store

	WithLock(ctx context.Context, fn func(Store) error) error
}

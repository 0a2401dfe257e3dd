/*
Package sqlite provides a SQLite-backed implementation of the storage
interface.

PURPOSE:
  Persists the ledger and catalog in a single SQLite database. The
  engine's lifecycle is wholesale snapshot persistence, so SaveLedger and
  SaveCatalog replace their table contents inside one database
  transaction; a failed save rolls back to the previous snapshot.

KEY TABLES:
  assignments: The ledger. The position column preserves ledger order
               across load/save cycles; id is the stable identity used
               for deletion.
  rules:       The catalog, partitioned by section ('shift' / 'leave'),
               ordered by position within each section.

CONCURRENCY:
  Uses sync.RWMutex for in-process thread-safety; WithLock exposes the
  write lock as the scoped lock an engine bracket needs.

WAL MODE:
  The database is opened with WAL so readers don't block the single
  writer and crash recovery is cheap.

USAGE:
  store, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := schedule.NewEngine(store)

SEE ALSO:
  - schedule/store.go: Interface definitions
  - store/jsonfile:    File-backed alternative in the legacy encoding
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/shift-engine/schedule"
)

// Store implements the storage interface using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given database path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps snapshot replacement serial at the
	// database level as well.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- The shift ledger. position preserves insertion order.
	CREATE TABLE IF NOT EXISTS assignments (
		position  INTEGER PRIMARY KEY AUTOINCREMENT,
		id        TEXT NOT NULL UNIQUE,
		date      TEXT NOT NULL,
		slot_type TEXT NOT NULL,
		employee  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_date_slot
		ON assignments(date, slot_type);
	CREATE INDEX IF NOT EXISTS idx_assignments_employee
		ON assignments(employee);

	-- The rule catalog, replaced wholesale on settings update.
	CREATE TABLE IF NOT EXISTS rules (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		section  TEXT NOT NULL CHECK (section IN ('shift', 'leave')),
		name     TEXT NOT NULL,
		label    TEXT NOT NULL DEFAULT '',
		quota    INTEGER NOT NULL CHECK (quota >= 0)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

func (s *Store) LoadCatalog(ctx context.Context) (*schedule.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadCatalog(ctx)
}

func (s *Store) SaveCatalog(ctx context.Context, c *schedule.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCatalog(ctx, c)
}

func (s *Store) LoadLedger(ctx context.Context) (*schedule.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadLedger(ctx)
}

func (s *Store) SaveLedger(ctx context.Context, l *schedule.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLedger(ctx, l)
}

// WithLock executes fn holding the write lock, making one engine bracket
// atomic against all other access through this store.
func (s *Store) WithLock(ctx context.Context, fn func(schedule.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&lockedView{parent: s})
}

// =============================================================================
// QUERIES (callers hold the appropriate lock)
// =============================================================================

func (s *Store) loadLedger(ctx context.Context) (*schedule.Ledger, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, slot_type, employee FROM assignments ORDER BY position ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var shifts []schedule.Assignment
	for rows.Next() {
		var a schedule.Assignment
		if err := rows.Scan(&a.ID, &a.Date, &a.SlotType, &a.Employee); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		shifts = append(shifts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schedule.NewLedger(shifts), nil
}

func (s *Store) saveLedger(ctx context.Context, l *schedule.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments"); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}
	for _, a := range l.All() {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO assignments (id, date, slot_type, employee) VALUES (?, ?, ?, ?)",
			a.ID, a.Date, a.SlotType, a.Employee,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) loadCatalog(ctx context.Context) (*schedule.Catalog, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT section, name, label, quota FROM rules ORDER BY position ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var shiftTypes, leaveTypes []schedule.Rule
	for rows.Next() {
		var section string
		var r schedule.Rule
		if err := rows.Scan(&section, &r.Name, &r.Label, &r.Quota); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		if section == "leave" {
			leaveTypes = append(leaveTypes, r)
		} else {
			shiftTypes = append(shiftTypes, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schedule.NewCatalog(shiftTypes, leaveTypes), nil
}

func (s *Store) saveCatalog(ctx context.Context, c *schedule.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rules"); err != nil {
		return fmt.Errorf("failed to clear rules: %w", err)
	}
	insert := func(section string, rules []schedule.Rule) error {
		for _, r := range rules {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO rules (section, name, label, quota) VALUES (?, ?, ?, ?)",
				section, r.Name, r.Label, r.Quota,
			)
			if err != nil {
				return fmt.Errorf("failed to insert rule: %w", err)
			}
		}
		return nil
	}
	if err := insert("shift", c.ShiftTypes); err != nil {
		return err
	}
	if err := insert("leave", c.LeaveTypes); err != nil {
		return err
	}
	return tx.Commit()
}

// lockedView gives WithLock callers access without re-acquiring the lock.
type lockedView struct {
	parent *Store
}

func (v *lockedView) LoadCatalog(ctx context.Context) (*schedule.Catalog, error) {
	return v.parent.loadCatalog(ctx)
}

func (v *lockedView) SaveCatalog(ctx context.Context, c *schedule.Catalog) error {
	return v.parent.saveCatalog(ctx, c)
}

func (v *lockedView) LoadLedger(ctx context.Context) (*schedule.Ledger, error) {
	return v.parent.loadLedger(ctx)
}

func (v *lockedView) SaveLedger(ctx context.Context, l *schedule.Ledger) error {
	return v.parent.saveLedger(ctx, l)
}

/*
Package jsonfile provides a JSON-file-backed implementation of the
storage interface.

PURPOSE:
  Persists the ledger and catalog as two whole-file JSON documents in
  the interchange encoding:

    shifts.json:    [ {"id": "...", "date": "...", "time": "...", "employee": "..."}, ... ]
    settings.json:  { "shift_types": [{"name","time","quota"}], "leave_types": [...] }

  Files written before assignments carried IDs (records with only date,
  time, employee) load cleanly; the ledger mints IDs on load and they are
  persisted on the next save.

CONCURRENCY:
  A single process-wide mutex serializes all access. WithLock exposes the
  same mutex as a scoped lock so an engine bracket (load, mutate, save)
  is atomic against concurrent brackets.

WRITE SAFETY:
  Saves go through a temp file and rename, so a crash mid-write leaves
  the previous snapshot intact.

SEE ALSO:
  - schedule/store.go: Interface definitions
  - store/sqlite:      Database-backed alternative
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/warp/shift-engine/schedule"
)

// Store persists snapshots as JSON files.
type Store struct {
	mu           sync.Mutex
	shiftsPath   string
	settingsPath string
}

// New creates a store over the given file paths. Missing files read as
// empty snapshots; they are created on first save.
func New(shiftsPath, settingsPath string) *Store {
	return &Store{shiftsPath: shiftsPath, settingsPath: settingsPath}
}

// catalogDoc is the on-disk shape of the catalog.
type catalogDoc struct {
	ShiftTypes []schedule.Rule `json:"shift_types"`
	LeaveTypes []schedule.Rule `json:"leave_types"`
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

func (s *Store) LoadCatalog(ctx context.Context) (*schedule.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCatalog()
}

func (s *Store) SaveCatalog(ctx context.Context, c *schedule.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCatalog(c)
}

func (s *Store) LoadLedger(ctx context.Context) (*schedule.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLedger()
}

func (s *Store) SaveLedger(ctx context.Context, l *schedule.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLedger(l)
}

// WithLock executes fn with the files locked against every other caller
// of this store.
func (s *Store) WithLock(ctx context.Context, fn func(schedule.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&fileView{parent: s})
}

// =============================================================================
// FILE ACCESS (callers hold s.mu)
// =============================================================================

func (s *Store) loadCatalog() (*schedule.Catalog, error) {
	var doc catalogDoc
	ok, err := readJSON(s.settingsPath, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if !ok {
		return schedule.NewCatalog(nil, nil), nil
	}
	return schedule.NewCatalog(doc.ShiftTypes, doc.LeaveTypes), nil
}

func (s *Store) saveCatalog(c *schedule.Catalog) error {
	doc := catalogDoc{ShiftTypes: c.ShiftTypes, LeaveTypes: c.LeaveTypes}
	if err := writeJSON(s.settingsPath, doc); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

func (s *Store) loadLedger() (*schedule.Ledger, error) {
	var shifts []schedule.Assignment
	ok, err := readJSON(s.shiftsPath, &shifts)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if !ok {
		return schedule.NewLedger(nil), nil
	}
	return schedule.NewLedger(shifts), nil
}

func (s *Store) saveLedger(l *schedule.Ledger) error {
	shifts := l.All()
	if shifts == nil {
		shifts = []schedule.Assignment{}
	}
	if err := writeJSON(s.shiftsPath, shifts); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

// readJSON reports whether the file existed.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// fileView gives WithLock callers access without re-acquiring the mutex.
type fileView struct {
	parent *Store
}

func (v *fileView) LoadCatalog(context.Context) (*schedule.Catalog, error) {
	return v.parent.loadCatalog()
}

func (v *fileView) SaveCatalog(_ context.Context, c *schedule.Catalog) error {
	return v.parent.saveCatalog(c)
}

func (v *fileView) LoadLedger(context.Context) (*schedule.Ledger, error) {
	return v.parent.loadLedger()
}

func (v *fileView) SaveLedger(_ context.Context, l *schedule.Ledger) error {
	return v.parent.saveLedger(l)
}

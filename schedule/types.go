/*
Package schedule provides the core shift scheduling engine.

PURPOSE:
  This package contains the types and algorithms for assigning employees to
  dated, typed time slots. It enforces per-slot-type capacity ("quota"),
  answers retrospective queries (by employee, by date, by window), and
  projects the ledger into a tabular form for export.

KEY CONCEPTS IN THIS FILE (types.go):
  - Rule: A named, quota-bounded slot category (work shift or leave type)
  - Assignment: A single dated booking of one employee into one slot type
  - Ledger: The ordered collection of all assignments (ledger.go)
  - Catalog: The full set of defined rules (catalog.go)

DESIGN PRINCIPLES:
  1. No I/O in the engine: persistence goes through the Store interface
  2. Stable identity: every assignment gets an opaque ID at creation
  3. One capacity rule: exact-duplicate rejection is just quota = 1
  4. Queries are pure functions over a ledger snapshot (query.go)

USAGE:
  engine := schedule.NewEngine(store)
  a, err := engine.Create(ctx, "2026-01-01", "Morning", "Alice")
  if err != nil {
      var capErr *schedule.CapacityError
      if errors.As(err, &capErr) {
          // slot full: capErr.SlotType, capErr.Quota, capErr.Date
      }
  }

SEE ALSO:
  - catalog.go: Rule resolution and catalog replacement
  - ledger.go:  Create/delete with capacity enforcement
  - query.go:   Filtering, sorting, aggregation
  - export.go:  Tabular projection and CSV encoding
*/
package schedule

// =============================================================================
// RULE - Named slot category with a capacity quota
// =============================================================================

// Rule identifies a bookable category. A rule with Quota n permits at most
// n assignments per date for its slot type; Quota 1 therefore reproduces
// plain duplicate rejection.
type Rule struct {
	// Name is the unique key the rule is resolved by. Lookup spans both
	// catalog sections, so names should not collide across them.
	Name string `json:"name"`

	// Label is a display time-range or description ("09:00-13:00").
	// Shift types carry one; leave types usually leave it empty.
	Label string `json:"time,omitempty"`

	// Quota is the maximum simultaneous assignments per date. Never negative.
	Quota int `json:"quota"`
}

// =============================================================================
// ASSIGNMENT - The atomic scheduling fact
// =============================================================================

// Assignment is one dated booking of one employee into one slot type.
//
// The ID is an opaque identifier minted at creation time. Deletion is
// ID-based: positions shift as the ledger changes, identifiers do not.
type Assignment struct {
	ID string `json:"id,omitempty"`

	// Date is a calendar date with ISO YYYY-MM-DD semantics, no timezone.
	Date string `json:"date"`

	// SlotType references a Rule by name. It is validated against the
	// catalog only at creation time; a later catalog change does not
	// invalidate existing assignments.
	SlotType string `json:"time"`

	// Employee is free text, matched case-insensitively for search.
	Employee string `json:"employee"`
}

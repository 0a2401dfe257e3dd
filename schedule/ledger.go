/*
ledger.go - The shift ledger: ordered assignments and the capacity rule

PURPOSE:
  The Ledger owns the only two mutations in the system: Create (with
  capacity enforcement) and Delete (by stable ID). Everything else is a
  read over the snapshot returned by All().

THE CAPACITY RULE:
  Before appending, count the existing assignments that share the new
  assignment's (date, slotType). If the slot type resolves to a rule and
  the count has reached the rule's quota, the create fails with a
  CapacityError. If no rule matches, the booking is open: the catalog is
  advisory unless a matching rule exists.

  There is deliberately no separate exact-duplicate check. A rule with
  quota 1 makes any second same-(date, slotType) booking fail, which is
  the duplicate rule as a special case of the capacity rule.

IDENTITY:
  Assignments carry an opaque ID minted at creation (and back-filled on
  load for records persisted before IDs existed). Deletion addresses that
  ID, never a position: positions change whenever the ledger is listed in
  a different order, IDs do not.

SEE ALSO:
  - catalog.go: Rule resolution
  - engine.go:  Load/mutate/save brackets around these mutations
*/
package schedule

import "github.com/google/uuid"

// =============================================================================
// LEDGER - Ordered collection of assignments
// =============================================================================

// Ledger is the complete ordered collection of shift assignments.
// Insertion order is preserved across load/save cycles; listing
// operations re-sort as needed without mutating the ledger.
type Ledger struct {
	assignments []Assignment
}

// NewLedger builds a ledger from persisted assignments. Records without
// an ID (written by older implementations) get one minted here, so every
// assignment in a live ledger is addressable.
func NewLedger(assignments []Assignment) *Ledger {
	copied := append([]Assignment(nil), assignments...)
	for i := range copied {
		if copied[i].ID == "" {
			copied[i].ID = uuid.NewString()
		}
	}
	return &Ledger{assignments: copied}
}

// All returns a copy of every assignment in ledger order.
func (l *Ledger) All() []Assignment {
	return append([]Assignment(nil), l.assignments...)
}

// Len returns the number of assignments.
func (l *Ledger) Len() int { return len(l.assignments) }

// Find returns the assignment with the given ID.
func (l *Ledger) Find(id string) (Assignment, bool) {
	for _, a := range l.assignments {
		if a.ID == id {
			return a, true
		}
	}
	return Assignment{}, false
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Create validates the capacity rule against the catalog and appends a new
// assignment. On success the stored assignment (with its minted ID) is
// returned. A quota breach returns a *CapacityError; a slot type with no
// matching rule books freely.
func (l *Ledger) Create(date, slotType, employee string, catalog *Catalog) (Assignment, error) {
	count := 0
	for _, a := range l.assignments {
		if a.Date == date && a.SlotType == slotType {
			count++
		}
	}

	if rule, ok := catalog.Resolve(slotType); ok && count >= rule.Quota {
		return Assignment{}, &CapacityError{SlotType: slotType, Quota: rule.Quota, Date: date}
	}

	a := Assignment{
		ID:       uuid.NewString(),
		Date:     date,
		SlotType: slotType,
		Employee: employee,
	}
	l.assignments = append(l.assignments, a)
	return a, nil
}

// Delete removes the assignment with the given ID and returns it.
// An unknown ID returns a *NotFoundError; the ledger is unchanged.
func (l *Ledger) Delete(id string) (Assignment, error) {
	for i, a := range l.assignments {
		if a.ID == id {
			l.assignments = append(l.assignments[:i], l.assignments[i+1:]...)
			return a, nil
		}
	}
	return Assignment{}, &NotFoundError{ID: id}
}

/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All engine error types in one place. Callers branch on sentinels with
  errors.Is and recover details with errors.As on the structured types.

ERROR CATEGORIES:
  1. Capacity errors   - Creation blocked by a rule's quota
  2. Validation errors - Malformed rule definitions on catalog replace
  3. Not-found errors  - Deletion referencing an unknown assignment ID

USAGE:
  if errors.Is(err, schedule.ErrCapacityExceeded) { ... }

  var capErr *schedule.CapacityError
  if errors.As(err, &capErr) {
      msg := fmt.Sprintf("%s is full on %s", capErr.SlotType, capErr.Date)
  }
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCapacityExceeded is returned when a creation would push the count
	// of assignments sharing (date, slotType) past the rule's quota.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")

	// ErrAssignmentNotFound is returned when a delete references an ID
	// that is not in the ledger. Stale deletes fail loudly; they are
	// never a silent no-op.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrInvalidRule is returned when a catalog replace carries a rule
	// definition that does not validate. The whole replace is rejected
	// and the prior catalog stays in effect.
	ErrInvalidRule = errors.New("invalid rule definition")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CapacityError reports a creation blocked by quota, with enough context
// to build a user-facing message.
type CapacityError struct {
	SlotType string
	Quota    int
	Date     string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: %q already has %d assignment(s) on %s",
		e.SlotType, e.Quota, e.Date)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// RuleValidationError reports the first rule definition that failed to
// validate during a catalog replace.
type RuleValidationError struct {
	Section string // "shift_types" or "leave_types"
	Name    string
	Quota   string // the raw value that failed to parse
}

func (e *RuleValidationError) Error() string {
	return fmt.Sprintf("invalid rule %q in %s: quota %q is not a non-negative integer",
		e.Name, e.Section, e.Quota)
}

func (e *RuleValidationError) Unwrap() error { return ErrInvalidRule }

// NotFoundError reports a delete that referenced an unknown assignment.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("assignment %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrAssignmentNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine or storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrInvalidRule) ||
		errors.Is(err, ErrAssignmentNotFound)
}

// IsNotFound returns true if the error indicates a missing assignment.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAssignmentNotFound)
}

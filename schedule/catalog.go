/*
catalog.go - The rule catalog: named slot types and their quotas

PURPOSE:
  Holds the shift-type and leave-type rule definitions and resolves them
  by name when the ledger validates a new assignment. The catalog is
  replaced wholesale on settings update; there are no partial edits.

VALIDATION BOUNDARY:
  All input scrubbing happens in Replace/BuildCatalog:
  - Rows with a blank name are dropped (malformed settings rows)
  - Quotas must parse as non-negative integers or the whole replace
    fails and the prior catalog stays untouched
  Business logic elsewhere can assume a catalog is always well-formed.

SEE ALSO:
  - ledger.go: Resolve() feeds the capacity check
  - errors.go: RuleValidationError
*/
package schedule

import (
	"strconv"
	"strings"
)

// =============================================================================
// CATALOG - Ordered rules, partitioned into shift types and leave types
// =============================================================================

// Catalog is the complete set of defined slot types. Order within each
// section is preserved (it is display order for settings screens).
type Catalog struct {
	ShiftTypes []Rule
	LeaveTypes []Rule
}

// NewCatalog builds a catalog from already-validated rules.
func NewCatalog(shiftTypes, leaveTypes []Rule) *Catalog {
	return &Catalog{
		ShiftTypes: append([]Rule(nil), shiftTypes...),
		LeaveTypes: append([]Rule(nil), leaveTypes...),
	}
}

// Resolve looks up a rule by name, shift types first, then leave types.
// First match wins if a name appears in both sections; such a collision
// is a configuration error, not something the engine enforces.
func (c *Catalog) Resolve(name string) (Rule, bool) {
	for _, r := range c.ShiftTypes {
		if r.Name == name {
			return r, true
		}
	}
	for _, r := range c.LeaveTypes {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Rules returns both sections as one sequence, shift types first.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, 0, len(c.ShiftTypes)+len(c.LeaveTypes))
	out = append(out, c.ShiftTypes...)
	out = append(out, c.LeaveTypes...)
	return out
}

// Clone returns an independent copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	return NewCatalog(c.ShiftTypes, c.LeaveTypes)
}

// =============================================================================
// REPLACEMENT - Wholesale swap with validation
// =============================================================================

// RuleDefinition is one raw settings row before validation. Quota arrives
// as text because settings forms submit strings.
type RuleDefinition struct {
	Name  string
	Label string
	Quota string
}

// BuildCatalog validates raw definitions into a catalog. Rows with a blank
// name are silently dropped; a quota that is not a non-negative integer
// fails the whole build with a RuleValidationError.
func BuildCatalog(shiftDefs, leaveDefs []RuleDefinition) (*Catalog, error) {
	shiftTypes, err := buildRules("shift_types", shiftDefs)
	if err != nil {
		return nil, err
	}
	leaveTypes, err := buildRules("leave_types", leaveDefs)
	if err != nil {
		return nil, err
	}
	return &Catalog{ShiftTypes: shiftTypes, LeaveTypes: leaveTypes}, nil
}

// Replace atomically swaps the catalog contents for the validated result
// of the given definitions. On error the receiver is left unchanged.
func (c *Catalog) Replace(shiftDefs, leaveDefs []RuleDefinition) error {
	next, err := BuildCatalog(shiftDefs, leaveDefs)
	if err != nil {
		return err
	}
	*c = *next
	return nil
}

func buildRules(section string, defs []RuleDefinition) ([]Rule, error) {
	var rules []Rule
	for _, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		quota, err := parseQuota(d.Quota)
		if err != nil {
			return nil, &RuleValidationError{Section: section, Name: name, Quota: d.Quota}
		}
		rules = append(rules, Rule{Name: name, Label: d.Label, Quota: quota})
	}
	return rules, nil
}

func parseQuota(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if q < 0 {
		return 0, strconv.ErrRange
	}
	return q, nil
}

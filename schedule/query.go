/*
query.go - Pure queries and aggregations over a ledger snapshot

PURPOSE:
  Filtering, sorting, and counting over []Assignment. Nothing here
  mutates its input; every function returns fresh slices or maps.

WINDOWED STATS:
  CountByEmployee counts only the assignments passed in. Callers filter
  to the visible window first; the stats reflect the current view, not
  the whole ledger. That is intentional.
*/
package schedule

import (
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// =============================================================================
// FILTERS
// =============================================================================

// FilterByEmployee returns assignments whose employee contains the query,
// case-insensitively.
func FilterByEmployee(shifts []Assignment, query string) []Assignment {
	q := strings.ToLower(query)
	var out []Assignment
	for _, s := range shifts {
		if strings.Contains(strings.ToLower(s.Employee), q) {
			out = append(out, s)
		}
	}
	return out
}

// FilterByDate returns assignments on exactly the given date.
func FilterByDate(shifts []Assignment, date string) []Assignment {
	var out []Assignment
	for _, s := range shifts {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// FilterByMonth returns assignments whose date starts with the given
// "YYYY-MM" prefix.
func FilterByMonth(shifts []Assignment, month string) []Assignment {
	prefix := month + "-"
	var out []Assignment
	for _, s := range shifts {
		if strings.HasPrefix(s.Date, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// FilterByRange returns assignments inside the inclusive calendar window
// [start, start+days-1]. Dates are compared as calendar dates, not
// strings, so "2026-01-31" correctly precedes "2026-02-01". Assignments
// whose date does not parse are excluded; a non-positive days yields an
// empty result.
func FilterByRange(shifts []Assignment, start string, days int) ([]Assignment, error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, nil
	}
	to := from.AddDate(0, 0, days-1)

	var out []Assignment
	for _, s := range shifts {
		d, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			continue
		}
		if !d.Before(from) && !d.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

// =============================================================================
// ORDERING
// =============================================================================

// SortByDateTime returns a copy sorted by date ascending, then slot label
// ascending (lexicographic). The sort is stable, so equal keys keep their
// ledger order.
func SortByDateTime(shifts []Assignment) []Assignment {
	out := append([]Assignment(nil), shifts...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].SlotType < out[j].SlotType
	})
	return out
}

// Dates returns the distinct assignment dates, ascending.
func Dates(shifts []Assignment) []string {
	return distinct(shifts, func(a Assignment) string { return a.Date })
}

// Employees returns the distinct employee names, ascending.
func Employees(shifts []Assignment) []string {
	return distinct(shifts, func(a Assignment) string { return a.Employee })
}

func distinct(shifts []Assignment, key func(Assignment) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range shifts {
		k := key(s)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// =============================================================================
// AGGREGATION
// =============================================================================

// CountByEmployee returns assignment counts per employee, computed only
// over the shifts passed in.
func CountByEmployee(shifts []Assignment) map[string]int {
	counts := make(map[string]int)
	for _, s := range shifts {
		counts[s.Employee]++
	}
	return counts
}

// ScheduleKey addresses one calendar cell: one employee on one date.
type ScheduleKey struct {
	Employee string
	Date     string
}

// ScheduleLookup maps (employee, date) to the slot type booked there.
// Iteration is in ledger order, so when duplicates exist for a pair the
// last-created booking wins, deterministically.
func ScheduleLookup(shifts []Assignment) map[ScheduleKey]string {
	lookup := make(map[ScheduleKey]string)
	for _, s := range shifts {
		lookup[ScheduleKey{Employee: s.Employee, Date: s.Date}] = s.SlotType
	}
	return lookup
}

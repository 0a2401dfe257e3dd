/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the engine types from
  the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  DTOs are pure data carriers; validation happens in handlers (and, for
  rule quotas, at the engine's catalog boundary).

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import "github.com/warp/shift-engine/schedule"

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ShiftDTO represents one assignment in API responses.
type ShiftDTO struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Employee string `json:"employee"`
}

// CreateShiftRequest is the request to book a shift.
type CreateShiftRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Employee string `json:"employee"`
}

// RuleDTO represents one catalog rule in responses.
type RuleDTO struct {
	Name  string `json:"name"`
	Time  string `json:"time,omitempty"`
	Quota int    `json:"quota"`
}

// SettingsDTO is the full catalog in responses.
type SettingsDTO struct {
	ShiftTypes []RuleDTO `json:"shift_types"`
	LeaveTypes []RuleDTO `json:"leave_types"`
}

// RuleRow is one raw settings row. Quota arrives as text because the
// settings form submits strings; parsing is the engine's validation
// boundary.
type RuleRow struct {
	Name  string `json:"name"`
	Time  string `json:"time,omitempty"`
	Quota string `json:"quota"`
}

// UpdateSettingsRequest replaces the whole catalog.
type UpdateSettingsRequest struct {
	ShiftTypes []RuleRow `json:"shift_types"`
	LeaveTypes []RuleRow `json:"leave_types"`
}

// CalendarDTO is the calendar-view projection: the distinct dates and
// employees spanning the ledger, the (employee, date) cell lookup, and
// per-employee totals over the same window.
type CalendarDTO struct {
	Dates     []string                     `json:"dates"`
	Employees []string                     `json:"employees"`
	Schedule  map[string]map[string]string `json:"schedule"` // employee -> date -> slot
	Stats     map[string]int               `json:"stats"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toShiftDTO(a schedule.Assignment) ShiftDTO {
	return ShiftDTO{ID: a.ID, Date: a.Date, Time: a.SlotType, Employee: a.Employee}
}

func toShiftDTOs(shifts []schedule.Assignment) []ShiftDTO {
	dtos := make([]ShiftDTO, len(shifts))
	for i, a := range shifts {
		dtos[i] = toShiftDTO(a)
	}
	return dtos
}

func toRuleDTOs(rules []schedule.Rule) []RuleDTO {
	dtos := make([]RuleDTO, len(rules))
	for i, r := range rules {
		dtos[i] = RuleDTO{Name: r.Name, Time: r.Label, Quota: r.Quota}
	}
	return dtos
}

func toDefinitions(rows []RuleRow) []schedule.RuleDefinition {
	defs := make([]schedule.RuleDefinition, len(rows))
	for i, r := range rows {
		defs[i] = schedule.RuleDefinition{Name: r.Name, Label: r.Time, Quota: r.Quota}
	}
	return defs
}

/*
handlers.go - HTTP handlers for the shift scheduling engine

PURPOSE:
  Exposes the engine via REST. Handlers parse HTTP requests, delegate to
  the engine, and serialize results; no scheduling rule lives here.

ENDPOINTS:
  Shifts:
    GET    /api/shifts            List shifts (employee/date/month/window filters)
    POST   /api/shifts            Book a shift
    DELETE /api/shifts/{id}       Delete a shift by ID
    GET    /api/shifts/export     CSV download (date,time,employee)

  Calendar:
    GET    /api/calendar          Calendar projection with per-employee stats

  Settings:
    GET    /api/settings          Current rule catalog
    PUT    /api/settings          Replace the rule catalog

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input, catalog validation failure
  - 404: Unknown assignment ID
  - 409: Capacity exceeded
  - 500: Storage errors

SEE ALSO:
  - dto.go:    Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warp/shift-engine/schedule"
)

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	Engine *schedule.Engine
}

// NewHandler creates a handler over the given engine.
func NewHandler(engine *schedule.Engine) *Handler {
	return &Handler{Engine: engine}
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns shifts sorted by date then time, optionally filtered
// by employee substring, exact date, month prefix, or a from+days window.
// Filters combine.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Engine.Shifts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}

	q := r.URL.Query()
	if employee := q.Get("employee"); employee != "" {
		shifts = schedule.FilterByEmployee(shifts, employee)
	}
	if date := q.Get("date"); date != "" {
		shifts = schedule.FilterByDate(shifts, date)
	}
	if month := q.Get("month"); month != "" {
		shifts = schedule.FilterByMonth(shifts, month)
	}
	if from := q.Get("from"); from != "" {
		days, err := strconv.Atoi(q.Get("days"))
		if err != nil || days <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer", err)
			return
		}
		shifts, err = schedule.FilterByRange(shifts, from, days)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from must be a YYYY-MM-DD date", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toShiftDTOs(schedule.SortByDateTime(shifts)))
}

// CreateShift books an employee into a slot on a date.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Date == "" || req.Time == "" {
		writeError(w, http.StatusBadRequest, "date and time are required", nil)
		return
	}

	created, err := h.Engine.Create(r.Context(), req.Date, req.Time, req.Employee)
	if err != nil {
		var capErr *schedule.CapacityError
		if errors.As(err, &capErr) {
			writeJSON(w, http.StatusConflict, ErrorResponse{
				Error: fmt.Sprintf("%q is fully booked on %s", capErr.SlotType, capErr.Date),
				Code:  "capacity_exceeded",
				Details: map[string]any{
					"slot_type": capErr.SlotType,
					"quota":     capErr.Quota,
					"date":      capErr.Date,
				},
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create shift", err)
		return
	}

	writeJSON(w, http.StatusCreated, toShiftDTO(created))
}

// DeleteShift removes a shift by its stable ID.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.Engine.Delete(r.Context(), id)
	if err != nil {
		if schedule.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Shift not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftDTO(removed))
}

// ExportShifts streams the ledger as a CSV download. A UTF-8 byte-order
// marker is included unless ?bom=0, for spreadsheet compatibility with
// non-ASCII employee names.
func (h *Handler) ExportShifts(w http.ResponseWriter, r *http.Request) {
	withBOM := r.URL.Query().Get("bom") != "0"

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="shifts_export.csv"`)

	if err := h.Engine.ExportCSV(r.Context(), w, withBOM); err != nil {
		// Headers are already out; the truncated body is all we can signal.
		return
	}
}

// =============================================================================
// CALENDAR HANDLER
// =============================================================================

// GetCalendar returns the calendar projection: distinct dates, distinct
// employees, the (employee, date) cell lookup, and per-employee counts.
// The optional month filter restricts the window, and the stats reflect
// only that window.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Engine.Shifts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	if month := r.URL.Query().Get("month"); month != "" {
		shifts = schedule.FilterByMonth(shifts, month)
	}

	scheduleMap := make(map[string]map[string]string)
	for key, slot := range schedule.ScheduleLookup(shifts) {
		if scheduleMap[key.Employee] == nil {
			scheduleMap[key.Employee] = make(map[string]string)
		}
		scheduleMap[key.Employee][key.Date] = slot
	}

	writeJSON(w, http.StatusOK, CalendarDTO{
		Dates:     schedule.Dates(shifts),
		Employees: schedule.Employees(shifts),
		Schedule:  scheduleMap,
		Stats:     schedule.CountByEmployee(shifts),
	})
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the current rule catalog.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.Engine.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsDTO{
		ShiftTypes: toRuleDTOs(catalog.ShiftTypes),
		LeaveTypes: toRuleDTOs(catalog.LeaveTypes),
	})
}

// UpdateSettings replaces the whole rule catalog. A validation failure
// rejects the replace and leaves the prior catalog in effect.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	catalog, err := h.Engine.ReplaceCatalog(r.Context(),
		toDefinitions(req.ShiftTypes), toDefinitions(req.LeaveTypes))
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidRule) {
			writeError(w, http.StatusBadRequest, "Invalid rule definition", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}

	writeJSON(w, http.StatusOK, SettingsDTO{
		ShiftTypes: toRuleDTOs(catalog.ShiftTypes),
		LeaveTypes: toRuleDTOs(catalog.LeaveTypes),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

/*
handlers.go - HTTP API handlers for the reference HR backend

PURPOSE:
  Exposes CRUD over the HR resources the list views consume. Handlers are
  resource-generic: records are opaque field maps, the store enforces
  identity and archival, and business rules live in a small guard table.

ENDPOINTS (per resource, e.g. employees):
  GET    /api/employees                List (archived=true for the archive)
  POST   /api/employees                Create
  GET    /api/employees/{id}           Get one
  PUT    /api/employees/{id}           Update
  DELETE /api/employees/{id}           Soft delete (archive)
  POST   /api/employees/{id}/restore   Restore from archive
  DELETE /api/employees/{id}/permanent Hard delete

ENVELOPE VARIANTS:
  Different teams shipped different list shapes over the years and the
  client normalizes all of them, so the reference backend reproduces the
  zoo on purpose:
    employees  -> {"success": true, "data": [...]}
    claims     -> {"success": true, "data": {"items": [...]}}
    others     -> {"success": true, "data": {"<resource>": [...]}}

ERROR HANDLING:
  Failures carry success:false plus a human-readable message. Business
  rejections (e.g. deleting an employee with active claims) use HTTP 200
  with success:false - the client surfaces the message verbatim.

SEE ALSO:
  - auth.go: Login + bearer middleware
  - seed.go: Sample hospital dataset
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/carelink/hrview/store/sqlite"
)

// Resources lists every resource the backend serves.
var Resources = []string{
	"employees", "documents",
	"claims", "enrollments",
	"salaries", "payslips", "bonuses", "deductions",
	"notifications",
}

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Log   logrus.FieldLogger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Store: store, Log: log}
}

// =============================================================================
// LIST / GET
// =============================================================================

// List returns all records of a resource. ?archived=true lists the archive.
func (h *Handler) List(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		archived := r.URL.Query().Get("archived") == "true"
		records, err := h.Store.List(r.Context(), resource, archived)
		if err != nil {
			h.Log.WithError(err).WithField("resource", resource).Error("list failed")
			writeFailure(w, http.StatusInternalServerError, "failed to list "+resource)
			return
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, rec.Fields)
		}
		writeSuccess(w, http.StatusOK, shapeList(resource, items))
	}
}

// Get returns a single record.
func (h *Handler) Get(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, err := h.Store.Get(r.Context(), resource, id)
		if errors.Is(err, sqlite.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			h.Log.WithError(err).Error("get failed")
			writeFailure(w, http.StatusInternalServerError, "failed to load record")
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{"item": rec.Fields})
	}
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Create inserts a new record from the request body.
func (h *Handler) Create(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		rec, err := h.Store.Insert(r.Context(), resource, fields)
		if err != nil {
			h.Log.WithError(err).Error("create failed")
			writeFailure(w, http.StatusInternalServerError, "failed to create record")
			return
		}
		writeSuccess(w, http.StatusCreated, map[string]any{"item": rec.Fields})
	}
}

// Update replaces a record's fields.
func (h *Handler) Update(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "id")
		err := h.Store.Update(r.Context(), resource, id, fields)
		if errors.Is(err, sqlite.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			h.Log.WithError(err).Error("update failed")
			writeFailure(w, http.StatusInternalServerError, "failed to update record")
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{"id": id})
	}
}

// Delete archives a record after running the resource's business guard.
func (h *Handler) Delete(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if msg, blocked := h.deleteBlocked(r, resource, id); blocked {
			// Business rejection, not a protocol failure. The "error" key
			// variant is deliberate - some legacy endpoints used it.
			writeJSON(w, http.StatusOK, map[string]any{
				"success": false,
				"error":   msg,
			})
			return
		}

		err := h.Store.SetArchived(r.Context(), resource, id, true)
		if errors.Is(err, sqlite.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			h.Log.WithError(err).Error("delete failed")
			writeFailure(w, http.StatusInternalServerError, "failed to delete record")
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{"id": id})
	}
}

// Restore un-archives a record.
func (h *Handler) Restore(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		err := h.Store.SetArchived(r.Context(), resource, id, false)
		if errors.Is(err, sqlite.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			h.Log.WithError(err).Error("restore failed")
			writeFailure(w, http.StatusInternalServerError, "failed to restore record")
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{"id": id})
	}
}

// Purge removes a record permanently.
func (h *Handler) Purge(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		err := h.Store.Delete(r.Context(), resource, id)
		if errors.Is(err, sqlite.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			h.Log.WithError(err).Error("purge failed")
			writeFailure(w, http.StatusInternalServerError, "failed to delete record")
			return
		}
		writeSuccess(w, http.StatusOK, map[string]any{"id": id})
	}
}

// deleteBlocked runs the per-resource guard. Employees with pending or
// approved claims cannot be archived: claims would orphan.
func (h *Handler) deleteBlocked(r *http.Request, resource, id string) (string, bool) {
	if resource != "employees" {
		return "", false
	}
	claims, err := h.Store.List(r.Context(), "claims", false)
	if err != nil {
		return "", false
	}
	for _, c := range claims {
		owner, _ := c.Fields["employee_id"].(string)
		status, _ := c.Fields["status"].(string)
		if owner == id && (status == "Pending" || status == "Approved") {
			return "has active claims", true
		}
	}
	return "", false
}

// =============================================================================
// ADMIN
// =============================================================================

// ResetDatabase clears all records. Dev only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeFailure(w, http.StatusInternalServerError, "failed to reset database")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"reset": true})
}

// SeedDatabase resets and loads the sample hospital dataset.
func (h *Handler) SeedDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeFailure(w, http.StatusInternalServerError, "failed to reset database")
		return
	}
	if err := Seed(r.Context(), h.Store); err != nil {
		h.Log.WithError(err).Error("seed failed")
		writeFailure(w, http.StatusInternalServerError, "failed to seed database")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"seeded": true})
}

// =============================================================================
// ENVELOPE HELPERS
// =============================================================================

// shapeList wraps a list in the resource's historical envelope shape.
func shapeList(resource string, items []map[string]any) any {
	switch resource {
	case "employees":
		return items
	case "claims":
		return map[string]any{"items": items}
	default:
		return map[string]any{resource: items}
	}
}

func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if len(fields) == 0 {
		writeFailure(w, http.StatusBadRequest, "empty record")
		return nil, false
	}
	return fields, true
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

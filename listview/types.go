/*
Package listview provides the core list-view controller engine.

PURPOSE:
  This package contains entity-agnostic types and algorithms for presenting
  remote collections of records. Whether the records are employees, HMO
  claims, or payslips, the same engine handles fetching, caching, filtering,
  rendering, mutation, and CSV export.

KEY CONCEPTS IN THIS FILE (types.go):
  - ListItem: An opaque row read defensively with fallback defaults
  - ListState: Per-view snapshot of the last fetch plus active filters
  - FilterSpec: A named, stateless predicate bound to a UI control
  - MutationRequest: A create/update/delete/restore against one record
  - Column/Config: Declarative view definition consumed by the renderer

DESIGN PRINCIPLES:
  1. No client-side schema: fields are read defensively, never trusted
  2. Wholesale replacement: state is re-fetched, never patched incrementally
  3. One owner: each view controller owns its ListState exclusively
  4. Declarative views: a new entity view is a Config, not new code

USAGE:
  cfg := listview.Config{
      Name:     "employees",
      Resource: "employees",
      Columns:  []listview.Column{{Key: "first_name", Label: "First Name"}},
      Filters:  []listview.FilterSpec{{Key: "q", Kind: listview.FilterSubstring, Fields: []string{"first_name", "last_name"}}},
  }
  ctrl := listview.New(cfg, gateway, host)
  ctrl.Display(ctx)

SEE ALSO:
  - filter.go: FilterSpec evaluation
  - render.go: Column-driven table rendering
  - controller.go: The view controller tying everything together
*/
package listview

import (
	"strconv"
	"time"
)

// =============================================================================
// LIST ITEM - Opaque record, read defensively
// =============================================================================

// ListItem is one row as returned by the backend: a mapping from field name
// to primitive value. No schema is enforced client-side.
type ListItem map[string]any

// String returns the field as a string, with "" as the fallback for missing
// or null fields. Numbers and booleans are coerced to their text form.
func (it ListItem) String(key string) string {
	v, ok := it[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64. Render integers without a decimal.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Number returns the field as a float64 and whether it was numeric.
// Numeric strings (common in PHP backends) are parsed too.
func (it ListItem) Number(key string) (float64, bool) {
	v, ok := it[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Bool returns the field as a boolean, false for anything unrecognized.
func (it ListItem) Bool(key string) bool {
	v, ok := it[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1" || t == "yes"
	case float64:
		return t != 0
	default:
		return false
	}
}

// Has reports whether the field is present and non-null.
func (it ListItem) Has(key string) bool {
	v, ok := it[key]
	return ok && v != nil
}

// ID returns the record identifier, preferring "id" then "<anything>_id".
func (it ListItem) ID() string {
	if id := it.String("id"); id != "" {
		return id
	}
	for _, k := range []string{"employee_id", "claim_id", "enrollment_id", "document_id"} {
		if id := it.String(k); id != "" {
			return id
		}
	}
	return ""
}

// Clone returns a shallow copy. Values are primitives so a shallow copy is
// enough to protect the cache from external mutation.
func (it ListItem) Clone() ListItem {
	out := make(ListItem, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

// =============================================================================
// LIST STATE - Per-view snapshot
// =============================================================================

// ListState is the per-view in-memory snapshot: the last successfully fetched
// collection plus the active filter values. Owned exclusively by one
// controller; replaced wholesale on refresh, never patched.
type ListState struct {
	Items          []ListItem
	AppliedFilters FilterValues
	LastFetchedAt  time.Time
}

// =============================================================================
// FILTERS
// =============================================================================

// FilterKind selects the predicate a FilterSpec evaluates.
type FilterKind string

const (
	// FilterSubstring matches case-insensitively against the concatenation
	// of one or more fields (e.g. first + last name).
	FilterSubstring FilterKind = "substring"

	// FilterEquals matches a field exactly.
	FilterEquals FilterKind = "equals"

	// FilterDateRange matches a date field against an inclusive range.
	// Values are encoded "from..to"; either bound may be empty.
	FilterDateRange FilterKind = "date_range"
)

// FilterSpec is a named, stateless predicate definition bound to a UI
// control. The currently selected value lives in ListState.AppliedFilters,
// never in the spec itself.
type FilterSpec struct {
	Key    string
	Kind   FilterKind
	Label  string
	Fields []string

	// Options lists dropdown choices for equality filters. Informational;
	// evaluation does not restrict values to this set.
	Options []string
}

// FilterValues maps filter key to its currently selected value.
// An empty value is a no-op (matches everything).
type FilterValues map[string]string

// Clone returns a copy so callers cannot mutate controller state.
func (fv FilterValues) Clone() FilterValues {
	out := make(FilterValues, len(fv))
	for k, v := range fv {
		out[k] = v
	}
	return out
}

// =============================================================================
// MUTATIONS
// =============================================================================

// MutationOp identifies the kind of record mutation.
type MutationOp string

const (
	OpCreate  MutationOp = "create"
	OpUpdate  MutationOp = "update"
	OpDelete  MutationOp = "delete"  // soft delete (archive)
	OpRestore MutationOp = "restore" // un-archive
	OpPurge   MutationOp = "purge"   // permanent, irreversible delete
)

// MutationRequest is a single create/update/delete/restore against the
// backend. Not persisted client-side beyond the in-flight request.
type MutationRequest struct {
	Op       MutationOp
	EntityID string
	Payload  map[string]any
}

// =============================================================================
// VIEW CONFIGURATION
// =============================================================================

// Column defines one table column: which field it reads, the header label,
// and optional presentation (formatter for text, badges for status values).
type Column struct {
	Key   string
	Label string

	// Format, when set, produces the display text for the cell.
	// CSV export always uses the raw field value, not the formatted text.
	Format Formatter

	// Badges, when set, renders the cell as a colored status badge.
	// Unknown values fall back to a neutral badge instead of failing.
	Badges BadgeSet
}

// Formatter turns a raw item field into display text.
type Formatter func(it ListItem, key string) string

// ActionHandler handles a non-mutation row action (view, edit) resolved to
// the clicked item.
type ActionHandler func(it ListItem) error

// Config declares one view: what to fetch, how to filter it, and how to
// present it. Views for new entities are declared, not coded.
type Config struct {
	Name     string // view name: log fields, export filename prefix
	Resource string // REST resource path, e.g. "employees"
	Columns  []Column
	Filters  []FilterSpec

	// Actions lists row-level actions rendered per row, in order.
	// "delete", "restore" and "purge" are dispatched as mutations;
	// anything else must have a handler in Handlers.
	Actions []string

	// Handlers maps non-mutation actions (view, edit) to callbacks.
	Handlers map[string]ActionHandler

	// EmptyCTA, when set, is the label of the call-to-action shown with the
	// "no records" empty state (e.g. "Add first employee").
	EmptyCTA string
}

/*
controller.go - The view controller: load, filter, mutate, export

PURPOSE:
  Owns one view's ListState and coordinates every user-triggered operation:
  initial load, filter/search, CRUD mutations, and CSV export. One controller
  per view; controllers share nothing.

CONTROL FLOW:
  user action -> Mutate/SetFilter -> Gateway (load/mutate only) -> Cache
  replace -> filter -> render -> Host.SetContent

LATEST-WINS LOADS:
  Every Load increments a generation counter. A response whose generation is
  stale by the time it resolves is discarded, so rapid-fire filter changes
  can never render out of order.

DEBOUNCED SEARCH:
  Search input funnels through one shared Debouncer with a uniform default
  interval, so fast typing produces one render, not one per keystroke.

MUTATIONS:
  Idle -> Submitting -> Idle. No retry, no optimistic patch: a successful
  mutation invalidates the cache and re-fetches so the view always reflects
  authoritative server state. Destructive operations require Host
  confirmation first, with stronger copy for irreversible permanent deletes.

SEE ALSO:
  - gateway.go: DataSource contract
  - render.go: Markup production and empty/error states
*/
package listview

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultDebounceInterval is the uniform search debounce applied by every
// view. Views never pick their own interval.
const DefaultDebounceInterval = 250 * time.Millisecond

// =============================================================================
// HOST - Pluggable rendering/notification collaborators
// =============================================================================

// NotifyLevel classifies host notifications.
type NotifyLevel string

const (
	NotifyInfo    NotifyLevel = "info"
	NotifySuccess NotifyLevel = "success"
	NotifyWarning NotifyLevel = "warning"
	NotifyError   NotifyLevel = "error"
)

// Host is the rendering target and user-interaction surface for one view.
// In a browser shell it wraps a container element and the page's alert
// mechanism; in tests and CLIs it is a plain struct.
type Host interface {
	// SetContent replaces the view container's markup.
	SetContent(html template.HTML)

	// Notify surfaces a non-blocking message to the user.
	Notify(level NotifyLevel, message string)

	// Confirm blocks for a yes/no answer before destructive operations.
	Confirm(message string) bool

	// RedirectToLogin is invoked on 401; the view renders nothing.
	RedirectToLogin()
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller drives one view. Create with New, then call Display once the
// view's container is mounted.
type Controller struct {
	cfg      Config
	source   DataSource
	host     Host
	cache    *Cache
	renderer *Renderer
	log      *logrus.Entry

	generation atomic.Uint64
	debouncer  *Debouncer

	mu         sync.Mutex
	filters    FilterValues
	baseQuery  url.Values
	submitting bool
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithDebounceInterval overrides the search debounce interval.
func WithDebounceInterval(d time.Duration) ControllerOption {
	return func(c *Controller) { c.debouncer = NewDebouncer(d) }
}

// WithBaseQuery attaches fixed query parameters to every load, e.g.
// archived=true for an archive view.
func WithBaseQuery(q url.Values) ControllerOption {
	return func(c *Controller) { c.baseQuery = q }
}

// WithControllerLogger overrides the controller logger.
func WithControllerLogger(log *logrus.Entry) ControllerOption {
	return func(c *Controller) { c.log = log }
}

// New creates a controller for one view.
func New(cfg Config, source DataSource, host Host, opts ...ControllerOption) *Controller {
	c := &Controller{
		cfg:       cfg,
		source:    source,
		host:      host,
		cache:     NewCache(),
		renderer:  NewRenderer(cfg),
		filters:   make(FilterValues),
		debouncer: NewDebouncer(DefaultDebounceInterval),
		log: logrus.WithFields(logrus.Fields{
			"view":     cfg.Name,
			"resource": cfg.Resource,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Display performs the initial render and data load for the view.
func (c *Controller) Display(ctx context.Context) error {
	return c.Load(ctx)
}

// Load fetches the list, replaces the cache wholesale, and re-renders.
// A response superseded by a newer Load is discarded (latest wins).
func (c *Controller) Load(ctx context.Context) error {
	gen := c.generation.Add(1)

	items, err := c.source.FetchList(ctx, c.cfg.Resource, c.query())
	if c.generation.Load() != gen {
		c.log.WithField("generation", gen).Debug("discarding superseded load")
		return ErrStaleResponse
	}
	if err != nil {
		return c.surfaceLoadError(err)
	}

	c.cache.Set(items)
	c.render()
	c.log.WithField("count", len(items)).Debug("list loaded")
	return nil
}

func (c *Controller) query() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	q := url.Values{}
	for k, vs := range c.baseQuery {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return q
}

// surfaceLoadError converts a load failure into the user-visible outcome
// required by the error taxonomy. Nothing propagates uncaught.
func (c *Controller) surfaceLoadError(err error) error {
	switch {
	case IsUnauthorized(err):
		// Distinct path: redirect, render nothing, no fallback data.
		c.log.Warn("unauthorized; redirecting to login")
		c.host.RedirectToLogin()
	case IsTransport(err):
		c.log.WithError(err).Warn("load failed: transport")
		c.host.SetContent(c.renderer.ErrorState(UserMessage(err)))
		c.host.Notify(NotifyWarning, UserMessage(err))
	default:
		c.log.WithError(err).Warn("load failed")
		c.host.SetContent(c.renderer.ErrorState(UserMessage(err)))
		c.host.Notify(NotifyError, UserMessage(err))
	}
	return err
}

// =============================================================================
// FILTER / SEARCH
// =============================================================================

// SetFilter stores a filter value and re-renders from cache. No round trip.
func (c *Controller) SetFilter(key, value string) error {
	if !c.hasFilter(key) {
		return fmt.Errorf("view %s has no filter %q", c.cfg.Name, key)
	}
	c.mu.Lock()
	if value == "" {
		delete(c.filters, key)
	} else {
		c.filters[key] = value
	}
	c.mu.Unlock()
	c.render()
	return nil
}

// ClearFilters resets every filter and re-renders.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	c.filters = make(FilterValues)
	c.mu.Unlock()
	c.render()
}

// Search applies the view's substring filter after the shared debounce
// interval, collapsing rapid keystrokes into one render.
func (c *Controller) Search(term string) {
	key := c.searchKey()
	if key == "" {
		return
	}
	c.debouncer.Do(func() {
		c.SetFilter(key, term)
	})
}

// FlushSearch applies any pending debounced search immediately. Hosts that
// read the view synchronously after typing (exports, the CLI) call this
// before capturing output, otherwise the last keystrokes land after the
// read.
func (c *Controller) FlushSearch() {
	c.debouncer.Flush()
}

func (c *Controller) searchKey() string {
	for _, s := range c.cfg.Filters {
		if s.Kind == FilterSubstring {
			return s.Key
		}
	}
	return ""
}

func (c *Controller) hasFilter(key string) bool {
	for _, s := range c.cfg.Filters {
		if s.Key == key {
			return true
		}
	}
	return false
}

// =============================================================================
// MUTATIONS
// =============================================================================

var confirmCopy = map[MutationOp]string{
	OpDelete:  "Delete this record? It will be archived and can be restored later.",
	OpRestore: "Restore this record?",
	OpPurge:   "Permanently delete this record? This cannot be undone.",
}

var successCopy = map[MutationOp]string{
	OpCreate:  "Record created.",
	OpUpdate:  "Record updated.",
	OpDelete:  "Record deleted.",
	OpRestore: "Record restored.",
	OpPurge:   "Record permanently deleted.",
}

// Mutate performs one create/update/delete/restore and, on success,
// invalidates the cache and re-fetches. On failure the cached list is left
// untouched and the server's message is surfaced verbatim.
func (c *Controller) Mutate(ctx context.Context, req MutationRequest) error {
	if prompt, ok := confirmCopy[req.Op]; ok {
		if !c.host.Confirm(prompt) {
			return ErrConfirmationDeclined
		}
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrMutationInFlight
	}
	c.submitting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	if err := c.source.Mutate(ctx, c.cfg.Resource, req); err != nil {
		if IsUnauthorized(err) {
			c.host.RedirectToLogin()
			return err
		}
		c.log.WithError(err).WithField("op", req.Op).Warn("mutation failed")
		c.host.Notify(NotifyError, UserMessage(err))
		return err
	}

	c.log.WithFields(logrus.Fields{"op": req.Op, "id": req.EntityID}).Info("mutation applied")
	if msg, ok := successCopy[req.Op]; ok {
		c.host.Notify(NotifySuccess, msg)
	}

	// Authoritative server state, never an optimistic local patch.
	c.cache.Invalidate()
	return c.Load(ctx)
}

// HandleAction dispatches a row-level action raised by the host's event
// delegation (data-action/data-id attributes on rendered rows).
func (c *Controller) HandleAction(ctx context.Context, action, id string) error {
	switch action {
	case "delete":
		return c.Mutate(ctx, MutationRequest{Op: OpDelete, EntityID: id})
	case "restore":
		return c.Mutate(ctx, MutationRequest{Op: OpRestore, EntityID: id})
	case "purge":
		return c.Mutate(ctx, MutationRequest{Op: OpPurge, EntityID: id})
	case "retry":
		return c.Load(ctx)
	}

	handler, ok := c.cfg.Handlers[action]
	if !ok {
		return fmt.Errorf("view %s has no handler for action %q", c.cfg.Name, action)
	}
	item, ok := c.findItem(id)
	if !ok {
		return fmt.Errorf("no cached record with id %q", id)
	}
	return handler(item)
}

func (c *Controller) findItem(id string) (ListItem, bool) {
	for _, it := range c.cache.Snapshot() {
		if it.ID() == id {
			return it, true
		}
	}
	return nil, false
}

// =============================================================================
// EXPORT / STATE
// =============================================================================

// ExportCSV serializes the current FILTERED view. An empty filtered list is
// rejected with a user-facing notice instead of producing an empty file.
func (c *Controller) ExportCSV() (*Download, error) {
	dl, err := ExportCSV(c.cfg.Name, c.cfg.Columns, c.visible(), time.Now())
	if err != nil {
		if err == ErrNothingToExport {
			c.host.Notify(NotifyWarning, "There are no records to export.")
		}
		return nil, err
	}
	c.log.WithField("filename", dl.Filename).Info("exported csv")
	return dl, nil
}

// State returns a copy of the current ListState.
func (c *Controller) State() ListState {
	c.mu.Lock()
	filters := c.filters.Clone()
	c.mu.Unlock()
	return ListState{
		Items:          c.cache.Snapshot(),
		AppliedFilters: filters,
		LastFetchedAt:  c.cache.FetchedAt(),
	}
}

// visible returns the filtered view of the cache in original order.
func (c *Controller) visible() []ListItem {
	c.mu.Lock()
	filters := c.filters.Clone()
	c.mu.Unlock()
	return Apply(c.cache.Snapshot(), c.cfg.Filters, filters)
}

func (c *Controller) render() {
	html, err := c.renderer.Table(c.visible())
	if err != nil {
		c.log.WithError(err).Error("render failed")
		return
	}
	c.host.SetContent(html)
}

// =============================================================================
// DEBOUNCER
// =============================================================================

// Debouncer collapses bursts of calls into one, running only the last
// function after the interval of quiet. Safe for concurrent use.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	pending  func()
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Do schedules fn, replacing any previously scheduled call.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs any pending call immediately. Used by tests and by hosts
// tearing a view down.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

/*
render.go - Table rendering for the current filtered list

PURPOSE:
  Maps the filtered list to table markup, including derived presentation
  (status badges, formatted cells) and explicit empty states. The produced
  markup is handed to the Host; this package never touches a live document.

ROW ACTIONS:
  Actions are rendered as buttons carrying data-action/data-id attributes.
  The host wires event delegation on the container and calls
  Controller.HandleAction - there is no process-wide callback namespace, so
  concurrently mounted views cannot collide.

EMPTY STATES:
  Two distinct states so users can tell absence from failure:
  - "no records" (optionally with a primary call-to-action)
  - "failed to load" (with a retry button), shown on transport failures

SEE ALSO:
  - format.go: Cell formatters and badges
  - controller.go: Decides which state to render
*/
package listview

import (
	"html/template"
	"strings"
)

// Renderer produces markup for one view's table and states.
type Renderer struct {
	name     string
	columns  []Column
	actions  []string
	emptyCTA string
}

// NewRenderer builds a renderer from the view config.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		name:     cfg.Name,
		columns:  cfg.Columns,
		actions:  cfg.Actions,
		emptyCTA: cfg.EmptyCTA,
	}
}

// =============================================================================
// TEMPLATES
// =============================================================================

var tableTemplate = template.Must(template.New("table").Parse(`<table class="lv-table" data-view="{{.Name}}">
<thead><tr>
{{- range .Headers}}<th>{{.}}</th>{{end}}
{{- if .HasActions}}<th class="lv-actions-col">Actions</th>{{end}}
</tr></thead>
<tbody>
{{- range .Rows}}
<tr data-id="{{.ID}}">
{{- range .Cells}}
{{- if .Badge}}<td><span class="lv-badge lv-badge-{{.Badge.Color}}">{{.Badge.Label}}</span></td>
{{- else}}<td>{{.Text}}</td>
{{- end}}
{{- end}}
{{- if .Actions}}<td class="lv-actions">
{{- $id := .ID}}
{{- range .Actions}}<button type="button" data-action="{{.}}" data-id="{{$id}}">{{.}}</button>{{end}}
</td>{{end}}
</tr>
{{- end}}
</tbody>
</table>`))

var emptyTemplate = template.Must(template.New("empty").Parse(`<div class="lv-empty" data-view="{{.Name}}">
<p>No records found.</p>
{{- if .CTA}}
<button type="button" class="lv-primary" data-action="create">{{.CTA}}</button>
{{- end}}
</div>`))

var errorTemplate = template.Must(template.New("error").Parse(`<div class="lv-error" data-view="{{.Name}}">
<p>{{.Message}}</p>
<button type="button" data-action="retry">Retry</button>
</div>`))

type cellVM struct {
	Text  string
	Badge *Badge
}

type rowVM struct {
	ID      string
	Cells   []cellVM
	Actions []string
}

type tableVM struct {
	Name       string
	Headers    []string
	HasActions bool
	Rows       []rowVM
}

// =============================================================================
// RENDERING
// =============================================================================

// Table renders the filtered list. Empty input renders the "no records"
// state, never a headerless table.
func (r *Renderer) Table(items []ListItem) (template.HTML, error) {
	if len(items) == 0 {
		return r.EmptyState(), nil
	}

	vm := tableVM{Name: r.name, HasActions: len(r.actions) > 0}
	for _, c := range r.columns {
		vm.Headers = append(vm.Headers, c.Label)
	}
	for _, it := range items {
		row := rowVM{ID: it.ID(), Actions: r.actions}
		for _, c := range r.columns {
			row.Cells = append(row.Cells, r.cell(it, c))
		}
		vm.Rows = append(vm.Rows, row)
	}

	var sb strings.Builder
	if err := tableTemplate.Execute(&sb, vm); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}

func (r *Renderer) cell(it ListItem, c Column) cellVM {
	if c.Badges != nil {
		b := c.Badges.Lookup(it.String(c.Key))
		return cellVM{Badge: &b}
	}
	if c.Format != nil {
		return cellVM{Text: c.Format(it, c.Key)}
	}
	return cellVM{Text: it.String(c.Key)}
}

// EmptyState renders the "no matching records" placeholder.
func (r *Renderer) EmptyState() template.HTML {
	var sb strings.Builder
	emptyTemplate.Execute(&sb, struct {
		Name string
		CTA  string
	}{r.name, r.emptyCTA})
	return template.HTML(sb.String())
}

// ErrorState renders the "failed to load" placeholder with a retry
// affordance. A failed fetch never renders substitute rows; the user sees
// the failure and can retry.
func (r *Renderer) ErrorState(message string) template.HTML {
	var sb strings.Builder
	errorTemplate.Execute(&sb, struct {
		Name    string
		Message string
	}{r.name, message})
	return template.HTML(sb.String())
}

/*
Package factory provides JSON to Go view-config conversion.

PURPOSE:
  Converts JSON view definitions into listview.Config values. This enables
  view configuration without code changes - an admin can declare a new
  entity view (columns, filters, badges) in JSON and the factory produces
  the proper Go config.

WHY JSON?
  - Non-developers can adjust columns and filter vocabularies
  - Easy integration with an admin UI
  - Version control for view definitions
  - Database storage of view configs

JSON SCHEMA:
  {
    "name": "claims",
    "resource": "claims",
    "columns": [
      {"key": "member_name", "label": "Member"},
      {"key": "amount", "label": "Amount", "format": "currency", "currency": "PHP"},
      {"key": "status", "label": "Status",
       "badges": {"Pending": {"label": "Pending", "color": "amber"}}}
    ],
    "filters": [
      {"key": "q", "kind": "substring", "label": "Search", "fields": ["member_name"]},
      {"key": "status", "kind": "equals", "fields": ["status"],
       "options": ["Pending", "Approved"]}
    ],
    "actions": ["view", "edit", "delete"],
    "empty_cta": "File first claim"
  }

KEY FEATURES:
  - Validates structure with field-level error context
  - Sets sensible defaults (currency code, text format)
  - Resolves format names to the engine's formatters

USAGE:
  f := factory.NewViewFactory()
  cfg, err := f.ParseView(jsonString)
  ctrl := listview.New(cfg, gateway, host)

SEE ALSO:
  - listview/types.go: Config, Column, FilterSpec
  - employees, hmo, payroll: Go-based view configurations
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/carelink/hrview/listview"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ViewJSON is the JSON representation of a view.
type ViewJSON struct {
	Name     string       `json:"name"`
	Resource string       `json:"resource"`
	Columns  []ColumnJSON `json:"columns"`
	Filters  []FilterJSON `json:"filters,omitempty"`
	Actions  []string     `json:"actions,omitempty"`
	EmptyCTA string       `json:"empty_cta,omitempty"`
}

// ColumnJSON represents one column definition.
type ColumnJSON struct {
	Key      string               `json:"key"`
	Label    string               `json:"label"`
	Format   string               `json:"format,omitempty"`   // text, currency, currency_millions, date
	Currency string               `json:"currency,omitempty"` // ISO code, default PHP
	Badges   map[string]BadgeJSON `json:"badges,omitempty"`
}

// BadgeJSON represents one status badge.
type BadgeJSON struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// FilterJSON represents one filter definition.
type FilterJSON struct {
	Key     string   `json:"key"`
	Kind    string   `json:"kind"` // substring, equals, date_range
	Label   string   `json:"label,omitempty"`
	Fields  []string `json:"fields"`
	Options []string `json:"options,omitempty"`
}

// DefaultCurrency is assumed when a currency column names no code.
const DefaultCurrency = "PHP"

// =============================================================================
// VIEW FACTORY
// =============================================================================

// ViewFactory converts JSON view definitions to listview configs.
type ViewFactory struct{}

// NewViewFactory creates a new view factory.
func NewViewFactory() *ViewFactory {
	return &ViewFactory{}
}

// ParseView parses a JSON string into a listview.Config.
func (f *ViewFactory) ParseView(jsonStr string) (listview.Config, error) {
	var vj ViewJSON
	if err := json.Unmarshal([]byte(jsonStr), &vj); err != nil {
		return listview.Config{}, fmt.Errorf("failed to parse view JSON: %w", err)
	}
	return f.FromJSON(vj)
}

// FromJSON converts ViewJSON to a listview.Config.
func (f *ViewFactory) FromJSON(vj ViewJSON) (listview.Config, error) {
	if vj.Name == "" {
		return listview.Config{}, fmt.Errorf("view: name is required")
	}
	if vj.Resource == "" {
		return listview.Config{}, fmt.Errorf("view %s: resource is required", vj.Name)
	}
	if len(vj.Columns) == 0 {
		return listview.Config{}, fmt.Errorf("view %s: at least one column is required", vj.Name)
	}

	cfg := listview.Config{
		Name:     vj.Name,
		Resource: vj.Resource,
		Actions:  vj.Actions,
		EmptyCTA: vj.EmptyCTA,
	}

	for i, cj := range vj.Columns {
		col, err := parseColumn(cj)
		if err != nil {
			return listview.Config{}, fmt.Errorf("view %s: column %d: %w", vj.Name, i, err)
		}
		cfg.Columns = append(cfg.Columns, col)
	}

	for i, fj := range vj.Filters {
		spec, err := parseFilter(fj)
		if err != nil {
			return listview.Config{}, fmt.Errorf("view %s: filter %d: %w", vj.Name, i, err)
		}
		cfg.Filters = append(cfg.Filters, spec)
	}

	return cfg, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseColumn(cj ColumnJSON) (listview.Column, error) {
	if cj.Key == "" {
		return listview.Column{}, fmt.Errorf("key is required")
	}
	if cj.Label == "" {
		return listview.Column{}, fmt.Errorf("column %s: label is required", cj.Key)
	}

	col := listview.Column{Key: cj.Key, Label: cj.Label}

	if len(cj.Badges) > 0 {
		bs := make(listview.BadgeSet, len(cj.Badges))
		for value, bj := range cj.Badges {
			label := bj.Label
			if label == "" {
				label = value
			}
			bs[value] = listview.Badge{Label: label, Color: bj.Color}
		}
		col.Badges = bs
		return col, nil
	}

	currency := cj.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	switch cj.Format {
	case "", "text":
		// raw field value
	case "currency":
		col.Format = listview.Currency(currency)
	case "currency_millions":
		col.Format = listview.CurrencyMillions(currency)
	case "date":
		col.Format = listview.Date()
	default:
		return listview.Column{}, fmt.Errorf("column %s: unknown format %q", cj.Key, cj.Format)
	}

	return col, nil
}

func parseFilter(fj FilterJSON) (listview.FilterSpec, error) {
	if fj.Key == "" {
		return listview.FilterSpec{}, fmt.Errorf("key is required")
	}
	if len(fj.Fields) == 0 {
		return listview.FilterSpec{}, fmt.Errorf("filter %s: at least one field is required", fj.Key)
	}

	var kind listview.FilterKind
	switch fj.Kind {
	case "substring":
		kind = listview.FilterSubstring
	case "equals":
		kind = listview.FilterEquals
	case "date_range":
		kind = listview.FilterDateRange
	default:
		return listview.FilterSpec{}, fmt.Errorf("filter %s: unknown kind %q", fj.Key, fj.Kind)
	}

	return listview.FilterSpec{
		Key:     fj.Key,
		Kind:    kind,
		Label:   fj.Label,
		Fields:  fj.Fields,
		Options: fj.Options,
	}, nil
}

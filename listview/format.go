/*
format.go - Cell formatters: currency, date, status badges

PURPOSE:
  Derived presentation for table cells. Formatters only affect display text;
  CSV export always serializes the raw field value.

CURRENCY:
  go-money handles locale-aware grouping and symbols; decimal handles exact
  parsing of numeric strings (PHP backends frequently send amounts as
  strings). Two display modes:
    Currency:       "₱1,234.56" (fixed 2 decimals, grouped)
    CurrencyMillions: "₱2.4M" for dashboard figures

STATUS BADGES:
  A BadgeSet maps a finite status vocabulary to label/color pairs. Unknown
  statuses fall back to a neutral "unknown" badge rather than failing.

SEE ALSO:
  - render.go: Wraps badges in markup
  - export.go: Ignores formatters on purpose
*/
package listview

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CURRENCY
// =============================================================================

// Currency returns a formatter rendering the field as a grouped, two-decimal
// amount in the given ISO currency code (e.g. "PHP"). Unparseable or missing
// values render as an empty cell.
func Currency(code string) Formatter {
	return func(it ListItem, key string) string {
		d, ok := fieldDecimal(it, key)
		if !ok {
			return ""
		}
		cents := d.Shift(2).Round(0).IntPart()
		return money.New(cents, code).Display()
	}
}

// CurrencyMillions returns a formatter abbreviating large amounts to
// millions ("₱2.4M") for dashboard-style figures. Amounts under one million
// fall back to the full grouped display.
func CurrencyMillions(code string) Formatter {
	full := Currency(code)
	million := decimal.NewFromInt(1_000_000)
	return func(it ListItem, key string) string {
		d, ok := fieldDecimal(it, key)
		if !ok {
			return ""
		}
		if d.Abs().LessThan(million) {
			return full(it, key)
		}
		symbol := ""
		if c := money.GetCurrency(code); c != nil {
			symbol = c.Grapheme
		}
		return fmt.Sprintf("%s%sM", symbol, d.Div(million).Round(1))
	}
}

func fieldDecimal(it ListItem, key string) (decimal.Decimal, bool) {
	v, ok := it[key]
	if !ok || v == nil {
		return decimal.Zero, false
	}
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), true
	case string:
		// Tolerate grouped input like "1,234.56".
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(t), ",", ""))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// =============================================================================
// DATES
// =============================================================================

// DateDisplayLayout is the human-facing date format used in tables.
const DateDisplayLayout = "Jan 2, 2006"

// Date returns a formatter rendering the field as a locale-style date.
// Unparseable values pass through unchanged so data is never hidden.
func Date() Formatter {
	return func(it ListItem, key string) string {
		s := it.String(key)
		if s == "" {
			return ""
		}
		t, ok := parseDate(s)
		if !ok {
			return s
		}
		return t.Format(DateDisplayLayout)
	}
}

// =============================================================================
// STATUS BADGES
// =============================================================================

// Badge is one rendered status: display label plus a color class.
type Badge struct {
	Label string
	Color string
}

// BadgeSet maps raw status values to badges. Lookup is case-insensitive.
type BadgeSet map[string]Badge

// UnknownBadge is the neutral fallback for statuses outside the vocabulary.
var UnknownBadge = Badge{Label: "Unknown", Color: "neutral"}

// Lookup resolves a raw status value, falling back to UnknownBadge. When the
// raw value is non-empty the fallback keeps it as the label so the user
// still sees what the server sent.
func (bs BadgeSet) Lookup(value string) Badge {
	if b, ok := bs[value]; ok {
		return b
	}
	lower := strings.ToLower(value)
	for k, b := range bs {
		if strings.ToLower(k) == lower {
			return b
		}
	}
	b := UnknownBadge
	if strings.TrimSpace(value) != "" {
		b.Label = value
	}
	return b
}

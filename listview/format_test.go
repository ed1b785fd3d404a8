/*
format_test.go - Unit tests for cell formatters
*/
package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	f := Currency("PHP")

	assert.Equal(t, "₱1,234.50", f(ListItem{"salary": 1234.5}, "salary"))
	assert.Equal(t, "₱1,234.56", f(ListItem{"salary": "1,234.56"}, "salary"), "numeric strings parse")
	assert.Equal(t, "₱0.00", f(ListItem{"salary": 0.0}, "salary"))
	assert.Equal(t, "", f(ListItem{}, "salary"), "missing field renders empty")
	assert.Equal(t, "", f(ListItem{"salary": "n/a"}, "salary"), "junk renders empty")
}

func TestCurrencyMillions(t *testing.T) {
	f := CurrencyMillions("PHP")

	assert.Equal(t, "₱2.4M", f(ListItem{"total": 2_400_000.0}, "total"))
	assert.Equal(t, "₱1M", f(ListItem{"total": 1_000_000.0}, "total"))
	assert.Equal(t, "₱999,999.00", f(ListItem{"total": 999_999.0}, "total"), "below a million falls back to full display")
}

func TestDate(t *testing.T) {
	f := Date()

	assert.Equal(t, "Mar 15, 2026", f(ListItem{"hired_at": "2026-03-15"}, "hired_at"))
	assert.Equal(t, "Mar 15, 2026", f(ListItem{"hired_at": "2026-03-15T08:30:00Z"}, "hired_at"))
	assert.Equal(t, "soon", f(ListItem{"hired_at": "soon"}, "hired_at"), "unparseable passes through")
	assert.Equal(t, "", f(ListItem{}, "hired_at"))
}

func TestBadgeSetLookup(t *testing.T) {
	bs := BadgeSet{"Active": {Label: "Active", Color: "green"}}

	assert.Equal(t, "green", bs.Lookup("Active").Color)
	assert.Equal(t, "green", bs.Lookup("active").Color, "lookup is case-insensitive")

	unknown := bs.Lookup("Mystery")
	assert.Equal(t, "neutral", unknown.Color)
	assert.Equal(t, "Mystery", unknown.Label, "raw value kept so the user sees what the server sent")

	blank := bs.Lookup("")
	assert.Equal(t, "Unknown", blank.Label)
}

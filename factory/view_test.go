package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/hrview/listview"
)

const claimsViewJSON = `{
	"name": "claims",
	"resource": "claims",
	"columns": [
		{"key": "claim_no", "label": "Claim No."},
		{"key": "amount", "label": "Amount", "format": "currency"},
		{"key": "filed_at", "label": "Filed", "format": "date"},
		{"key": "status", "label": "Status",
		 "badges": {"Pending": {"label": "Pending", "color": "amber"}}}
	],
	"filters": [
		{"key": "q", "kind": "substring", "label": "Search", "fields": ["claim_no"]},
		{"key": "status", "kind": "equals", "fields": ["status"],
		 "options": ["Pending", "Approved"]}
	],
	"actions": ["view", "delete"],
	"empty_cta": "File first claim"
}`

func TestParseView(t *testing.T) {
	f := NewViewFactory()

	cfg, err := f.ParseView(claimsViewJSON)
	require.NoError(t, err)

	assert.Equal(t, "claims", cfg.Name)
	assert.Equal(t, "claims", cfg.Resource)
	require.Len(t, cfg.Columns, 4)
	assert.Equal(t, "File first claim", cfg.EmptyCTA)
	assert.Equal(t, []string{"view", "delete"}, cfg.Actions)

	// currency column formats with the default peso
	amount := cfg.Columns[1]
	require.NotNil(t, amount.Format)
	got := amount.Format(listview.ListItem{"amount": 1234.5}, "amount")
	assert.Contains(t, got, "1,234.50")

	// badge column resolves known values
	status := cfg.Columns[3]
	require.NotNil(t, status.Badges)
	badge := status.Badges.Lookup("pending")
	assert.Equal(t, "amber", badge.Color)

	// filters parse with their kinds
	require.Len(t, cfg.Filters, 2)
	assert.Equal(t, listview.FilterSubstring, cfg.Filters[0].Kind)
	assert.Equal(t, listview.FilterEquals, cfg.Filters[1].Kind)
}

func TestParseViewValidation(t *testing.T) {
	f := NewViewFactory()

	cases := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"missing name", `{"resource": "x", "columns": [{"key": "a", "label": "A"}]}`,
			"name is required"},
		{"missing resource", `{"name": "x", "columns": [{"key": "a", "label": "A"}]}`,
			"resource is required"},
		{"no columns", `{"name": "x", "resource": "x"}`,
			"at least one column"},
		{"column without label", `{"name": "x", "resource": "x", "columns": [{"key": "a"}]}`,
			"label is required"},
		{"unknown format", `{"name": "x", "resource": "x",
			"columns": [{"key": "a", "label": "A", "format": "emoji"}]}`,
			"unknown format"},
		{"unknown filter kind", `{"name": "x", "resource": "x",
			"columns": [{"key": "a", "label": "A"}],
			"filters": [{"key": "f", "kind": "regex", "fields": ["a"]}]}`,
			"unknown kind"},
		{"filter without fields", `{"name": "x", "resource": "x",
			"columns": [{"key": "a", "label": "A"}],
			"filters": [{"key": "f", "kind": "equals"}]}`,
			"at least one field"},
		{"malformed json", `{`, "failed to parse"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ParseView(tc.json)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestBadgeLabelDefaultsToValue(t *testing.T) {
	f := NewViewFactory()

	cfg, err := f.ParseView(`{
		"name": "x", "resource": "x",
		"columns": [{"key": "status", "label": "Status",
			"badges": {"Active": {"color": "green"}}}]
	}`)
	require.NoError(t, err)

	badge := cfg.Columns[0].Badges.Lookup("Active")
	assert.Equal(t, "Active", badge.Label)
}

/*
render_test.go - Unit tests for table rendering and empty states
*/
package listview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_TableWithBadgesAndActions(t *testing.T) {
	cfg := Config{
		Name: "claims",
		Columns: []Column{
			{Key: "member", Label: "Member"},
			{Key: "status", Label: "Status", Badges: BadgeSet{
				"Pending":  {Label: "Pending", Color: "amber"},
				"Approved": {Label: "Approved", Color: "green"},
			}},
		},
		Actions: []string{"view", "delete"},
	}
	r := NewRenderer(cfg)

	html, err := r.Table([]ListItem{
		{"id": "c-1", "member": "Maria Cruz", "status": "Pending"},
		{"id": "c-2", "member": "Jose Santos", "status": "Escalated"}, // not in vocabulary
	})
	require.NoError(t, err)
	s := string(html)

	assert.Contains(t, s, "<th>Member</th>")
	assert.Contains(t, s, `lv-badge-amber`)
	assert.Contains(t, s, `data-action="view" data-id="c-1"`)
	assert.Contains(t, s, `data-action="delete" data-id="c-2"`)

	// Unknown status falls back to a neutral badge keeping the raw label.
	assert.Contains(t, s, "lv-badge-neutral")
	assert.Contains(t, s, "Escalated")
}

func TestRenderer_EscapesFieldValues(t *testing.T) {
	cfg := Config{Name: "notes", Columns: []Column{{Key: "note", Label: "Note"}}}
	r := NewRenderer(cfg)

	html, err := r.Table([]ListItem{{"id": "1", "note": `<script>alert("x")</script>`}})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

func TestRenderer_EmptyStateDistinctFromError(t *testing.T) {
	cfg := Config{Name: "employees", EmptyCTA: "Add first employee"}
	r := NewRenderer(cfg)

	empty, err := r.Table(nil)
	require.NoError(t, err)
	failed := r.ErrorState("Could not reach the server.")

	assert.Contains(t, string(empty), "No records found")
	assert.Contains(t, string(empty), "Add first employee")
	assert.Contains(t, string(failed), "Retry")
	assert.False(t, strings.Contains(string(empty), "Retry"),
		"absence and failure must be distinguishable")
}

func TestRenderer_FormatterProducesCellText(t *testing.T) {
	cfg := Config{Name: "payslips", Columns: []Column{
		{Key: "net_pay", Label: "Net Pay", Format: Currency("PHP")},
	}}
	r := NewRenderer(cfg)

	html, err := r.Table([]ListItem{{"id": "p-1", "net_pay": 25150.75}})
	require.NoError(t, err)
	assert.Contains(t, string(html), "25,150.75")
}

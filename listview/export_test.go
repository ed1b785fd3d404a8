/*
export_test.go - Unit tests for CSV export

Tests for:
- Quote/comma/newline escaping
- Round-trip fidelity of exported values
- Empty-list rejection and filename stamping
*/
package listview

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportColumns = []Column{
	{Key: "name", Label: "Name"},
	{Key: "remark", Label: "Remark"},
}

func TestExportCSV_EscapesQuotesAndCommas(t *testing.T) {
	items := []ListItem{{"name": "Maria", "remark": `He said "hi", ok`}}

	dl, err := ExportCSV("claims", exportColumns, items, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, string(dl.Data), `"He said ""hi"", ok"`)
}

func TestExportCSV_RoundTrip(t *testing.T) {
	items := []ListItem{
		{"name": "Maria Cruz", "remark": "plain"},
		{"name": "Jose, Jr.", "remark": "line1\nline2"},
		{"name": `the "boss"`, "remark": ""},
	}

	dl, err := ExportCSV("employees", exportColumns, items, time.Now())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(dl.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(items)+1, "header plus one row per item")

	assert.Equal(t, []string{"Name", "Remark"}, records[0])
	for i, it := range items {
		assert.Equal(t, it.String("name"), records[i+1][0])
		assert.Equal(t, it.String("remark"), records[i+1][1])
	}
}

func TestExportCSV_NumbersCoerceToStrings(t *testing.T) {
	cols := []Column{{Key: "amount", Label: "Amount"}}
	items := []ListItem{{"amount": 1500.0}, {"amount": 320.5}}

	dl, err := ExportCSV("payslips", cols, items, time.Now())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(dl.Data))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "1500", records[1][0])
	assert.Equal(t, "320.5", records[2][0])
}

func TestExportCSV_EmptyListRejected(t *testing.T) {
	_, err := ExportCSV("employees", exportColumns, nil, time.Now())
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExportCSV_FilenameAndMime(t *testing.T) {
	items := []ListItem{{"name": "x"}}
	dl, err := ExportCSV("bonuses", exportColumns, items, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "bonuses_2026-02-07.csv", dl.Filename)
	assert.Equal(t, CSVMimeType, dl.MIME)
}

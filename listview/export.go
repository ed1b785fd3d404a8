/*
export.go - CSV export of the current filtered view

PURPOSE:
  Serializes the currently filtered/visible list - never the full unfiltered
  cache - to a downloadable CSV. The header row comes from configured column
  labels; cells hold the raw field values so a re-parse of the file yields
  the same data the view was showing.

QUOTING:
  RFC 4180 via encoding/csv: embedded quotes are doubled, cells containing
  commas/quotes/newlines are wrapped in quotes.

EDGE CASE:
  Exporting an empty list returns ErrNothingToExport; the caller shows a
  notice instead of producing an empty file.

SEE ALSO:
  - controller.go: ExportCSV entry point
*/
package listview

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// CSVMimeType is the MIME type attached to exported downloads.
const CSVMimeType = "text/csv;charset=utf-8"

// Download describes a file handed to the host for a browser-style download.
type Download struct {
	Filename string
	MIME     string
	Data     []byte
}

// ExportCSV serializes items using the column configuration. The filename is
// "<name>_<YYYY-MM-DD>.csv" stamped with now.
func ExportCSV(name string, columns []Column, items []ListItem, now time.Time) (*Download, error) {
	if len(items) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	row := make([]string, len(columns))
	for _, it := range items {
		for i, c := range columns {
			row[i] = it.String(c.Key)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &Download{
		Filename: fmt.Sprintf("%s_%s.csv", name, now.Format("2006-01-02")),
		MIME:     CSVMimeType,
		Data:     buf.Bytes(),
	}, nil
}

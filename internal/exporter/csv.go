// Package exporter writes transaction collections out as CSV or XLSX in the
// canonical nine-column layout. A CSV export re-imported through the
// normalizer reproduces the records on those nine fields.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"farmbook/internal/core"
)

// Columns is the exact exported header row.
var Columns = []string{
	"Date", "Type", "Description", "Amount", "Paid By",
	"Category", "Sub-Category", "Source", "Notes",
}

// Filename builds the download name: {dataset}_{ISO-date}.{ext}.
func Filename(dataset, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", dataset, now.Format(core.DateLayout), ext)
}

// WriteCSV writes the header row and one record per line. Text fields with
// commas or quotes come out double-quote-escaped (encoding/csv doubles
// internal quotes).
func WriteCSV(w io.Writer, records []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(recordCells(r)); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func recordCells(t core.Transaction) []string {
	return []string{
		t.Date,
		string(t.Kind),
		t.Description,
		strconv.FormatFloat(t.Amount, 'f', -1, 64),
		t.Payer,
		t.Category,
		t.SubCategory,
		t.Source,
		t.Notes,
	}
}

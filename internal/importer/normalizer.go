// Package importer turns semi-structured spreadsheet input (CSV or XLSX)
// into canonical transactions. Parsing is lenient by design: header names
// are resolved through an ordered candidate table and missing or
// unparseable fields fall back to per-field defaults instead of rejecting
// the row. The only hard failure is producing zero rows.
package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"farmbook/internal/core"
)

// Row is one parsed spreadsheet row, keyed by the file's own header names.
type Row map[string]string

// dateLayouts are tried in order when normalizing a date cell. Day-first
// before month-first: the farm records this was built for use day-first.
var dateLayouts = []string{
	core.DateLayout,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	time.RFC3339,
}

// Normalizer maps raw rows onto the canonical nine-field transaction shape.
type Normalizer struct {
	Headers HeaderTable

	// Now supplies the clock for date fallbacks and batch ids; tests pin it.
	Now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		Headers: DefaultHeaderTable(),
		Now:     time.Now,
	}
}

// Normalize converts a batch of rows into canonical transactions. Every row
// yields a record; unresolvable fields get their documented defaults. Batch
// ids derive from the import instant plus the row ordinal, unique within
// the batch.
func (n *Normalizer) Normalize(rows []Row) []core.Transaction {
	now := n.Now()
	batch := now.UnixMilli()
	today := now.Format(core.DateLayout)

	out := make([]core.Transaction, 0, len(rows))
	for i, row := range rows {
		t := core.Transaction{
			ID:          fmt.Sprintf("imp-%d-%d", batch, i),
			Date:        today,
			Kind:        core.Expense,
			Description: core.PlaceholderDescription,
			Payer:       core.DefaultPayer,
			Category:    core.DefaultCategory,
			SubCategory: core.DefaultSubCategory,
			Source:      core.DefaultSource,
		}

		if v, ok := n.Headers.Resolve(row, FieldDate); ok {
			// Unparseable dates silently keep today; lossy but documented.
			if iso, ok := NormalizeDate(v); ok {
				t.Date = iso
			}
		}
		if v, ok := n.Headers.Resolve(row, FieldKind); ok {
			t.Kind = core.KindFromString(v)
		}
		if v, ok := n.Headers.Resolve(row, FieldDescription); ok {
			t.Description = strings.TrimSpace(v)
		}
		if v, ok := n.Headers.Resolve(row, FieldAmount); ok {
			t.Amount = parseAmount(v)
		}
		if v, ok := n.Headers.Resolve(row, FieldPayer); ok {
			t.Payer = strings.TrimSpace(v)
		}
		if v, ok := n.Headers.Resolve(row, FieldCategory); ok {
			t.Category = strings.TrimSpace(v)
		}
		if v, ok := n.Headers.Resolve(row, FieldSubCategory); ok {
			t.SubCategory = strings.TrimSpace(v)
		}
		if v, ok := n.Headers.Resolve(row, FieldSource); ok {
			t.Source = strings.TrimSpace(v)
		}
		if v, ok := n.Headers.Resolve(row, FieldNotes); ok {
			t.Notes = strings.TrimSpace(v)
		}

		out = append(out, t)
	}
	return out
}

// NormalizeDate rewrites any parseable date value to the canonical
// YYYY-MM-DD form.
func NormalizeDate(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d.Format(core.DateLayout), true
		}
	}
	return "", false
}

// parseAmount reads a cell as a non-negative float. Currency symbols,
// thousands separators and a leading sign are tolerated; anything else
// defaults to 0.
func parseAmount(v string) float64 {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, "$€£ ")
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Abs(f)
}

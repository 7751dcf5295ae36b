package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical field names used as keys of the header table.
const (
	FieldDate        = "date"
	FieldKind        = "kind"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldPayer       = "payer"
	FieldCategory    = "category"
	FieldSubCategory = "subCategory"
	FieldSource      = "source"
	FieldNotes       = "notes"
)

// HeaderTable maps each canonical field to an ordered list of accepted
// header names. Resolution probes the candidates in order and takes the
// first present, non-empty cell. Keeping this data-driven means new
// spreadsheet dialects are a table edit, not a code branch.
type HeaderTable map[string][]string

// DefaultHeaderTable returns the built-in candidate lists. The first
// candidate of each field matches the export header, so an exported file
// re-imports cleanly.
func DefaultHeaderTable() HeaderTable {
	return HeaderTable{
		FieldDate:        {"Date", "date", "DATE", "Transaction Date", "transaction date"},
		FieldKind:        {"Type", "type", "TYPE", "Kind", "kind", "Transaction Type"},
		FieldDescription: {"Description", "description", "DESCRIPTION", "Desc", "Details", "details", "Item"},
		FieldAmount:      {"Amount", "amount", "AMOUNT", "Value", "value", "Price", "Cost"},
		FieldPayer:       {"Paid By", "paid by", "Paid by", "PaidBy", "Payer", "payer"},
		FieldCategory:    {"Category", "category", "CATEGORY"},
		FieldSubCategory: {"Sub-Category", "sub-category", "SubCategory", "Sub Category", "subcategory", "Subcategory"},
		FieldSource:      {"Source", "source", "SOURCE", "Payment Method", "payment method", "Channel"},
		FieldNotes:       {"Notes", "notes", "NOTES", "Note", "Comment", "Remarks"},
	}
}

// Resolve probes the field's candidates against a parsed row and returns
// the first present, non-empty value.
func (h HeaderTable) Resolve(row Row, field string) (string, bool) {
	for _, name := range h[field] {
		if v, ok := row[name]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// LoadHeaderTable reads a YAML file of field -> header-name lists and merges
// it over the defaults: user candidates are probed before the built-in ones.
// Unknown field keys are rejected so typos fail loudly instead of silently
// never matching.
func LoadHeaderTable(path string) (HeaderTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read header mapping: %w", err)
	}

	var user map[string][]string
	if err := yaml.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("parse header mapping: %w", err)
	}

	table := DefaultHeaderTable()
	for field, names := range user {
		if _, ok := table[field]; !ok {
			return nil, fmt.Errorf("unknown field %q in header mapping", field)
		}
		table[field] = append(append([]string(nil), names...), table[field]...)
	}
	return table, nil
}

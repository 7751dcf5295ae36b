package ledger

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"farmbook/internal/core"
)

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type (
	Direction string

	// Field selects which record field drives the ordering.
	Field string
)

const (
	ByID          Field = "id"
	ByDate        Field = "date"
	ByKind        Field = "kind"
	ByDescription Field = "description"
	ByAmount      Field = "amount"
	ByPayer       Field = "payer"
	ByCategory    Field = "category"
	BySubCategory Field = "subCategory"
	BySource      Field = "source"
	ByNotes       Field = "notes"
)

// IsValid reports whether f names a sortable record field.
func (f Field) IsValid() bool {
	switch f {
	case ByID, ByDate, ByKind, ByDescription, ByAmount, ByPayer,
		ByCategory, BySubCategory, BySource, ByNotes:
		return true
	}
	return false
}

// Sort returns a new slice ordered by the given field and direction. Numeric
// values compare numerically; everything else compares with a locale-aware
// case-insensitive collation of the string representation. The sort is
// stable, so records tied on the field keep their input order.
func Sort(records []core.Transaction, field Field, dir Direction) []core.Transaction {
	out := make([]core.Transaction, len(records))
	copy(out, records)

	cl := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		less := compareField(cl, out[i], out[j], field) < 0
		if dir == Descending {
			return compareField(cl, out[j], out[i], field) < 0
		}
		return less
	})
	return out
}

func compareField(cl *collate.Collator, a, b core.Transaction, field Field) int {
	if field == ByAmount {
		switch {
		case a.Amount < b.Amount:
			return -1
		case a.Amount > b.Amount:
			return 1
		}
		return 0
	}
	return cl.CompareString(fieldString(a, field), fieldString(b, field))
}

func fieldString(t core.Transaction, field Field) string {
	switch field {
	case ByID:
		return t.ID
	case ByDate:
		return t.Date
	case ByKind:
		return string(t.Kind)
	case ByDescription:
		return t.Description
	case ByAmount:
		return strconv.FormatFloat(t.Amount, 'f', -1, 64)
	case ByPayer:
		return t.Payer
	case ByCategory:
		return t.Category
	case BySubCategory:
		return t.SubCategory
	case BySource:
		return t.Source
	case ByNotes:
		return t.Notes
	}
	return ""
}

package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

// Placeholder values assigned when imported rows are missing fields.
const (
	PlaceholderDescription = "Imported transaction"
	NoDescription          = "No description"
	DefaultPayer           = "Unknown"
	DefaultCategory        = "Other"
	DefaultSubCategory     = "General"
	DefaultSource          = "Unknown"
)

// DateLayout is the canonical calendar-date form used everywhere.
const DateLayout = "2006-01-02"

type (
	Kind string

	// Transaction is one income/expense ledger entry. Date is kept as the
	// canonical YYYY-MM-DD string so that records with a bad date can still
	// live in the collection; consumers that bucket by time parse it and
	// skip what does not parse.
	Transaction struct {
		ID          string  `json:"id"`
		Date        string  `json:"date"`
		Kind        Kind    `json:"kind"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Payer       string  `json:"payer"`
		Category    string  `json:"category"`
		SubCategory string  `json:"subCategory"`
		Source      string  `json:"source"`
		Notes       string  `json:"notes"`
	}

	// CategoryAggregate is a derived sum+count over one grouping key.
	CategoryAggregate struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Count    int     `json:"count"`
	}

	// MonthlyAggregate is one calendar-month bucket of the trailing window.
	// Income is part of the shape but the current derivation fills it with
	// zero; the tracking chart covers expenses only.
	MonthlyAggregate struct {
		MonthLabel string  `json:"monthLabel"`
		Income     float64 `json:"income"`
		Expense    float64 `json:"expense"`
	}

	// SubCategoryAggregate groups one category's sub-category breakdown.
	SubCategoryAggregate struct {
		Category      string              `json:"category"`
		Amount        float64             `json:"amount"`
		Count         int                 `json:"count"`
		SubCategories []CategoryAggregate `json:"subCategories"`
	}
)

var (
	ErrEmptyID          = errors.New("empty id")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrEmptyDescription = errors.New("empty description")
	ErrNotFound         = errors.New("not found")
)

// IsValid reports whether k is one of the two known kinds.
func (k Kind) IsValid() bool {
	return k == Income || k == Expense
}

// KindFromString maps a free-form value to a Kind. Anything that is not
// "income" (case-insensitive) counts as Expense.
func KindFromString(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), "income") {
		return Income
	}
	return Expense
}

// WellFormed reports whether the record passes the structural checks every
// downstream view relies on: a non-empty id and a finite, non-negative amount.
func (t Transaction) WellFormed() bool {
	if t.ID == "" {
		return false
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return false
	}
	return t.Amount >= 0
}

// Validate returns the first structural problem, for callers that need a
// reportable error instead of a silent drop (create/update handlers).
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
		return ErrInvalidAmount
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Month returns the record's year+month bucket. ok is false when the date
// does not parse as a canonical calendar date.
func (t Transaction) Month() (year int, month time.Month, ok bool) {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return 0, 0, false
	}
	return d.Year(), d.Month(), true
}

package ledger

import (
	"math"
	"testing"

	"farmbook/internal/core"
)

func tx(id, date string, kind core.Kind, amount float64) core.Transaction {
	return core.Transaction{
		ID: id, Date: date, Kind: kind, Amount: amount,
		Description: "desc", Payer: "Farm", Category: "Feed",
		SubCategory: "General", Source: "Cash",
	}
}

func TestValidateFiltersMalformed(t *testing.T) {
	records := []core.Transaction{
		tx("a", "2024-01-01", core.Expense, 10),
		tx("", "2024-01-02", core.Expense, 20),
		tx("b", "2024-01-03", core.Income, math.NaN()),
		tx("c", "2024-01-04", core.Expense, -5),
		tx("d", "2024-01-05", core.Income, 0),
	}

	valid := Validate(records)

	if len(valid) != 2 {
		t.Fatalf("expected 2 valid records, got %d", len(valid))
	}
	if valid[0].ID != "a" || valid[1].ID != "d" {
		t.Errorf("order not preserved: %q, %q", valid[0].ID, valid[1].ID)
	}
	// The source collection is untouched.
	if len(records) != 5 {
		t.Error("input collection must not be mutated")
	}
}

func TestValidateIsSubsequence(t *testing.T) {
	records := []core.Transaction{
		tx("1", "2024-01-01", core.Expense, 1),
		tx("", "2024-01-01", core.Expense, 1),
		tx("2", "2024-01-01", core.Expense, 1),
		tx("3", "2024-01-01", core.Expense, math.Inf(1)),
		tx("4", "2024-01-01", core.Expense, 2),
	}
	valid := Validate(records)

	// Every valid record appears in the input in the same relative order.
	i := 0
	for _, r := range records {
		if i < len(valid) && valid[i].ID == r.ID && valid[i].Amount == r.Amount {
			i++
		}
	}
	if i != len(valid) {
		t.Errorf("output is not a subsequence of input")
	}
}

func TestValidateDuplicatesPass(t *testing.T) {
	records := []core.Transaction{
		tx("dup", "2024-01-01", core.Expense, 1),
		tx("dup", "2024-01-02", core.Expense, 2),
	}
	if got := len(Validate(records)); got != 2 {
		t.Errorf("duplicate ids must pass validation, got %d records", got)
	}
}

func TestValidateEmpty(t *testing.T) {
	if got := Validate(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d", len(got))
	}
}

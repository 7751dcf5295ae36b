package ledger

import (
	"fmt"
	"math"
	"testing"
	"time"

	"farmbook/internal/core"
)

func expTx(id, date, category string, amount float64) core.Transaction {
	t := tx(id, date, core.Expense, amount)
	t.Category = category
	return t
}

func TestCategoryTotals(t *testing.T) {
	records := []core.Transaction{
		expTx("1", "2024-01-01", "Feed", 100),
		expTx("2", "2024-01-02", "Feed", 50),
		expTx("3", "2024-01-03", "Vet", 30),
	}

	got := CategoryTotals(records)
	want := []core.CategoryAggregate{
		{Category: "Feed", Amount: 150, Count: 2},
		{Category: "Vet", Amount: 30, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("group %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCategoryTotalsFilters(t *testing.T) {
	income := tx("i", "2024-01-01", core.Income, 500)
	income.Category = "Sales"

	noDesc := expTx("n", "2024-01-01", "Feed", 10)
	noDesc.Description = ""

	placeholder := expTx("p", "2024-01-01", "Feed", 10)
	placeholder.Description = core.NoDescription

	other := expTx("o", "2024-01-01", core.DefaultCategory, 10)

	got := CategoryTotals([]core.Transaction{income, noDesc, placeholder, other})
	if len(got) != 0 {
		t.Errorf("expected no groups, got %+v", got)
	}
}

func TestCategoryConservation(t *testing.T) {
	var records []core.Transaction
	var wantSum float64
	for i := 0; i < 40; i++ {
		r := expTx(fmt.Sprintf("c%d", i), "2024-01-01", fmt.Sprintf("Cat%d", i%12), float64(i))
		records = append(records, r)
		wantSum += r.Amount
	}

	var gotSum float64
	for _, g := range CategoryTotals(records) {
		gotSum += g.Amount
	}
	if math.Abs(gotSum-wantSum) > 1e-9 {
		t.Errorf("aggregate sum %v differs from filtered record sum %v", gotSum, wantSum)
	}
}

func TestTopCategoriesFoldsIntoOther(t *testing.T) {
	var records []core.Transaction
	for i := 0; i < 11; i++ {
		// Distinct amounts so the ordering is total.
		records = append(records, expTx(fmt.Sprintf("t%d", i), "2024-01-01", fmt.Sprintf("Cat%02d", i), float64(100-i)))
	}

	aggs := CategoryTotals(records)
	top := TopCategories(aggs, TopGroups)

	if len(top) != TopGroups+1 {
		t.Fatalf("expected %d groups, got %d", TopGroups+1, len(top))
	}
	last := top[TopGroups]
	if last.Category != core.DefaultCategory {
		t.Errorf("folded group should be %q, got %q", core.DefaultCategory, last.Category)
	}
	// The three smallest amounts (90, 91, 92) fold together.
	if last.Amount != 90+91+92 || last.Count != 3 {
		t.Errorf("folded group = %+v", last)
	}
}

func TestTopCategoriesNoFoldWhenSmall(t *testing.T) {
	aggs := CategoryTotals([]core.Transaction{expTx("1", "2024-01-01", "Feed", 1)})
	if got := TopCategories(aggs, TopGroups); len(got) != 1 {
		t.Errorf("expected pass-through, got %d groups", len(got))
	}
}

func TestMonthlyTotalsWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	records := []core.Transaction{
		expTx("in1", "2024-06-01", "Feed", 10),
		expTx("in2", "2023-07-03", "Feed", 20), // oldest month still inside
		expTx("out", "2023-06-30", "Feed", 99), // just outside the window
		expTx("in3", "2024-06-20", "Vet", 5),
		expTx("bad", "garbage", "Feed", 7), // unparseable date is skipped
	}

	got := MonthlyTotals(records, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(got), got)
	}
	if got[0].MonthLabel != "Jul 2023" || got[0].Expense != 20 {
		t.Errorf("first bucket = %+v", got[0])
	}
	if got[1].MonthLabel != "Jun 2024" || got[1].Expense != 15 {
		t.Errorf("second bucket = %+v", got[1])
	}
	for _, b := range got {
		if b.Income != 0 {
			t.Errorf("income should be zero-filled, got %+v", b)
		}
	}
}

func TestMonthlyTotalsExcludesIncome(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	sale := tx("s", "2024-06-01", core.Income, 15000)
	got := MonthlyTotals([]core.Transaction{sale}, now)
	if len(got) != 0 {
		t.Errorf("income records must not populate monthly buckets: %+v", got)
	}
}

func TestSubCategoryTotals(t *testing.T) {
	mk := func(id, cat, sub string, amount float64) core.Transaction {
		r := expTx(id, "2024-01-01", cat, amount)
		r.SubCategory = sub
		return r
	}
	records := []core.Transaction{
		mk("1", "Feed", "Hay", 100),
		mk("2", "Feed", "Grain", 200),
		mk("3", "Vet", "Medicine", 50),
		mk("4", "Feed", "Hay", 25),
	}
	noSub := expTx("5", "2024-01-01", "Feed", 500)
	noSub.SubCategory = ""
	records = append(records, noSub)

	got := SubCategoryTotals(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}

	feed := got[0]
	if feed.Category != "Feed" || feed.Amount != 325 || feed.Count != 3 {
		t.Fatalf("feed group = %+v", feed)
	}
	if len(feed.SubCategories) != 2 {
		t.Fatalf("feed sub-groups = %+v", feed.SubCategories)
	}
	if feed.SubCategories[0].Category != "Grain" || feed.SubCategories[0].Amount != 200 {
		t.Errorf("sub-groups not sorted desc by amount: %+v", feed.SubCategories)
	}
	if feed.SubCategories[1].Category != "Hay" || feed.SubCategories[1].Amount != 125 || feed.SubCategories[1].Count != 2 {
		t.Errorf("hay sub-group = %+v", feed.SubCategories[1])
	}

	if got[1].Category != "Vet" {
		t.Errorf("categories not sorted desc by total: %+v", got)
	}
}

func TestAggregatesEmptyInput(t *testing.T) {
	if got := CategoryTotals(nil); len(got) != 0 {
		t.Errorf("CategoryTotals(nil) = %+v", got)
	}
	if got := MonthlyTotals(nil, time.Now()); len(got) != 0 {
		t.Errorf("MonthlyTotals(nil) = %+v", got)
	}
	if got := SubCategoryTotals(nil); len(got) != 0 {
		t.Errorf("SubCategoryTotals(nil) = %+v", got)
	}
}

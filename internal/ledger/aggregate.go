package ledger

import (
	"sort"
	"time"

	"farmbook/internal/core"
)

// TopGroups is how many category groups the expense chart shows individually
// before the remainder folds into a synthetic "Other" group.
const TopGroups = 8

// chartable reports whether the record counts towards the expense charts:
// Expense-kind with a real description (non-empty, not the import
// placeholder for missing descriptions).
func chartable(t core.Transaction) bool {
	if t.Kind != core.Expense {
		return false
	}
	return t.Description != "" && t.Description != core.NoDescription
}

// CategoryTotals groups chartable expenses outside the catch-all "Other"
// category by category, summing amount and counting records per group.
// Groups come back sorted descending by summed amount.
func CategoryTotals(records []core.Transaction) []core.CategoryAggregate {
	sums := make(map[string]*core.CategoryAggregate)
	order := make([]string, 0)

	for _, r := range records {
		if !chartable(r) || r.Category == core.DefaultCategory {
			continue
		}
		agg, ok := sums[r.Category]
		if !ok {
			agg = &core.CategoryAggregate{Category: r.Category}
			sums[r.Category] = agg
			order = append(order, r.Category)
		}
		agg.Amount += r.Amount
		agg.Count++
	}

	out := make([]core.CategoryAggregate, 0, len(order))
	for _, cat := range order {
		out = append(out, *sums[cat])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// TopCategories keeps the first keep groups of an already-sorted aggregation
// and merges the rest into one "Other" group carrying their summed amount
// and count.
func TopCategories(aggs []core.CategoryAggregate, keep int) []core.CategoryAggregate {
	if keep <= 0 || len(aggs) <= keep {
		return aggs
	}
	out := make([]core.CategoryAggregate, keep, keep+1)
	copy(out, aggs[:keep])

	other := core.CategoryAggregate{Category: core.DefaultCategory}
	for _, a := range aggs[keep:] {
		other.Amount += a.Amount
		other.Count += a.Count
	}
	return append(out, other)
}

// MonthlyTotals buckets chartable expenses from the trailing 12 calendar
// months (now's month included) by year+month and sums the amounts. Buckets
// come back in chronological order; months without matching records are
// omitted, so an empty collection yields an empty result. The Income field
// of each bucket stays zero in this derivation.
func MonthlyTotals(records []core.Transaction, now time.Time) []core.MonthlyAggregate {
	type bucket struct {
		year  int
		month time.Month
		total float64
	}

	// Window start: first day of the month 11 months back.
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	sums := make(map[int]*bucket)
	for _, r := range records {
		if !chartable(r) {
			continue
		}
		year, month, ok := r.Month()
		if !ok {
			continue
		}
		d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		if d.Before(start) || !d.Before(end) {
			continue
		}
		key := year*100 + int(month)
		b, ok := sums[key]
		if !ok {
			b = &bucket{year: year, month: month}
			sums[key] = b
		}
		b.total += r.Amount
	}

	keys := make([]int, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]core.MonthlyAggregate, 0, len(keys))
	for _, k := range keys {
		b := sums[k]
		label := time.Date(b.year, b.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		out = append(out, core.MonthlyAggregate{MonthLabel: label, Expense: b.total})
	}
	return out
}

// SubCategoryTotals applies the category filter plus a non-empty
// sub-category, grouping first by category then by sub-category. Sub-groups
// sort descending by amount within their category and categories sort
// descending by their total.
func SubCategoryTotals(records []core.Transaction) []core.SubCategoryAggregate {
	type catGroup struct {
		agg      core.SubCategoryAggregate
		subs     map[string]*core.CategoryAggregate
		subOrder []string
	}

	groups := make(map[string]*catGroup)
	order := make([]string, 0)

	for _, r := range records {
		if !chartable(r) || r.Category == core.DefaultCategory || r.SubCategory == "" {
			continue
		}
		g, ok := groups[r.Category]
		if !ok {
			g = &catGroup{
				agg:  core.SubCategoryAggregate{Category: r.Category},
				subs: make(map[string]*core.CategoryAggregate),
			}
			groups[r.Category] = g
			order = append(order, r.Category)
		}
		g.agg.Amount += r.Amount
		g.agg.Count++

		sub, ok := g.subs[r.SubCategory]
		if !ok {
			sub = &core.CategoryAggregate{Category: r.SubCategory}
			g.subs[r.SubCategory] = sub
			g.subOrder = append(g.subOrder, r.SubCategory)
		}
		sub.Amount += r.Amount
		sub.Count++
	}

	out := make([]core.SubCategoryAggregate, 0, len(order))
	for _, cat := range order {
		g := groups[cat]
		g.agg.SubCategories = make([]core.CategoryAggregate, 0, len(g.subOrder))
		for _, name := range g.subOrder {
			g.agg.SubCategories = append(g.agg.SubCategories, *g.subs[name])
		}
		sort.SliceStable(g.agg.SubCategories, func(i, j int) bool {
			return g.agg.SubCategories[i].Amount > g.agg.SubCategories[j].Amount
		})
		out = append(out, g.agg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

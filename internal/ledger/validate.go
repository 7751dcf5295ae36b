// Package ledger implements the tabular pipeline over transaction records:
// structural validation, ordering, pagination and the derived aggregates the
// dashboard charts are built from. Every function here is a pure computation
// over a collection snapshot; nothing is mutated and nothing is cached.
package ledger

import "farmbook/internal/core"

// Validate filters the collection down to well-formed records: non-empty id
// and a finite, non-negative amount. Order is preserved and duplicates pass
// through. Malformed records are dropped silently, never deleted from the
// source collection; callers wanting the drop count diff the lengths.
func Validate(records []core.Transaction) []core.Transaction {
	valid := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		if r.WellFormed() {
			valid = append(valid, r)
		}
	}
	return valid
}

package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"farmbook/internal/core"
	"farmbook/internal/ledger"
)

// validRecords fetches everything from the store and drops malformed rows
// before any aggregation.
func (s *Server) validRecords(w http.ResponseWriter, r *http.Request) ([]core.Transaction, bool) {
	records, err := s.store.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return nil, false
	}
	return ledger.Validate(records), true
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, ok := s.validRecords(w, r)
	if !ok {
		return
	}

	keep := ledger.TopGroups
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "top must be a positive number")
			return
		}
		keep = n
	}

	aggs := ledger.TopCategories(ledger.CategoryTotals(records), keep)
	if aggs == nil {
		aggs = []core.CategoryAggregate{}
	}
	writeJSON(w, http.StatusOK, aggs)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, ok := s.validRecords(w, r)
	if !ok {
		return
	}

	aggs := ledger.MonthlyTotals(records, time.Now())
	if aggs == nil {
		aggs = []core.MonthlyAggregate{}
	}
	writeJSON(w, http.StatusOK, aggs)
}

func (s *Server) handleSubCategorySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, ok := s.validRecords(w, r)
	if !ok {
		return
	}

	aggs := ledger.SubCategoryTotals(records)
	if aggs == nil {
		aggs = []core.SubCategoryAggregate{}
	}
	writeJSON(w, http.StatusOK, aggs)
}

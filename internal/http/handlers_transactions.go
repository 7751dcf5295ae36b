package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"farmbook/internal/core"
	"farmbook/internal/ledger"
)

// listMeta describes how the returned page was produced.
type listMeta struct {
	SortBy  string `json:"sortBy"`
	Order   string `json:"order"`
	Dropped int    `json:"dropped"`
}

type listResponse struct {
	ledger.PageResult
	Meta listMeta `json:"meta"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// listTransactions runs the full read pipeline: fetch, validate, sort,
// paginate.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	q := r.URL.Query()

	field := ledger.Field(strings.TrimSpace(q.Get("sortBy")))
	if field == "" {
		field = ledger.ByDate
	}
	if !field.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown sort field: "+string(field))
		return
	}

	dir := ledger.Ascending
	switch strings.ToLower(strings.TrimSpace(q.Get("order"))) {
	case "", "asc":
	case "desc":
		dir = ledger.Descending
	default:
		writeError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	req := ledger.PageRequest{Page: 1, PageSize: 20}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		req.Page = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "pageSize must be a positive number")
			return
		}
		req.PageSize = n
	}

	valid := ledger.Validate(records)
	sorted := ledger.Sort(valid, field, dir)
	page, err := ledger.Paginate(sorted, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		PageResult: page,
		Meta: listMeta{
			SortBy:  string(field),
			Order:   string(dir),
			Dropped: len(records) - len(valid),
		},
	})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if !decodeJSON(w, r, &t) {
		return
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	applyRecordDefaults(&t)

	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateTransaction(r.Context(), t); err != nil {
		slog.ErrorContext(r.Context(), "Failed to create transaction", "error", err, "id", t.ID)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathSuffix(r, "/api/transactions/")
	if id == "" || action != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := s.store.GetTransaction(r.Context(), id)
		if err != nil {
			respondStoreError(w, r, err, "transaction")
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodPut:
		var t core.Transaction
		if !decodeJSON(w, r, &t) {
			return
		}
		t.ID = id
		applyRecordDefaults(&t)
		if err := t.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.store.UpdateTransaction(r.Context(), t); err != nil {
			respondStoreError(w, r, err, "transaction")
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodDelete:
		if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
			respondStoreError(w, r, err, "transaction")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// applyRecordDefaults fills the descriptive fields a minimal client payload
// leaves blank, the same way imported rows get them.
func applyRecordDefaults(t *core.Transaction) {
	if t.Kind != core.Income {
		t.Kind = core.Expense
	}
	if t.Payer == "" {
		t.Payer = core.DefaultPayer
	}
	if t.Category == "" {
		t.Category = core.DefaultCategory
	}
	if t.SubCategory == "" {
		t.SubCategory = core.DefaultSubCategory
	}
	if t.Source == "" {
		t.Source = core.DefaultSource
	}
}

func respondStoreError(w http.ResponseWriter, r *http.Request, err error, what string) {
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, what+" not found")
		return
	}
	slog.ErrorContext(r.Context(), "Storage operation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "storage error")
}

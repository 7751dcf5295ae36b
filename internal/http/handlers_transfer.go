package http

import (
	"log/slog"
	"net/http"
	"time"

	"farmbook/internal/exporter"
	"farmbook/internal/importer"
	"farmbook/internal/ledger"
)

// maxImportSize caps uploaded spreadsheets at 10 MiB.
const maxImportSize = 10 << 20

type importResponse struct {
	Imported int `json:"imported"`
}

// handleImport accepts a multipart upload, normalizes its rows, and stores
// the whole batch. A file that yields zero records is rejected and nothing
// is written.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	rows, err := importer.ParseFile(header.Filename, file)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	records := importer.NewNormalizer().Normalize(rows)
	if len(records) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "file contains no importable rows")
		return
	}

	if err := s.store.CreateTransactions(r.Context(), records); err != nil {
		slog.ErrorContext(r.Context(), "Failed to store imported batch",
			"error", err,
			"count", len(records),
			"filename", header.Filename)
		writeError(w, http.StatusInternalServerError, "failed to store imported records")
		return
	}

	slog.InfoContext(r.Context(), "Import complete",
		"filename", header.Filename,
		"imported", len(records))

	writeJSON(w, http.StatusCreated, importResponse{Imported: len(records)})
}

// handleExport streams the current valid records as a CSV or XLSX download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	dataset := r.URL.Query().Get("dataset")
	if dataset == "" {
		dataset = "transactions"
	}

	records, err := s.store.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	records = ledger.Validate(records)

	filename := exporter.Filename(dataset, format, time.Now())

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := exporter.WriteCSV(w, records); err != nil {
			slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := exporter.WriteXLSX(w, records); err != nil {
			slog.ErrorContext(r.Context(), "XLSX export failed", "error", err)
		}
	default:
		writeError(w, http.StatusBadRequest, "format must be csv or xlsx")
	}
}

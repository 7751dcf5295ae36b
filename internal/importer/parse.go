package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file extensions the importer does
// not understand.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseFile selects the parse branch from the filename extension (.csv,
// .xlsx, .xls) and returns the raw rows.
func ParseFile(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx", ".xls":
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ParseCSV reads CSV text whose first record is the header row. Quoted
// fields with doubled quotes are handled by encoding/csv; rows shorter than
// the header leave the trailing fields unset so the normalizer defaults
// them.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return rowsFromRecords(records), nil
}

// ParseXLSX reads the first sheet of a workbook; the header names occupy
// the first row.
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return rowsFromRecords(records), nil
}

func rowsFromRecords(records [][]string) []Row {
	headers := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if emptyRecord(rec) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func emptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"farmbook/internal/core"
)

const sheetName = "Transactions"

// headerFill is the light blue used for the header row background.
const headerFill = "DDEBF7"

// WriteXLSX writes a single-sheet workbook with the nine canonical columns
// and a bold, light-blue-filled header row.
func WriteXLSX(w io.Writer, records []core.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "I1", style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			r.Date, string(r.Kind), r.Description, r.Amount, r.Payer,
			r.Category, r.SubCategory, r.Source, r.Notes,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

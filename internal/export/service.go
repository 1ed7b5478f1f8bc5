// Package export converts the CSV ledger into an XLSX workbook for people who
// review candidate data in a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// sheetName is the single worksheet holding the exported rows.
const sheetName = "Resumes"

// WriteXLSX reads the ledger CSV at csvPath and writes an XLSX workbook to
// xlsxPath. The header row is styled bold; data rows are copied as-is.
func WriteXLSX(csvPath, xlsxPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s: %w", csvPath, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read ledger %s: %w", csvPath, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("ledger %s is empty", csvPath)
	}

	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	index, err := wb.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	wb.SetActiveSheet(index)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i+1, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := wb.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	headerStyle, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	endCell, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("failed to compute header range: %w", err)
	}
	if err := wb.SetCellStyle(sheetName, "A1", endCell, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if err := wb.SaveAs(xlsxPath); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", xlsxPath, err)
	}
	return nil
}

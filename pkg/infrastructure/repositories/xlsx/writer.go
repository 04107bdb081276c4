package xlsx

import (
	"fmt"
	"strconv"

	"github.com/vsinha/etd/pkg/infrastructure/repositories/sheet"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WriteWorkbook saves tables as sheets of a new workbook, in order. Cells of
// the table's numeric columns are stored as numbers, everything else as text.
func WriteWorkbook(path string, tables []*sheet.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for _, table := range tables {
		if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", table.Name, err)
		}
		if err := writeRow(f, table.Name, 1, table.Header, nil); err != nil {
			return err
		}
		if err := f.SetRowStyle(table.Name, 1, 1, header); err != nil {
			return fmt.Errorf("failed to style sheet %q: %w", table.Name, err)
		}
		for i, row := range table.Rows {
			if err := writeRow(f, table.Name, sheet.SourceRow(i), row, table.IsNumeric); err != nil {
				return err
			}
		}
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, name string, row int, cells []string, numeric func(int) bool) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, value := range cells {
		values[i] = value
		if numeric != nil && numeric(i) {
			values[i] = cellValue(value)
		}
	}
	if err := f.SetSheetRow(name, cell, &values); err != nil {
		return fmt.Errorf("failed to write sheet %q row %d: %w", name, row, err)
	}
	return nil
}

func cellValue(value string) interface{} {
	if number, err := strconv.ParseFloat(value, 64); err == nil {
		return number
	}
	return value
}

package xlsx

import (
	"fmt"

	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/sheet"
	"github.com/vsinha/etd/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Loader reads the planning input from a workbook
type Loader struct {
	normalizer *sheet.Normalizer
}

// NewLoader creates a new workbook loader
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{normalizer: sheet.NewNormalizer(log)}
}

// Load opens the workbook at path and normalizes its four input sheets.
// Cells are read raw, so date cells arrive as serial numbers.
func (l *Loader) Load(path string) (*dto.PlanningInput, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	read := func(name string) (*sheet.Table, error) {
		if !present[name] {
			return nil, nil
		}
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		table := &sheet.Table{Name: name}
		if len(rows) > 0 {
			table.Header = rows[0]
			table.Rows = rows[1:]
		}
		return table, nil
	}

	var wb sheet.Workbook
	if wb.Stock, err = read(sheet.StockSheet); err != nil {
		return nil, err
	}
	if wb.PurchaseOrders, err = read(sheet.PurchaseOrderSheet); err != nil {
		return nil, err
	}
	if wb.LotStatus, err = read(sheet.LotStatusSheet); err != nil {
		return nil, err
	}
	if wb.Capacity, err = read(sheet.CapacitySheet); err != nil {
		return nil, err
	}

	input, err := l.normalizer.Normalize(wb)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook %s: %w", path, err)
	}
	return input, nil
}

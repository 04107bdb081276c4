package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/sheet"
	"github.com/vsinha/etd/pkg/logger"
)

// Scenario file names, one per input sheet
const (
	StockFile         = "stock.csv"
	PurchaseOrderFile = "purchase_orders.csv"
	LotStatusFile     = "lot_status.csv"
	CapacityFile      = "capacity.csv"
)

// Loader handles loading planning input from a directory of CSV files
type Loader struct {
	normalizer *sheet.Normalizer
}

// NewLoader creates a new CSV loader
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{normalizer: sheet.NewNormalizer(log)}
}

// LoadScenario reads the four scenario files from dir and normalizes them.
// The files use the same column headers as the workbook sheets.
func (l *Loader) LoadScenario(dir string) (*dto.PlanningInput, error) {
	stock, err := l.LoadTable(filepath.Join(dir, StockFile), sheet.StockSheet)
	if err != nil {
		return nil, err
	}
	orders, err := l.LoadTable(filepath.Join(dir, PurchaseOrderFile), sheet.PurchaseOrderSheet)
	if err != nil {
		return nil, err
	}
	lots, err := l.LoadTable(filepath.Join(dir, LotStatusFile), sheet.LotStatusSheet)
	if err != nil {
		return nil, err
	}
	capacity, err := l.LoadTable(filepath.Join(dir, CapacityFile), sheet.CapacitySheet)
	if err != nil {
		return nil, err
	}

	input, err := l.normalizer.Normalize(sheet.Workbook{
		Stock:          stock,
		PurchaseOrders: orders,
		LotStatus:      lots,
		Capacity:       capacity,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", dir, err)
	}
	return input, nil
}

// LoadTable reads one CSV file as a sheet table
func (l *Loader) LoadTable(filename, name string) (*sheet.Table, error) {
	file, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s file %s: %w", entities.ErrMissingSheet, name, filename, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", name)
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	return &sheet.Table{
		Name:   name,
		Header: header,
		Rows:   records[1:],
	}, nil
}

package sheet

import (
	"fmt"
	"strings"

	"github.com/vsinha/etd/pkg/domain/entities"
)

// Sheet names of the input workbook
const (
	StockSheet         = "Stock"
	PurchaseOrderSheet = "PO"
	LotStatusSheet     = "1ST LOT STATUS"
	CapacitySheet      = "Capacity Status"
)

// Table is one sheet as a header row plus data rows. Data row i sits on
// sheet row i+2, the header being row 1.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	// Numeric names the header columns whose cells hold quantities
	Numeric []string
}

// IsNumeric reports whether column index col holds quantities
func (t *Table) IsNumeric(col int) bool {
	if col < 0 || col >= len(t.Header) {
		return false
	}
	for _, name := range t.Numeric {
		if t.Header[col] == name {
			return true
		}
	}
	return false
}

// Workbook holds the four input sheets
type Workbook struct {
	Stock          *Table
	PurchaseOrders *Table
	LotStatus      *Table
	Capacity       *Table
}

// SourceRow returns the 1-based sheet row of data row i
func SourceRow(i int) int {
	return i + 2
}

// columns maps canonical column names to cell positions
type columns map[string]int

func indexHeader(header []string) columns {
	index := make(columns, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

// find resolves a column, falling back to a case-insensitive match
func (c columns) find(name string) (int, bool) {
	if i, ok := c[name]; ok {
		return i, true
	}
	for candidate, i := range c {
		if strings.EqualFold(candidate, name) {
			return i, true
		}
	}
	return 0, false
}

// alias makes canonical resolve to the legacy column when canonical is absent
func (c columns) alias(legacy, canonical string) {
	if _, ok := c.find(canonical); ok {
		return
	}
	if i, ok := c.find(legacy); ok {
		c[canonical] = i
	}
}

func (c columns) require(sheet string, names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := c.find(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: sheet %q is missing %s", entities.ErrMissingColumn, sheet, strings.Join(quoteAll(missing), ", "))
}

// cell returns the trimmed cell of a named column, or "" when the column or
// cell is absent
func (c columns) cell(row []string, name string) string {
	i, ok := c.find(name)
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return quoted
}

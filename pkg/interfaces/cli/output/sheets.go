package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/sheet"
)

// Output sheet names
const (
	DraftETDSheet       = "DRAFT ETD"
	RemainingStockSheet = "REMAINING STOCK"
	FinalETDSheet       = "FINAL ETD"
	ExcludedRowsSheet   = "EXCLUDED ROWS"
)

var draftColumns = []string{
	sheet.ColumnSPL, sheet.ColumnFGName, sheet.ColumnSeason, sheet.ColumnMarket, sheet.ColumnPO,
	sheet.ColumnCreationDate, sheet.ColumnCHD, sheet.ColumnMaterial, sheet.ColumnCPTName, sheet.ColumnItem,
	sheet.ColumnColor, sheet.ColumnRequestedQty, sheet.ColumnForecasted,
	"Draft ETD", "1ST LOT STATUS", sheet.ColumnDueDate, "2nd ETD",
}

var finalColumns = append(append([]string(nil), draftColumns...),
	"DEVIDED QUANTITY 1ST", "DATE 1ST BATCH",
	"DEVIDED QUANTITY 2ND", "DATE 2ND BATCH",
	"FINAL QUANTITY", "FINAL ETD",
)

const remainingColumn = "Remaining Available"

var (
	draftNumeric = []string{sheet.ColumnRequestedQty}
	finalNumeric = []string{
		sheet.ColumnRequestedQty, "DEVIDED QUANTITY 1ST", "DEVIDED QUANTITY 2ND", "FINAL QUANTITY",
	}
)

// Sheets renders the result as the output workbook's tables
func Sheets(result *dto.PlanningResult) []*sheet.Table {
	return []*sheet.Table{
		DraftETDTable(result),
		RemainingStockTable(result),
		FinalETDTable(result),
		ExcludedRowsTable(result),
	}
}

// DraftETDTable lists every PO in allocation order with its draft and 2nd ETD
func DraftETDTable(result *dto.PlanningResult) *sheet.Table {
	table := &sheet.Table{Name: DraftETDSheet, Header: draftColumns, Numeric: draftNumeric}
	for _, r := range result.DraftResults {
		table.Rows = append(table.Rows, draftCells(r, false))
	}
	return table
}

// FinalETDTable lists every PO in scheduling order with its production split
// and final ETD. Missing split quantities render as 0.
func FinalETDTable(result *dto.PlanningResult) *sheet.Table {
	table := &sheet.Table{Name: FinalETDSheet, Header: finalColumns, Numeric: finalNumeric}
	for _, r := range result.FinalResults {
		row := draftCells(r, true)
		row = append(row, splitCells(r.FirstSplit)...)
		row = append(row, splitCells(r.SecondSplit)...)
		row = append(row, r.FinalQuantity.String(), r.FinalETD.String())
		table.Rows = append(table.Rows, row)
	}
	return table
}

// RemainingStockTable lists leftover stock per material
func RemainingStockTable(result *dto.PlanningResult) *sheet.Table {
	remaining := fmt.Sprintf("%s (as of %s)", remainingColumn, result.Parameters.Today.Format(entities.DateLayout))
	table := &sheet.Table{
		Name: RemainingStockSheet,
		Header: []string{
			sheet.ColumnMaterial,
			sheet.ColumnCPTName,
			remaining,
			"Remaining Incoming Batches",
		},
		Numeric: []string{remaining},
	}
	for _, stock := range result.RemainingStock {
		table.Rows = append(table.Rows, []string{
			string(stock.Material),
			stock.CPTName,
			stock.OnHand.String(),
			IncomingBatches(stock.Incoming),
		})
	}
	return table
}

// ExcludedRowsTable lists source rows dropped during load
func ExcludedRowsTable(result *dto.PlanningResult) *sheet.Table {
	table := &sheet.Table{Name: ExcludedRowsSheet, Header: []string{"SHEET", "ROW", "REASON"}, Numeric: []string{"ROW"}}
	for _, row := range result.Excluded {
		table.Rows = append(table.Rows, []string{row.Sheet, fmt.Sprintf("%d", row.Row), row.Reason})
	}
	return table
}

// IncomingBatches renders batches as "ETA: YYYY-MM-DD, Qty: N; ..." or "None"
func IncomingBatches(batches []entities.StockBatch) string {
	if len(batches) == 0 {
		return "None"
	}
	parts := make([]string, len(batches))
	for i, batch := range batches {
		parts[i] = fmt.Sprintf("ETA: %s, Qty: %s",
			batch.ArrivalDate.Format(entities.DateLayout), batch.Quantity.Truncate(0).String())
	}
	return strings.Join(parts, "; ")
}

func draftCells(r entities.OrderResult, final bool) []string {
	po := r.Order
	forecasted := "no"
	if po.IsForecasted {
		forecasted = "yes"
	}
	status := ""
	dueDate := entities.Unavailable()
	if r.LotStatus != nil {
		status = string(r.LotStatus.Status)
		if r.LotStatus.HasDueDate() {
			dueDate = entities.DateOf(r.LotStatus.DueDate)
		}
	}
	if final {
		forecasted = strings.ToUpper(forecasted)
	}

	return []string{
		po.Attributes.SPL,
		po.Attributes.FGName,
		po.Attributes.Season,
		po.Attributes.Market,
		po.ID,
		dayCell(po.Attributes.CreationDate),
		dayCell(po.CHD),
		string(po.Material),
		po.Attributes.CPTName,
		po.Attributes.Item,
		po.Attributes.RawColor,
		po.RequestedQty.String(),
		forecasted,
		r.DraftETD.String(),
		status,
		dueDate.String(),
		r.SecondETD.String(),
	}
}

func splitCells(split *entities.ProductionSplit) []string {
	if split == nil {
		return []string{decimal.Zero.String(), entities.Unavailable().String()}
	}
	return []string{split.Quantity.String(), entities.DateOf(split.Date).String()}
}

// dayCell renders a loaded date; empty dates render like an unavailable ETD
func dayCell(day time.Time) string {
	if day.IsZero() {
		return entities.Unavailable().String()
	}
	return entities.DateOf(day).String()
}

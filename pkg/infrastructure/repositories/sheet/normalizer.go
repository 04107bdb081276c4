package sheet

import (
	"fmt"
	"strings"

	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/logger"
	"go.uber.org/multierr"
)

// Canonical column names
const (
	ColumnMaterial       = "DSM Code"
	ColumnLegacyMaterial = "Mã Vải"

	ColumnArrivalDate       = "Greige ETA"
	ColumnLegacyArrivalDate = "ETA"
	ColumnQuantity          = "Greige Incoming"
	ColumnLegacyQuantity    = "Available"

	ColumnPO           = "PO"
	ColumnCHD          = "CHD"
	ColumnRequestedQty = "Quantity request"
	ColumnForecasted   = "Forecasted"
	ColumnSPL          = "SPL"
	ColumnFGName       = "FG name"
	ColumnSeason       = "Season"
	ColumnMarket       = "Local/ Export"
	ColumnCPTName      = "CPT Name"
	ColumnItem         = "ITEM"
	ColumnColor        = "COLOR"
	ColumnCreationDate = "OCD( Order Creation Day)"

	ColumnStatus  = "STATUS"
	ColumnDueDate = "DUE DATE"

	ColumnCapacityDate   = "CAPACITY DATE"
	ColumnCapacityRemain = "CAPACITY REMAIN"
)

// Normalizer turns raw sheets into the canonical planning input, resolving
// legacy column aliases and excluding rows that lack required values
type Normalizer struct {
	log *logger.Logger
}

// NewNormalizer creates a new sheet normalizer
func NewNormalizer(log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Normalizer{log: log}
}

type sheetColumns struct {
	stock, orders, lots, capacity columns
}

// Normalize validates every sheet's columns before reading any row, so one
// call reports all structural problems together
func (n *Normalizer) Normalize(wb Workbook) (*dto.PlanningInput, error) {
	cols, err := n.validate(wb)
	if err != nil {
		return nil, err
	}

	input := &dto.PlanningInput{}
	input.StockRows = n.stockRows(wb.Stock, cols.stock)
	input.PurchaseOrders = n.purchaseOrders(wb.PurchaseOrders, cols.orders, input)
	input.LotStatuses = n.lotStatuses(wb.LotStatus, cols.lots, input)
	input.CapacityDays = n.capacityDays(wb.Capacity, cols.capacity, input)

	for _, row := range input.Excluded {
		n.log.Warn().Str("sheet", row.Sheet).Int("row", row.Row).Str("reason", row.Reason).Msg("row excluded")
	}
	n.log.Info().
		Int("stock_rows", len(input.StockRows)).
		Int("purchase_orders", len(input.PurchaseOrders)).
		Int("lot_statuses", len(input.LotStatuses)).
		Int("capacity_days", len(input.CapacityDays)).
		Int("excluded", len(input.Excluded)).
		Msg("input sheets normalized")

	return input, nil
}

func (n *Normalizer) validate(wb Workbook) (sheetColumns, error) {
	var cols sheetColumns
	var err error

	tables := []struct {
		name  string
		table *Table
	}{
		{StockSheet, wb.Stock},
		{PurchaseOrderSheet, wb.PurchaseOrders},
		{LotStatusSheet, wb.LotStatus},
		{CapacitySheet, wb.Capacity},
	}
	for _, t := range tables {
		if t.table == nil {
			err = multierr.Append(err, fmt.Errorf("%w: %q", entities.ErrMissingSheet, t.name))
		}
	}
	if err != nil {
		return cols, err
	}

	cols.stock = indexHeader(wb.Stock.Header)
	cols.stock.alias(ColumnLegacyMaterial, ColumnMaterial)
	cols.stock.alias(ColumnLegacyArrivalDate, ColumnArrivalDate)
	cols.stock.alias(ColumnLegacyQuantity, ColumnQuantity)
	err = multierr.Append(err, cols.stock.require(StockSheet, ColumnMaterial, ColumnArrivalDate, ColumnQuantity))

	cols.orders = indexHeader(wb.PurchaseOrders.Header)
	cols.orders.alias(ColumnLegacyMaterial, ColumnMaterial)
	err = multierr.Append(err, cols.orders.require(PurchaseOrderSheet,
		ColumnPO, ColumnMaterial, ColumnCHD, ColumnRequestedQty, ColumnForecasted))
	for _, optional := range []string{ColumnSPL, ColumnFGName, ColumnSeason, ColumnMarket,
		ColumnCPTName, ColumnItem, ColumnColor, ColumnCreationDate} {
		if _, ok := cols.orders.find(optional); !ok {
			n.log.Warn().Str("sheet", PurchaseOrderSheet).Str("column", optional).Msg("column not found, treating as empty")
		}
	}

	cols.lots = indexHeader(wb.LotStatus.Header)
	err = multierr.Append(err, cols.lots.require(LotStatusSheet, ColumnMaterial, ColumnColor, ColumnStatus, ColumnDueDate))

	cols.capacity = indexHeader(wb.Capacity.Header)
	err = multierr.Append(err, cols.capacity.require(CapacitySheet, ColumnCapacityDate, ColumnCapacityRemain))

	return cols, err
}

// stockRows leaves unparseable cells empty; the stock ledger decides exclusion
func (n *Normalizer) stockRows(table *Table, cols columns) []entities.StockRow {
	rows := make([]entities.StockRow, 0, len(table.Rows))
	for i, raw := range table.Rows {
		if blank(raw) {
			continue
		}
		arrival, _ := ParseDate(cols.cell(raw, ColumnArrivalDate))
		rows = append(rows, entities.StockRow{
			SourceRow:   SourceRow(i),
			Material:    entities.NormalizeMaterialCode(cols.cell(raw, ColumnMaterial)),
			ArrivalDate: arrival,
			Quantity:    ParseQuantity(cols.cell(raw, ColumnQuantity)),
		})
	}
	return rows
}

func (n *Normalizer) purchaseOrders(table *Table, cols columns, input *dto.PlanningInput) []entities.PurchaseOrder {
	orders := make([]entities.PurchaseOrder, 0, len(table.Rows))
	for i, raw := range table.Rows {
		if blank(raw) {
			continue
		}
		row := SourceRow(i)

		material := cols.cell(raw, ColumnMaterial)
		if material == "" {
			material = cols.cell(raw, ColumnLegacyMaterial)
		}
		chd, _ := ParseDate(cols.cell(raw, ColumnCHD))
		quantity := ParseQuantity(cols.cell(raw, ColumnRequestedQty))
		if !quantity.Valid {
			input.Excluded = append(input.Excluded, excluded(PurchaseOrderSheet, row, "missing quantity request"))
			continue
		}
		creation, _ := ParseDate(cols.cell(raw, ColumnCreationDate))

		order, err := entities.NewPurchaseOrder(
			cols.cell(raw, ColumnPO),
			entities.NormalizeMaterialCode(material),
			entities.NormalizeColorKey(cols.cell(raw, ColumnColor)),
			quantity.Decimal,
			chd,
			ParseForecast(cols.cell(raw, ColumnForecasted)),
			entities.OrderAttributes{
				SPL:          cols.cell(raw, ColumnSPL),
				FGName:       cols.cell(raw, ColumnFGName),
				Season:       cols.cell(raw, ColumnSeason),
				Market:       cols.cell(raw, ColumnMarket),
				CPTName:      cols.cell(raw, ColumnCPTName),
				Item:         cols.cell(raw, ColumnItem),
				RawColor:     cols.cell(raw, ColumnColor),
				CreationDate: creation,
			},
		)
		if err != nil {
			input.Excluded = append(input.Excluded, excluded(PurchaseOrderSheet, row, err.Error()))
			continue
		}
		order.SourceRow = row
		orders = append(orders, *order)
	}
	return orders
}

func (n *Normalizer) lotStatuses(table *Table, cols columns, input *dto.PlanningInput) []entities.LotStatus {
	statuses := make([]entities.LotStatus, 0, len(table.Rows))
	for i, raw := range table.Rows {
		if blank(raw) {
			continue
		}
		row := SourceRow(i)

		status := entities.LotStatus{
			Material: entities.NormalizeMaterialCode(cols.cell(raw, ColumnMaterial)),
			ColorKey: entities.NormalizeColorKey(cols.cell(raw, ColumnColor)),
			Status:   entities.ParseLotStatusCode(cols.cell(raw, ColumnStatus)),
		}
		switch {
		case status.Material == "":
			input.Excluded = append(input.Excluded, excluded(LotStatusSheet, row, "missing material"))
			continue
		case status.ColorKey == "":
			input.Excluded = append(input.Excluded, excluded(LotStatusSheet, row, "missing color"))
			continue
		case status.Status == "":
			input.Excluded = append(input.Excluded, excluded(LotStatusSheet, row, "missing status"))
			continue
		}
		if due, ok := ParseDate(cols.cell(raw, ColumnDueDate)); ok {
			status.DueDate = due
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// capacityDays returns rows sorted ascending by date; equal dates keep sheet order
func (n *Normalizer) capacityDays(table *Table, cols columns, input *dto.PlanningInput) []entities.CapacityDay {
	days := make([]entities.CapacityDay, 0, len(table.Rows))
	for i, raw := range table.Rows {
		if blank(raw) {
			continue
		}
		row := SourceRow(i)

		date, ok := ParseDate(cols.cell(raw, ColumnCapacityDate))
		if !ok {
			input.Excluded = append(input.Excluded, excluded(CapacitySheet, row, "missing capacity date"))
			continue
		}
		remaining := ParseQuantity(cols.cell(raw, ColumnCapacityRemain))
		if !remaining.Valid {
			input.Excluded = append(input.Excluded, excluded(CapacitySheet, row, "missing capacity remain"))
			continue
		}
		days = append(days, entities.CapacityDay{Date: date, Remaining: remaining.Decimal, SourceRow: row})
	}
	sortCapacityDays(days)
	return days
}

func excluded(sheet string, row int, reason string) entities.ExcludedRow {
	return entities.ExcludedRow{Sheet: sheet, Row: row, Reason: reason}
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

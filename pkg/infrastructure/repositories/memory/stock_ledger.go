package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/domain/repositories"
)

// StockSheet is the sheet name used when reporting excluded stock rows
const StockSheet = "Stock"

// StockLedger provides in-memory FIFO stock storage
type StockLedger struct {
	today     time.Time
	positions map[entities.MaterialCode]*entities.MaterialPosition
}

// NewStockLedger builds a ledger from stock rows. Rows arriving on or before
// today count as on-hand, later rows become incoming batches. Rows with a
// missing material, missing arrival date or non-positive quantity are excluded.
func NewStockLedger(today time.Time, rows []entities.StockRow) (*StockLedger, []entities.ExcludedRow) {
	ledger := &StockLedger{
		today:     entities.Day(today),
		positions: make(map[entities.MaterialCode]*entities.MaterialPosition),
	}

	var excluded []entities.ExcludedRow
	for _, row := range rows {
		if reason := stockRowDefect(row); reason != "" {
			excluded = append(excluded, entities.ExcludedRow{Sheet: StockSheet, Row: row.SourceRow, Reason: reason})
			continue
		}
		ledger.receive(row.Material, row.ArrivalDate, row.Quantity.Decimal)
	}

	for _, position := range ledger.positions {
		sort.SliceStable(position.Incoming, func(i, j int) bool {
			return position.Incoming[i].ArrivalDate.Before(position.Incoming[j].ArrivalDate)
		})
	}

	return ledger, excluded
}

// Verify interface compliance
var _ repositories.StockLedger = (*StockLedger)(nil)

func stockRowDefect(row entities.StockRow) string {
	switch {
	case row.Material == "":
		return "missing material"
	case row.ArrivalDate.IsZero():
		return "missing arrival date"
	case !row.Quantity.Valid:
		return "missing quantity"
	case !row.Quantity.Decimal.IsPositive():
		return "non-positive quantity"
	default:
		return ""
	}
}

func (l *StockLedger) receive(material entities.MaterialCode, arrival time.Time, quantity decimal.Decimal) {
	position := l.position(material)
	arrival = entities.Day(arrival)
	if !arrival.After(l.today) {
		position.OnHand = position.OnHand.Add(quantity)
		return
	}
	position.Incoming = append(position.Incoming, entities.StockBatch{
		Material:    material,
		ArrivalDate: arrival,
		Quantity:    quantity,
	})
}

func (l *StockLedger) position(material entities.MaterialCode) *entities.MaterialPosition {
	position, exists := l.positions[material]
	if !exists {
		position = &entities.MaterialPosition{Material: material, OnHand: decimal.Zero}
		l.positions[material] = position
	}
	return position
}

// Consume allocates quantity using FIFO: on-hand first, then incoming batches
// by arrival date, partially draining the last batch needed. The ready date is
// today when on-hand covers the request, otherwise the arrival date of the
// last batch touched. When on-hand plus incoming cannot cover the request,
// everything available is drawn and the ready date is unavailable.
func (l *StockLedger) Consume(material entities.MaterialCode, quantity decimal.Decimal) entities.Consumption {
	result := entities.Consumption{
		Material:  material,
		Requested: quantity,
		Consumed:  decimal.Zero,
		ReadyDate: entities.Unavailable(),
	}

	position, exists := l.positions[material]
	if !exists {
		return result
	}

	if position.OnHand.GreaterThanOrEqual(quantity) {
		position.OnHand = position.OnHand.Sub(quantity)
		result.Consumed = quantity
		result.ReadyDate = entities.DateOf(l.today)
		return result
	}

	needed := quantity.Sub(position.OnHand)
	result.Consumed = position.OnHand
	position.OnHand = decimal.Zero

	var readyDate time.Time
	drained := 0
	for i := range position.Incoming {
		if !needed.IsPositive() {
			break
		}
		batch := &position.Incoming[i]
		readyDate = batch.ArrivalDate

		if batch.Quantity.GreaterThan(needed) {
			batch.Quantity = batch.Quantity.Sub(needed)
			result.Consumed = result.Consumed.Add(needed)
			needed = decimal.Zero
			break
		}

		needed = needed.Sub(batch.Quantity)
		result.Consumed = result.Consumed.Add(batch.Quantity)
		drained++
	}
	position.Incoming = position.Incoming[drained:]

	if !needed.IsPositive() {
		result.ReadyDate = entities.DateOf(readyDate)
	}
	return result
}

// Position returns a copy of the material position
func (l *StockLedger) Position(material entities.MaterialCode) entities.MaterialPosition {
	position, exists := l.positions[material]
	if !exists {
		return entities.MaterialPosition{Material: material, OnHand: decimal.Zero}
	}

	incoming := make([]entities.StockBatch, len(position.Incoming))
	copy(incoming, position.Incoming)
	return entities.MaterialPosition{
		Material: position.Material,
		OnHand:   position.OnHand,
		Incoming: incoming,
	}
}

// Materials returns all materials with a position, sorted
func (l *StockLedger) Materials() []entities.MaterialCode {
	materials := make([]entities.MaterialCode, 0, len(l.positions))
	for material := range l.positions {
		materials = append(materials, material)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i] < materials[j] })
	return materials
}

package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockRow is one normalized row of the stock sheet. Unparseable cells arrive
// empty so that the ledger can exclude the row.
type StockRow struct {
	SourceRow   int
	Material    MaterialCode
	ArrivalDate time.Time // zero = missing
	Quantity    decimal.NullDecimal
}

// StockBatch is one incoming shipment of a material
type StockBatch struct {
	Material    MaterialCode    `json:"material"`
	ArrivalDate time.Time       `json:"arrival_date"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// NewStockBatch creates a validated StockBatch
func NewStockBatch(material MaterialCode, arrivalDate time.Time, quantity decimal.Decimal) (*StockBatch, error) {
	if material == "" {
		return nil, fmt.Errorf("material cannot be empty")
	}
	if arrivalDate.IsZero() {
		return nil, fmt.Errorf("arrival date cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("quantity must be positive, got %s", quantity)
	}

	return &StockBatch{
		Material:    material,
		ArrivalDate: Day(arrivalDate),
		Quantity:    quantity,
	}, nil
}

// MaterialPosition is the on-hand quantity of a material plus its incoming
// batches in ascending arrival order
type MaterialPosition struct {
	Material MaterialCode    `json:"material"`
	OnHand   decimal.Decimal `json:"on_hand"`
	Incoming []StockBatch    `json:"incoming"`
}

// Total returns on-hand plus every incoming batch
func (p MaterialPosition) Total() decimal.Decimal {
	total := p.OnHand
	for _, batch := range p.Incoming {
		total = total.Add(batch.Quantity)
	}
	return total
}

// Consumption is the outcome of drawing a quantity from a material position
type Consumption struct {
	Material  MaterialCode
	Requested decimal.Decimal
	Consumed  decimal.Decimal
	ReadyDate PlanDate // unavailable when the position could not cover Requested
}

// Fulfilled reports whether the whole request was covered
func (c Consumption) Fulfilled() bool {
	return c.ReadyDate.Known
}

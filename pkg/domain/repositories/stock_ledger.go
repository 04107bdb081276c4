package repositories

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/domain/entities"
)

// StockLedger tracks per-material on-hand stock and incoming batches
type StockLedger interface {
	// Consume draws quantity from on-hand first, then from incoming batches in
	// arrival order. The draw is permanent.
	Consume(material entities.MaterialCode, quantity decimal.Decimal) entities.Consumption
	// Position returns a copy of the current position of a material
	Position(material entities.MaterialCode) entities.MaterialPosition
	// Materials returns every material known to the ledger, sorted
	Materials() []entities.MaterialCode
}

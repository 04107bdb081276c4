package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapacityDay is the remaining production capacity of one day. Remaining may
// go negative down to the configured floor.
type CapacityDay struct {
	Date      time.Time       `json:"date"`
	Remaining decimal.Decimal `json:"remaining"`
	SourceRow int             `json:"-"`
}

// ProductionSplit is a quantity committed to one production day
type ProductionSplit struct {
	Quantity decimal.Decimal `json:"quantity"`
	Date     time.Time       `json:"date"`
}

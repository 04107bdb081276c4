package repositories

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/domain/entities"
)

// CapacityLedger tracks remaining production capacity per day
type CapacityLedger interface {
	// Remaining returns the remaining capacity of day, 0 when the day has no entry
	Remaining(day time.Time) decimal.Decimal
	// CanCommit reports whether quantity fits on day within tolerance and floor
	CanCommit(day time.Time, quantity decimal.Decimal) bool
	// Commit subtracts quantity from day, failing with ErrCapacityExceeded when it does not fit
	Commit(day time.Time, quantity decimal.Decimal) error
	// Days returns every day with an entry, ascending
	Days() []entities.CapacityDay
}

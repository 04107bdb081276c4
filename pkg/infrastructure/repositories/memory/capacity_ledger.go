package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/domain/repositories"
)

// CapacitySheet is the sheet name used when reporting excluded capacity rows
const CapacitySheet = "Capacity Status"

// CapacityLedger provides in-memory per-day production capacity with an
// overbooking tolerance and a floor on negative remaining capacity
type CapacityLedger struct {
	tolerance decimal.Decimal
	floor     decimal.Decimal
	remaining map[time.Time]decimal.Decimal
}

// NewCapacityLedger creates a ledger seeded with days. When a date appears
// more than once the first entry wins and the rest are reported as excluded.
func NewCapacityLedger(tolerance, floor decimal.Decimal, days []entities.CapacityDay) (*CapacityLedger, []entities.ExcludedRow) {
	ledger := &CapacityLedger{
		tolerance: tolerance,
		floor:     floor,
		remaining: make(map[time.Time]decimal.Decimal, len(days)),
	}

	var excluded []entities.ExcludedRow
	for _, day := range days {
		date := entities.Day(day.Date)
		if _, exists := ledger.remaining[date]; exists {
			excluded = append(excluded, entities.ExcludedRow{
				Sheet:  CapacitySheet,
				Row:    day.SourceRow,
				Reason: fmt.Sprintf("duplicate capacity date %s", date.Format(entities.DateLayout)),
			})
			continue
		}
		ledger.remaining[date] = day.Remaining
	}

	return ledger, excluded
}

// Verify interface compliance
var _ repositories.CapacityLedger = (*CapacityLedger)(nil)

// Remaining returns the remaining capacity of day, 0 when unknown
func (l *CapacityLedger) Remaining(day time.Time) decimal.Decimal {
	if remaining, exists := l.remaining[entities.Day(day)]; exists {
		return remaining
	}
	return decimal.Zero
}

// CanCommit reports whether remaining+tolerance covers quantity and the
// resulting remaining capacity stays at or above the floor
func (l *CapacityLedger) CanCommit(day time.Time, quantity decimal.Decimal) bool {
	remaining := l.Remaining(day)
	if remaining.Add(l.tolerance).LessThan(quantity) {
		return false
	}
	return remaining.Sub(quantity).GreaterThanOrEqual(l.floor)
}

// Commit subtracts quantity from day, creating the entry when missing
func (l *CapacityLedger) Commit(day time.Time, quantity decimal.Decimal) error {
	if !l.CanCommit(day, quantity) {
		return fmt.Errorf("%w: %s on %s (remaining %s)",
			entities.ErrCapacityExceeded, quantity, entities.Day(day).Format(entities.DateLayout), l.Remaining(day))
	}
	date := entities.Day(day)
	l.remaining[date] = l.Remaining(date).Sub(quantity)
	return nil
}

// Days returns every day with an entry, ascending by date
func (l *CapacityLedger) Days() []entities.CapacityDay {
	days := make([]entities.CapacityDay, 0, len(l.remaining))
	for date, remaining := range l.remaining {
		days = append(days, entities.CapacityDay{Date: date, Remaining: remaining})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

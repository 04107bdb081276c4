package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/etd/pkg/domain/entities"
)

func newTestCapacityLedger(days ...entities.CapacityDay) *CapacityLedger {
	ledger, _ := NewCapacityLedger(decimal.NewFromInt(2000), decimal.NewFromInt(-2000), days)
	return ledger
}

func TestCapacityLedger_RemainingDefaultsToZero(t *testing.T) {
	ledger := newTestCapacityLedger(entities.CapacityDay{Date: today, Remaining: decimal.NewFromInt(300)})

	assertDecimal(t, 300, ledger.Remaining(today))
	assertDecimal(t, 0, ledger.Remaining(days(1)))
}

func TestCapacityLedger_CanCommit(t *testing.T) {
	tests := []struct {
		name      string
		remaining int64
		quantity  int64
		expected  bool
	}{
		{"within_remaining", 1000, 600, true},
		{"within_tolerance", 300, 600, true},
		{"exactly_tolerance", 0, 2000, true},
		{"beyond_tolerance", 0, 2001, false},
		{"floor_reached", -1000, 1000, true},
		{"floor_broken", -1500, 600, false},
		{"tolerance_and_floor_reached", 500, 2500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newTestCapacityLedger(entities.CapacityDay{Date: today, Remaining: decimal.NewFromInt(tt.remaining)})
			assert.Equal(t, tt.expected, ledger.CanCommit(today, decimal.NewFromInt(tt.quantity)))
		})
	}
}

func TestCapacityLedger_CanCommitChecksToleranceAndFloorSeparately(t *testing.T) {
	tests := []struct {
		name      string
		tolerance int64
		floor     int64
		remaining int64
		quantity  int64
		expected  bool
	}{
		{"floor_only_broken", 2000, -500, 0, 600, false},
		{"floor_only_reached", 2000, -500, 0, 500, true},
		{"tolerance_only_broken", 2000, -3000, 0, 2500, false},
		{"tolerance_only_reached", 2500, -3000, 0, 2500, true},
		{"both_hold_with_positive_remaining", 200, -500, 1200, 1400, true},
		{"tolerance_broken_with_positive_remaining", 100, -500, 1200, 1400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, _ := NewCapacityLedger(decimal.NewFromInt(tt.tolerance), decimal.NewFromInt(tt.floor), []entities.CapacityDay{
				{Date: today, Remaining: decimal.NewFromInt(tt.remaining)},
			})
			assert.Equal(t, tt.expected, ledger.CanCommit(today, decimal.NewFromInt(tt.quantity)))
		})
	}
}

func TestCapacityLedger_Commit(t *testing.T) {
	ledger := newTestCapacityLedger(entities.CapacityDay{Date: today, Remaining: decimal.NewFromInt(300)})

	require.NoError(t, ledger.Commit(today, decimal.NewFromInt(600)))
	assertDecimal(t, -300, ledger.Remaining(today))

	require.NoError(t, ledger.Commit(days(3), decimal.NewFromInt(500)))
	assertDecimal(t, -500, ledger.Remaining(days(3)), "missing day starts at zero")

	err := ledger.Commit(today, decimal.NewFromInt(1800))
	assert.ErrorIs(t, err, entities.ErrCapacityExceeded)
	assertDecimal(t, -300, ledger.Remaining(today), "failed commit leaves the day untouched")

	ledgerDays := ledger.Days()
	require.Len(t, ledgerDays, 2)
	assert.Equal(t, today, ledgerDays[0].Date)
	assert.Equal(t, days(3), ledgerDays[1].Date)
	for _, day := range ledgerDays {
		assert.True(t, day.Remaining.GreaterThanOrEqual(decimal.NewFromInt(-2000)))
	}
}

func TestNewCapacityLedger_DuplicateDatesFirstWins(t *testing.T) {
	ledger, excluded := NewCapacityLedger(decimal.NewFromInt(2000), decimal.NewFromInt(-2000), []entities.CapacityDay{
		{Date: today, Remaining: decimal.NewFromInt(100), SourceRow: 2},
		{Date: today, Remaining: decimal.NewFromInt(900), SourceRow: 3},
	})

	assertDecimal(t, 100, ledger.Remaining(today))
	require.Len(t, excluded, 1)
	assert.Equal(t, 3, excluded[0].Row)
	assert.Equal(t, CapacitySheet, excluded[0].Sheet)
}

package quality

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/infrastructure/events"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/etd/pkg/logger"
)

var draftDay = time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

func TestGatedETD(t *testing.T) {
	draft := entities.DateOf(draftDay)

	tests := []struct {
		name     string
		draft    entities.PlanDate
		status   *entities.LotStatus
		expected entities.PlanDate
	}{
		{
			name:     "no lot status",
			draft:    draft,
			expected: draft,
		},
		{
			name:     "expired with due date after draft",
			draft:    draft,
			status:   &entities.LotStatus{Status: entities.LotStatusExpired, DueDate: entities.AddDays(draftDay, 5)},
			expected: entities.DateOf(entities.AddDays(draftDay, 5)),
		},
		{
			name:     "expired with due date before draft",
			draft:    draft,
			status:   &entities.LotStatus{Status: entities.LotStatusExpired, DueDate: entities.AddDays(draftDay, -5)},
			expected: draft,
		},
		{
			name:     "expired with due date equal to draft",
			draft:    draft,
			status:   &entities.LotStatus{Status: entities.LotStatusExpired, DueDate: draftDay},
			expected: draft,
		},
		{
			name:     "expired without due date",
			draft:    draft,
			status:   &entities.LotStatus{Status: entities.LotStatusExpired},
			expected: draft,
		},
		{
			name:     "ok status ignores due date",
			draft:    draft,
			status:   &entities.LotStatus{Status: entities.LotStatusOK, DueDate: entities.AddDays(draftDay, 30)},
			expected: draft,
		},
		{
			name:     "unavailable draft stays unavailable",
			draft:    entities.Unavailable(),
			status:   &entities.LotStatus{Status: entities.LotStatusExpired, DueDate: draftDay},
			expected: entities.Unavailable(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GatedETD(tt.draft, tt.status)
			assert.True(t, tt.expected.Equal(got), "Expected %s, got %s", tt.expected, got)
		})
	}
}

func TestQualityGate_Apply(t *testing.T) {
	lots := memory.NewLotStatusRepository()
	require.NoError(t, lots.LoadLotStatuses([]entities.LotStatus{
		{Material: "M1", ColorKey: "NAVY BLUE", Status: entities.LotStatusExpired, DueDate: entities.AddDays(draftDay, 5)},
		{Material: "M1", ColorKey: "NAVY   BLUE", Status: entities.LotStatusOK},
		{Material: "M2", ColorKey: "RED", Status: entities.LotStatusExpired, DueDate: entities.AddDays(draftDay, -5)},
	}))
	store := events.NewInMemoryEventStore()
	gate := NewQualityGate(lots, store, logger.Nop())

	results := []entities.OrderResult{
		newResult("HOLD", "M1", " NAVY  BLUE ", entities.DateOf(draftDay)),
		newResult("PAST", "M2", "RED", entities.DateOf(draftDay)),
		newResult("NONE", "M3", "RED", entities.DateOf(draftDay)),
		newResult("SHORT", "M1", "NAVY BLUE", entities.Unavailable()),
	}

	gated, err := gate.Apply(context.Background(), results)
	require.NoError(t, err)
	require.Len(t, gated, 4)

	assert.Equal(t, "HOLD", gated[0].Order.ID)
	require.NotNil(t, gated[0].LotStatus)
	assert.Equal(t, entities.LotStatusExpired, gated[0].LotStatus.Status, "first matching row governs")
	assert.Equal(t, entities.DateOf(entities.AddDays(draftDay, 5)), gated[0].SecondETD)
	assert.Equal(t, entities.DateOf(draftDay), gated[0].DraftETD)

	assert.Equal(t, entities.DateOf(draftDay), gated[1].SecondETD)
	require.NotNil(t, gated[1].LotStatus)

	assert.Nil(t, gated[2].LotStatus)
	assert.Equal(t, entities.DateOf(draftDay), gated[2].SecondETD)

	assert.False(t, gated[3].SecondETD.Known)

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, events.QualityHoldAppliedEvent, all[0].Type())
	assert.Equal(t, "HOLD", all[0].StreamID())
}

func newResult(id string, material entities.MaterialCode, color string, draft entities.PlanDate) entities.OrderResult {
	return entities.OrderResult{
		Order: entities.PurchaseOrder{
			ID:           id,
			Material:     material,
			ColorKey:     entities.NormalizeColorKey(color),
			RequestedQty: decimal.NewFromInt(100),
			CHD:          entities.AddDays(draftDay, 20),
		},
		DraftETD:      draft,
		SecondETD:     draft,
		FinalQuantity: decimal.NewFromInt(100),
		FinalETD:      entities.Unavailable(),
	}
}

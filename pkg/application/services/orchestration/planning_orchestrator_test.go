package orchestration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/infrastructure/events"
	testinghelpers "github.com/vsinha/etd/pkg/infrastructure/testing"
	"github.com/vsinha/etd/pkg/interfaces/cli/output"
	"github.com/vsinha/etd/pkg/logger"
)

var today = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return entities.AddDays(today, n)
}

func buildInput() *dto.PlanningInput {
	qty := func(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }
	return &dto.PlanningInput{
		StockRows: []entities.StockRow{
			{SourceRow: 2, Material: "M1", ArrivalDate: today, Quantity: qty(500)},
			{SourceRow: 3, Material: "M1", ArrivalDate: day(10), Quantity: qty(800)},
			{SourceRow: 4, Material: "M2", ArrivalDate: day(45), Quantity: qty(2000)},
			{SourceRow: 5, Material: "M3", ArrivalDate: day(5)},
		},
		PurchaseOrders: []entities.PurchaseOrder{
			{ID: "PO-1", Material: "M1", ColorKey: "BLACK", RequestedQty: decimal.NewFromInt(500), CHD: day(60)},
			{ID: "PO-2", Material: "M1", ColorKey: "BLACK", RequestedQty: decimal.NewFromInt(500), CHD: day(70)},
			{ID: "PO-3", Material: "M2", ColorKey: "WHITE", RequestedQty: decimal.NewFromInt(1500), CHD: day(80), IsForecasted: true},
			{ID: "PO-4", Material: "M1", ColorKey: "BLACK", RequestedQty: decimal.NewFromInt(900), CHD: day(90)},
		},
		LotStatuses: []entities.LotStatus{
			{Material: "M1", ColorKey: "BLACK", Status: entities.LotStatusExpired, DueDate: day(55)},
		},
		CapacityDays: []entities.CapacityDay{
			{SourceRow: 2, Date: day(15), Remaining: decimal.NewFromInt(-1000)},
			{SourceRow: 3, Date: day(16), Remaining: decimal.NewFromInt(-1000)},
			{SourceRow: 4, Date: day(16), Remaining: decimal.NewFromInt(5000)},
		},
		Excluded: []entities.ExcludedRow{{Sheet: "PO", Row: 9, Reason: "missing po id"}},
	}
}

func newOrchestrator(t *testing.T) *PlanningOrchestrator {
	orchestrator, err := NewPlanningOrchestrator(entities.DefaultPlanningParameters(today), logger.Nop())
	require.NoError(t, err)
	return orchestrator
}

func TestNewPlanningOrchestrator_InvalidParameters(t *testing.T) {
	params := entities.DefaultPlanningParameters(today)
	params.SplitThreshold = decimal.Zero

	_, err := NewPlanningOrchestrator(params, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrInvalidParameters)
}

func TestPlanningOrchestrator_Run(t *testing.T) {
	result, err := newOrchestrator(t).Run(context.Background(), buildInput())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.DraftResults, 4)
	require.Len(t, result.FinalResults, 4)

	// forecasted PO-3 allocates first
	assert.Equal(t, "PO-3", result.DraftResults[0].Order.ID)
	assert.Equal(t, entities.DateOf(day(85)), result.DraftResults[0].DraftETD)

	byID := map[string]entities.OrderResult{}
	for _, r := range result.FinalResults {
		byID[r.Order.ID] = r
	}

	po1 := byID["PO-1"]
	assert.Equal(t, entities.DateOf(day(40)), po1.DraftETD)
	assert.Equal(t, entities.DateOf(day(55)), po1.SecondETD, "expired lot pushes the ETD to its due date")
	require.NotNil(t, po1.LotStatus)

	po2 := byID["PO-2"]
	assert.Equal(t, entities.DateOf(day(50)), po2.DraftETD)
	assert.Equal(t, entities.DateOf(day(55)), po2.SecondETD)

	po4 := byID["PO-4"]
	assert.False(t, po4.DraftETD.Known)
	assert.False(t, po4.FinalETD.Known)
	assert.Equal(t, "PO-4", result.FinalResults[3].Order.ID, "unavailable ETDs schedule last")

	require.NotNil(t, po1.FirstSplit)
	assert.Equal(t, day(0), po1.FirstSplit.Date, "lookback window opens before the 2nd ETD target")
	assert.Equal(t, entities.DateOf(day(40)), po1.FinalETD)

	po3 := byID["PO-3"]
	require.NotNil(t, po3.FirstSplit)
	require.NotNil(t, po3.SecondSplit)
	assert.Equal(t, day(15), po3.FirstSplit.Date)
	assert.Equal(t, day(16), po3.SecondSplit.Date)
	assert.Equal(t, entities.DateOf(day(56)), po3.FinalETD)

	assert.Equal(t, 3, result.Scheduled())
	assert.Equal(t, 1, result.Shortages())

	require.Len(t, result.Excluded, 3)
	assert.Equal(t, "PO", result.Excluded[0].Sheet)
	assert.Equal(t, entities.ExcludedRow{Sheet: "Stock", Row: 5, Reason: "missing quantity"}, result.Excluded[1])
	assert.Equal(t, "Capacity Status", result.Excluded[2].Sheet)
	assert.Equal(t, 4, result.Excluded[2].Row)

	require.Len(t, result.RemainingStock, 2)
	assert.Equal(t, entities.MaterialCode("M1"), result.RemainingStock[0].Material)
	assert.True(t, result.RemainingStock[0].OnHand.IsZero())
	assert.Empty(t, result.RemainingStock[0].Incoming)
	assert.True(t, decimal.NewFromInt(500).Equal(result.RemainingStock[1].Incoming[0].Quantity))

	types := map[string]int{}
	for _, event := range result.Events {
		types[event.Type()]++
	}
	assert.Equal(t, 3, types[events.MaterialAllocatedEvent])
	assert.Equal(t, 1, types[events.MaterialShortageEvent])
	assert.Equal(t, 2, types[events.QualityHoldAppliedEvent])
	assert.Equal(t, 3, types[events.ProductionScheduledEvent])
	assert.Equal(t, 1, types[events.ProductionUnscheduledEvent])
	assert.Equal(t, types, result.EventCounts, "subscribed counter sees every recorded event")
}

func TestPlanningOrchestrator_RunIsRepeatable(t *testing.T) {
	orchestrator := newOrchestrator(t)

	first, err := orchestrator.Run(context.Background(), buildInput())
	require.NoError(t, err)
	second, err := orchestrator.Run(context.Background(), buildInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.DraftResults, second.DraftResults)
	assert.Equal(t, first.FinalResults, second.FinalResults)
	assert.Equal(t, first.Capacity, second.Capacity)
}

func TestPlanningOrchestrator_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newOrchestrator(t).Run(ctx, buildInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanningOrchestrator_RunNilInput(t *testing.T) {
	_, err := newOrchestrator(t).Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestPlanningOrchestrator_FabricScenarioProperties(t *testing.T) {
	input := testinghelpers.BuildFabricTestData(today)
	params := entities.DefaultPlanningParameters(today)

	result, err := newOrchestrator(t).Run(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, result.FinalResults, len(input.PurchaseOrders))

	// conservation per material
	initial := map[entities.MaterialCode]decimal.Decimal{}
	for _, row := range input.StockRows {
		initial[row.Material] = initial[row.Material].Add(row.Quantity.Decimal)
	}
	allocated := map[entities.MaterialCode]decimal.Decimal{}
	for _, event := range result.Events {
		switch data := event.Data().(type) {
		case events.MaterialAllocated:
			allocated[data.Material] = allocated[data.Material].Add(data.Requested)
		case events.MaterialShortage:
			allocated[data.Material] = allocated[data.Material].Add(data.Consumed)
		}
	}
	for _, stock := range result.RemainingStock {
		remaining := stock.OnHand
		for _, batch := range stock.Incoming {
			remaining = remaining.Add(batch.Quantity)
		}
		assert.True(t, initial[stock.Material].Equal(remaining.Add(allocated[stock.Material])),
			"material %s is not conserved", stock.Material)
	}

	for _, day := range result.Capacity {
		assert.True(t, day.Remaining.GreaterThanOrEqual(params.MinCapacityRemain),
			"capacity on %s below floor", day.Date.Format(entities.DateLayout))
	}

	seenUnavailable := false
	for _, r := range result.FinalResults {
		if !r.SecondETD.Known {
			seenUnavailable = true
			assert.False(t, r.FinalETD.Known)
			assert.Nil(t, r.FirstSplit)
			continue
		}
		assert.False(t, seenUnavailable, "concrete 2nd ETDs schedule before unavailable ones")
		assert.False(t, r.SecondETD.Before(r.DraftETD), "the quality gate never moves an ETD earlier")

		if !r.FinalETD.Known {
			continue
		}
		require.NotNil(t, r.FirstSplit)
		total := r.FirstSplit.Quantity
		if r.SecondSplit != nil {
			assert.True(t, r.Order.RequestedQty.GreaterThanOrEqual(params.SplitThreshold))
			assert.Equal(t, entities.AddDays(r.FirstSplit.Date, 1), r.SecondSplit.Date)
			total = total.Add(r.SecondSplit.Quantity)
		}
		assert.True(t, total.Equal(r.Order.RequestedQty), "po %s splits do not sum to the request", r.Order.ID)
		assert.Equal(t, r.CompletionDate().AddDays(params.LeadTimeDays), r.FinalETD)
		assert.False(t, r.FirstSplit.Date.Before(today))
	}

	byID := map[string]entities.OrderResult{}
	for _, r := range result.FinalResults {
		byID[r.Order.ID] = r
	}
	assert.Equal(t, entities.DateOf(entities.AddDays(today, 80)), byID["PO-2002-A"].SecondETD,
		"color keys match after whitespace is collapsed")
	assert.Equal(t, byID["PO-2002-B"].DraftETD, byID["PO-2002-B"].SecondETD)
	assert.False(t, byID["PO-4004-A"].DraftETD.Known, "material without stock is unavailable")
}

func TestPlanningOrchestrator_SimpleScenario(t *testing.T) {
	result, err := newOrchestrator(t).Run(context.Background(), testinghelpers.BuildSimpleTestData(today))
	require.NoError(t, err)

	require.Len(t, result.FinalResults, 1)
	r := result.FinalResults[0]
	assert.Equal(t, entities.DateOf(day(40)), r.DraftETD)
	assert.Equal(t, r.DraftETD, r.SecondETD)
	require.True(t, r.FinalETD.Known)
	require.NotNil(t, r.FirstSplit)
	assert.Nil(t, r.SecondSplit)
	assert.True(t, r.FirstSplit.Quantity.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, r.CompletionDate().AddDays(40), r.FinalETD)
	assert.Equal(t, 1, result.Scheduled())
	assert.Zero(t, result.Shortages())
}

func TestPlanningOrchestrator_DraftResultsCarryLotStatus(t *testing.T) {
	result, err := newOrchestrator(t).Run(context.Background(), buildInput())
	require.NoError(t, err)

	ids := make([]string, len(result.DraftResults))
	for i, r := range result.DraftResults {
		ids[i] = r.Order.ID
	}
	assert.Equal(t, []string{"PO-3", "PO-1", "PO-2", "PO-4"}, ids, "draft results stay in allocation order")

	po1 := result.DraftResults[1]
	require.NotNil(t, po1.LotStatus)
	assert.Equal(t, entities.LotStatusExpired, po1.LotStatus.Status)
	assert.Equal(t, entities.DateOf(day(40)), po1.DraftETD)
	assert.Equal(t, entities.DateOf(day(55)), po1.SecondETD)

	table := output.DraftETDTable(result)
	require.Len(t, table.Rows, 4)
	row := table.Rows[1]
	assert.Equal(t, "PO-1", row[4])
	assert.Equal(t, "2025-04-10", row[13])
	assert.Equal(t, "EXPIRED", row[14])
	assert.Equal(t, "2025-04-25", row[15])
	assert.Equal(t, "2025-04-25", row[16])
}

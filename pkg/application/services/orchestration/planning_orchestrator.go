package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/application/services/allocation"
	"github.com/vsinha/etd/pkg/application/services/quality"
	"github.com/vsinha/etd/pkg/application/services/scheduling"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/infrastructure/events"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/etd/pkg/logger"
)

// PlanningOrchestrator runs the draft, quality and final ETD passes over one
// planning input. Each run builds fresh ledgers, so repeated runs over the
// same input produce the same results.
type PlanningOrchestrator struct {
	params entities.PlanningParameters
	log    *logger.Logger
}

// NewPlanningOrchestrator creates a new planning orchestrator
func NewPlanningOrchestrator(params entities.PlanningParameters, log *logger.Logger) (*PlanningOrchestrator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PlanningOrchestrator{params: params, log: log}, nil
}

// Run performs the three passes in sequence and collects the results
func (po *PlanningOrchestrator) Run(ctx context.Context, input *dto.PlanningInput) (*dto.PlanningResult, error) {
	if input == nil {
		return nil, fmt.Errorf("no planning input provided")
	}

	started := time.Now()
	runID := uuid.NewString()
	log := po.log.With("run_id", runID)
	log.Info().
		Str("today", po.params.Today.Format(entities.DateLayout)).
		Int("purchase_orders", len(input.PurchaseOrders)).
		Msg("starting ETD run")

	excluded := append([]entities.ExcludedRow(nil), input.Excluded...)

	stockLedger, stockExcluded := memory.NewStockLedger(po.params.Today, input.StockRows)
	excluded = append(excluded, stockExcluded...)

	capacityLedger, capacityExcluded := memory.NewCapacityLedger(
		po.params.CapacityTolerance, po.params.MinCapacityRemain, input.CapacityDays)
	excluded = append(excluded, capacityExcluded...)

	lots := memory.NewLotStatusRepository()
	if err := lots.LoadLotStatuses(input.LotStatuses); err != nil {
		return nil, fmt.Errorf("failed to load lot statuses: %w", err)
	}

	for _, row := range append(stockExcluded, capacityExcluded...) {
		log.Warn().Str("sheet", row.Sheet).Int("row", row.Row).Str("reason", row.Reason).Msg("row excluded")
	}

	eventStore := events.NewInMemoryEventStore()
	counter := events.NewCounter()
	if err := eventStore.Subscribe(events.PlanningEventTypes, counter); err != nil {
		return nil, fmt.Errorf("failed to subscribe event counter: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	drafts, err := allocation.NewMaterialAllocator(stockLedger, po.params, eventStore, log).
		Allocate(ctx, input.PurchaseOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate draft ETD: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gated, err := quality.NewQualityGate(lots, eventStore, log).Apply(ctx, drafts)
	if err != nil {
		return nil, fmt.Errorf("failed to apply lot status: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	final, err := scheduling.NewProductionScheduler(capacityLedger, po.params, eventStore, log).
		Schedule(ctx, gated)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule production: %w", err)
	}

	recorded, err := eventStore.ReadAllEvents(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read planning events: %w", err)
	}

	result := &dto.PlanningResult{
		RunID:          runID,
		Parameters:     po.params,
		DraftResults:   gated,
		FinalResults:   final,
		RemainingStock: allocation.RemainingStockReport(stockLedger, input.PurchaseOrders),
		Capacity:       capacityLedger.Days(),
		Excluded:       excluded,
		Events:         recorded,
		EventCounts:    counter.Counts(),
		Duration:       time.Since(started),
	}

	log.Info().
		Int("scheduled", result.Scheduled()).
		Int("shortages", result.Shortages()).
		Int("excluded", len(result.Excluded)).
		Dur("duration", result.Duration).
		Msg("ETD run finished")

	return result, nil
}

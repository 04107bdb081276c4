package allocation

import (
	"context"
	"fmt"
	"sort"

	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/domain/repositories"
	"github.com/vsinha/etd/pkg/infrastructure/events"
	"github.com/vsinha/etd/pkg/logger"
)

// MaterialAllocator computes draft ETDs by drawing each purchase order's
// request from the stock ledger in priority order
type MaterialAllocator struct {
	ledger     repositories.StockLedger
	params     entities.PlanningParameters
	eventStore events.EventStore
	log        *logger.Logger
}

// NewMaterialAllocator creates a new material allocator
func NewMaterialAllocator(
	ledger repositories.StockLedger,
	params entities.PlanningParameters,
	eventStore events.EventStore,
	log *logger.Logger,
) *MaterialAllocator {
	return &MaterialAllocator{
		ledger:     ledger,
		params:     params,
		eventStore: eventStore,
		log:        log,
	}
}

// PrioritizeForAllocation orders forecasted POs first, then by ascending CHD.
// Ties keep their input order.
func PrioritizeForAllocation(orders []entities.PurchaseOrder) []entities.PurchaseOrder {
	sorted := make([]entities.PurchaseOrder, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsForecasted != sorted[j].IsForecasted {
			return sorted[i].IsForecasted
		}
		return sorted[i].CHD.Before(sorted[j].CHD)
	})
	return sorted
}

// Allocate draws every order from the ledger and returns one result per order,
// in allocation order, with DraftETD set
func (a *MaterialAllocator) Allocate(ctx context.Context, orders []entities.PurchaseOrder) ([]entities.OrderResult, error) {
	a.log.Info().Int("orders", len(orders)).Msg("calculating draft ETD")

	results := make([]entities.OrderResult, 0, len(orders))
	shortages := 0
	for _, order := range PrioritizeForAllocation(orders) {
		consumption := a.ledger.Consume(order.Material, order.RequestedQty)
		draftETD := consumption.ReadyDate.AddDays(a.params.LeadTimeDays)

		var event events.Event
		if consumption.Fulfilled() {
			event = events.NewMaterialAllocatedEvent(order, consumption, draftETD)
		} else {
			shortages++
			event = events.NewMaterialShortageEvent(order, consumption)
		}
		if err := a.eventStore.AppendEvent(order.ID, event); err != nil {
			return nil, fmt.Errorf("failed to record allocation for po %s: %w", order.ID, err)
		}

		a.log.Debug().
			Str("po", order.ID).
			Str("material", string(order.Material)).
			Str("requested", order.RequestedQty.String()).
			Str("consumed", consumption.Consumed.String()).
			Stringer("draft_etd", draftETD).
			Msg("material allocated")

		results = append(results, entities.OrderResult{
			Order:         order,
			DraftETD:      draftETD,
			SecondETD:     draftETD,
			FinalQuantity: order.RequestedQty,
			FinalETD:      entities.Unavailable(),
		})
	}

	a.log.Info().Int("orders", len(results)).Int("shortages", shortages).Msg("draft ETD finished")
	return results, nil
}

package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/domain/repositories"
	"github.com/vsinha/etd/pkg/infrastructure/events"
	"github.com/vsinha/etd/pkg/logger"
)

const (
	reasonNoMaterialDate = "no material-ready date"
	reasonNoCapacity     = "no capacity within search horizon"
)

var two = decimal.NewFromInt(2)

// ProductionScheduler books each order on one production day, or two
// consecutive days for large orders, and derives the final ETD
type ProductionScheduler struct {
	ledger     repositories.CapacityLedger
	params     entities.PlanningParameters
	eventStore events.EventStore
	log        *logger.Logger
}

// NewProductionScheduler creates a new production scheduler
func NewProductionScheduler(
	ledger repositories.CapacityLedger,
	params entities.PlanningParameters,
	eventStore events.EventStore,
	log *logger.Logger,
) *ProductionScheduler {
	return &ProductionScheduler{
		ledger:     ledger,
		params:     params,
		eventStore: eventStore,
		log:        log,
	}
}

// PrioritizeForScheduling orders results by ascending 2nd ETD, then CHD, with
// unavailable ETDs last. Ties keep their input order.
func PrioritizeForScheduling(results []entities.OrderResult) []entities.OrderResult {
	sorted := make([]entities.OrderResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].SecondETD, sorted[j].SecondETD
		if !a.Equal(b) {
			return a.Before(b)
		}
		return sorted[i].Order.CHD.Before(sorted[j].Order.CHD)
	})
	return sorted
}

// Schedule books every result against the capacity ledger and returns them in
// scheduling order with split and final fields set
func (s *ProductionScheduler) Schedule(ctx context.Context, results []entities.OrderResult) ([]entities.OrderResult, error) {
	s.log.Info().Int("orders", len(results)).Msg("scheduling production and final ETD")

	scheduled := make([]entities.OrderResult, 0, len(results))
	unscheduled := 0
	for _, result := range PrioritizeForScheduling(results) {
		result.FirstSplit = nil
		result.SecondSplit = nil
		result.FinalQuantity = result.Order.RequestedQty
		result.FinalETD = entities.Unavailable()

		event := events.NewProductionUnscheduledEvent(result.Order, reasonNoMaterialDate)
		if result.SecondETD.Known {
			booked, err := s.book(&result)
			if err != nil {
				return nil, fmt.Errorf("failed to book po %s: %w", result.Order.ID, err)
			}
			if booked {
				result.FinalETD = result.CompletionDate().AddDays(s.params.LeadTimeDays)
				event = events.NewProductionScheduledEvent(result)
			} else {
				event = events.NewProductionUnscheduledEvent(result.Order, reasonNoCapacity)
			}
		}

		if !result.FinalETD.Known {
			unscheduled++
		}
		if err := s.eventStore.AppendEvent(result.Order.ID, event); err != nil {
			return nil, fmt.Errorf("failed to record schedule for po %s: %w", result.Order.ID, err)
		}

		s.log.Debug().
			Str("po", result.Order.ID).
			Stringer("second_etd", result.SecondETD).
			Stringer("final_etd", result.FinalETD).
			Msg("production scheduled")

		scheduled = append(scheduled, result)
	}

	s.log.Info().Int("orders", len(scheduled)).Int("unscheduled", unscheduled).Msg("final ETD finished")
	return scheduled, nil
}

// book scans candidate days from the look-back start to the horizon. Each day
// tries a whole-day commit first; orders at or above the split threshold then
// try half on that day and the rest on the next.
func (s *ProductionScheduler) book(result *entities.OrderResult) (bool, error) {
	qty := result.Order.RequestedQty
	today := s.params.Today
	target := entities.AddDays(result.SecondETD.Date, -s.params.LeadTimeDays)
	start := entities.MaxDate(today, entities.AddDays(target, -s.params.LookbackDays))
	limit := entities.AddDays(entities.MaxDate(target, today), s.params.HorizonDays)
	splittable := qty.GreaterThanOrEqual(s.params.SplitThreshold)

	for day := start; !day.After(limit); day = entities.AddDays(day, 1) {
		if s.ledger.CanCommit(day, qty) {
			if err := s.ledger.Commit(day, qty); err != nil {
				return false, err
			}
			result.FirstSplit = &entities.ProductionSplit{Quantity: qty, Date: day}
			return true, nil
		}

		if !splittable {
			continue
		}
		next := entities.AddDays(day, 1)
		if next.After(limit) {
			continue
		}
		first, second := splitQuantity(qty)
		if !s.ledger.CanCommit(day, first) || !s.ledger.CanCommit(next, second) {
			continue
		}
		if err := s.commitSplit(day, first, next, second); err != nil {
			return false, err
		}
		result.FirstSplit = &entities.ProductionSplit{Quantity: first, Date: day}
		result.SecondSplit = &entities.ProductionSplit{Quantity: second, Date: next}
		return true, nil
	}

	return false, nil
}

func (s *ProductionScheduler) commitSplit(day time.Time, first decimal.Decimal, next time.Time, second decimal.Decimal) error {
	if err := s.ledger.Commit(day, first); err != nil {
		return err
	}
	return s.ledger.Commit(next, second)
}

// splitQuantity halves qty rounding half to even; the two parts always sum to qty
func splitQuantity(qty decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	first := qty.Div(two).RoundBank(0)
	return first, qty.Sub(first)
}

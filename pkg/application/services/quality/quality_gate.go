package quality

import (
	"context"
	"fmt"

	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/domain/repositories"
	"github.com/vsinha/etd/pkg/infrastructure/events"
	"github.com/vsinha/etd/pkg/logger"
)

// QualityGate pushes draft ETDs later when the first production lot of the
// material and color is on hold past the draft date
type QualityGate struct {
	lots       repositories.LotStatusRepository
	eventStore events.EventStore
	log        *logger.Logger
}

// NewQualityGate creates a new quality gate
func NewQualityGate(lots repositories.LotStatusRepository, eventStore events.EventStore, log *logger.Logger) *QualityGate {
	return &QualityGate{
		lots:       lots,
		eventStore: eventStore,
		log:        log,
	}
}

// GatedETD returns the 2nd ETD for a draft ETD and its lot status, if any.
// Only an EXPIRED lot with a due date after the draft ETD moves the date.
func GatedETD(draftETD entities.PlanDate, status *entities.LotStatus) entities.PlanDate {
	if !draftETD.Known || status == nil {
		return draftETD
	}
	if status.Status != entities.LotStatusExpired || !status.HasDueDate() {
		return draftETD
	}
	dueDate := entities.Day(status.DueDate)
	if !dueDate.After(draftETD.Date) {
		return draftETD
	}
	return entities.DateOf(dueDate)
}

// Apply attaches the matching lot status to each result and sets SecondETD.
// Result order is preserved.
func (g *QualityGate) Apply(ctx context.Context, results []entities.OrderResult) ([]entities.OrderResult, error) {
	g.log.Info().Int("orders", len(results)).Msg("calculating 2nd ETD with 1st lot status")

	gated := make([]entities.OrderResult, len(results))
	holds := 0
	for i, result := range results {
		status, found := g.lots.Find(result.Order.Material, result.Order.ColorKey)
		if !found {
			status = nil
		}

		result.LotStatus = status
		result.SecondETD = GatedETD(result.DraftETD, status)

		if !result.SecondETD.Equal(result.DraftETD) {
			holds++
			if err := g.eventStore.AppendEvent(result.Order.ID,
				events.NewQualityHoldAppliedEvent(result.Order, result.DraftETD, *status)); err != nil {
				return nil, fmt.Errorf("failed to record quality hold for po %s: %w", result.Order.ID, err)
			}
			g.log.Debug().
				Str("po", result.Order.ID).
				Stringer("draft_etd", result.DraftETD).
				Stringer("second_etd", result.SecondETD).
				Msg("quality hold applied")
		}

		gated[i] = result
	}

	g.log.Info().Int("orders", len(gated)).Int("holds", holds).Msg("2nd ETD finished")
	return gated, nil
}

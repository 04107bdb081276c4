package dto

import (
	"time"

	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/infrastructure/events"
)

// PlanningInput is the canonical, schema-normalized content of one input
// workbook or scenario directory
type PlanningInput struct {
	StockRows      []entities.StockRow
	PurchaseOrders []entities.PurchaseOrder
	LotStatuses    []entities.LotStatus
	CapacityDays   []entities.CapacityDay
	Excluded       []entities.ExcludedRow
}

// PlanningResult contains the complete output of one ETD run
type PlanningResult struct {
	RunID          string                      `json:"run_id"`
	Parameters     entities.PlanningParameters `json:"parameters"`
	DraftResults   []entities.OrderResult      `json:"draft_results"`
	FinalResults   []entities.OrderResult      `json:"final_results"`
	RemainingStock []entities.RemainingStock   `json:"remaining_stock"`
	Capacity       []entities.CapacityDay      `json:"capacity"`
	Excluded       []entities.ExcludedRow      `json:"excluded"`
	Events         []events.Event              `json:"events,omitempty"`
	EventCounts    map[string]int              `json:"event_counts,omitempty"`
	Duration       time.Duration               `json:"duration"`
}

// Scheduled counts final results with a concrete final ETD
func (r *PlanningResult) Scheduled() int {
	count := 0
	for _, result := range r.FinalResults {
		if result.FinalETD.Known {
			count++
		}
	}
	return count
}

// Shortages counts draft results whose material could not be fully allocated
func (r *PlanningResult) Shortages() int {
	count := 0
	for _, result := range r.DraftResults {
		if !result.DraftETD.Known {
			count++
		}
	}
	return count
}

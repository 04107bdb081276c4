package events

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/domain/entities"
)

const (
	MaterialAllocatedEvent = "material.allocated"
	MaterialShortageEvent  = "material.shortage"

	QualityHoldAppliedEvent = "quality.hold.applied"

	ProductionScheduledEvent   = "production.scheduled"
	ProductionUnscheduledEvent = "production.unscheduled"
)

type MaterialAllocated struct {
	PurchaseOrderID string                `json:"po"`
	Material        entities.MaterialCode `json:"material"`
	Requested       decimal.Decimal       `json:"requested"`
	ReadyDate       time.Time             `json:"ready_date"`
	DraftETD        entities.PlanDate     `json:"draft_etd"`
}

type MaterialShortage struct {
	PurchaseOrderID string                `json:"po"`
	Material        entities.MaterialCode `json:"material"`
	Requested       decimal.Decimal       `json:"requested"`
	Consumed        decimal.Decimal       `json:"consumed"`
}

type QualityHoldApplied struct {
	PurchaseOrderID string                `json:"po"`
	Material        entities.MaterialCode `json:"material"`
	ColorKey        entities.ColorKey     `json:"color_key"`
	DraftETD        entities.PlanDate     `json:"draft_etd"`
	DueDate         time.Time             `json:"due_date"`
}

type ProductionScheduled struct {
	PurchaseOrderID string                     `json:"po"`
	Splits          []entities.ProductionSplit `json:"splits"`
	FinalETD        entities.PlanDate          `json:"final_etd"`
}

type ProductionUnscheduled struct {
	PurchaseOrderID string          `json:"po"`
	Requested       decimal.Decimal `json:"requested"`
	Reason          string          `json:"reason"`
}

func NewMaterialAllocatedEvent(order entities.PurchaseOrder, consumption entities.Consumption, draftETD entities.PlanDate) Event {
	return NewEvent(MaterialAllocatedEvent, order.ID, MaterialAllocated{
		PurchaseOrderID: order.ID,
		Material:        order.Material,
		Requested:       consumption.Requested,
		ReadyDate:       consumption.ReadyDate.Date,
		DraftETD:        draftETD,
	})
}

func NewMaterialShortageEvent(order entities.PurchaseOrder, consumption entities.Consumption) Event {
	return NewEvent(MaterialShortageEvent, order.ID, MaterialShortage{
		PurchaseOrderID: order.ID,
		Material:        order.Material,
		Requested:       consumption.Requested,
		Consumed:        consumption.Consumed,
	})
}

func NewQualityHoldAppliedEvent(order entities.PurchaseOrder, draftETD entities.PlanDate, status entities.LotStatus) Event {
	return NewEvent(QualityHoldAppliedEvent, order.ID, QualityHoldApplied{
		PurchaseOrderID: order.ID,
		Material:        order.Material,
		ColorKey:        order.ColorKey,
		DraftETD:        draftETD,
		DueDate:         status.DueDate,
	})
}

func NewProductionScheduledEvent(result entities.OrderResult) Event {
	splits := make([]entities.ProductionSplit, 0, 2)
	if result.FirstSplit != nil {
		splits = append(splits, *result.FirstSplit)
	}
	if result.SecondSplit != nil {
		splits = append(splits, *result.SecondSplit)
	}
	return NewEvent(ProductionScheduledEvent, result.Order.ID, ProductionScheduled{
		PurchaseOrderID: result.Order.ID,
		Splits:          splits,
		FinalETD:        result.FinalETD,
	})
}

func NewProductionUnscheduledEvent(order entities.PurchaseOrder, reason string) Event {
	return NewEvent(ProductionUnscheduledEvent, order.ID, ProductionUnscheduled{
		PurchaseOrderID: order.ID,
		Requested:       order.RequestedQty,
		Reason:          reason,
	})
}

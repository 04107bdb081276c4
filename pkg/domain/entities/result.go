package entities

import "github.com/shopspring/decimal"

// OrderResult carries a purchase order through the three planning passes
type OrderResult struct {
	Order         PurchaseOrder    `json:"order"`
	DraftETD      PlanDate         `json:"draft_etd"`
	LotStatus     *LotStatus       `json:"lot_status,omitempty"`
	SecondETD     PlanDate         `json:"second_etd"`
	FirstSplit    *ProductionSplit `json:"first_split,omitempty"`
	SecondSplit   *ProductionSplit `json:"second_split,omitempty"`
	FinalQuantity decimal.Decimal  `json:"final_quantity"`
	FinalETD      PlanDate         `json:"final_etd"`
}

// CompletionDate returns the last committed production day
func (r OrderResult) CompletionDate() PlanDate {
	switch {
	case r.SecondSplit != nil:
		return DateOf(r.SecondSplit.Date)
	case r.FirstSplit != nil:
		return DateOf(r.FirstSplit.Date)
	default:
		return Unavailable()
	}
}

// RemainingStock is one line of the remaining stock report
type RemainingStock struct {
	Material MaterialCode    `json:"material"`
	CPTName  string          `json:"cpt_name,omitempty"`
	OnHand   decimal.Decimal `json:"on_hand"`
	Incoming []StockBatch    `json:"incoming"`
}

// ExcludedRow records a source row dropped for data-quality reasons
type ExcludedRow struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderAttributes are descriptive PO columns carried verbatim to the output sheets
type OrderAttributes struct {
	SPL          string    `json:"spl,omitempty"`
	FGName       string    `json:"fg_name,omitempty"`
	Season       string    `json:"season,omitempty"`
	Market       string    `json:"market,omitempty"` // "Local/ Export"
	CPTName      string    `json:"cpt_name,omitempty"`
	Item         string    `json:"item,omitempty"`
	RawColor     string    `json:"color,omitempty"`
	CreationDate time.Time `json:"order_creation_date,omitempty"` // OCD
}

// PurchaseOrder is one PO line requesting fabric
type PurchaseOrder struct {
	ID           string          `json:"po"`
	Material     MaterialCode    `json:"material"`
	ColorKey     ColorKey        `json:"color_key"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
	CHD          time.Time       `json:"chd"`
	IsForecasted bool            `json:"forecasted"`
	Attributes   OrderAttributes `json:"attributes"`
	SourceRow    int             `json:"-"`
}

// NewPurchaseOrder creates a validated PurchaseOrder
func NewPurchaseOrder(
	id string,
	material MaterialCode,
	colorKey ColorKey,
	requestedQty decimal.Decimal,
	chd time.Time,
	isForecasted bool,
	attributes OrderAttributes,
) (*PurchaseOrder, error) {
	if id == "" {
		return nil, fmt.Errorf("po id cannot be empty")
	}
	if material == "" {
		return nil, fmt.Errorf("material cannot be empty")
	}
	if !requestedQty.IsPositive() {
		return nil, fmt.Errorf("requested quantity must be positive, got %s", requestedQty)
	}
	if chd.IsZero() {
		return nil, fmt.Errorf("customer handover date cannot be empty")
	}

	return &PurchaseOrder{
		ID:           id,
		Material:     material,
		ColorKey:     colorKey,
		RequestedQty: requestedQty,
		CHD:          Day(chd),
		IsForecasted: isForecasted,
		Attributes:   attributes,
	}, nil
}

package testing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/domain/entities"
)

// mustCreatePurchaseOrder is a helper for tests - panics on validation error
func mustCreatePurchaseOrder(
	id string,
	material entities.MaterialCode,
	color string,
	qty int64,
	chd time.Time,
	forecasted bool,
	cptName string,
) entities.PurchaseOrder {
	order, err := entities.NewPurchaseOrder(
		id,
		material,
		entities.NormalizeColorKey(color),
		decimal.NewFromInt(qty),
		chd,
		forecasted,
		entities.OrderAttributes{CPTName: cptName, RawColor: color},
	)
	if err != nil {
		panic(err)
	}
	return *order
}

// mustCreateStockBatch is a helper for tests - panics on validation error
func mustCreateStockBatch(material entities.MaterialCode, arrival time.Time, qty int64) entities.StockRow {
	batch, err := entities.NewStockBatch(material, arrival, decimal.NewFromInt(qty))
	if err != nil {
		panic(err)
	}
	return entities.StockRow{
		Material:    batch.Material,
		ArrivalDate: batch.ArrivalDate,
		Quantity:    decimal.NewNullDecimal(batch.Quantity),
	}
}

func capacityDay(date time.Time, remaining int64) entities.CapacityDay {
	return entities.CapacityDay{Date: entities.Day(date), Remaining: decimal.NewFromInt(remaining)}
}

// BuildFabricTestData builds a multi-material scenario anchored at today:
// scarce twill shared by several POs, a denim lot on quality hold, and a
// tight week of capacity that forces large orders to split
func BuildFabricTestData(today time.Time) *dto.PlanningInput {
	day := func(n int) time.Time { return entities.AddDays(entities.Day(today), n) }

	stock := []entities.StockRow{
		mustCreateStockBatch("1001", day(-10), 1200),
		mustCreateStockBatch("1001", day(7), 900),
		mustCreateStockBatch("1001", day(21), 1500),
		mustCreateStockBatch("2002", day(0), 3000),
		mustCreateStockBatch("3003", day(14), 400),
		mustCreateStockBatch("3003", day(3), 250),
	}

	orders := []entities.PurchaseOrder{
		mustCreatePurchaseOrder("PO-1001-A", "1001", "Navy", 800, day(75), false, "Twill 2/1"),
		mustCreatePurchaseOrder("PO-1001-B", "1001", "Navy", 1500, day(60), true, "Twill 2/1"),
		mustCreatePurchaseOrder("PO-1001-C", "1001", "Khaki", 1200, day(90), false, "Twill 2/1"),
		mustCreatePurchaseOrder("PO-1001-D", "1001", "Khaki", 900, day(95), false, "Twill 2/1"),
		mustCreatePurchaseOrder("PO-2002-A", "2002", "Indigo  Wash", 2400, day(70), false, "Denim 12oz"),
		mustCreatePurchaseOrder("PO-2002-B", "2002", "Black", 500, day(70), false, "Denim 12oz"),
		mustCreatePurchaseOrder("PO-3003-A", "3003", "White", 600, day(50), true, "Jersey"),
		mustCreatePurchaseOrder("PO-4004-A", "4004", "Red", 100, day(50), false, "Fleece"),
	}

	lots := []entities.LotStatus{
		{Material: "2002", ColorKey: "INDIGO WASH", Status: entities.LotStatusExpired, DueDate: day(80)},
		{Material: "2002", ColorKey: "Indigo Wash", Status: entities.LotStatusExpired, DueDate: day(80)},
		{Material: "2002", ColorKey: "Black", Status: entities.LotStatusOK},
		{Material: "1001", ColorKey: "Navy", Status: entities.LotStatusExpired, DueDate: day(20)},
	}

	var capacity []entities.CapacityDay
	for n := 0; n < 60; n++ {
		capacity = append(capacity, capacityDay(day(n), -800))
	}

	return &dto.PlanningInput{
		StockRows:      stock,
		PurchaseOrders: orders,
		LotStatuses:    lots,
		CapacityDays:   capacity,
	}
}

// BuildSimpleTestData builds a single-material scenario with one PO that
// on-hand stock covers
func BuildSimpleTestData(today time.Time) *dto.PlanningInput {
	return &dto.PlanningInput{
		StockRows: []entities.StockRow{mustCreateStockBatch("1001", today, 500)},
		PurchaseOrders: []entities.PurchaseOrder{
			mustCreatePurchaseOrder("PO-1", "1001", "Navy", 500, entities.AddDays(today, 60), false, "Twill"),
		},
	}
}

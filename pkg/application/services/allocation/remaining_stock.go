package allocation

import (
	"sort"

	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/domain/repositories"
)

// RemainingStockReport lists what is left in the ledger for every material
// found in stock or requested by a PO, sorted by material. The CPT name comes
// from the first PO of each material.
func RemainingStockReport(ledger repositories.StockLedger, orders []entities.PurchaseOrder) []entities.RemainingStock {
	cptNames := make(map[entities.MaterialCode]string)
	materials := make(map[entities.MaterialCode]bool)
	for _, material := range ledger.Materials() {
		materials[material] = true
	}
	for _, order := range orders {
		materials[order.Material] = true
		if _, seen := cptNames[order.Material]; !seen {
			cptNames[order.Material] = order.Attributes.CPTName
		}
	}

	codes := make([]entities.MaterialCode, 0, len(materials))
	for material := range materials {
		codes = append(codes, material)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	report := make([]entities.RemainingStock, 0, len(codes))
	for _, material := range codes {
		position := ledger.Position(material)
		incoming := make([]entities.StockBatch, 0, len(position.Incoming))
		for _, batch := range position.Incoming {
			if batch.Quantity.IsPositive() {
				incoming = append(incoming, batch)
			}
		}
		report = append(report, entities.RemainingStock{
			Material: material,
			CPTName:  cptNames[material],
			OnHand:   position.OnHand,
			Incoming: incoming,
		})
	}
	return report
}

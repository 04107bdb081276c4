package memory

import (
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/domain/repositories"
)

type lotKey struct {
	material entities.MaterialCode
	color    entities.ColorKey
}

// LotStatusRepository provides in-memory first-lot status lookups keyed by
// material and normalized color
type LotStatusRepository struct {
	statuses map[lotKey]entities.LotStatus
}

// NewLotStatusRepository creates a new in-memory lot status repository
func NewLotStatusRepository() *LotStatusRepository {
	return &LotStatusRepository{
		statuses: make(map[lotKey]entities.LotStatus),
	}
}

// Verify interface compliance
var _ repositories.LotStatusRepository = (*LotStatusRepository)(nil)

// LoadLotStatuses loads statuses in input order; the first row for a
// material and color governs
func (r *LotStatusRepository) LoadLotStatuses(statuses []entities.LotStatus) error {
	for _, status := range statuses {
		key := lotKey{material: status.Material, color: entities.NormalizeColorKey(string(status.ColorKey))}
		if _, exists := r.statuses[key]; exists {
			continue
		}
		r.statuses[key] = status
	}
	return nil
}

// Find returns the governing status for a material and color
func (r *LotStatusRepository) Find(material entities.MaterialCode, color entities.ColorKey) (*entities.LotStatus, bool) {
	status, exists := r.statuses[lotKey{material: material, color: entities.NormalizeColorKey(string(color))}]
	if !exists {
		return nil, false
	}
	return &status, true
}

// Size returns the number of distinct material and color keys
func (r *LotStatusRepository) Size() int {
	return len(r.statuses)
}

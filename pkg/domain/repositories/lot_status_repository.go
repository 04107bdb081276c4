package repositories

import "github.com/vsinha/etd/pkg/domain/entities"

// LotStatusRepository provides first-lot quality status lookups
type LotStatusRepository interface {
	Find(material entities.MaterialCode, color entities.ColorKey) (*entities.LotStatus, bool)
	LoadLotStatuses(statuses []entities.LotStatus) error
}

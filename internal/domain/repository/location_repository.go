package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
}

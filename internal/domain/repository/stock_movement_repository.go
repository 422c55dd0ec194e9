package repository

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para consultar la bitácora de movimientos.
type MovementFilter struct {
	VariantID  string
	LocationID string
	From       *time.Time
	To         *time.Time
}

// StockMovementRepository define el puerto de persistencia para la bitácora (DIP).
// Solo inserción y lectura: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
}

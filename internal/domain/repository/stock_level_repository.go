package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockLevelFilter filtros opcionales para listar niveles de stock.
type StockLevelFilter struct {
	VariantID  string
	LocationID string
}

// StockLevelDetail nivel de stock con variante, producto y ubicación
// resueltos en una sola consulta (feed principal del dashboard).
type StockLevelDetail struct {
	Level    entity.StockLevel
	Variant  entity.ProductVariant
	Product  entity.Product
	Location entity.Location
}

// StockLevelRepository define el puerto para el agregado derivado de stock (DIP).
// Las escrituras (GetForUpdate/Upsert) solo las invoca el motor de ledger
// dentro de una transacción.
type StockLevelRepository interface {
	// Get devuelve el nivel actual, o nil si nunca se ha almacenado stock del par.
	Get(variantID, locationID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Si el par no existe
	// materializa una fila en cero dentro de la transacción y la devuelve ya
	// bloqueada, para que el primer almacenamiento también quede serializado.
	GetForUpdate(variantID, locationID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	// ListDetailed lista niveles con variante/producto/ubicación anidados,
	// orden estable por id.
	ListDetailed(ctx context.Context, filter StockLevelFilter, limit, offset int) ([]StockLevelDetail, error)
}

package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// VariantWithProduct resultado crudo del listado de variantes con el nombre
// del producto resuelto (para mostrar en el dashboard sin segunda consulta).
type VariantWithProduct struct {
	Variant     entity.ProductVariant
	ProductName string
}

// VariantRepository define el puerto de persistencia para ProductVariant (DIP).
type VariantRepository interface {
	Create(variant *entity.ProductVariant) error
	GetByID(id string) (*entity.ProductVariant, error)
	GetByUniqueSKU(sku string) (*entity.ProductVariant, error)
	// List devuelve variantes ordenadas por nombre de producto, talla y color.
	List(limit, offset int) ([]VariantWithProduct, error)
	ListByProduct(productID string) ([]*entity.ProductVariant, error)
}

package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBaseSKU(baseSKU string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error // cascada a variantes (FK ON DELETE CASCADE)
}

package entity

import "time"

// Product representa una línea de producto del catálogo.
// El inventario no se lleva sobre el producto sino sobre sus variantes.
type Product struct {
	ID          string
	Name        string
	Description string
	BaseSKU     string // SKU base único de la línea, ej. "SKU-TSHIRT"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

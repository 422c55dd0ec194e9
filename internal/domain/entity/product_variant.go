package entity

import "time"

// ProductVariant es la unidad real que se rastrea en inventario:
// una combinación concreta de producto + talla + color con SKU propio.
// La tupla (ProductID, Size, Color) es única por producto.
type ProductVariant struct {
	ID        string
	ProductID string
	Size      string // opcional, ej. "M"
	Color     string // opcional, ej. "Azul"
	UniqueSKU string // SKU único de la variante, ej. "SKU-TSHIRT-M-AZU"
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "time"

// StockLevel es la cantidad actual de una variante en una ubicación.
// Es un agregado derivado: siempre debe ser igual a la suma de los
// QuantityChange de todos los movimientos de ese par (variante, ubicación).
// Lo escribe exclusivamente el motor de ledger; nunca un actor externo.
type StockLevel struct {
	ID         string
	VariantID  string
	LocationID string
	Quantity   int64 // nunca negativo
	UpdatedAt  time.Time
}

package entity

import "time"

// StockMovement es el registro inmutable de un cambio de stock:
// positivo = entrada (compra, reposición), negativo = salida (venta, merma).
// Bitácora append-only; nunca se actualiza ni se borra en operación normal.
type StockMovement struct {
	ID             string
	VariantID      string
	LocationID     string
	QuantityChange int64     // con signo; cero se acepta como no-op
	Timestamp      time.Time // asignado por el servidor al crear
	Notes          string    // ej. "Venta Tienda Física, boleta #1234"
}

package entity

import "time"

// Location representa un lugar físico donde puede haber stock
// (ej. "Tienda Física", "Bodega Principal"). Name es único.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

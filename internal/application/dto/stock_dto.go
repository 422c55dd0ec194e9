package dto

import "time"

// ApplyMovementRequest body para POST /stock-movements/.
// El timestamp lo asigna siempre el servidor; si el cliente lo envía se ignora.
type ApplyMovementRequest struct {
	VariantID      string `json:"variant_id"`
	LocationID     string `json:"location_id"`
	QuantityChange int64  `json:"quantity_change"`
	Notes          string `json:"notes,omitempty"`
}

// MovementResponse salida de un movimiento persistido.
type MovementResponse struct {
	ID             string    `json:"id"`
	VariantID      string    `json:"variant_id"`
	LocationID     string    `json:"location_id"`
	QuantityChange int64     `json:"quantity_change"`
	Timestamp      time.Time `json:"timestamp"`
	Notes          string    `json:"notes,omitempty"`
}

// MovementListResponse bitácora paginada, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockLevelVariantDTO variante anidada dentro de un nivel de stock.
type StockLevelVariantDTO struct {
	ID        string          `json:"id"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	UniqueSKU string          `json:"unique_sku"`
	Product   ProductResponse `json:"product"`
}

// StockLevelResponse nivel de stock con variante/producto/ubicación anidados
// (feed principal del dashboard, resuelto en una sola consulta con joins).
type StockLevelResponse struct {
	ID        string               `json:"id"`
	Quantity  int64                `json:"quantity"`
	UpdatedAt time.Time            `json:"updated_at"`
	Variant   StockLevelVariantDTO `json:"product_variant"`
	Location  LocationResponse     `json:"location"`
}

// StockLevelListResponse listado de niveles actuales.
type StockLevelListResponse struct {
	Items []StockLevelResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

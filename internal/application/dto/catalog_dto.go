package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description"`
	BaseSKU     string `json:"base_sku" validate:"required,min=1,max=100"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BaseSKU     string    `json:"base_sku"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateVariantRequest entrada para crear una variante de producto.
type CreateVariantRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	UniqueSKU string `json:"unique_sku" validate:"required,min=1,max=100"`
}

// VariantResponse salida de una variante. ProductName se resuelve en listados.
type VariantResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Size        string    `json:"size,omitempty"`
	Color       string    `json:"color,omitempty"`
	UniqueSKU   string    `json:"unique_sku"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VariantListResponse lista paginada de variantes (orden: producto, talla, color).
type VariantListResponse struct {
	Items []VariantResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse lista de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

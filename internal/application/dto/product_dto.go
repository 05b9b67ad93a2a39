package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock > 0
// genera un ajuste IN con referencia INITIAL como primer movimiento del libro.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID   string          `json:"supplier_id" validate:"omitempty,uuid"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	UnitMeasure  string          `json:"unit_measure"`
	InitialStock int64           `json:"initial_stock" validate:"omitempty,min=0"`
	MinimumStock int64           `json:"minimum_stock" validate:"omitempty,min=0"`
	ReorderPoint int64           `json:"reorder_point" validate:"omitempty,min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se
// maneja solo vía movimientos, nunca aquí).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id"`
	SupplierID  *string          `json:"supplier_id"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	UnitMeasure *string          `json:"unit_measure"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id,omitempty"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	UnitMeasure string          `json:"unit_measure"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

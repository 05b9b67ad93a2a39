package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/adjustments.
// Quantity es magnitud positiva para IN/OUT/TRANSFER; para ADJUST es un
// delta firmado (negativo para disminuir).
type AdjustStockRequest struct {
	ProductID     string           `json:"product_id" validate:"required,uuid"`
	Type          string           `json:"type" validate:"required,oneof=IN OUT ADJUST TRANSFER"`
	Quantity      int64            `json:"quantity" validate:"required"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// StockAccountResponse salida de la cuenta de stock de un producto.
type StockAccountResponse struct {
	ProductID        string    `json:"product_id"`
	CurrentStock     int64     `json:"current_stock"`
	ReservedStock    int64     `json:"reserved_stock"`
	AvailableStock   int64     `json:"available_stock"` // derivado: current - reserved
	MinimumStock     int64     `json:"minimum_stock"`
	MaximumStock     *int64    `json:"maximum_stock,omitempty"`
	ReorderPoint     int64     `json:"reorder_point"`
	LastStockCheckAt time.Time `json:"last_stock_check_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Type          string           `json:"type"`
	Quantity      int64            `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}

// AdjustStockResponse salida del ajuste: stock anterior y nuevo para que el
// cliente muestre el delta sin una segunda lectura.
type AdjustStockResponse struct {
	PreviousStock int64                `json:"previous_stock"`
	NewStock      int64                `json:"new_stock"`
	Account       StockAccountResponse `json:"account"`
	Movement      MovementResponse     `json:"movement"`
}

// UpdateThresholdsRequest body para PUT /api/stock/thresholds/:productID.
// Solo toca umbrales; nunca CurrentStock ni el libro.
type UpdateThresholdsRequest struct {
	MinimumStock *int64 `json:"minimum_stock" validate:"omitempty,min=0"`
	MaximumStock *int64 `json:"maximum_stock" validate:"omitempty,min=0"`
	ReorderPoint *int64 `json:"reorder_point" validate:"omitempty,min=0"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LowStockItem tupla producto + cuenta + alerta para los listados de stock bajo.
type LowStockItem struct {
	Product ProductResponse       `json:"product"`
	Account *StockAccountResponse `json:"account,omitempty"`
	Alert   string                `json:"alert,omitempty"` // OUT_OF_STOCK, REORDER_POINT, LOW_STOCK
}

// LowStockListResponse productos con alerta, orden ascendente por stock actual.
type LowStockListResponse struct {
	Items []LowStockItem `json:"items"`
	Page  PageResponse   `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest renglón de una orden de compra.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
// El número (PUR-YYYYMMDD-SEQ) lo asigna el servidor.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id" validate:"required,uuid"`
	ExpectedAt *time.Time                 `json:"expected_at,omitempty"`
	Notes      string                     `json:"notes,omitempty"`
	Items      []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderItemResponse renglón en respuestas.
type PurchaseOrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Number     string                      `json:"number"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	OrderDate  time.Time                   `json:"order_date"`
	ExpectedAt *time.Time                  `json:"expected_at,omitempty"`
	ReceivedAt *time.Time                  `json:"received_at,omitempty"`
	NetTotal   decimal.Decimal             `json:"net_total"`
	TaxTotal   decimal.Decimal             `json:"tax_total"`
	GrandTotal decimal.Decimal             `json:"grand_total"`
	Notes      string                      `json:"notes,omitempty"`
	CreatedBy  string                      `json:"created_by"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
	Items      []PurchaseOrderItemResponse `json:"items,omitempty"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

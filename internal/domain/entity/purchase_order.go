package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderDraft     = "draft"
	PurchaseOrderOrdered   = "ordered"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// Number se asigna al crear con el generador de consecutivos (PUR-YYYYMMDD-SEQ).
type PurchaseOrder struct {
	ID         string
	Number     string
	SupplierID string
	Status     string // draft, ordered, received, cancelled
	OrderDate  time.Time
	ExpectedAt *time.Time
	ReceivedAt *time.Time
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderItem es un renglón de la orden.
type PurchaseOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
	TaxRate   decimal.Decimal
	TotalCost decimal.Decimal // Quantity * UnitCost
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados comunes de entidades con borrado lógico.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product representa un producto o SKU del catálogo.
// El stock NO vive aquí: se maneja en StockAccount y se muta solo vía movimientos.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	CategoryID  string          // vacío si no tiene categoría
	SupplierID  string          // proveedor habitual, vacío si no aplica
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de compra de referencia
	UnitMeasure string
	Status      string // active, inactive (borrado lógico)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

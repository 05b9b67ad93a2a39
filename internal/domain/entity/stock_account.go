package entity

import "time"

// StockAccount es la cuenta de stock de un producto (1:1, creada perezosamente).
// CurrentStock es la cantidad autoritativa en bodega y nunca puede ser negativa.
// Se muta exclusivamente a través del motor de ajustes (nunca por edición directa);
// los umbrales se editan por separado y no tocan CurrentStock.
type StockAccount struct {
	ProductID        string
	CurrentStock     int64
	ReservedStock    int64 // apartado pero no descontado; la lógica de reservas no lo decrementa aún
	MinimumStock     int64
	MaximumStock     *int64 // opcional; no se valida contra MinimumStock
	ReorderPoint     int64
	LastStockCheckAt time.Time // se actualiza solo cuando un ajuste muta CurrentStock
	UpdatedAt        time.Time
}

// AvailableStock es la cantidad disponible (derivada, no se persiste).
func (a *StockAccount) AvailableStock() int64 {
	return a.CurrentStock - a.ReservedStock
}

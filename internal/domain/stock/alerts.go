// Package stock contiene los servicios de dominio del libro de stock:
// clasificación de alertas por umbrales y la aritmética de reproducción
// del libro de movimientos.
package stock

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// AlertType es el estado de alerta derivado de una cuenta de stock.
type AlertType string

// Estados de alerta en orden de severidad.
const (
	AlertNone         AlertType = ""
	AlertOutOfStock   AlertType = "OUT_OF_STOCK"
	AlertReorderPoint AlertType = "REORDER_POINT"
	AlertLowStock     AlertType = "LOW_STOCK"
)

// Classify deriva la alerta de una cuenta de stock. Precedencia fija
// (la primera condición que aplica gana): agotado, punto de reorden,
// stock mínimo. Un producto puede estar a la vez bajo su punto de reorden
// y bajo su mínimo; el caller necesita una sola etiqueta.
// Nunca se almacena: se recalcula en cada lectura porque stock y umbrales
// cambian de forma independiente.
// Una cuenta inexistente equivale a una cuenta en ceros: el producto nunca
// ha recibido stock, así que está agotado.
func Classify(account *entity.StockAccount) AlertType {
	if account == nil {
		return AlertOutOfStock
	}
	switch {
	case account.CurrentStock <= 0:
		return AlertOutOfStock
	case account.CurrentStock <= account.ReorderPoint:
		return AlertReorderPoint
	case account.CurrentStock <= account.MinimumStock:
		return AlertLowStock
	}
	return AlertNone
}

// Replay reproduce los movimientos en orden de creación desde un stock inicial
// de cero y devuelve el saldo resultante. Es la ley de conservación del libro:
// el resultado debe coincidir exactamente con CurrentStock de la cuenta.
func Replay(movements []*entity.StockMovement) int64 {
	var balance int64
	for _, m := range movements {
		balance += m.Delta()
	}
	return balance
}

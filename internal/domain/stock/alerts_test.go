package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Classify: la precedencia importa porque un producto puede estar a la vez
// agotado, bajo el punto de reorden y bajo el mínimo. El caller recibe UNA
// etiqueta: agotado > reorden > mínimo.
// ──────────────────────────────────────────────────────────────────────────────

func account(current, minimum, reorder int64) *entity.StockAccount {
	return &entity.StockAccount{
		ProductID:    "p1",
		CurrentStock: current,
		MinimumStock: minimum,
		ReorderPoint: reorder,
	}
}

func TestClassify_Precedencia(t *testing.T) {
	cases := []struct {
		name     string
		acc      *entity.StockAccount
		expected stock.AlertType
	}{
		{"stock cero", account(0, 5, 10), stock.AlertOutOfStock},
		{"stock negativo defensivo", account(-3, 5, 10), stock.AlertOutOfStock},
		{"en el punto de reorden", account(10, 5, 10), stock.AlertReorderPoint},
		{"bajo el punto de reorden", account(7, 5, 10), stock.AlertReorderPoint},
		{"bajo mínimo con reorden menor", account(4, 5, 2), stock.AlertLowStock},
		{"en el mínimo con reorden menor", account(5, 5, 2), stock.AlertLowStock},
		{"stock sano", account(50, 5, 10), stock.AlertNone},
		{"umbral cero sin stock cero", account(1, 0, 0), stock.AlertNone},
		{"cuenta nil equivale a cuenta en ceros", nil, stock.AlertOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stock.Classify(tc.acc))
		})
	}
}

// Nunca debe devolver LOW_STOCK cuando el stock está en o bajo el punto de
// reorden, ni REORDER_POINT cuando está agotado.
func TestClassify_NuncaDegradaSeveridad(t *testing.T) {
	// agotado Y bajo reorden Y bajo mínimo → OUT_OF_STOCK
	assert.Equal(t, stock.AlertOutOfStock, stock.Classify(account(0, 100, 100)))
	// bajo reorden Y bajo mínimo → REORDER_POINT
	assert.Equal(t, stock.AlertReorderPoint, stock.Classify(account(3, 100, 100)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Replay: reproducir el libro desde cero reproduce el saldo.
// ──────────────────────────────────────────────────────────────────────────────

func TestReplay_Conservacion(t *testing.T) {
	movements := []*entity.StockMovement{
		{Type: entity.MovementTypeIN, Quantity: 100},
		{Type: entity.MovementTypeOUT, Quantity: 30},
		{Type: entity.MovementTypeADJUST, Quantity: -15}, // delta firmado
		{Type: entity.MovementTypeTRANSFER, Quantity: 20},
		{Type: entity.MovementTypeADJUST, Quantity: 5},
	}
	assert.Equal(t, int64(40), stock.Replay(movements))
}

func TestReplay_LibroVacio(t *testing.T) {
	assert.Equal(t, int64(0), stock.Replay(nil))
}

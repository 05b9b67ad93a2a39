package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/stock"
)

func TestWeightedAverageCost(t *testing.T) {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	// 10 unidades a 100 + 10 unidades a 200 = promedio 150
	got := stock.WeightedAverageCost(10, d("100"), 10, d("200"))
	assert.True(t, got.Equal(d("150")), "promedio esperado 150, obtuvo %s", got)

	// Entrada sobre stock cero toma el costo de la entrada
	got = stock.WeightedAverageCost(0, d("0"), 5, d("80"))
	assert.True(t, got.Equal(d("80")))

	// Sin stock ni entrada no hay división: cero
	got = stock.WeightedAverageCost(0, d("100"), 0, d("50"))
	assert.True(t, got.Equal(decimal.Zero))
}

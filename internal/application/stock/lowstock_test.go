package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	domstock "github.com/jhoicas/almacen-api/internal/domain/stock"
)

func alertedRow(productID string, account *entity.StockAccount) *repository.ProductWithAccount {
	return &repository.ProductWithAccount{
		Product: activeProduct(productID),
		Account: account,
	}
}

// List usa el listado ya filtrado por alerta: cada fila recibe su etiqueta y
// Total cuenta solo productos alertados (no el total del catálogo).
func TestLowStockList_EtiquetaYTotal(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.alerted = []*repository.ProductWithAccount{
		alertedRow("A", &entity.StockAccount{ProductID: "A", CurrentStock: 0, MinimumStock: 5}),
		alertedRow("B", &entity.StockAccount{ProductID: "B", CurrentStock: 3, MinimumStock: 2, ReorderPoint: 4}),
		alertedRow("C", &entity.StockAccount{ProductID: "C", CurrentStock: 4, MinimumStock: 5}),
	}
	repo.alertedTotal = 7 // hay más alertados en páginas siguientes

	uc := appstock.NewLowStockUseCase(repo)
	out, err := uc.List(context.Background(), 3, 0)
	require.NoError(t, err)

	require.Len(t, out.Items, 3)
	assert.Equal(t, string(domstock.AlertOutOfStock), out.Items[0].Alert)
	assert.Equal(t, string(domstock.AlertReorderPoint), out.Items[1].Alert)
	assert.Equal(t, string(domstock.AlertLowStock), out.Items[2].Alert)
	assert.Equal(t, 7, out.Page.Total, "Total cuenta alertados, no la página")
	assert.Equal(t, 3, out.Page.Limit)
}

// Un producto sin cuenta nunca ha recibido stock: el listado lo trae (stock
// implícito cero) y se etiqueta como agotado.
func TestLowStockList_ProductoSinCuentaEsAgotado(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.alerted = []*repository.ProductWithAccount{alertedRow("N", nil)}
	repo.alertedTotal = 1

	uc := appstock.NewLowStockUseCase(repo)
	out, err := uc.List(context.Background(), 20, 0)
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, string(domstock.AlertOutOfStock), out.Items[0].Alert)
	assert.Nil(t, out.Items[0].Account)
}

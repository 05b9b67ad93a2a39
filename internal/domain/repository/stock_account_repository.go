package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductWithAccount es la tupla producto + cuenta usada por los listados de
// stock (alertas bajas, dashboard). La cuenta puede ser nil si el producto
// nunca ha tenido movimientos ni umbrales.
type ProductWithAccount struct {
	Product *entity.Product
	Account *entity.StockAccount
}

// StockAccountRepository define el puerto para la cuenta de stock por producto.
// Get/Upsert deben poder participar en la misma transacción que el insert del
// movimiento (pasar el repo atado a la tx vía TxRunner).
type StockAccountRepository interface {
	Get(productID string) (*entity.StockAccount, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para el
	// read-modify-write del motor de ajustes.
	GetForUpdate(productID string) (*entity.StockAccount, error)
	Upsert(account *entity.StockAccount) error
	// UpsertThresholds escribe SOLO las columnas de umbrales (mínimo, máximo,
	// punto de reorden) y updated_at, creando la cuenta con stock cero si no
	// existe. Nunca toca current_stock ni last_stock_check_at: un ajuste que
	// confirme entre la lectura y esta escritura no puede ser revertido.
	UpsertThresholds(account *entity.StockAccount) error
	// ListWithProducts devuelve productos activos con su cuenta (puede ser nil),
	// ordenados ascendente por stock actual.
	ListWithProducts(limit, offset int) ([]*ProductWithAccount, error)
	// ListAlerted devuelve solo los productos activos con alerta de stock
	// (agotados, en reorden o bajo mínimo) junto con el total para paginación.
	// El filtro va en la consulta para que la página venga completa.
	ListAlerted(limit, offset int) ([]*ProductWithAccount, int, error)
}

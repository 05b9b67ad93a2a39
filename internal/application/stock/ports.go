package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la escritura de la cuenta y el
// insert del movimiento son una sola unidad todo-o-nada: si el proceso cae a
// mitad de camino, ninguno de los dos cambios queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		accountRepo repository.StockAccountRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

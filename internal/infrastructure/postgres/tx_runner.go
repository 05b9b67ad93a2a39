package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción pgx, entregando
// repositorios de cuentas y movimientos ligados a esa transacción. El libro
// de movimientos y el saldo de la cuenta se escriben juntos o no se escriben.
type TxRunner struct {
	pool *pgxpool.Pool
}

var _ stock.TxRunner = (*TxRunner)(nil)

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) Run(ctx context.Context, fn func(accountRepo repository.StockAccountRepository, movementRepo repository.StockMovementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	accountRepo := NewStockAccountRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(accountRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transacción: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persistencia del libro de movimientos. El libro es
// append-only: este adaptador solo inserta y lee, nunca actualiza ni borra.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Acepta pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `
	id, product_id, movement_type, quantity, unit_cost,
	reference_type, COALESCE(reference_id, ''), notes, created_by, created_at`

func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			id, product_id, movement_type, quantity, unit_cost,
			reference_type, reference_id, notes, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.UnitCost, movement.ReferenceType, movement.ReferenceID,
		movement.Notes, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost,
		&m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByProduct devuelve el historial de un producto, más recientes primero,
// junto con el total para paginación.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements by product: %w", err)
	}
	defer rows.Close()

	list, err := scanMovements(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve movimientos con filtros opcionales, más recientes primero.
func (r *StockMovementRepo) ListAll(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if filter.ProductID != "" {
		n++
		where += fmt.Sprintf(` AND product_id = $%d`, n)
		args = append(args, filter.ProductID)
	}
	if filter.Type != "" {
		n++
		where += fmt.Sprintf(` AND movement_type = $%d`, n)
		args = append(args, filter.Type)
	}
	if filter.ReferenceType != "" {
		n++
		where += fmt.Sprintf(` AND reference_type = $%d`, n)
		args = append(args, filter.ReferenceType)
	}
	if filter.ReferenceID != "" {
		n++
		where += fmt.Sprintf(` AND reference_id = $%d`, n)
		args = append(args, filter.ReferenceID)
	}

	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_movements`+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	list, err := scanMovements(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

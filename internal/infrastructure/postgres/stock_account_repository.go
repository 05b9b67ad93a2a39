package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockAccountRepository = (*StockAccountRepo)(nil)

// StockAccountRepo implementación de StockAccountRepository sobre PostgreSQL.
type StockAccountRepo struct {
	q Querier
}

// NewStockAccountRepository construye el adaptador. Acepta pool o tx (Querier).
func NewStockAccountRepository(q Querier) *StockAccountRepo {
	return &StockAccountRepo{q: q}
}

const stockAccountColumns = `
	product_id, current_stock, reserved_stock, minimum_stock, maximum_stock,
	reorder_point, last_stock_check_at, updated_at`

func (r *StockAccountRepo) get(productID string, forUpdate bool) (*entity.StockAccount, error) {
	query := `SELECT ` + stockAccountColumns + ` FROM stock_accounts WHERE product_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var a entity.StockAccount
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&a.ProductID, &a.CurrentStock, &a.ReservedStock, &a.MinimumStock, &a.MaximumStock,
		&a.ReorderPoint, &a.LastStockCheckAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Cuenta perezosa: el producto aún no tiene fila. Se devuelve una
			// cuenta en ceros que el Upsert creará.
			return &entity.StockAccount{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock account: %w", err)
	}
	return &a, nil
}

func (r *StockAccountRepo) Get(productID string) (*entity.StockAccount, error) {
	return r.get(productID, false)
}

// GetForUpdate bloquea la fila de la cuenta con SELECT FOR UPDATE. Dos ajustes
// concurrentes del mismo producto se serializan aquí.
func (r *StockAccountRepo) GetForUpdate(productID string) (*entity.StockAccount, error) {
	return r.get(productID, true)
}

func (r *StockAccountRepo) Upsert(account *entity.StockAccount) error {
	query := `
		INSERT INTO stock_accounts (
			product_id, current_stock, reserved_stock, minimum_stock, maximum_stock,
			reorder_point, last_stock_check_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id)
		DO UPDATE SET
			current_stock = EXCLUDED.current_stock,
			reserved_stock = EXCLUDED.reserved_stock,
			minimum_stock = EXCLUDED.minimum_stock,
			maximum_stock = EXCLUDED.maximum_stock,
			reorder_point = EXCLUDED.reorder_point,
			last_stock_check_at = EXCLUDED.last_stock_check_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		account.ProductID, account.CurrentStock, account.ReservedStock,
		account.MinimumStock, account.MaximumStock, account.ReorderPoint,
		account.LastStockCheckAt, account.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert stock account: producto inexistente: %w", err)
		}
		return fmt.Errorf("upsert stock account: %w", err)
	}
	return nil
}

// UpsertThresholds escribe únicamente las columnas de umbrales. En el UPDATE
// no aparecen current_stock ni last_stock_check_at: si un ajuste concurrente
// confirmó entre la lectura del caller y esta escritura, su saldo queda intacto.
func (r *StockAccountRepo) UpsertThresholds(account *entity.StockAccount) error {
	query := `
		INSERT INTO stock_accounts (
			product_id, current_stock, reserved_stock, minimum_stock, maximum_stock,
			reorder_point, last_stock_check_at, updated_at
		) VALUES ($1, 0, 0, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id)
		DO UPDATE SET
			minimum_stock = EXCLUDED.minimum_stock,
			maximum_stock = EXCLUDED.maximum_stock,
			reorder_point = EXCLUDED.reorder_point,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		account.ProductID, account.MinimumStock, account.MaximumStock,
		account.ReorderPoint, account.LastStockCheckAt, account.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert stock thresholds: producto inexistente: %w", err)
		}
		return fmt.Errorf("upsert stock thresholds: %w", err)
	}
	return nil
}

const productWithAccountQuery = `
	SELECT
		p.id, p.sku, p.name, p.description, COALESCE(p.category_id::text, ''),
		COALESCE(p.supplier_id::text, ''), p.price, p.cost, p.unit_measure,
		p.status, p.created_at, p.updated_at,
		a.product_id, a.current_stock, a.reserved_stock, a.minimum_stock,
		a.maximum_stock, a.reorder_point, a.last_stock_check_at, a.updated_at
	FROM products p
	LEFT JOIN stock_accounts a ON a.product_id = p.id`

// Un producto tiene alerta cuando su stock (0 si no tiene cuenta) está en o
// bajo el mayor de sus umbrales; coincide con la precedencia de Classify.
const alertedCondition = `
	COALESCE(a.current_stock, 0) <= GREATEST(COALESCE(a.reorder_point, 0), COALESCE(a.minimum_stock, 0), 0)`

// ListWithProducts devuelve productos activos con su cuenta (puede ser nil si
// nunca tuvo movimientos ni umbrales), ordenados de menor a mayor stock para
// que los quiebres aparezcan primero.
func (r *StockAccountRepo) ListWithProducts(limit, offset int) ([]*repository.ProductWithAccount, error) {
	query := productWithAccountQuery + `
		WHERE p.status = 'active'
		ORDER BY COALESCE(a.current_stock, 0) ASC, p.name ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock accounts with products: %w", err)
	}
	defer rows.Close()
	return scanProductsWithAccounts(rows)
}

// ListAlerted devuelve solo los productos con alerta activa, con el total
// para paginación. El filtro se aplica en la consulta para que cada página
// traiga exactamente limit productos alertados mientras existan.
func (r *StockAccountRepo) ListAlerted(limit, offset int) ([]*repository.ProductWithAccount, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT COUNT(*)
		FROM products p
		LEFT JOIN stock_accounts a ON a.product_id = p.id
		WHERE p.status = 'active' AND`+alertedCondition,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count alerted stock accounts: %w", err)
	}

	query := productWithAccountQuery + `
		WHERE p.status = 'active' AND` + alertedCondition + `
		ORDER BY COALESCE(a.current_stock, 0) ASC, p.name ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list alerted stock accounts: %w", err)
	}
	defer rows.Close()

	list, err := scanProductsWithAccounts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func scanProductsWithAccounts(rows pgx.Rows) ([]*repository.ProductWithAccount, error) {
	var list []*repository.ProductWithAccount
	for rows.Next() {
		var (
			p entity.Product
			// columnas de la cuenta, todas nullables por el LEFT JOIN
			accProductID               *string
			current, reserved, minimum *int64
			maximum, reorderPoint      *int64
			lastCheck, accUpdated      *time.Time
		)
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID,
			&p.SupplierID, &p.Price, &p.Cost, &p.UnitMeasure,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
			&accProductID, &current, &reserved, &minimum,
			&maximum, &reorderPoint, &lastCheck, &accUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan stock account with product: %w", err)
		}
		item := &repository.ProductWithAccount{Product: &p}
		if accProductID != nil {
			item.Account = &entity.StockAccount{
				ProductID:        *accProductID,
				CurrentStock:     *current,
				ReservedStock:    *reserved,
				MinimumStock:     *minimum,
				MaximumStock:     maximum,
				ReorderPoint:     *reorderPoint,
				LastStockCheckAt: *lastCheck,
				UpdatedAt:        *accUpdated,
			}
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

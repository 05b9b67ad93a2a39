package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `
	id, number, supplier_id, status, order_date, expected_at, received_at,
	net_total, tax_total, grand_total, notes, created_by, created_at, updated_at`

// Create inserta la orden y sus renglones. Los renglones se insertan uno a uno
// bajo el mismo Querier; si se requiere atomicidad el caller pasa un Querier
// atado a una tx.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_orders (
			id, number, supplier_id, status, order_date, expected_at, received_at,
			net_total, tax_total, grand_total, notes, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.SupplierID, order.Status, order.OrderDate,
		order.ExpectedAt, order.ReceivedAt, order.NetTotal, order.TaxTotal,
		order.GrandTotal, order.Notes, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create purchase order: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_order_items (id, order_id, product_id, quantity, unit_cost, tax_rate, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.OrderID, item.ProductID, item.Quantity,
			item.UnitCost, item.TaxRate, item.TotalCost,
		)
		if err != nil {
			return fmt.Errorf("create purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.SupplierID, &o.Status, &o.OrderDate, &o.ExpectedAt,
		&o.ReceivedAt, &o.NetTotal, &o.TaxTotal, &o.GrandTotal, &o.Notes,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_cost, tax_rate, total_cost
		FROM purchase_order_items
		WHERE order_id = $1
		ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get purchase order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.UnitCost, &it.TaxRate, &it.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *PurchaseOrderRepo) UpdateStatus(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET
			status = $2, received_at = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.ReceivedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	where := ``
	args := []any{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders`+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	n := len(args)
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders` + where +
		fmt.Sprintf(` ORDER BY order_date DESC, number DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(
			&o.ID, &o.Number, &o.SupplierID, &o.Status, &o.OrderDate, &o.ExpectedAt,
			&o.ReceivedAt, &o.NetTotal, &o.TaxTotal, &o.GrandTotal, &o.Notes,
			&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	return list, total, rows.Err()
}

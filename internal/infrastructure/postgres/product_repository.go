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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Acepta pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	id, sku, name, description, COALESCE(category_id::text, ''),
	COALESCE(supplier_id::text, ''), price, cost, unit_measure, status,
	created_at, updated_at`

func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (
			id, sku, name, description, category_id, supplier_id,
			price, cost, unit_measure, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, NULLIF($6, '')::uuid, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description,
		product.CategoryID, product.SupplierID, product.Price, product.Cost,
		product.UnitMeasure, product.Status, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getBy(`id = $1`, id)
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getBy(`sku = $1`, sku)
}

func (r *ProductRepo) getBy(cond, arg string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + cond
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID,
		&p.SupplierID, &p.Price, &p.Cost, &p.UnitMeasure, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET
			sku = $2, name = $3, description = $4,
			category_id = NULLIF($5, '')::uuid, supplier_id = NULLIF($6, '')::uuid,
			price = $7, cost = $8, unit_measure = $9, status = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description,
		product.CategoryID, product.SupplierID, product.Price, product.Cost,
		product.UnitMeasure, product.Status, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, int, error) {
	return r.list(`WHERE status = 'active'`, nil, limit, offset)
}

func (r *ProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, int, error) {
	return r.list(`WHERE status = 'active' AND category_id = $1`, []any{categoryID}, limit, offset)
}

func (r *ProductRepo) list(where string, args []any, limit, offset int) ([]*entity.Product, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	n := len(args)
	query := `SELECT ` + productColumns + ` FROM products ` + where +
		fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID,
			&p.SupplierID, &p.Price, &p.Cost, &p.UnitMeasure, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Delete es borrado lógico: la cuenta de stock y el libro de movimientos se
// conservan intactos.
func (r *ProductRepo) Delete(id string) error {
	query := `UPDATE products SET status = 'inactive', updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

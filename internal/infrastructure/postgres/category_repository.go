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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `
	id, COALESCE(parent_id::text, ''), name, code, status, created_at, updated_at`

func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, parent_id, name, code, status, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.ParentID, category.Name, category.Code,
		category.Status, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.getBy(`id = $1`, id)
}

func (r *CategoryRepo) GetByCode(code string) (*entity.Category, error) {
	return r.getBy(`code = $1`, code)
}

func (r *CategoryRepo) getBy(cond, arg string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ` + cond
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.ParentID, &c.Name, &c.Code, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetParentID devuelve el ParentID de una categoría. Devuelve "" tanto para
// raíces como para categorías inexistentes: el guard de ciclos trata ambos
// casos como fin de la cadena de ancestros.
func (r *CategoryRepo) GetParentID(id string) (string, error) {
	var parentID string
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(parent_id::text, '') FROM categories WHERE id = $1`, id,
	).Scan(&parentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get category parent: %w", err)
	}
	return parentID, nil
}

func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET
			parent_id = NULLIF($2, '')::uuid, name = $3, code = $4,
			status = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		category.ID, category.ParentID, category.Name, category.Code,
		category.Status, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE status = 'active'
		ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *CategoryRepo) ListByParent(parentID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE status = 'active' AND parent_id = $1
		ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories by parent: %w", err)
	}
	defer rows.Close()
	return scanCategories(rows)
}

func scanCategories(rows pgx.Rows) ([]*entity.Category, error) {
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Code, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Delete(id string) error {
	query := `UPDATE categories SET status = 'inactive', updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

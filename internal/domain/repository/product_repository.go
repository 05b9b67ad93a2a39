package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, int, error)
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, int, error)
	// Delete es borrado lógico (status = inactive). La cuenta de stock y el
	// libro de movimientos no se tocan.
	Delete(id string) error
}

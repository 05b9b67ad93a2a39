package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByCode(code string) (*entity.Category, error)
	// GetParentID devuelve el ParentID de una categoría ("" si es raíz o no
	// existe). Es el lookup que consume el guard de ciclos.
	GetParentID(id string) (string, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, error)
	ListByParent(parentID string) ([]*entity.Category, error)
	Delete(id string) error
}

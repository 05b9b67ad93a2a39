package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MovementFilter filtros opcionales para el listado global de movimientos.
type MovementFilter struct {
	ProductID     string // vacío = todos
	Type          string // vacío = todos
	ReferenceType string // vacío = todos
	ReferenceID   string // vacío = todos; "movimientos de este documento"
}

// StockMovementRepository define el puerto del libro de movimientos
// (append-only: nunca update ni delete).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct devuelve movimientos de un producto, más recientes primero,
	// junto con el total para paginación.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, int, error)
	// ListAll devuelve movimientos con filtros opcionales, más recientes primero.
	ListAll(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
}

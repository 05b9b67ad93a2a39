package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetItems(orderID string) ([]*entity.PurchaseOrderItem, error)
	UpdateStatus(order *entity.PurchaseOrder) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, int, error)
}

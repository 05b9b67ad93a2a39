package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/numbering"
	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/refnum"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// PurchaseOrderUseCase ciclo de vida de órdenes de compra: crear (numerada
// con PUR-YYYYMMDD-SEQ), listar, recibir (descarga al libro de stock) y
// cancelar.
type PurchaseOrderUseCase struct {
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	issuer       *numbering.IssueNumberUseCase
	adjustUC     *appstock.AdjustStockUseCase
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	issuer *numbering.IssueNumberUseCase,
	adjustUC *appstock.AdjustStockUseCase,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		issuer:       issuer,
		adjustUC:     adjustUC,
	}
}

// Create crea la orden en estado ordered con número asignado por el emisor
// atómico de consecutivos.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderID := uuid.New().String()

	netTotal := decimal.Zero
	taxTotal := decimal.Zero
	items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		// Un producto por renglón: la recepción identifica lo ya descargado
		// por (orden, producto) y renglones repetidos la volverían ambigua.
		if seen[it.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[it.ProductID] = true
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.Status != entity.StatusActive {
			return nil, domain.ErrNotFound
		}
		lineTotal := it.UnitCost.Mul(decimal.NewFromInt(it.Quantity))
		netTotal = netTotal.Add(lineTotal)
		taxTotal = taxTotal.Add(lineTotal.Mul(it.TaxRate.Div(decimal.NewFromInt(100))))
		items = append(items, &entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			TaxRate:   it.TaxRate,
			TotalCost: lineTotal,
		})
	}

	number, err := uc.issuer.Issue(ctx, refnum.DocPurchase, now)
	if err != nil {
		return nil, err
	}

	order := &entity.PurchaseOrder{
		ID:         orderID,
		Number:     number,
		SupplierID: in.SupplierID,
		Status:     entity.PurchaseOrderOrdered,
		OrderDate:  now,
		ExpectedAt: in.ExpectedAt,
		NetTotal:   netTotal,
		TaxTotal:   taxTotal,
		GrandTotal: netTotal.Add(taxTotal),
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.orderRepo.Create(order, items); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order, items), nil
}

// GetByID obtiene la orden con sus renglones.
func (uc *PurchaseOrderUseCase) GetByID(id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order, items), nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *PurchaseOrderUseCase) List(status string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	list, total, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toPurchaseOrderResponse(o, nil))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Receive marca la orden como recibida y descarga cada renglón al libro de
// stock como un ajuste IN con referencia PURCHASE y el ID de la orden. Una
// orden ya recibida o cancelada no se puede recibir de nuevo.
//
// La recepción es reanudable: si un renglón falla a mitad de camino (o la
// actualización de estado), los renglones ya descargados quedaron en el libro
// con referencia a esta orden; el reintento los reconoce por (orden, producto)
// y los salta en vez de descargarlos dos veces.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, id, userID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.PurchaseOrderOrdered {
		return nil, domain.ErrConflict
	}
	items, err := uc.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}

	// Renglones ya descargados por un intento anterior (cada renglón emite
	// exactamente un movimiento, así que len(items) acota el listado).
	prior, _, err := uc.movementRepo.ListAll(repository.MovementFilter{
		ReferenceType: entity.ReferencePurchase,
		ReferenceID:   order.ID,
	}, len(items), 0)
	if err != nil {
		return nil, err
	}
	posted := make(map[string]bool, len(prior))
	for _, m := range prior {
		posted[m.ProductID] = true
	}

	for _, it := range items {
		if posted[it.ProductID] {
			continue
		}
		cost := it.UnitCost
		_, err := uc.adjustUC.Adjust(ctx, appstock.AdjustInput{
			ProductID:     it.ProductID,
			Type:          entity.MovementTypeIN,
			Quantity:      it.Quantity,
			UnitCost:      &cost,
			ReferenceType: entity.ReferencePurchase,
			ReferenceID:   order.ID,
			Notes:         "recepción " + order.Number,
			UserID:        userID,
		})
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order.Status = entity.PurchaseOrderReceived
	order.ReceivedAt = &now
	order.UpdatedAt = now
	if err := uc.orderRepo.UpdateStatus(order); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order, items), nil
}

// PeekNumber devuelve el número que recibiría la próxima orden creada hoy,
// sin reservarlo. Es informativo (formularios de captura): el número definitivo
// se emite en Create y puede diferir si alguien crea una orden en medio.
func (uc *PurchaseOrderUseCase) PeekNumber(ctx context.Context) (string, error) {
	return uc.issuer.Peek(ctx, refnum.DocPurchase, time.Now())
}

// Cancel cancela una orden aún no recibida.
func (uc *PurchaseOrderUseCase) Cancel(id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.PurchaseOrderReceived || order.Status == entity.PurchaseOrderCancelled {
		return nil, domain.ErrConflict
	}
	order.Status = entity.PurchaseOrderCancelled
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.UpdateStatus(order); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order, nil), nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		SupplierID: o.SupplierID,
		Status:     o.Status,
		OrderDate:  o.OrderDate,
		ExpectedAt: o.ExpectedAt,
		ReceivedAt: o.ReceivedAt,
		NetTotal:   o.NetTotal,
		TaxTotal:   o.TaxTotal,
		GrandTotal: o.GrandTotal,
		Notes:      o.Notes,
		CreatedBy:  o.CreatedBy,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			TaxRate:   it.TaxRate,
			TotalCost: it.TotalCost,
		})
	}
	return resp
}

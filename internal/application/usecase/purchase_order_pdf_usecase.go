package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// PurchaseOrderItemForPDF renglón de la orden enriquecido con datos del
// producto para la representación impresa.
type PurchaseOrderItemForPDF struct {
	entity.PurchaseOrderItem
	SKU         string
	ProductName string
}

// PurchaseOrderPDFGenerator puerto del generador de la representación gráfica
// de una orden de compra.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(
		ctx context.Context,
		order *entity.PurchaseOrder,
		supplier *entity.Supplier,
		items []PurchaseOrderItemForPDF,
	) ([]byte, error)
}

// PurchaseOrderPDFUseCase genera el PDF imprimible de una orden de compra
// (el documento que se envía al proveedor).
type PurchaseOrderPDFUseCase struct {
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	generator    PurchaseOrderPDFGenerator
}

// NewPurchaseOrderPDFUseCase construye el caso de uso.
func NewPurchaseOrderPDFUseCase(
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	generator PurchaseOrderPDFGenerator,
) *PurchaseOrderPDFUseCase {
	return &PurchaseOrderPDFUseCase{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadPurchaseOrderPDF carga la orden con proveedor y renglones, enriquece
// cada renglón con SKU y nombre del producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la orden no existe.
//   - domain.ErrInvalidInput    si la orden está cancelada.
func (uc *PurchaseOrderPDFUseCase) DownloadPurchaseOrderPDF(
	ctx context.Context,
	orderID string,
) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if order.Status == entity.PurchaseOrderCancelled {
		return nil, "", fmt.Errorf("%w: la orden está cancelada", domain.ErrInvalidInput)
	}

	supplier, err := uc.supplierRepo.GetByID(order.SupplierID)
	if err != nil || supplier == nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}

	rawItems, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener renglones: %w", err)
	}

	enriched := make([]PurchaseOrderItemForPDF, 0, len(rawItems))
	for _, it := range rawItems {
		sku, name := "", "Producto "+it.ProductID // fallback
		if product, pErr := uc.productRepo.GetByID(it.ProductID); pErr == nil && product != nil {
			sku, name = product.SKU, product.Name
		}
		enriched = append(enriched, PurchaseOrderItemForPDF{
			PurchaseOrderItem: *it,
			SKU:               sku,
			ProductName:       name,
		})
	}

	pdfBytes, err = uc.generator.GeneratePurchaseOrderPDF(ctx, order, supplier, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("orden_compra_%s.pdf", order.Number)
	return pdfBytes, filename, nil
}

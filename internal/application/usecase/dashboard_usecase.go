package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	domstock "github.com/jhoicas/almacen-api/internal/domain/stock"
)

// topLowStock cuántos productos con alerta muestra el dashboard.
const topLowStock = 10

// DashboardUseCase arma el resumen de la pantalla inicial: conteos y el top
// de productos con alerta de stock (clasificada en el momento de la lectura).
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	orderRepo    repository.PurchaseOrderRepository
	accountRepo  repository.StockAccountRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	orderRepo repository.PurchaseOrderRepository,
	accountRepo repository.StockAccountRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		accountRepo:  accountRepo,
	}
}

// Summary construye el resumen del back-office.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	_, totalProducts, err := uc.productRepo.List(1, 0)
	if err != nil {
		return nil, err
	}
	_, totalSuppliers, err := uc.supplierRepo.List(1, 0)
	if err != nil {
		return nil, err
	}
	_, pendingOrders, err := uc.orderRepo.List(entity.PurchaseOrderOrdered, 1, 0)
	if err != nil {
		return nil, err
	}

	// Solo productos alertados, ascendente por stock: los primeros son los
	// más críticos.
	rows, _, err := uc.accountRepo.ListAlerted(200, 0)
	if err != nil {
		return nil, err
	}
	alertCounts := map[string]int{}
	low := make([]dto.LowStockItem, 0, topLowStock)
	for _, row := range rows {
		alert := domstock.Classify(row.Account)
		alertCounts[string(alert)]++
		if len(low) < topLowStock {
			item := dto.LowStockItem{
				Product: appstock.ToProductResponse(row.Product),
				Alert:   string(alert),
			}
			if row.Account != nil {
				acc := appstock.ToAccountResponse(row.Account)
				item.Account = &acc
			}
			low = append(low, item)
		}
	}

	return &dto.DashboardResponse{
		TotalProducts:  totalProducts,
		TotalSuppliers: totalSuppliers,
		PendingOrders:  pendingOrders,
		AlertCounts:    alertCounts,
		LowStock:       low,
	}, nil
}

package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	domstock "github.com/jhoicas/almacen-api/internal/domain/stock"
)

// LowStockUseCase arma los listados producto + cuenta + alerta. La alerta
// nunca se persiste: se clasifica en cada lectura porque stock y umbrales
// cambian por caminos independientes.
type LowStockUseCase struct {
	accountRepo repository.StockAccountRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(accountRepo repository.StockAccountRepository) *LowStockUseCase {
	return &LowStockUseCase{accountRepo: accountRepo}
}

// List devuelve productos con alerta activa, ascendente por stock actual.
// El filtro de alerta va en la consulta (no sobre la página ya cortada), así
// cada página trae limit productos alertados mientras existan y Total cuenta
// solo alertados.
func (uc *LowStockUseCase) List(ctx context.Context, limit, offset int) (*dto.LowStockListResponse, error) {
	rows, total, err := uc.accountRepo.ListAlerted(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toLowStockItem(row, domstock.Classify(row.Account)))
	}
	return &dto.LowStockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// All devuelve todos los productos del listado con su alerta (incluida
// ninguna), para vistas de inventario completas.
func (uc *LowStockUseCase) All(ctx context.Context, limit, offset int) (*dto.LowStockListResponse, error) {
	rows, err := uc.accountRepo.ListWithProducts(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toLowStockItem(row, domstock.Classify(row.Account)))
	}
	return &dto.LowStockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toLowStockItem(row *repository.ProductWithAccount, alert domstock.AlertType) dto.LowStockItem {
	item := dto.LowStockItem{
		Product: ToProductResponse(row.Product),
		Alert:   string(alert),
	}
	if row.Account != nil {
		acc := ToAccountResponse(row.Account)
		item.Account = &acc
	}
	return item
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		Price:       p.Price,
		Cost:        p.Cost,
		UnitMeasure: p.UnitMeasure,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToAccountResponse mapea la cuenta a su DTO de salida (incluye el derivado
// AvailableStock).
func ToAccountResponse(a *entity.StockAccount) dto.StockAccountResponse {
	return dto.StockAccountResponse{
		ProductID:        a.ProductID,
		CurrentStock:     a.CurrentStock,
		ReservedStock:    a.ReservedStock,
		AvailableStock:   a.AvailableStock(),
		MinimumStock:     a.MinimumStock,
		MaximumStock:     a.MaximumStock,
		ReorderPoint:     a.ReorderPoint,
		LastStockCheckAt: a.LastStockCheckAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento a su DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

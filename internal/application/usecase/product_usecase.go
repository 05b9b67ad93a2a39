package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock nunca se edita
// aquí: el stock inicial entra como primer ajuste IN/INITIAL del libro.
type ProductUseCase struct {
	repo     repository.ProductRepository
	adjustUC *appstock.AdjustStockUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, adjustUC *appstock.AdjustStockUseCase) *ProductUseCase {
	return &ProductUseCase{repo: repo, adjustUC: adjustUC}
}

// Create crea un producto. Si InitialStock > 0 registra el ajuste inicial
// (IN, INITIAL) como primer movimiento; si hay umbrales los fija después,
// sin tocar el stock recién cargado.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "und"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
		Price:       in.Price,
		Cost:        in.Cost,
		UnitMeasure: in.UnitMeasure,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	if in.MinimumStock > 0 || in.ReorderPoint > 0 {
		_, err := uc.adjustUC.UpdateThresholds(ctx, product.ID, dto.UpdateThresholdsRequest{
			MinimumStock: &in.MinimumStock,
			ReorderPoint: &in.ReorderPoint,
		})
		if err != nil {
			return nil, err
		}
	}
	if in.InitialStock > 0 {
		_, err := uc.adjustUC.Adjust(ctx, appstock.AdjustInput{
			ProductID:     product.ID,
			Type:          entity.MovementTypeIN,
			Quantity:      in.InitialStock,
			ReferenceType: entity.ReferenceInitial,
			Notes:         "stock inicial",
			UserID:        userID,
		})
		if err != nil {
			return nil, err
		}
	}

	resp := appstock.ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := appstock.ToProductResponse(product)
	return &resp, nil
}

// Update actualiza un producto (nunca su stock).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := appstock.ToProductResponse(product)
	return &resp, nil
}

// List lista productos con paginación (opcionalmente por categoría).
func (uc *ProductUseCase) List(categoryID string, limit, offset int) (*dto.ProductListResponse, error) {
	var (
		list  []*entity.Product
		total int
		err   error
	)
	if categoryID != "" {
		list, total, err = uc.repo.ListByCategory(categoryID, limit, offset)
	} else {
		list, total, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, appstock.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete borra lógicamente un producto (status = inactive). El libro de
// movimientos y la cuenta quedan intactos como historial.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

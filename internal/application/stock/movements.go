package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MovementQueryUseCase lecturas del libro de movimientos (solo consulta;
// el libro solo crece vía el motor de ajustes).
type MovementQueryUseCase struct {
	movementRepo repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movementRepo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo}
}

// ListByProduct movimientos de un producto, más recientes primero.
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID string, limit, offset int) (*dto.MovementListResponse, error) {
	movements, total, err := uc.movementRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(movements, total, limit, offset), nil
}

// ListAll movimientos globales con filtros opcionales, más recientes primero.
func (uc *MovementQueryUseCase) ListAll(ctx context.Context, filter repository.MovementFilter, limit, offset int) (*dto.MovementListResponse, error) {
	movements, total, err := uc.movementRepo.ListAll(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(movements, total, limit, offset), nil
}

func toMovementList(movements []*entity.StockMovement, total, limit, offset int) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
}

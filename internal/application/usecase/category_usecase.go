package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	domcategory "github.com/jhoicas/almacen-api/internal/domain/category"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías. Todo cambio de padre
// pasa por el guard de ciclos antes de persistir.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El padre, si viene, debe existir; una categoría
// nueva no puede introducir ciclo (no tiene hijos todavía), pero igual se
// valida que no sea su propio padre por construcción de IDs del cliente.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      in.Name,
		Code:      in.Code,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(cat), nil
}

// Update actualiza nombre y/o padre. Cambiar el padre ejecuta CheckNoCycle
// con el lookup del repositorio; ErrSelfParent/ErrCategoryCycle abortan sin
// persistir nada.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.ParentID != nil && *in.ParentID != cat.ParentID {
		newParent := *in.ParentID
		if newParent != "" {
			parent, err := uc.repo.GetByID(newParent)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, domain.ErrNotFound
			}
		}
		if err := domcategory.CheckNoCycle(id, newParent, uc.repo.GetParentID); err != nil {
			return nil, err
		}
		cat.ParentID = newParent
	}
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// List lista categorías; parentID filtra por rama directa.
func (uc *CategoryUseCase) List(parentID string, limit, offset int) (*dto.CategoryListResponse, error) {
	var (
		list []*entity.Category
		err  error
	)
	if parentID != "" {
		list, err = uc.repo.ListByParent(parentID)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete borra lógicamente una categoría. Se rechaza si tiene hijas activas
// (quedarían colgando de una categoría inactiva).
func (uc *CategoryUseCase) Delete(id string) error {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	children, err := uc.repo.ListByParent(id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		Code:      c.Code,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

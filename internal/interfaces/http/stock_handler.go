package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockHandler maneja ajustes, umbrales, movimientos y alertas de stock.
type StockHandler struct {
	adjustUC   *appstock.AdjustStockUseCase
	lowStockUC *appstock.LowStockUseCase
	movementUC *appstock.MovementQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	adjustUC *appstock.AdjustStockUseCase,
	lowStockUC *appstock.LowStockUseCase,
	movementUC *appstock.MovementQueryUseCase,
) *StockHandler {
	return &StockHandler{adjustUC: adjustUC, lowStockUC: lowStockUC, movementUC: movementUC}
}

// Adjust godoc
// @Summary      Ajustar stock (IN, OUT, ADJUST, TRANSFER)
// @Description  Muta el stock del producto y agrega un movimiento al libro, atómicamente.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y type son requeridos"})
	}
	result, err := h.adjustUC.Adjust(c.Context(), appstock.AdjustInput{
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		UserID:        GetUserID(c),
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo o cantidad inválidos"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado o inactivo"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "el ajuste dejaría el stock en negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.AdjustStockResponse{
		PreviousStock: result.PreviousStock,
		NewStock:      result.NewStock,
		Account:       appstock.ToAccountResponse(result.Account),
		Movement:      appstock.ToMovementResponse(result.Movement),
	})
}

// UpdateThresholds godoc
// @Summary      Actualizar umbrales de stock (mínimo, máximo, punto de reorden)
// @Description  Solo configura umbrales: nunca muta el stock ni agrega movimientos.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Param        body       body  dto.UpdateThresholdsRequest  true  "Umbrales"
// @Success      200        {object}  dto.StockAccountResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/stock/thresholds/{productID} [put]
func (h *StockHandler) UpdateThresholds(c *fiber.Ctx) error {
	productID := c.Params("productID")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productID es requerido"})
	}
	var in dto.UpdateThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	account, err := h.adjustUC.UpdateThresholds(c.Context(), productID, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "los umbrales no pueden ser negativos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(appstock.ToAccountResponse(account))
}

// ListMovements godoc
// @Summary      Listar movimientos del libro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id      query  string  false  "Filtrar por producto"
// @Param        type            query  string  false  "Filtrar por tipo (IN, OUT, ADJUST, TRANSFER)"
// @Param        reference_type  query  string  false  "Filtrar por origen"
// @Param        limit           query  int     false  "Límite"   default(20)
// @Param        offset          query  int     false  "Offset"   default(0)
// @Success      200             {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.MovementFilter{
		ProductID:     c.Query("product_id"),
		Type:          c.Query("type"),
		ReferenceType: c.Query("reference_type"),
	}
	out, err := h.movementUC.ListAll(c.Context(), filter, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListProductMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) ListProductMovements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.movementUC.ListByProduct(c.Context(), id, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con alerta de stock (OUT_OF_STOCK, REORDER_POINT, LOW_STOCK)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        all     query  bool  false  "Incluir productos sin alerta"
// @Param        limit   query  int   false  "Límite"   default(20)
// @Param        offset  query  int   false  "Offset"   default(0)
// @Success      200     {object}  dto.LowStockListResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	var (
		out *dto.LowStockListResponse
		err error
	)
	if c.QueryBool("all", false) {
		out, err = h.lowStockUC.All(c.Context(), limit, offset)
	} else {
		out, err = h.lowStockUC.List(c.Context(), limit, offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

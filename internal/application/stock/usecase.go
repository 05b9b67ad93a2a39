package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	domstock "github.com/jhoicas/almacen-api/internal/domain/stock"
)

// AdjustStockUseCase es el motor de ajustes del libro de stock. Cada ajuste
// exitoso muta CurrentStock y agrega exactamente un movimiento inmutable, en
// la misma transacción y con bloqueo de fila (SELECT FOR UPDATE) sobre la
// cuenta para evitar el lost-update entre ajustes concurrentes del mismo
// producto.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	accountRepo repository.StockAccountRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	accountRepo repository.StockAccountRepository,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, productRepo: productRepo, accountRepo: accountRepo}
}

// AdjustInput entrada para un ajuste de stock. Quantity es magnitud positiva
// para IN/OUT/TRANSFER (la dirección la da Type) y delta firmado para ADJUST.
type AdjustInput struct {
	ProductID     string
	Type          string
	Quantity      int64
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Notes         string
	UserID        string
}

// AdjustResult resultado del ajuste: stock anterior y nuevo más la cuenta y
// el movimiento persistidos, para que el caller muestre el delta sin releer.
type AdjustResult struct {
	PreviousStock int64
	NewStock      int64
	Account       *entity.StockAccount
	Movement      *entity.StockMovement
}

// validReferenceType acepta vacío (se normaliza a MANUAL) o uno de los
// orígenes conocidos.
func validReferenceType(t string) bool {
	switch t {
	case "", entity.ReferenceOrder, entity.ReferencePurchase, entity.ReferenceAdjustment,
		entity.ReferenceReturn, entity.ReferenceInitial, entity.ReferenceManual:
		return true
	}
	return false
}

// Adjust aplica un movimiento sobre la cuenta de stock del producto:
// lee la cuenta con bloqueo de fila, calcula el nuevo saldo según el tipo,
// rechaza si quedaría negativo (sin efecto alguno) y persiste cuenta +
// movimiento en la misma transacción. Si el producto aún no tiene cuenta se
// crea con umbrales en cero antes de aplicar el movimiento (flujo de stock
// inicial en la creación de producto).
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeADJUST:
		if in.Quantity == 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	if !validReferenceType(in.ReferenceType) {
		return nil, domain.ErrInvalidInput
	}
	if in.ReferenceType == "" {
		in.ReferenceType = entity.ReferenceManual
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *AdjustResult

	// Transacción: Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		accountRepo repository.StockAccountRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila de la cuenta (SELECT FOR UPDATE). Si no existe,
		// el repo devuelve una cuenta en ceros que el Upsert creará.
		account, err := accountRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}

		previous := account.CurrentStock
		newStock := previous + delta(in.Type, in.Quantity)
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}

		account.CurrentStock = newStock
		account.LastStockCheckAt = now
		account.UpdatedAt = now
		if err := accountRepo.Upsert(account); err != nil {
			return err
		}

		movement := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			Type:          in.Type,
			Quantity:      in.Quantity,
			UnitCost:      in.UnitCost,
			ReferenceType: in.ReferenceType,
			ReferenceID:   in.ReferenceID,
			Notes:         in.Notes,
			CreatedBy:     in.UserID,
			CreatedAt:     now,
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}

		result = &AdjustResult{
			PreviousStock: previous,
			NewStock:      newStock,
			Account:       account,
			Movement:      movement,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Entrada con costo: recalcula el costo promedio ponderado del producto.
	// Es información de referencia, no parte del invariante del libro; si
	// falla la actualización el ajuste ya quedó confirmado y solo se loguea.
	if in.Type == entity.MovementTypeIN && in.UnitCost != nil {
		product.Cost = domstock.WeightedAverageCost(result.PreviousStock, product.Cost, in.Quantity, *in.UnitCost)
		product.UpdatedAt = now
		if err := uc.productRepo.Update(product); err != nil {
			log.Warn().Err(err).
				Str("product_id", product.ID).
				Msg("no se pudo actualizar el costo promedio del producto")
		}
	}
	return result, nil
}

// delta traduce (tipo, cantidad) al efecto sobre CurrentStock.
func delta(movementType string, quantity int64) int64 {
	switch movementType {
	case entity.MovementTypeIN:
		return quantity
	case entity.MovementTypeOUT, entity.MovementTypeTRANSFER:
		return -quantity
	case entity.MovementTypeADJUST:
		return quantity // ya viene firmado
	}
	return 0
}

// UpdateThresholds actualiza solo los umbrales de configuración de la cuenta:
// no toca CurrentStock, no agrega movimiento y no actualiza LastStockCheckAt.
// Crea la cuenta (stock 0) si el producto aún no tiene.
func (uc *AdjustStockUseCase) UpdateThresholds(ctx context.Context, productID string, in dto.UpdateThresholdsRequest) (*entity.StockAccount, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	account, err := uc.accountRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		account.MinimumStock = *in.MinimumStock
	}
	if in.MaximumStock != nil {
		if *in.MaximumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		account.MaximumStock = in.MaximumStock
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.ErrInvalidInput
		}
		account.ReorderPoint = *in.ReorderPoint
	}

	// No se valida relación entre umbrales (max < min se acepta), pero se
	// deja rastro porque casi siempre es un error de captura.
	if account.MaximumStock != nil && *account.MaximumStock < account.MinimumStock {
		log.Warn().
			Str("product_id", productID).
			Int64("minimum_stock", account.MinimumStock).
			Int64("maximum_stock", *account.MaximumStock).
			Msg("umbrales inconsistentes: máximo menor que mínimo")
	}

	// Escritura solo de umbrales: nunca pisa current_stock ni
	// last_stock_check_at, así un ajuste concurrente confirmado entre la
	// lectura de arriba y esta escritura conserva su saldo.
	account.UpdatedAt = time.Now()
	if err := uc.accountRepo.UpsertThresholds(account); err != nil {
		return nil, err
	}
	// Relee para responder con el saldo vigente, no el de la lectura inicial.
	return uc.accountRepo.Get(productID)
}

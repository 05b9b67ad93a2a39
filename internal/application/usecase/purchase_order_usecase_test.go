package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/numbering"
	appstock "github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/refnum"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el ciclo de vida de órdenes de compra. El repo de
// movimientos filtra igual que el real para que la recepción pueda reconocer
// renglones ya descargados.
// ──────────────────────────────────────────────────────────────────────────────

type poOrderRepo struct {
	order *entity.PurchaseOrder
	items []*entity.PurchaseOrderItem
}

func (r *poOrderRepo) Create(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	r.order, r.items = order, items
	return nil
}

func (r *poOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if r.order == nil || r.order.ID != id {
		return nil, nil
	}
	cp := *r.order
	return &cp, nil
}

func (r *poOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	return r.items, nil
}

func (r *poOrderRepo) UpdateStatus(order *entity.PurchaseOrder) error {
	r.order.Status = order.Status
	r.order.ReceivedAt = order.ReceivedAt
	r.order.UpdatedAt = order.UpdatedAt
	return nil
}

func (r *poOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	return nil, 0, nil
}

type poSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *poSupplierRepo) Create(s *entity.Supplier) error { return nil }
func (r *poSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *poSupplierRepo) Update(s *entity.Supplier) error { return nil }
func (r *poSupplierRepo) List(limit, offset int) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}
func (r *poSupplierRepo) Delete(id string) error { return nil }

type poProductRepo struct {
	products map[string]*entity.Product
}

func (r *poProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *poProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *poProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *poProductRepo) Update(p *entity.Product) error               { return nil }
func (r *poProductRepo) List(limit, offset int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *poProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *poProductRepo) Delete(id string) error { return nil }

type poAccountRepo struct {
	accounts map[string]*entity.StockAccount
}

func (r *poAccountRepo) Get(productID string) (*entity.StockAccount, error) {
	if a, ok := r.accounts[productID]; ok {
		cp := *a
		return &cp, nil
	}
	return &entity.StockAccount{ProductID: productID}, nil
}

func (r *poAccountRepo) GetForUpdate(productID string) (*entity.StockAccount, error) {
	return r.Get(productID)
}

func (r *poAccountRepo) Upsert(account *entity.StockAccount) error {
	cp := *account
	r.accounts[account.ProductID] = &cp
	return nil
}

func (r *poAccountRepo) UpsertThresholds(account *entity.StockAccount) error {
	stored, ok := r.accounts[account.ProductID]
	if !ok {
		stored = &entity.StockAccount{ProductID: account.ProductID}
		r.accounts[account.ProductID] = stored
	}
	stored.MinimumStock = account.MinimumStock
	stored.MaximumStock = account.MaximumStock
	stored.ReorderPoint = account.ReorderPoint
	stored.UpdatedAt = account.UpdatedAt
	return nil
}

func (r *poAccountRepo) ListWithProducts(limit, offset int) ([]*repository.ProductWithAccount, error) {
	return nil, nil
}

func (r *poAccountRepo) ListAlerted(limit, offset int) ([]*repository.ProductWithAccount, int, error) {
	return nil, 0, nil
}

type poMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *poMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *poMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }

func (r *poMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	return r.movements, len(r.movements), nil
}

func (r *poMovementRepo) ListAll(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.ReferenceType != "" && m.ReferenceType != filter.ReferenceType {
			continue
		}
		if filter.ReferenceID != "" && m.ReferenceID != filter.ReferenceID {
			continue
		}
		out = append(out, m)
	}
	total := len(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

type poTxRunner struct {
	accountRepo  *poAccountRepo
	movementRepo *poMovementRepo
}

func (t *poTxRunner) Run(ctx context.Context, fn func(
	accountRepo repository.StockAccountRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return fn(t.accountRepo, t.movementRepo)
}

type poSequenceRepo struct {
	rows map[string]int
}

func (r *poSequenceRepo) LastIssued(prefix, date string) (int, error) {
	return r.rows[prefix+"|"+date], nil
}

func (r *poSequenceRepo) NextValue(prefix, date string) (int, error) {
	key := prefix + "|" + date
	r.rows[key]++
	return r.rows[key], nil
}

type poFixture struct {
	uc           *usecase.PurchaseOrderUseCase
	orderRepo    *poOrderRepo
	productRepo  *poProductRepo
	accountRepo  *poAccountRepo
	movementRepo *poMovementRepo
}

func newPOFixture(suppliers []*entity.Supplier, products []*entity.Product) *poFixture {
	orderRepo := &poOrderRepo{}
	supplierRepo := &poSupplierRepo{suppliers: map[string]*entity.Supplier{}}
	for _, s := range suppliers {
		supplierRepo.suppliers[s.ID] = s
	}
	productRepo := &poProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	accountRepo := &poAccountRepo{accounts: map[string]*entity.StockAccount{}}
	movementRepo := &poMovementRepo{}
	adjustUC := appstock.NewAdjustStockUseCase(
		&poTxRunner{accountRepo: accountRepo, movementRepo: movementRepo},
		productRepo, accountRepo,
	)
	issuer := numbering.NewIssueNumberUseCase(&poSequenceRepo{rows: map[string]int{}})
	return &poFixture{
		uc:           usecase.NewPurchaseOrderUseCase(orderRepo, supplierRepo, productRepo, movementRepo, issuer, adjustUC),
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
	}
}

func poProduct(id string) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, Status: entity.StatusActive}
}

func poSupplier(id string) *entity.Supplier {
	return &entity.Supplier{ID: id, Name: "Proveedor " + id, Status: entity.StatusActive}
}

func orderedOrder(id string, items ...*entity.PurchaseOrderItem) (*entity.PurchaseOrder, []*entity.PurchaseOrderItem) {
	now := time.Now()
	return &entity.PurchaseOrder{
		ID:        id,
		Number:    "PUR-20240115-001",
		Status:    entity.PurchaseOrderOrdered,
		OrderDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}, items
}

func poItem(orderID, productID string, qty int64, cost int64) *entity.PurchaseOrderItem {
	unitCost := decimal.NewFromInt(cost)
	return &entity.PurchaseOrderItem{
		ID:        orderID + "-" + productID,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  qty,
		UnitCost:  unitCost,
		TotalCost: unitCost.Mul(decimal.NewFromInt(qty)),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive: la recepción es reanudable; un reintento tras un fallo parcial no
// descarga dos veces los renglones que ya entraron al libro.
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ReintentoNoDuplicaStock(t *testing.T) {
	ctx := context.Background()
	productB := poProduct("B")
	productB.Status = entity.StatusInactive // hace fallar el segundo renglón
	f := newPOFixture(nil, []*entity.Product{poProduct("A"), productB})
	f.orderRepo.order, f.orderRepo.items = orderedOrder("po-1",
		poItem("po-1", "A", 10, 5),
		poItem("po-1", "B", 4, 3),
	)

	// Primer intento: el renglón A entra al libro, B falla, la orden queda ordered.
	_, err := f.uc.Receive(ctx, "po-1", "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.PurchaseOrderOrdered, f.orderRepo.order.Status)
	assert.Len(t, f.movementRepo.movements, 1)

	accA, _ := f.accountRepo.Get("A")
	assert.Equal(t, int64(10), accA.CurrentStock)

	// Se corrige la causa y se reintenta: A no se descarga de nuevo.
	f.productRepo.products["B"].Status = entity.StatusActive
	out, err := f.uc.Receive(ctx, "po-1", "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderReceived, out.Status)
	assert.Equal(t, entity.PurchaseOrderReceived, f.orderRepo.order.Status)

	accA, _ = f.accountRepo.Get("A")
	accB, _ := f.accountRepo.Get("B")
	assert.Equal(t, int64(10), accA.CurrentStock, "el renglón A debe contarse una sola vez")
	assert.Equal(t, int64(4), accB.CurrentStock)
	assert.Len(t, f.movementRepo.movements, 2, "exactamente un movimiento por renglón")
}

func TestReceive_OrdenYaRecibida(t *testing.T) {
	f := newPOFixture(nil, []*entity.Product{poProduct("A")})
	f.orderRepo.order, f.orderRepo.items = orderedOrder("po-1", poItem("po-1", "A", 10, 5))
	f.orderRepo.order.Status = entity.PurchaseOrderReceived

	_, err := f.uc.Receive(context.Background(), "po-1", "u1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.movementRepo.movements)
}

// Un producto por renglón: renglones repetidos harían ambigua la recepción
// reanudable, que identifica lo ya descargado por (orden, producto).
func TestCreate_RechazaProductoRepetido(t *testing.T) {
	f := newPOFixture([]*entity.Supplier{poSupplier("S")}, []*entity.Product{poProduct("A")})

	_, err := f.uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{
		SupplierID: "S",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "A", Quantity: 5, UnitCost: decimal.NewFromInt(10)},
			{ProductID: "A", Quantity: 3, UnitCost: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// PeekNumber anuncia sin reservar: dos consultas seguidas ven el mismo número
// y la creación siguiente lo emite.
func TestPeekNumber_NoReservaElConsecutivo(t *testing.T) {
	ctx := context.Background()
	f := newPOFixture([]*entity.Supplier{poSupplier("S")}, []*entity.Product{poProduct("A")})

	expected := refnum.Format(refnum.DocPurchase, time.Now(), 1)
	peek1, err := f.uc.PeekNumber(ctx)
	require.NoError(t, err)
	peek2, err := f.uc.PeekNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, peek1)
	assert.Equal(t, peek1, peek2)

	out, err := f.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{
		SupplierID: "S",
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "A", Quantity: 5, UnitCost: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, peek1, out.Number)
}

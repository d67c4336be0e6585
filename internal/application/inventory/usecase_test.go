package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore guarda el estado; memTxRunner lo clona antes de ejecutar la unidad
// y descarta el clon si la función retorna error. Así los tests verifican la
// propiedad todo-o-nada igual que con Commit/Rollback reales.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products       map[string]*entity.Product
	purchaseOrders map[string]*entity.PurchaseOrder
	salesOrders    map[string]*entity.SalesOrder
	invLog         []*entity.InventoryLogEntry
	costLog        []*entity.CostLogEntry
}

func newMemStore() *memStore {
	return &memStore{
		products:       map[string]*entity.Product{},
		purchaseOrders: map[string]*entity.PurchaseOrder{},
		salesOrders:    map[string]*entity.SalesOrder{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, o := range s.purchaseOrders {
		co := *o
		co.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
		c.purchaseOrders[id] = &co
	}
	for id, o := range s.salesOrders {
		co := *o
		co.Items = append([]entity.SalesOrderItem(nil), o.Items...)
		c.salesOrders[id] = &co
	}
	c.invLog = append([]*entity.InventoryLogEntry(nil), s.invLog...)
	c.costLog = append([]*entity.CostLogEntry(nil), s.costLog...)
	return c
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *memProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) UpdateStockAndCost(id string, stock int64, cost decimal.Decimal) error {
	p := r.s.products[id]
	p.Stock = stock
	p.Cost = cost
	return nil
}
func (r *memProductRepo) List(string, int, int) ([]*entity.Product, error)  { return nil, nil }
func (r *memProductRepo) ListLowStock(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Delete(string) error                              { return nil }

type memPurchaseRepo struct{ s *memStore }

func (r *memPurchaseRepo) Create(o *entity.PurchaseOrder) error { r.s.purchaseOrders[o.ID] = o; return nil }
func (r *memPurchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.s.purchaseOrders[id], nil
}
func (r *memPurchaseRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.s.purchaseOrders[id], nil
}
func (r *memPurchaseRepo) UpdateStatus(id string, status entity.PurchaseOrderStatus, receivedAt *time.Time) error {
	o := r.s.purchaseOrders[id]
	o.Status = status
	o.ReceivedAt = receivedAt
	return nil
}
func (r *memPurchaseRepo) List(int, int) ([]*entity.PurchaseOrder, error) { return nil, nil }

type memSalesRepo struct{ s *memStore }

func (r *memSalesRepo) Create(o *entity.SalesOrder) error { r.s.salesOrders[o.ID] = o; return nil }
func (r *memSalesRepo) GetByID(id string) (*entity.SalesOrder, error) {
	return r.s.salesOrders[id], nil
}
func (r *memSalesRepo) GetForUpdate(id string) (*entity.SalesOrder, error) {
	return r.s.salesOrders[id], nil
}
func (r *memSalesRepo) UpdateStatus(id string, status entity.SalesOrderStatus, at *time.Time) error {
	o := r.s.salesOrders[id]
	o.Status = status
	switch status {
	case entity.SalesOrderPendingShipment:
		o.ApprovedAt = at
	case entity.SalesOrderCompleted:
		o.CompletedAt = at
	}
	return nil
}
func (r *memSalesRepo) UpdateItemCostAtSale(itemID string, cost decimal.Decimal) error {
	for _, o := range r.s.salesOrders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				c := cost
				o.Items[i].CostAtSale = &c
				return nil
			}
		}
	}
	return domain.ErrNotFound
}
func (r *memSalesRepo) List(int, int) ([]*entity.SalesOrder, error) { return nil, nil }
func (r *memSalesRepo) ListCompleted(*time.Time, *time.Time, int, int) ([]*entity.SalesOrder, error) {
	return nil, nil
}

type memInvLogRepo struct{ s *memStore }

func (r *memInvLogRepo) Create(e *entity.InventoryLogEntry) error {
	r.s.invLog = append(r.s.invLog, e)
	return nil
}
func (r *memInvLogRepo) ListByProduct(productID string, _, _ int) ([]*entity.InventoryLogEntry, error) {
	var out []*entity.InventoryLogEntry
	for _, e := range r.s.invLog {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *memInvLogRepo) SumChangesByProduct(productID string) (int64, error) {
	var sum int64
	for _, e := range r.s.invLog {
		if e.ProductID == productID {
			sum += e.Change
		}
	}
	return sum, nil
}

type memCostLogRepo struct{ s *memStore }

func (r *memCostLogRepo) Create(e *entity.CostLogEntry) error {
	r.s.costLog = append(r.s.costLog, e)
	return nil
}
func (r *memCostLogRepo) ListByProduct(productID string, _, _ int) ([]*entity.CostLogEntry, error) {
	var out []*entity.CostLogEntry
	for _, e := range r.s.costLog {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

// memTxRunner emula Commit/Rollback: ejecuta fn sobre un clon y solo lo
// promueve a estado real si fn no retorna error.
type memTxRunner struct {
	store *memStore
	// conflicts veces que Run falla con ErrConcurrencyConflict antes de operar.
	conflicts int
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	salesRepo repository.SalesOrderRepository,
	logRepo repository.InventoryLogRepository,
	costRepo repository.CostLogRepository,
) error) error {
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrConcurrencyConflict
	}
	tx := r.store.clone()
	err := fn(&memProductRepo{tx}, &memPurchaseRepo{tx}, &memSalesRepo{tx}, &memInvLogRepo{tx}, &memCostLogRepo{tx})
	if err != nil {
		return err
	}
	*r.store = *tx
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedProduct(s *memStore, id string, stock int64, cost string) {
	s.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Stock: stock, Cost: dec(cost)}
}

func seedPurchaseOrder(s *memStore, id, number string, items ...entity.PurchaseOrderItem) {
	s.purchaseOrders[id] = &entity.PurchaseOrder{
		ID: id, Number: number, SupplierID: "sup-1",
		Status: entity.PurchaseOrderPending, Items: items,
	}
}

func seedSalesOrder(s *memStore, id, number string, status entity.SalesOrderStatus, items ...entity.SalesOrderItem) {
	s.salesOrders[id] = &entity.SalesOrder{
		ID: id, Number: number, CustomerID: "cus-1",
		Status: status, Items: items,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveOrder_ActualizaStockCostoYBitacoras(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, "100")
	seedPurchaseOrder(store, "po1", "PO-1001",
		entity.PurchaseOrderItem{ID: "i1", OrderID: "po1", ProductID: "p1", Quantity: 5, UnitCost: dec("130")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	require.NoError(t, uc.ReceiveOrder(context.Background(), "po1", "u1"))

	p := store.products["p1"]
	assert.Equal(t, int64(15), p.Stock)
	// (10*100 + 5*130) / 15 = 110
	assert.True(t, p.Cost.Equal(dec("110")), "costo promedio got %s", p.Cost)

	o := store.purchaseOrders["po1"]
	assert.Equal(t, entity.PurchaseOrderReceived, o.Status)
	require.NotNil(t, o.ReceivedAt)

	require.Len(t, store.invLog, 1)
	e := store.invLog[0]
	assert.Equal(t, entity.LogTypeIn, e.Type)
	assert.Equal(t, int64(5), e.Change)
	assert.Equal(t, int64(15), e.NewStock)
	assert.Equal(t, "PO-1001", e.RelatedDoc)
	assert.Equal(t, "u1", e.CreatedBy)

	require.Len(t, store.costLog, 1)
	c := store.costLog[0]
	assert.True(t, c.OldAvgCost.Equal(dec("100")))
	assert.True(t, c.NewAvgCost.Equal(dec("110")))
	assert.Equal(t, "PO-1001", c.RelatedDoc)
}

func TestReceiveOrder_DosLineasMismoProductoComponen(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 0, "0")
	seedPurchaseOrder(store, "po1", "PO-1002",
		entity.PurchaseOrderItem{ID: "i1", ProductID: "p1", Quantity: 10, UnitCost: dec("100")},
		entity.PurchaseOrderItem{ID: "i2", ProductID: "p1", Quantity: 5, UnitCost: dec("130")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	require.NoError(t, uc.ReceiveOrder(context.Background(), "po1", "u1"))

	p := store.products["p1"]
	assert.Equal(t, int64(15), p.Stock)
	assert.True(t, p.Cost.Equal(dec("110")), "las líneas componen en orden de lista, got %s", p.Cost)
	// Dos entradas en bitácora con saldos 10 y 15.
	require.Len(t, store.invLog, 2)
	assert.Equal(t, int64(10), store.invLog[0].NewStock)
	assert.Equal(t, int64(15), store.invLog[1].NewStock)
}

func TestReceiveOrder_SinCambioDeCostoNoEscribeCostLog(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, "100")
	seedPurchaseOrder(store, "po1", "PO-1003",
		entity.PurchaseOrderItem{ID: "i1", ProductID: "p1", Quantity: 5, UnitCost: dec("100")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	require.NoError(t, uc.ReceiveOrder(context.Background(), "po1", "u1"))

	assert.Equal(t, int64(15), store.products["p1"].Stock)
	assert.Len(t, store.invLog, 1, "el stock sí se apunta")
	assert.Empty(t, store.costLog, "recibir al mismo costo no ensucia la bitácora de costos")
}

func TestReceiveOrder_ProductoInexistenteAbortaTodo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, "100")
	seedPurchaseOrder(store, "po1", "PO-1004",
		entity.PurchaseOrderItem{ID: "i1", ProductID: "p1", Quantity: 5, UnitCost: dec("130")},
		entity.PurchaseOrderItem{ID: "i2", ProductID: "fantasma", Quantity: 1, UnitCost: dec("10")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	err := uc.ReceiveOrder(context.Background(), "po1", "u1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// Nada quedó a medias: ni stock, ni bitácoras, ni estado.
	assert.Equal(t, int64(10), store.products["p1"].Stock)
	assert.Empty(t, store.invLog)
	assert.Empty(t, store.costLog)
	assert.Equal(t, entity.PurchaseOrderPending, store.purchaseOrders["po1"].Status)
}

func TestReceiveOrder_NoReentranteTrasExito(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 0, "0")
	seedPurchaseOrder(store, "po1", "PO-1005",
		entity.PurchaseOrderItem{ID: "i1", ProductID: "p1", Quantity: 10, UnitCost: dec("100")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	require.NoError(t, uc.ReceiveOrder(context.Background(), "po1", "u1"))
	err := uc.ReceiveOrder(context.Background(), "po1", "u1")
	assert.ErrorIs(t, err, domain.ErrOrderNotReceivable)

	// La doble recepción no duplica stock ni bitácoras.
	assert.Equal(t, int64(10), store.products["p1"].Stock)
	assert.Len(t, store.invLog, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho
// ──────────────────────────────────────────────────────────────────────────────

func TestShipOrder_DescuentaEstampaCostoYCompleta(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 15, "110")
	seedSalesOrder(store, "so1", "SO-2001", entity.SalesOrderPendingShipment,
		entity.SalesOrderItem{ID: "i1", OrderID: "so1", ProductID: "p1", Quantity: 12, UnitPrice: dec("150")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	require.NoError(t, uc.ShipOrder(context.Background(), "so1", "u1"))

	p := store.products["p1"]
	assert.Equal(t, int64(3), p.Stock)
	assert.True(t, p.Cost.Equal(dec("110")), "el despacho no toca el costo promedio")

	o := store.salesOrders["so1"]
	assert.Equal(t, entity.SalesOrderCompleted, o.Status)
	require.NotNil(t, o.CompletedAt)
	require.NotNil(t, o.Items[0].CostAtSale)
	assert.True(t, o.Items[0].CostAtSale.Equal(dec("110")), "CostAtSale = foto del promedio al despachar")

	require.Len(t, store.invLog, 1)
	e := store.invLog[0]
	assert.Equal(t, entity.LogTypeOut, e.Type)
	assert.Equal(t, int64(-12), e.Change)
	assert.Equal(t, int64(3), e.NewStock)
	assert.Equal(t, "SO-2001", e.RelatedDoc)
	assert.Empty(t, store.costLog, "las salidas nunca apuntan en la bitácora de costos")
}

func TestShipOrder_StockInsuficienteAbortaTodo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 50, "10")
	seedProduct(store, "p2", 15, "110")
	seedSalesOrder(store, "so1", "SO-2002", entity.SalesOrderPendingShipment,
		entity.SalesOrderItem{ID: "i1", ProductID: "p1", Quantity: 5, UnitPrice: dec("20")},  // satisfacible
		entity.SalesOrderItem{ID: "i2", ProductID: "p2", Quantity: 20, UnitPrice: dec("150")}, // 20 > 15
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	err := uc.ShipOrder(context.Background(), "so1", "u1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ninguna línea se aplicó, aunque la primera era satisfacible.
	assert.Equal(t, int64(50), store.products["p1"].Stock)
	assert.Equal(t, int64(15), store.products["p2"].Stock)
	assert.Empty(t, store.invLog)
	o := store.salesOrders["so1"]
	assert.Equal(t, entity.SalesOrderPendingShipment, o.Status)
	assert.Nil(t, o.Items[0].CostAtSale)
}

func TestShipOrder_RequiereEstadoDespachable(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 15, "110")
	seedSalesOrder(store, "so1", "SO-2003", entity.SalesOrderPendingApproval,
		entity.SalesOrderItem{ID: "i1", ProductID: "p1", Quantity: 1, UnitPrice: dec("150")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	err := uc.ShipOrder(context.Background(), "so1", "u1")
	assert.ErrorIs(t, err, domain.ErrOrderNotShippable)
	assert.Equal(t, int64(15), store.products["p1"].Stock)

	require.NoError(t, uc.ApproveOrder(context.Background(), "so1"))
	require.NoError(t, uc.ShipOrder(context.Background(), "so1", "u1"))

	// Tras completar, un segundo despacho también es ilegal.
	err = uc.ShipOrder(context.Background(), "so1", "u1")
	assert.ErrorIs(t, err, domain.ErrOrderNotShippable)
	assert.Equal(t, int64(14), store.products["p1"].Stock)
	assert.Len(t, store.invLog, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveOrder_CambioDeEstadoPuro(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 15, "110")
	seedSalesOrder(store, "so1", "SO-2004", entity.SalesOrderPendingApproval,
		entity.SalesOrderItem{ID: "i1", ProductID: "p1", Quantity: 3, UnitPrice: dec("150")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())

	require.NoError(t, uc.ApproveOrder(context.Background(), "so1"))

	o := store.salesOrders["so1"]
	assert.Equal(t, entity.SalesOrderPendingShipment, o.Status)
	require.NotNil(t, o.ApprovedAt)
	assert.Equal(t, int64(15), store.products["p1"].Stock, "aprobar no mueve stock")
	assert.Empty(t, store.invLog)

	err := uc.ApproveOrder(context.Background(), "so1")
	assert.ErrorIs(t, err, domain.ErrOrderNotPendingApproval)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia y reconstrucción
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveOrder_ReintentaTrasConflicto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 0, "0")
	seedPurchaseOrder(store, "po1", "PO-1006",
		entity.PurchaseOrderItem{ID: "i1", ProductID: "p1", Quantity: 10, UnitCost: dec("100")},
	)
	// Dos conflictos y al tercer intento comete.
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store, conflicts: 2}, testLogger())

	require.NoError(t, uc.ReceiveOrder(context.Background(), "po1", "u1"))
	assert.Equal(t, int64(10), store.products["p1"].Stock)
	assert.Len(t, store.invLog, 1, "los intentos fallidos no dejan rastro")
}

func TestReceiveOrder_ConflictoPersistenteSeRinde(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 0, "0")
	seedPurchaseOrder(store, "po1", "PO-1007",
		entity.PurchaseOrderItem{ID: "i1", ProductID: "p1", Quantity: 10, UnitCost: dec("100")},
	)
	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store, conflicts: 99}, testLogger())

	err := uc.ReceiveOrder(context.Background(), "po1", "u1")
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, int64(0), store.products["p1"].Stock)
	assert.Empty(t, store.invLog)
}

// Propiedad de reconstrucción: tras una mezcla de recepciones y despachos,
// la suma de Change en la bitácora reproduce el stock actual.
func TestBitacora_ReconstruyeStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 0, "0")
	seedPurchaseOrder(store, "po1", "PO-1",
		entity.PurchaseOrderItem{ID: "a", ProductID: "p1", Quantity: 10, UnitCost: dec("100")})
	seedPurchaseOrder(store, "po2", "PO-2",
		entity.PurchaseOrderItem{ID: "b", ProductID: "p1", Quantity: 5, UnitCost: dec("130")})
	seedSalesOrder(store, "so1", "SO-1", entity.SalesOrderPendingShipment,
		entity.SalesOrderItem{ID: "c", ProductID: "p1", Quantity: 12, UnitPrice: dec("150")})
	seedSalesOrder(store, "so2", "SO-2", entity.SalesOrderPendingShipment,
		entity.SalesOrderItem{ID: "d", ProductID: "p1", Quantity: 20, UnitPrice: dec("150")}) // fallará

	uc := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())
	ctx := context.Background()

	require.NoError(t, uc.ReceiveOrder(ctx, "po1", "u1"))
	require.NoError(t, uc.ReceiveOrder(ctx, "po2", "u1"))
	require.NoError(t, uc.ShipOrder(ctx, "so1", "u1"))
	assert.ErrorIs(t, uc.ShipOrder(ctx, "so2", "u1"), domain.ErrInsufficientStock)

	logRepo := &memInvLogRepo{store}
	sum, err := logRepo.SumChangesByProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, store.products["p1"].Stock, sum, "sum(Change) debe reproducir el stock")
	assert.Equal(t, int64(3), sum)
	// El intento fallido no escribió entradas.
	entries, _ := logRepo.ListByProduct("p1", 100, 0)
	assert.Len(t, entries, 3)
}

func TestReconcileStock_ContrastaBitacoraConStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 0, "0")
	seedPurchaseOrder(store, "po1", "PO-1",
		entity.PurchaseOrderItem{ID: "a", ProductID: "p1", Quantity: 10, UnitCost: dec("100")})
	seedSalesOrder(store, "so1", "SO-1", entity.SalesOrderPendingShipment,
		entity.SalesOrderItem{ID: "b", ProductID: "p1", Quantity: 4, UnitPrice: dec("150")})

	mov := appinv.NewOrderMovementUseCase(&memTxRunner{store: store}, testLogger())
	ctx := context.Background()
	require.NoError(t, mov.ReceiveOrder(ctx, "po1", "u1"))
	require.NoError(t, mov.ShipOrder(ctx, "so1", "u1"))

	ledger := appinv.NewLedgerUseCase(&memProductRepo{store}, &memInvLogRepo{store}, &memCostLogRepo{store})
	rec, err := ledger.ReconcileStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), rec.Stock)
	assert.Equal(t, int64(6), rec.SumChanges)
	assert.True(t, rec.Consistent, "la bitácora debe reconstruir el stock")
}

func TestReconcileStock_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	ledger := appinv.NewLedgerUseCase(&memProductRepo{store}, &memInvLogRepo{store}, &memCostLogRepo{store})

	_, err := ledger.ReconcileStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

package inventory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// LedgerUseCase consultas de solo lectura sobre las bitácoras de inventario y
// de costos (para la vista de kardex). Nunca muta; las mutaciones pasan
// únicamente por el coordinador transaccional.
type LedgerUseCase struct {
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	costRepo    repository.CostLogRepository
}

// NewLedgerUseCase construye el caso de uso de consulta.
func NewLedgerUseCase(productRepo repository.ProductRepository, logRepo repository.InventoryLogRepository, costRepo repository.CostLogRepository) *LedgerUseCase {
	return &LedgerUseCase{productRepo: productRepo, logRepo: logRepo, costRepo: costRepo}
}

// StockReconciliation contraste entre el stock del producto y la suma de los
// movimientos de su bitácora. Si coinciden, el kardex reconstruye el stock.
type StockReconciliation struct {
	ProductID  string
	Stock      int64
	SumChanges int64
	Consistent bool
}

// ListInventoryLog entradas de inventario de un producto, más recientes primero.
func (uc *LedgerUseCase) ListInventoryLog(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.logRepo.ListByProduct(productID, limit, offset)
}

// ListCostLog entradas de costo promedio de un producto, más recientes primero.
func (uc *LedgerUseCase) ListCostLog(_ context.Context, productID string, limit, offset int) ([]*entity.CostLogEntry, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.costRepo.ListByProduct(productID, limit, offset)
}

// ReconcileStock verifica que la suma de cambios de la bitácora reconstruya el
// stock actual del producto.
func (uc *LedgerUseCase) ReconcileStock(_ context.Context, productID string) (*StockReconciliation, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	sum, err := uc.logRepo.SumChangesByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &StockReconciliation{
		ProductID:  productID,
		Stock:      product.Stock,
		SumChanges: sum,
		Consistent: sum == product.Stock,
	}, nil
}

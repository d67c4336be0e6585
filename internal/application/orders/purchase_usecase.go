package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// PurchaseOrderUseCase creación y consulta de órdenes de compra.
// Crear una orden NO mueve stock: la orden nace PENDING y la recepción
// la ejecuta el coordinador de movimientos.
type PurchaseOrderUseCase struct {
	txRunner     inventory.TxRunner
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.PurchaseOrderRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner inventory.TxRunner,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

// Create valida proveedor, productos y cantidades, y persiste la orden con sus
// líneas en una transacción. Estado inicial: PENDING.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		Number:     fmt.Sprintf("PO-%d", now.Unix()),
		SupplierID: in.SupplierID,
		Status:     entity.PurchaseOrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  userID,
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}

	// Cabecera y líneas en una sola transacción.
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		_ repository.SalesOrderRepository,
		_ repository.InventoryLogRepository,
		_ repository.CostLogRepository,
	) error {
		return purchaseRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

// GetByID obtiene una orden de compra por ID.
func (uc *PurchaseOrderUseCase) GetByID(_ context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toPurchaseOrderResponse(order), nil
}

// List lista órdenes de compra con paginación.
func (uc *PurchaseOrderUseCase) List(_ context.Context, limit, offset int) ([]*dto.PurchaseOrderResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toPurchaseOrderResponse(o))
	}
	return out, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		SupplierID: o.SupplierID,
		Status:     string(o.Status),
		Total:      o.Total(),
		CreatedAt:  o.CreatedAt,
		ReceivedAt: o.ReceivedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	return resp
}

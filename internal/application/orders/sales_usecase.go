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

// SalesOrderUseCase creación y consulta de órdenes de venta.
// La orden nace PENDING_APPROVAL sin efecto sobre stock; aprobar y despachar
// las ejecuta el coordinador de movimientos.
type SalesOrderUseCase struct {
	txRunner     inventory.TxRunner
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.SalesOrderRepository
}

// NewSalesOrderUseCase construye el caso de uso.
func NewSalesOrderUseCase(
	txRunner inventory.TxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.SalesOrderRepository,
) *SalesOrderUseCase {
	return &SalesOrderUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

// Create valida cliente, productos y cantidades, completa precios desde la
// lista del producto (tramos incluidos) y persiste la orden en una transacción.
// No verifica stock: esa validación es del despacho, contra el stock del momento.
func (uc *SalesOrderUseCase) Create(ctx context.Context, userID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.SalesOrder{
		ID:         uuid.New().String(),
		Number:     fmt.Sprintf("SO-%d", now.Unix()),
		CustomerID: in.CustomerID,
		Status:     entity.SalesOrderPendingApproval,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  userID,
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		price := item.UnitPrice
		if price.IsZero() {
			price = product.PriceFor(item.Quantity)
		}
		order.Items = append(order.Items, entity.SalesOrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
		_ repository.InventoryLogRepository,
		_ repository.CostLogRepository,
	) error {
		return salesRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(order), nil
}

// GetByID obtiene una orden de venta por ID.
func (uc *SalesOrderUseCase) GetByID(_ context.Context, id string) (*dto.SalesOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toSalesOrderResponse(order), nil
}

// List lista órdenes de venta con paginación.
func (uc *SalesOrderUseCase) List(_ context.Context, limit, offset int) ([]*dto.SalesOrderResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toSalesOrderResponse(o))
	}
	return out, nil
}

func toSalesOrderResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	resp := &dto.SalesOrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		Total:       o.Total(),
		CreatedAt:   o.CreatedAt,
		ApprovedAt:  o.ApprovedAt,
		CompletedAt: o.CompletedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.SalesOrderItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			CostAtSale: it.CostAtSale,
		})
	}
	return resp
}

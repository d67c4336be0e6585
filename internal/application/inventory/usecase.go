package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	costing "github.com/jhoicas/Pedidos-api/internal/domain/inventory"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// maxRetries reintentos ante conflicto de concurrencia antes de rendirse.
// El conflicto se propaga como ErrConcurrencyConflict (reintentable por el caller).
const maxRetries = 3

// OrderMovementUseCase es el coordinador transaccional de movimientos: aplica
// la recepción de una orden de compra o el despacho de una orden de venta como
// una sola unidad atómica (stock + costo promedio + bitácoras + estado de la
// orden), usando bloqueo de fila (SELECT FOR UPDATE) sobre la orden y cada
// producto dentro de la transacción.
type OrderMovementUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewOrderMovementUseCase construye el coordinador.
func NewOrderMovementUseCase(txRunner TxRunner, log *logger.Logger) *OrderMovementUseCase {
	return &OrderMovementUseCase{txRunner: txRunner, log: log}
}

// ReceiveOrder recibe una orden de compra: por cada línea recalcula el costo
// promedio ponderado, suma stock y apunta las bitácoras; al final marca la
// orden RECEIVED. Todo dentro de una transacción con Commit/Rollback.
// Reintenta hasta maxRetries si la transacción pierde ante otra concurrente.
func (uc *OrderMovementUseCase) ReceiveOrder(ctx context.Context, orderID, userID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	return uc.withRetry(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		_ repository.SalesOrderRepository,
		logRepo repository.InventoryLogRepository,
		costRepo repository.CostLogRepository,
	) error {
		// Bloquea la fila de la orden: el chequeo de estado queda dentro de la
		// misma transacción que la mutación y una doble recepción concurrente
		// se serializa aquí (la segunda ve RECEIVED y falla).
		order, err := purchaseRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.Receivable() {
			return domain.ErrOrderNotReceivable
		}
		if len(order.Items) == 0 {
			return domain.ErrInvalidInput
		}

		now := time.Now()
		// Las líneas se procesan en el orden de la lista: dos recepciones del
		// mismo producto dentro de la orden componen sobre el estado ya actualizado.
		for _, item := range order.Items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}

			res, err := costing.ApplyReceipt(product.Stock, product.Cost, item.Quantity, item.UnitCost)
			if err != nil {
				return err
			}
			if err := productRepo.UpdateStockAndCost(product.ID, res.NewStock, res.NewAvgCost); err != nil {
				return err
			}
			if err := logRepo.Create(&entity.InventoryLogEntry{
				ID:         uuid.New().String(),
				ProductID:  product.ID,
				Type:       entity.LogTypeIn,
				Change:     item.Quantity,
				NewStock:   res.NewStock,
				RelatedDoc: order.Number,
				Timestamp:  now,
				CreatedAt:  now,
				CreatedBy:  userID,
			}); err != nil {
				return err
			}
			// La bitácora de costos solo registra cambios reales del promedio
			// redondeado; recibir al mismo costo no la ensucia.
			if costing.CostChanged(product.Cost, res.NewAvgCost) {
				if err := costRepo.Create(&entity.CostLogEntry{
					ID:         uuid.New().String(),
					ProductID:  product.ID,
					OldAvgCost: product.Cost.RoundBank(costing.CostScale),
					NewAvgCost: res.NewAvgCost,
					RelatedDoc: order.Number,
					Timestamp:  now,
					CreatedAt:  now,
				}); err != nil {
					return err
				}
			}
		}

		return purchaseRepo.UpdateStatus(order.ID, entity.PurchaseOrderReceived, &now)
	})
}

// ShipOrder despacha una orden de venta: descuenta stock por línea, apunta la
// bitácora de salidas y estampa CostAtSale en cada línea; al final marca la
// orden COMPLETED. Si alguna línea no tiene stock suficiente, toda la unidad
// se revierte: no hay despachos parciales.
func (uc *OrderMovementUseCase) ShipOrder(ctx context.Context, orderID, userID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	return uc.withRetry(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
		logRepo repository.InventoryLogRepository,
		_ repository.CostLogRepository,
	) error {
		order, err := salesRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.Shippable() {
			return domain.ErrOrderNotShippable
		}
		if len(order.Items) == 0 {
			return domain.ErrInvalidInput
		}

		now := time.Now()
		for _, item := range order.Items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}

			res, err := costing.ApplyShipment(product.Stock, product.Cost, item.Quantity)
			if err != nil {
				return err
			}
			// El despacho no toca el costo promedio.
			if err := productRepo.UpdateStockAndCost(product.ID, res.NewStock, product.Cost); err != nil {
				return err
			}
			if err := logRepo.Create(&entity.InventoryLogEntry{
				ID:         uuid.New().String(),
				ProductID:  product.ID,
				Type:       entity.LogTypeOut,
				Change:     -item.Quantity,
				NewStock:   res.NewStock,
				RelatedDoc: order.Number,
				Timestamp:  now,
				CreatedAt:  now,
				CreatedBy:  userID,
			}); err != nil {
				return err
			}
			if err := salesRepo.UpdateItemCostAtSale(item.ID, res.CostAtSale); err != nil {
				return err
			}
		}

		return salesRepo.UpdateStatus(order.ID, entity.SalesOrderCompleted, &now)
	})
}

// ApproveOrder aprueba una orden de venta: PENDING_APPROVAL -> PENDING_SHIPMENT.
// Cambio de estado puro, sin efecto sobre stock; va en transacción solo para que
// dos aprobaciones concurrentes se serialicen sobre la fila de la orden.
func (uc *OrderMovementUseCase) ApproveOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	return uc.withRetry(ctx, func(
		_ repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
		_ repository.InventoryLogRepository,
		_ repository.CostLogRepository,
	) error {
		order, err := salesRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.Approvable() {
			return domain.ErrOrderNotPendingApproval
		}
		now := time.Now()
		return salesRepo.UpdateStatus(order.ID, entity.SalesOrderPendingShipment, &now)
	})
}

// withRetry ejecuta la unidad transaccional y reintenta ante conflicto de
// concurrencia (la transacción perdió el compare-and-commit contra otra).
// Cada reintento relee, recalcula y recomete desde cero.
func (uc *OrderMovementUseCase) withRetry(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	salesRepo repository.SalesOrderRepository,
	logRepo repository.InventoryLogRepository,
	costRepo repository.CostLogRepository,
) error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		uc.log.Warn().Int("intento", attempt+1).Msg("conflicto de concurrencia, reintentando movimiento")
	}
	return err
}

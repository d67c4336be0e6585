package inventory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: o se aplican todas las escrituras de la orden, o ninguna.
// Un fallo de serialización o deadlock debe retornarse como
// domain.ErrConcurrencyConflict para que el caso de uso reintente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
		logRepo repository.InventoryLogRepository,
		costRepo repository.CostLogRepository,
	) error) error
}

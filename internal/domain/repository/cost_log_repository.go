package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// CostLogRepository define el puerto de persistencia para la bitácora de costo
// promedio. Append-only: sin updates ni deletes.
type CostLogRepository interface {
	Create(entry *entity.CostLogEntry) error
	// ListByProduct entradas de un producto, más recientes primero.
	ListByProduct(productID string, limit, offset int) ([]*entity.CostLogEntry, error)
}

package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// InventoryLogRepository define el puerto de persistencia para la bitácora de
// inventario. Solo inserta y consulta: las entradas son inmutables.
type InventoryLogRepository interface {
	Create(entry *entity.InventoryLogEntry) error
	// ListByProduct entradas de un producto, más recientes primero.
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryLogEntry, error)
	// SumChangesByProduct suma de Change; debe reproducir el stock actual del producto.
	SumChangesByProduct(productID string) (int64, error)
}

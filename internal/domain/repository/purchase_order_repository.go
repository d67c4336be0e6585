package repository

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create persiste la orden con sus líneas.
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE). El motor la usa
	// para que dos recepciones concurrentes de la misma orden se serialicen y la
	// segunda vea el estado RECEIVED.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id string, status entity.PurchaseOrderStatus, receivedAt *time.Time) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
}

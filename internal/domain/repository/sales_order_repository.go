package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para órdenes de venta.
type SalesOrderRepository interface {
	// Create persiste la orden con sus líneas.
	Create(order *entity.SalesOrder) error
	GetByID(id string) (*entity.SalesOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.SalesOrder, error)
	UpdateStatus(id string, status entity.SalesOrderStatus, at *time.Time) error
	// UpdateItemCostAtSale estampa la foto del costo promedio en la línea despachada.
	UpdateItemCostAtSale(itemID string, costAtSale decimal.Decimal) error
	List(limit, offset int) ([]*entity.SalesOrder, error)
	// ListCompleted órdenes despachadas (para el reporte de margen bruto).
	ListCompleted(from, to *time.Time, limit, offset int) ([]*entity.SalesOrder, error)
}

package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del motor de movimientos.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStockAndCost actualiza stock y costo promedio en una sola sentencia.
	// Reservado al motor de movimientos; nadie más muta stock ni costo.
	UpdateStockAndCost(productID string, stock int64, cost decimal.Decimal) error
	List(search string, limit, offset int) ([]*entity.Product, error)
	// ListLowStock productos con stock <= umbral de stock bajo.
	ListLowStock(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}

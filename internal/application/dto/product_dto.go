package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
// Stock y costo promedio NO se aceptan aquí: inician en 0 y solo los mueve
// el motor de movimientos (recepciones y despachos).
type CreateProductRequest struct {
	SKU               string             `json:"sku"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Price             decimal.Decimal    `json:"price"`
	LowStockThreshold int64              `json:"low_stock_threshold,omitempty"`
	TierPrices        []entity.TierPrice `json:"tier_prices,omitempty"`
	UnitMeasure       string             `json:"unit_measure,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name              string             `json:"name,omitempty"`
	Description       string             `json:"description,omitempty"`
	Price             decimal.Decimal    `json:"price,omitempty"`
	LowStockThreshold *int64             `json:"low_stock_threshold,omitempty"`
	TierPrices        []entity.TierPrice `json:"tier_prices,omitempty"`
	UnitMeasure       string             `json:"unit_measure,omitempty"`
}

// ProductResponse producto para la capa de presentación.
type ProductResponse struct {
	ID                string             `json:"id"`
	SKU               string             `json:"sku"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Price             decimal.Decimal    `json:"price"`
	Cost              decimal.Decimal    `json:"cost"`
	Stock             int64              `json:"stock"`
	LowStockThreshold int64              `json:"low_stock_threshold"`
	TierPrices        []entity.TierPrice `json:"tier_prices,omitempty"`
	UnitMeasure       string             `json:"unit_measure,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

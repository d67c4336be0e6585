package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TierPrice precio por tramo de cantidad (lista de precios del producto).
// El motor de inventario no la modifica; ventas la usa para sugerir el precio unitario.
type TierPrice struct {
	MinQuantity int64           `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Product representa un producto o SKU del inventario.
// Stock y Cost los mantiene exclusivamente el motor de movimientos (recepción/despacho);
// Cost es promedio ponderado e inicia en 0 junto con Stock.
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	SearchName        string // Name en minúsculas y sin tildes; lo mantiene el caso de uso para la búsqueda
	Description       string
	Price             decimal.Decimal // precio de venta base
	Cost              decimal.Decimal // costo promedio ponderado (inicia en 0)
	Stock             int64           // unidades en existencia (nunca negativo en estados confirmados)
	LowStockThreshold int64           // umbral informativo para el reporte de stock bajo
	TierPrices        []TierPrice     // lista de precios por cantidad (jsonb)
	UnitMeasure       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PriceFor devuelve el precio aplicable a una cantidad según la lista de tramos.
// Sin tramo aplicable retorna el precio base.
func (p *Product) PriceFor(quantity int64) decimal.Decimal {
	price := p.Price
	best := int64(0)
	for _, t := range p.TierPrices {
		if quantity >= t.MinQuantity && t.MinQuantity >= best {
			best = t.MinQuantity
			price = t.Price
		}
	}
	return price
}

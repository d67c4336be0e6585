package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLogEntryDTO entrada de la bitácora de inventario (kardex).
type InventoryLogEntryDTO struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Type       string    `json:"type"` // in, out
	Change     int64     `json:"change"`
	NewStock   int64     `json:"new_stock"`
	RelatedDoc string    `json:"related_doc"`
	Timestamp  time.Time `json:"timestamp"`
}

// CostLogEntryDTO entrada de la bitácora de costo promedio.
type CostLogEntryDTO struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	OldAvgCost decimal.Decimal `json:"old_avg_cost"`
	NewAvgCost decimal.Decimal `json:"new_avg_cost"`
	RelatedDoc string          `json:"related_doc"`
	Timestamp  time.Time       `json:"timestamp"`
}

// StockReconciliationDTO contraste del stock contra la suma de la bitácora.
type StockReconciliationDTO struct {
	ProductID  string `json:"product_id"`
	Stock      int64  `json:"stock"`
	SumChanges int64  `json:"sum_changes"`
	Consistent bool   `json:"consistent"`
}

// LowStockProductDTO producto en o por debajo de su umbral de stock bajo.
type LowStockProductDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	Name              string `json:"name"`
	Stock             int64  `json:"stock"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
}

// MarginReportRowDTO margen bruto de una orden de venta despachada,
// calculado con el CostAtSale estampado al despachar.
type MarginReportRowDTO struct {
	OrderID     string          `json:"order_id"`
	Number      string          `json:"number"`
	CustomerID  string          `json:"customer_id"`
	Total       decimal.Decimal `json:"total"`
	GrossMargin decimal.Decimal `json:"gross_margin"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

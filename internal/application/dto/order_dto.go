package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea para crear una orden de compra.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Items      []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemResponse línea de una orden de compra.
type PurchaseOrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden de compra para la capa de presentación.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Number     string                      `json:"number"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	Items      []PurchaseOrderItemResponse `json:"items"`
	Total      decimal.Decimal             `json:"total"`
	CreatedAt  time.Time                   `json:"created_at"`
	ReceivedAt *time.Time                  `json:"received_at,omitempty"`
}

// SalesOrderItemRequest línea para crear una orden de venta.
// UnitPrice en cero toma el precio de lista del producto (tramos incluidos).
type SalesOrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSalesOrderRequest body para POST /api/sales-orders.
type CreateSalesOrderRequest struct {
	CustomerID string                  `json:"customer_id"`
	Items      []SalesOrderItemRequest `json:"items"`
}

// SalesOrderItemResponse línea de una orden de venta.
// CostAtSale aparece solo después del despacho.
type SalesOrderItemResponse struct {
	ID         string           `json:"id"`
	ProductID  string           `json:"product_id"`
	Quantity   int64            `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	CostAtSale *decimal.Decimal `json:"cost_at_sale,omitempty"`
}

// SalesOrderResponse orden de venta para la capa de presentación.
type SalesOrderResponse struct {
	ID          string                   `json:"id"`
	Number      string                   `json:"number"`
	CustomerID  string                   `json:"customer_id"`
	Status      string                   `json:"status"`
	Items       []SalesOrderItemResponse `json:"items"`
	Total       decimal.Decimal          `json:"total"`
	CreatedAt   time.Time                `json:"created_at"`
	ApprovedAt  *time.Time               `json:"approved_at,omitempty"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus estado de una orden de compra.
type PurchaseOrderStatus string

// Estados de orden de compra. La transición es monotónica: PENDING -> RECEIVED.
// No existe "des-recepción"; una reversa se modela con un movimiento compensatorio aparte.
const (
	PurchaseOrderPending  PurchaseOrderStatus = "PENDING"
	PurchaseOrderReceived PurchaseOrderStatus = "RECEIVED"
)

// IsValid verifica que el estado sea uno conocido.
func (s PurchaseOrderStatus) IsValid() bool {
	return s == PurchaseOrderPending || s == PurchaseOrderReceived
}

// Receivable indica si la orden puede recibirse en este estado.
func (s PurchaseOrderStatus) Receivable() bool {
	return s == PurchaseOrderPending
}

// CanTransitionTo valida la transición de estado.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	return s == PurchaseOrderPending && target == PurchaseOrderReceived
}

// PurchaseOrderItem línea de una orden de compra.
type PurchaseOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64           // siempre positiva
	UnitCost  decimal.Decimal // costo de compra unitario
}

// PurchaseOrder representa una orden de compra a un proveedor.
// Items nunca está vacía; la recepción la ejecuta el motor de movimientos
// de forma atómica (stock + costo promedio + bitácoras + estado).
type PurchaseOrder struct {
	ID         string
	Number     string // consecutivo PO-<n>, referencia en las bitácoras
	SupplierID string
	Status     PurchaseOrderStatus
	Items      []PurchaseOrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReceivedAt *time.Time
	CreatedBy  string
}

// Total costo total de la orden (suma de cantidad * costo unitario).
func (o *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(decimal.NewFromInt(it.Quantity).Mul(it.UnitCost))
	}
	return total
}

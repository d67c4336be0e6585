package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderStatus estado de una orden de venta.
type SalesOrderStatus string

// Estados de orden de venta. Transición monotónica:
// PENDING_APPROVAL -> PENDING_SHIPMENT -> COMPLETED.
// Aprobar es un cambio de estado puro (sin efecto sobre stock); despachar
// lo ejecuta el motor de movimientos.
const (
	SalesOrderPendingApproval SalesOrderStatus = "PENDING_APPROVAL"
	SalesOrderPendingShipment SalesOrderStatus = "PENDING_SHIPMENT"
	SalesOrderCompleted       SalesOrderStatus = "COMPLETED"
)

// IsValid verifica que el estado sea uno conocido.
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderPendingApproval, SalesOrderPendingShipment, SalesOrderCompleted:
		return true
	}
	return false
}

// Approvable indica si la orden puede aprobarse en este estado.
func (s SalesOrderStatus) Approvable() bool {
	return s == SalesOrderPendingApproval
}

// Shippable indica si la orden puede despacharse en este estado.
func (s SalesOrderStatus) Shippable() bool {
	return s == SalesOrderPendingShipment
}

// CanTransitionTo valida la transición de estado.
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesOrderPendingApproval:
		return target == SalesOrderPendingShipment
	case SalesOrderPendingShipment:
		return target == SalesOrderCompleted
	}
	return false
}

// SalesOrderItem línea de una orden de venta.
// CostAtSale lo estampa el motor al despachar: es la foto del costo promedio
// en ese momento y queda como evidencia inmutable para el margen bruto.
type SalesOrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int64           // siempre positiva
	UnitPrice  decimal.Decimal // precio de venta unitario
	CostAtSale *decimal.Decimal
}

// SalesOrder representa una orden de venta de un cliente.
type SalesOrder struct {
	ID          string
	Number      string // consecutivo SO-<n>, referencia en las bitácoras
	CustomerID  string
	Status      SalesOrderStatus
	Items       []SalesOrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ApprovedAt  *time.Time
	CompletedAt *time.Time
	CreatedBy   string
}

// Total valor total de la orden (suma de cantidad * precio unitario).
func (o *SalesOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(decimal.NewFromInt(it.Quantity).Mul(it.UnitPrice))
	}
	return total
}

// GrossMargin margen bruto de la orden a partir de CostAtSale.
// Retorna cero si la orden aún no se despacha.
func (o *SalesOrder) GrossMargin() decimal.Decimal {
	margin := decimal.Zero
	for _, it := range o.Items {
		if it.CostAtSale == nil {
			continue
		}
		qty := decimal.NewFromInt(it.Quantity)
		margin = margin.Add(qty.Mul(it.UnitPrice.Sub(*it.CostAtSale)))
	}
	return margin
}

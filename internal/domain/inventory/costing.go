// Package inventory contiene el motor de costeo promedio ponderado (servicio de
// dominio puro, sin I/O). El coordinador transaccional aplica sus resultados
// dentro de una transacción; aquí solo hay aritmética decimal determinista.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// CostScale decimales persistidos para el costo promedio. Todo costo se
// redondea con RoundBank (half-even) a esta escala antes de persistir o comparar;
// así la comparación "¿cambió el costo?" nunca depende de ruido binario.
const CostScale = 4

// ReceiptResult resultado de aplicar una recepción a un producto.
type ReceiptResult struct {
	NewStock   int64
	NewAvgCost decimal.Decimal
}

// ShipmentResult resultado de aplicar un despacho a un producto.
type ShipmentResult struct {
	NewStock   int64
	CostAtSale decimal.Decimal
}

// ApplyReceipt calcula el nuevo stock y el nuevo costo promedio ponderado:
// NuevoCosto = ((Stock * CostoActual) + (Cantidad * CostoEntrada)) / (Stock + Cantidad)
// Con stock inicial cero el promedio queda en el costo de entrada.
func ApplyReceipt(stock int64, avgCost decimal.Decimal, quantity int64, unitCost decimal.Decimal) (ReceiptResult, error) {
	if quantity <= 0 {
		return ReceiptResult{}, domain.ErrInvalidQuantity
	}
	if unitCost.IsNegative() || avgCost.IsNegative() {
		return ReceiptResult{}, domain.ErrInvalidInput
	}
	newStock := stock + quantity
	num := decimal.NewFromInt(stock).Mul(avgCost).
		Add(decimal.NewFromInt(quantity).Mul(unitCost))
	newAvg := num.Div(decimal.NewFromInt(newStock)).RoundBank(CostScale)
	return ReceiptResult{NewStock: newStock, NewAvgCost: newAvg}, nil
}

// ApplyShipment calcula el nuevo stock de un despacho. El costo promedio no
// cambia en salidas (el promedio móvil solo reacciona a entradas); CostAtSale
// es la foto del costo promedio en el momento del despacho.
// Retorna ErrInsufficientStock si el stock no alcanza; nunca se recorta a cero.
func ApplyShipment(stock int64, avgCost decimal.Decimal, quantity int64) (ShipmentResult, error) {
	if quantity <= 0 {
		return ShipmentResult{}, domain.ErrInvalidQuantity
	}
	if stock < quantity {
		return ShipmentResult{}, domain.ErrInsufficientStock
	}
	return ShipmentResult{NewStock: stock - quantity, CostAtSale: avgCost}, nil
}

// CostChanged compara dos costos promedio a la escala persistida.
// Determina si la recepción debe dejar entrada en la bitácora de costos.
func CostChanged(oldCost, newCost decimal.Decimal) bool {
	return !oldCost.RoundBank(CostScale).Equal(newCost.RoundBank(CostScale))
}

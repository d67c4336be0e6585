package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// TestApplyReceipt_PromedioPonderado sigue el escenario canónico:
// stock 0 @ 0 -> recibir 10 @ 100 -> recibir 5 @ 130 -> promedio 110.
func TestApplyReceipt_PromedioPonderado(t *testing.T) {
	r1, err := inventory.ApplyReceipt(0, decimal.Zero, 10, dec("100"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), r1.NewStock)
	assert.True(t, r1.NewAvgCost.Equal(dec("100")), "primer ingreso: promedio = costo de entrada, got %s", r1.NewAvgCost)

	r2, err := inventory.ApplyReceipt(r1.NewStock, r1.NewAvgCost, 5, dec("130"))
	require.NoError(t, err)
	assert.Equal(t, int64(15), r2.NewStock)
	// (10*100 + 5*130) / 15 = 110
	assert.True(t, r2.NewAvgCost.Equal(dec("110")), "promedio ponderado esperado 110, got %s", r2.NewAvgCost)
}

func TestApplyReceipt_CantidadInvalida(t *testing.T) {
	for _, qty := range []int64{0, -3} {
		_, err := inventory.ApplyReceipt(10, dec("50"), qty, dec("10"))
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "qty=%d", qty)
	}
}

func TestApplyReceipt_CostoNegativoRechazado(t *testing.T) {
	_, err := inventory.ApplyReceipt(10, dec("50"), 1, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El promedio se redondea half-even a CostScale antes de persistir/comparar.
func TestApplyReceipt_RedondeoBancario(t *testing.T) {
	// (1*0.00005 + 0*0) / 1 -> 0.00005 redondea half-even a 0.0000 (escala 4, dígito par)
	r, err := inventory.ApplyReceipt(0, decimal.Zero, 1, dec("0.00005"))
	require.NoError(t, err)
	assert.True(t, r.NewAvgCost.Equal(dec("0")), "got %s", r.NewAvgCost)

	// 0.00015 redondea half-even a 0.0002
	r, err = inventory.ApplyReceipt(0, decimal.Zero, 1, dec("0.00015"))
	require.NoError(t, err)
	assert.True(t, r.NewAvgCost.Equal(dec("0.0002")), "got %s", r.NewAvgCost)
}

// Propiedad: partiendo de stock cero, tras una secuencia de recepciones el promedio
// equivale al costo total recibido dividido por las unidades recibidas.
func TestApplyReceipt_InvariantePromedio(t *testing.T) {
	receipts := []struct {
		qty  int64
		cost string
	}{
		{7, "12.50"}, {3, "19.90"}, {25, "11.00"}, {1, "45.75"}, {14, "13.33"},
	}

	stock := int64(0)
	avg := decimal.Zero
	totalQty := int64(0)
	totalCost := decimal.Zero
	for _, rc := range receipts {
		r, err := inventory.ApplyReceipt(stock, avg, rc.qty, dec(rc.cost))
		require.NoError(t, err)
		stock, avg = r.NewStock, r.NewAvgCost
		totalQty += rc.qty
		totalCost = totalCost.Add(decimal.NewFromInt(rc.qty).Mul(dec(rc.cost)))
	}

	expected := totalCost.Div(decimal.NewFromInt(totalQty)).RoundBank(inventory.CostScale)
	// El redondeo por paso puede desviar como máximo medio paso de escala acumulado.
	diff := avg.Sub(expected).Abs()
	tolerance := dec("0.0001").Mul(decimal.NewFromInt(int64(len(receipts))))
	assert.True(t, diff.LessThanOrEqual(tolerance),
		"promedio %s difiere de %s más que %s", avg, expected, tolerance)
}

func TestApplyShipment_DescuentaSinTocarCosto(t *testing.T) {
	// Continuación del escenario canónico: stock 15 @ 110, despachar 12.
	r, err := inventory.ApplyShipment(15, dec("110"), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(3), r.NewStock)
	assert.True(t, r.CostAtSale.Equal(dec("110")), "CostAtSale debe ser la foto del promedio")
}

func TestApplyShipment_StockInsuficiente(t *testing.T) {
	_, err := inventory.ApplyShipment(15, dec("110"), 20)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyShipment_CantidadInvalida(t *testing.T) {
	_, err := inventory.ApplyShipment(15, dec("110"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCostChanged(t *testing.T) {
	assert.False(t, inventory.CostChanged(dec("100"), dec("100.00000")), "iguales tras redondeo")
	assert.False(t, inventory.CostChanged(dec("100.00001"), dec("100.00004")), "difieren solo después de la escala")
	assert.True(t, inventory.CostChanged(dec("100"), dec("110")))
	assert.True(t, inventory.CostChanged(dec("100.0001"), dec("100.0002")))
}

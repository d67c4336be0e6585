package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

func TestPurchaseOrderStatus_Transiciones(t *testing.T) {
	assert.True(t, entity.PurchaseOrderPending.Receivable())
	assert.False(t, entity.PurchaseOrderReceived.Receivable(), "RECEIVED es terminal")

	assert.True(t, entity.PurchaseOrderPending.CanTransitionTo(entity.PurchaseOrderReceived))
	assert.False(t, entity.PurchaseOrderReceived.CanTransitionTo(entity.PurchaseOrderPending), "no existe des-recepción")
}

func TestSalesOrderStatus_Transiciones(t *testing.T) {
	cases := []struct {
		name   string
		from   entity.SalesOrderStatus
		to     entity.SalesOrderStatus
		wantOK bool
	}{
		{"aprobar", entity.SalesOrderPendingApproval, entity.SalesOrderPendingShipment, true},
		{"despachar", entity.SalesOrderPendingShipment, entity.SalesOrderCompleted, true},
		{"saltar aprobación", entity.SalesOrderPendingApproval, entity.SalesOrderCompleted, false},
		{"des-despachar", entity.SalesOrderCompleted, entity.SalesOrderPendingShipment, false},
		{"retroceder aprobación", entity.SalesOrderPendingShipment, entity.SalesOrderPendingApproval, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantOK, tc.from.CanTransitionTo(tc.to))
		})
	}

	assert.True(t, entity.SalesOrderPendingApproval.Approvable())
	assert.False(t, entity.SalesOrderPendingShipment.Approvable())
	assert.True(t, entity.SalesOrderPendingShipment.Shippable())
	assert.False(t, entity.SalesOrderPendingApproval.Shippable())
	assert.False(t, entity.SalesOrderCompleted.Shippable())
}

func TestProduct_PriceFor(t *testing.T) {
	p := &entity.Product{
		Price: decimal.NewFromInt(100),
		TierPrices: []entity.TierPrice{
			{MinQuantity: 10, Price: decimal.NewFromInt(90)},
			{MinQuantity: 50, Price: decimal.NewFromInt(80)},
		},
	}
	assert.True(t, p.PriceFor(1).Equal(decimal.NewFromInt(100)))
	assert.True(t, p.PriceFor(10).Equal(decimal.NewFromInt(90)))
	assert.True(t, p.PriceFor(120).Equal(decimal.NewFromInt(80)))
}

func TestSalesOrder_GrossMargin(t *testing.T) {
	cost := decimal.NewFromInt(110)
	o := &entity.SalesOrder{Items: []entity.SalesOrderItem{
		{Quantity: 12, UnitPrice: decimal.NewFromInt(150), CostAtSale: &cost},
		{Quantity: 2, UnitPrice: decimal.NewFromInt(200)}, // sin despachar: no aporta margen
	}}
	// 12 * (150-110) = 480
	assert.True(t, o.GrossMargin().Equal(decimal.NewFromInt(480)), "got %s", o.GrossMargin())
}

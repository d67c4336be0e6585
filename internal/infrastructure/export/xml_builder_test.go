package export

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

func sampleOrder() (*entity.SalesOrder, *entity.Customer, map[string]*entity.Product) {
	order := &entity.SalesOrder{
		ID:         "order-1",
		Number:     "SO-1700000000",
		CustomerID: "cust-1",
		Status:     entity.SalesOrderPendingShipment,
		CreatedAt:  time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		Items: []entity.SalesOrderItem{
			{ID: "item-1", OrderID: "order-1", ProductID: "prod-1", Quantity: 3, UnitPrice: decimal.NewFromInt(2500)},
			{ID: "item-2", OrderID: "order-1", ProductID: "prod-2", Quantity: 1, UnitPrice: decimal.NewFromInt(10000)},
		},
	}
	customer := &entity.Customer{ID: "cust-1", Name: "Ferretería El Martillo", TaxID: "900123456", Email: "compras@martillo.co"}
	products := map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "TOR-3MM", Name: "Tornillo 3mm"},
		"prod-2": {ID: "prod-2", SKU: "MAR-500", Name: "Martillo 500g"},
	}
	return order, customer, products
}

func TestBuildSalesOrderXML_EstructuraYValores(t *testing.T) {
	order, customer, products := sampleOrder()
	out, err := NewSalesOrderXMLBuilder().BuildSalesOrderXML(order, customer, products)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "SalesOrder", root.Tag)
	assert.Equal(t, "SO-1700000000", root.SelectAttrValue("number", ""))
	assert.Equal(t, "PENDING_SHIPMENT", root.SelectAttrValue("status", ""))
	assert.Equal(t, "2026-03-10T15:00:00Z", root.SelectElement("IssueDate").Text())

	cust := root.SelectElement("Customer")
	require.NotNil(t, cust)
	assert.Equal(t, "Ferretería El Martillo", cust.SelectElement("Name").Text())
	assert.Equal(t, "900123456", cust.SelectElement("TaxID").Text())

	lines := root.SelectElement("Lines").SelectElements("Line")
	require.Len(t, lines, 2)
	assert.Equal(t, "TOR-3MM", lines[0].SelectElement("SKU").Text())
	assert.Equal(t, "3", lines[0].SelectElement("Quantity").Text())
	assert.Equal(t, "2500.00", lines[0].SelectElement("UnitPrice").Text())
	assert.Equal(t, "7500.00", lines[0].SelectElement("Subtotal").Text())

	// Total = 3*2500 + 1*10000
	assert.Equal(t, "17500.00", root.SelectElement("Total").Text())
}

func TestBuildSalesOrderXML_ProductoFaltante(t *testing.T) {
	order, customer, products := sampleOrder()
	delete(products, "prod-2")

	_, err := NewSalesOrderXMLBuilder().BuildSalesOrderXML(order, customer, products)
	assert.Error(t, err)
}

func TestBuildSalesOrderXML_OmiteEmailVacio(t *testing.T) {
	order, customer, products := sampleOrder()
	customer.Email = ""

	out, err := NewSalesOrderXMLBuilder().BuildSalesOrderXML(order, customer, products)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Nil(t, doc.Root().SelectElement("Customer").SelectElement("Email"))
}

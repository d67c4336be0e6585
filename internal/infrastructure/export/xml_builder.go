// Package export construye la representación XML de una orden de venta para
// intercambio B2B simple (sin firma digital).
package export

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var _ orders.OrderXMLBuilder = (*SalesOrderXMLBuilder)(nil)

// SalesOrderXMLBuilder implementa orders.OrderXMLBuilder usando etree.
type SalesOrderXMLBuilder struct{}

// NewSalesOrderXMLBuilder construye el builder.
func NewSalesOrderXMLBuilder() *SalesOrderXMLBuilder { return &SalesOrderXMLBuilder{} }

// BuildSalesOrderXML serializa la orden con cliente y líneas.
//
// Estructura:
//
//	<SalesOrder number="SO-n" status="...">
//	  <IssueDate>RFC3339</IssueDate>
//	  <Customer> <Name/> <TaxID/> <Email/> </Customer>
//	  <Lines> <Line> <SKU/> <Product/> <Quantity/> <UnitPrice/> <Subtotal/> </Line> ... </Lines>
//	  <Total/>
//	</SalesOrder>
func (b *SalesOrderXMLBuilder) BuildSalesOrderXML(
	order *entity.SalesOrder,
	customer *entity.Customer,
	products map[string]*entity.Product,
) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("SalesOrder")
	root.CreateAttr("number", order.Number)
	root.CreateAttr("status", string(order.Status))
	root.CreateElement("IssueDate").SetText(order.CreatedAt.UTC().Format(time.RFC3339))

	cust := root.CreateElement("Customer")
	cust.CreateElement("Name").SetText(customer.Name)
	cust.CreateElement("TaxID").SetText(customer.TaxID)
	if customer.Email != "" {
		cust.CreateElement("Email").SetText(customer.Email)
	}

	lines := root.CreateElement("Lines")
	for _, it := range order.Items {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("export: producto %s de la línea %s no cargado", it.ProductID, it.ID)
		}
		line := lines.CreateElement("Line")
		line.CreateElement("SKU").SetText(p.SKU)
		line.CreateElement("Product").SetText(p.Name)
		line.CreateElement("Quantity").SetText(fmt.Sprintf("%d", it.Quantity))
		line.CreateElement("UnitPrice").SetText(it.UnitPrice.StringFixed(2))
		line.CreateElement("Subtotal").SetText(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)).StringFixed(2))
	}

	root.CreateElement("Total").SetText(order.Total().StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar XML: %w", err)
	}
	return out, nil
}

package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderPDFGenerator genera el documento PDF de una orden de venta.
type OrderPDFGenerator interface {
	GenerateSalesOrderPDF(
		ctx context.Context,
		order *entity.SalesOrder,
		customer *entity.Customer,
		products map[string]*entity.Product,
	) ([]byte, error)
}

// OrderXMLBuilder construye la representación XML de una orden de venta
// (intercambio B2B simple, sin firma).
type OrderXMLBuilder interface {
	BuildSalesOrderXML(
		order *entity.SalesOrder,
		customer *entity.Customer,
		products map[string]*entity.Product,
	) ([]byte, error)
}

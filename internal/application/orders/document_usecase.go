package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// DocumentUseCase genera los documentos de una orden de venta: PDF para
// impresión y XML para intercambio B2B. Solo lectura sobre el dominio.
type DocumentUseCase struct {
	orderRepo    repository.SalesOrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	pdfGenerator OrderPDFGenerator
	xmlBuilder   OrderXMLBuilder
}

// NewDocumentUseCase construye el caso de uso inyectando sus dependencias.
func NewDocumentUseCase(
	orderRepo repository.SalesOrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	pdfGenerator OrderPDFGenerator,
	xmlBuilder OrderXMLBuilder,
) *DocumentUseCase {
	return &DocumentUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		pdfGenerator: pdfGenerator,
		xmlBuilder:   xmlBuilder,
	}
}

// loadOrderContext carga orden, cliente y productos referenciados.
func (uc *DocumentUseCase) loadOrderContext(orderID string) (*entity.SalesOrder, *entity.Customer, map[string]*entity.Product, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("documento: obtener orden: %w", err)
	}
	if order == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(order.CustomerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("documento: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	products := make(map[string]*entity.Product, len(order.Items))
	for _, item := range order.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, nil, nil, fmt.Errorf("documento: obtener producto %s: %w", item.ProductID, domain.ErrProductNotFound)
		}
		products[item.ProductID] = product
	}
	return order, customer, products, nil
}

// SalesOrderPDF genera el PDF de la orden y un nombre de archivo sugerido.
func (uc *DocumentUseCase) SalesOrderPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, customer, products, err := uc.loadOrderContext(orderID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.pdfGenerator.GenerateSalesOrderPDF(ctx, order, customer, products)
	if err != nil {
		return nil, "", fmt.Errorf("documento: generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("orden-%s.pdf", order.Number), nil
}

// SalesOrderXML genera la representación XML de la orden.
func (uc *DocumentUseCase) SalesOrderXML(_ context.Context, orderID string) ([]byte, string, error) {
	order, customer, products, err := uc.loadOrderContext(orderID)
	if err != nil {
		return nil, "", err
	}
	xml, err := uc.xmlBuilder.BuildSalesOrderXML(order, customer, products)
	if err != nil {
		return nil, "", fmt.Errorf("documento: generar XML: %w", err)
	}
	return xml, fmt.Sprintf("orden-%s.xml", order.Number), nil
}

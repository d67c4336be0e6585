package usecase

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura para la capa de presentación:
// stock bajo y margen bruto de órdenes despachadas.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	salesRepo   repository.SalesOrderRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(productRepo repository.ProductRepository, salesRepo repository.SalesOrderRepository) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, salesRepo: salesRepo}
}

// LowStock productos con stock en o bajo su umbral.
func (uc *ReportUseCase) LowStock(limit, offset int) ([]*dto.LowStockProductDTO, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.productRepo.ListLowStock(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LowStockProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, &dto.LowStockProductDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Name:              p.Name,
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
		})
	}
	return out, nil
}

// GrossMargin margen bruto por orden despachada en el rango dado, calculado
// con el CostAtSale estampado al despachar (evidencia inmutable, no el costo actual).
func (uc *ReportUseCase) GrossMargin(from, to *time.Time, limit, offset int) ([]*dto.MarginReportRowDTO, error) {
	if limit <= 0 {
		limit = 50
	}
	orders, err := uc.salesRepo.ListCompleted(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MarginReportRowDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, &dto.MarginReportRowDTO{
			OrderID:     o.ID,
			Number:      o.Number,
			CustomerID:  o.CustomerID,
			Total:       o.Total(),
			GrossMargin: o.GrossMargin(),
			CompletedAt: o.CompletedAt,
		})
	}
	return out, nil
}

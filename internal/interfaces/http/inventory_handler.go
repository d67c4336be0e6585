package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// InventoryHandler expone las bitácoras de inventario y de costo (solo lectura).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// InventoryLog godoc
// @Summary      Bitácora de movimientos de inventario de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"   default(50)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.InventoryLogEntryDTO
// @Router       /api/products/{id}/inventory-log [get]
func (h *InventoryHandler) InventoryLog(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	entries, err := h.ledger.ListInventoryLog(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.InventoryLogEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toInventoryLogDTO(e))
	}
	return c.JSON(out)
}

// CostLog godoc
// @Summary      Bitácora de cambios de costo promedio de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"   default(50)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.CostLogEntryDTO
// @Router       /api/products/{id}/cost-log [get]
func (h *InventoryHandler) CostLog(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	entries, err := h.ledger.ListCostLog(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.CostLogEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toCostLogDTO(e))
	}
	return c.JSON(out)
}

// StockReconciliation godoc
// @Summary      Contrasta el stock del producto contra la suma de su bitácora
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockReconciliationDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock-reconciliation [get]
func (h *InventoryHandler) StockReconciliation(c *fiber.Ctx) error {
	rec, err := h.ledger.ReconcileStock(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(&dto.StockReconciliationDTO{
		ProductID:  rec.ProductID,
		Stock:      rec.Stock,
		SumChanges: rec.SumChanges,
		Consistent: rec.Consistent,
	})
}

func toInventoryLogDTO(e *entity.InventoryLogEntry) *dto.InventoryLogEntryDTO {
	return &dto.InventoryLogEntryDTO{
		ID:         e.ID,
		ProductID:  e.ProductID,
		Type:       e.Type,
		Change:     e.Change,
		NewStock:   e.NewStock,
		RelatedDoc: e.RelatedDoc,
		Timestamp:  e.Timestamp,
	}
}

func toCostLogDTO(e *entity.CostLogEntry) *dto.CostLogEntryDTO {
	return &dto.CostLogEntryDTO{
		ID:         e.ID,
		ProductID:  e.ProductID,
		OldAvgCost: e.OldAvgCost,
		NewAvgCost: e.NewAvgCost,
		RelatedDoc: e.RelatedDoc,
		Timestamp:  e.Timestamp,
	}
}

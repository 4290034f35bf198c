package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/application/export"
	"github.com/jhoicas/Vivero-api/internal/application/inventory"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de stock: mutaciones, consultas
// del libro, lista de reposición y exports (solo admin, lo protege el router).
type InventoryHandler struct {
	mutationUC      *inventory.StockMutationUseCase
	queryUC         *inventory.LedgerQueryUseCase
	replenishmentUC *inventory.ReplenishmentUseCase
	exportUC        *export.ExportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	mutationUC *inventory.StockMutationUseCase,
	queryUC *inventory.LedgerQueryUseCase,
	replenishmentUC *inventory.ReplenishmentUseCase,
	exportUC *export.ExportUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		mutationUC:      mutationUC,
		queryUC:         queryUC,
		replenishmentUC: replenishmentUC,
		exportUC:        exportUC,
	}
}

// ApplyMutation godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica una mutación de stock (purchased, sold, damaged, returned,
//               adjustment) y registra el asiento correspondiente en el libro.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMutationRequest  true  "plant_id, kind, quantity, unit_cost; occurred_at (YYYY-MM-DD) solo para ventas"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/mutations [post]
func (h *InventoryHandler) ApplyMutation(c *fiber.Ctx) error {
	var in dto.ApplyMutationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PlantID == "" || in.Kind == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "plant_id y kind son requeridos"})
	}
	input := inventory.MutationInput{
		PlantID:     in.PlantID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Note:        in.Note,
		PerformedBy: GetUserID(c),
	}
	if in.OccurredAt != "" {
		t, err := time.Parse("2006-01-02", in.OccurredAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "occurred_at debe ser YYYY-MM-DD"})
		}
		input.OccurredAt = &t
	}
	entry, err := h.mutationUC.ApplyMutation(c.Context(), input)
	if err != nil {
		return mutationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryResponse(entry, ""))
}

// ListTransactions godoc
// @Summary      Consultar el libro de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        kind      query  string  false  "Filtrar por tipo (sold, purchased, adjustment, damaged, returned)"
// @Param        plant_id  query  string  false  "Filtrar por planta"
// @Param        from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "from", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := parseDateQuery(c, "to", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, total, err := h.queryUC.ListTransactions(c.Context(), c.Query("kind"), c.Query("plant_id"), from, to, limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimiento desconocido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e, ""))
	}
	return c.JSON(fiber.Map{
		"transactions": out,
		"total":        total,
	})
}

// PlantHistory godoc
// @Summary      Historial de movimientos de una planta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la planta"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/plants/{id}/history [get]
func (h *InventoryHandler) PlantHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	plant, entries, err := h.queryUC.PlantHistory(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "planta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e, plant.Name))
	}
	return c.JSON(fiber.Map{
		"plant":        toPlantResponse(plant),
		"transactions": out,
	})
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Plantas en o bajo su punto de reorden con cantidad sugerida de
//               pedido y costo estimado, las más urgentes primero.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishmentUC.GenerateReplenishmentList(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// ExportSalesCSV godoc
// @Summary      Exportar ventas a CSV
// @Tags         stock
// @Security     Bearer
// @Produce      text/csv
// @Param        from  query  string  true  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD)"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/exports/sales [get]
func (h *InventoryHandler) ExportSalesCSV(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	data, err := h.exportUC.ShopSalesCSV(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ventas_%s_%s.csv"`,
		from.Format("20060102"), to.Format("20060102")))
	return c.Send(data)
}

// ExportPurchaseOrderCSV godoc
// @Summary      Exportar orden de compra a CSV
// @Tags         stock
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/exports/purchase-order.csv [get]
func (h *InventoryHandler) ExportPurchaseOrderCSV(c *fiber.Ctx) error {
	po, data, err := h.exportUC.PurchaseOrderCSV(c.Context())
	if err != nil {
		return purchaseOrderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, po.Number))
	return c.Send(data)
}

// ExportPurchaseOrderPDF godoc
// @Summary      Exportar orden de compra a PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/exports/purchase-order.pdf [get]
func (h *InventoryHandler) ExportPurchaseOrderPDF(c *fiber.Ctx) error {
	po, data, err := h.exportUC.PurchaseOrderPDF(c.Context())
	if err != nil {
		return purchaseOrderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, po.Number))
	return c.Send(data)
}

func mutationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrPlantNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "planta no encontrada"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func purchaseOrderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ninguna planta bajo el punto de reorden"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// parseDateQuery parsea un query param de fecha YYYY-MM-DD opcional.
// endOfDay corre la fecha al final del día (para rangos inclusivos).
func parseDateQuery(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%s debe ser YYYY-MM-DD", name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

func toLedgerEntryResponse(e *entity.LedgerEntry, plantName string) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:             e.ID,
		PlantID:        e.PlantID,
		PlantName:      plantName,
		Kind:           e.Kind,
		QuantityDelta:  e.QuantityDelta,
		QuantityBefore: e.QuantityBefore,
		QuantityAfter:  e.QuantityAfter,
		UnitCost:       e.UnitCost,
		TotalCost:      e.TotalCost,
		OccurredAt:     e.OccurredAt,
		Note:           e.Note,
		PerformedBy:    e.PerformedBy,
		OrderID:        e.OrderID,
	}
}

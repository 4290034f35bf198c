package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Vivero-api/internal/application/billing"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
)

// BillingHandler maneja la generación de facturas (solo admin, lo protege el router).
type BillingHandler struct {
	uc *billing.BillingUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.BillingUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// InvoicePDF godoc
// @Summary      Generar factura PDF de un pedido
// @Tags         billing
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/orders/{id}/invoice.pdf [get]
func (h *BillingHandler) InvoicePDF(c *fiber.Ctx) error {
	inv, pdfBytes, err := h.uc.InvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, inv.Number))
	return c.Send(pdfBytes)
}

package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/application/report"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// ReportHandler maneja las peticiones HTTP de informes mensuales (solo admin).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar informe mensual
// @Description  Genera el informe del (mes, año) indicado. Si ya existe, devuelve
//               el existente sin recalcular.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateReportRequest  true  "month (1-12), year"
// @Success      201   {object}  dto.MonthlyReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/generate [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Month < 1 || in.Month > 12 || in.Year < 2000 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe estar entre 1 y 12, year desde 2000"})
	}
	rep, err := h.uc.Generate(c.Context(), time.Month(in.Month), in.Year)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toReportResponse(rep))
}

// Get godoc
// @Summary      Consultar informe de un mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mes (1-12)"
// @Param        year   query  int  true  "Año"
// @Success      200  {object}  dto.MonthlyReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)
	if month < 1 || month > 12 || year < 2000 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month y year son requeridos"})
	}
	rep, err := h.uc.Get(c.Context(), time.Month(month), year)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "informe no generado para ese mes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toReportResponse(rep))
}

// List godoc
// @Summary      Listar informes recientes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/reports/history [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MonthlyReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportResponse(r))
	}
	return c.JSON(fiber.Map{"reports": out})
}

func toReportResponse(r *entity.MonthlyReport) dto.MonthlyReportResponse {
	resp := dto.MonthlyReportResponse{
		ID:             r.ID,
		Month:          int(r.Month),
		Year:           r.Year,
		TotalSales:     r.TotalSales,
		TotalOrders:    r.TotalOrders,
		TotalPurchases: r.TotalPurchases,
		Profit:         r.Profit,
		NewCustomers:   r.NewCustomers,
		GeneratedAt:    r.GeneratedAt,
	}
	for _, p := range r.TopSellingPlants {
		resp.TopSellingPlants = append(resp.TopSellingPlants, dto.ReportPlantSales{
			PlantID: p.PlantID, PlantName: p.PlantName, QuantitySold: p.QuantitySold, Revenue: p.Revenue,
		})
	}
	for _, l := range r.LowStockItems {
		resp.LowStockItems = append(resp.LowStockItems, dto.ReportLowStock{
			PlantID: l.PlantID, PlantName: l.PlantName, CurrentStock: l.CurrentStock,
		})
	}
	for _, f := range r.ForecastedDemand {
		resp.ForecastedDemand = append(resp.ForecastedDemand, dto.ReportForecast{
			PlantID: f.PlantID, PlantName: f.PlantName, PredictedQuantity: f.PredictedQuantity,
		})
	}
	return resp
}

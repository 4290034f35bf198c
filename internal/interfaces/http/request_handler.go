package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/application/request"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// RequestHandler maneja las peticiones HTTP de solicitudes de servicio.
// Crear y listar las propias requiere Bearer Token; administrar es solo admin
// (lo protege el router).
type RequestHandler struct {
	uc *request.ServiceRequestUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *request.ServiceRequestUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de servicio
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequestRequest  true  "type, title, description; preferred_date, location y contact_number opcionales"
// @Success      201   {object}  dto.ServiceRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.CreateRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toServiceRequestResponse(req))
}

// List godoc
// @Summary      Listar solicitudes (admin)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "Filtrar por estado"
// @Param        type      query  string  false  "Filtrar por tipo"
// @Param        priority  query  string  false  "Filtrar por prioridad"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	filter := repository.ServiceRequestFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
		Limit:    limit,
		Offset:   offset,
	}
	requests, total, err := h.uc.ListRequests(c.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ServiceRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toServiceRequestResponse(r))
	}
	return c.JSON(fiber.Map{
		"requests": out,
		"total":    total,
	})
}

// ListMine godoc
// @Summary      Listar mis solicitudes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/requests/mine [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	requests, err := h.uc.UserRequests(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ServiceRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toServiceRequestResponse(r))
	}
	return c.JSON(fiber.Map{"requests": out})
}

// UpdateStatus godoc
// @Summary      Actualizar solicitud (admin)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.UpdateServiceRequestRequest  true  "status, priority, estimated_cost o admin_notes"
// @Success      200   {object}  dto.ServiceRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/status [put]
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateServiceRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.UpdateRequest(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toServiceRequestResponse(req))
}

// Delete godoc
// @Summary      Eliminar solicitud (admin)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [delete]
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteRequest(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toServiceRequestResponse(r *entity.ServiceRequest) dto.ServiceRequestResponse {
	return dto.ServiceRequestResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		UserName:       r.UserName,
		Type:           r.Type,
		Title:          r.Title,
		Description:    r.Description,
		PreferredDate:  r.PreferredDate,
		Status:         r.Status,
		Priority:       r.Priority,
		EstimatedCost:  r.EstimatedCost,
		Location:       r.Location,
		ContactNumber:  r.ContactNumber,
		AdminNotes:     r.AdminNotes,
		ResponseDate:   r.ResponseDate,
		CompletionDate: r.CompletionDate,
		CreatedAt:      r.CreatedAt,
	}
}

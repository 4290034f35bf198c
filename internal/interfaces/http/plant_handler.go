package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Vivero-api/internal/application/catalog"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// PlantHandler maneja las peticiones HTTP del catálogo de plantas.
// Lectura pública; escritura solo admin (la protege el router).
type PlantHandler struct {
	uc *catalog.PlantUseCase
}

// NewPlantHandler construye el handler.
func NewPlantHandler(uc *catalog.PlantUseCase) *PlantHandler {
	return &PlantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear planta
// @Tags         plants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlantRequest  true  "Datos de la planta (el stock inicial entra como movimiento purchased)"
// @Success      201   {object}  dto.PlantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plants [post]
func (h *PlantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plant, err := h.uc.CreatePlant(c.Context(), &in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la planta ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toPlantResponse(plant))
}

// GetByID godoc
// @Summary      Obtener planta por ID
// @Tags         plants
// @Produce      json
// @Param        id   path  string  true  "ID de la planta"
// @Success      200  {object}  dto.PlantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plants/{id} [get]
func (h *PlantHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	plant, err := h.uc.GetPlant(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "planta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toPlantResponse(plant))
}

// List godoc
// @Summary      Listar catálogo de plantas
// @Tags         plants
// @Produce      json
// @Param        category   query  string  false  "Filtrar por categoría"
// @Param        search     query  string  false  "Buscar en nombre y descripción"
// @Param        available  query  bool    false  "Solo plantas disponibles"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/plants [get]
func (h *PlantHandler) List(c *fiber.Ctx) error {
	filter := repository.PlantFilter{
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		OnlyAvailable: c.QueryBool("available", false),
		Limit:         c.QueryInt("limit", 20),
		Offset:        c.QueryInt("offset", 0),
	}
	plants, total, err := h.uc.ListPlants(c.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PlantResponse, 0, len(plants))
	for _, p := range plants {
		out = append(out, toPlantResponse(p))
	}
	return c.JSON(fiber.Map{
		"plants": out,
		"total":  total,
	})
}

// Update godoc
// @Summary      Actualizar planta
// @Tags         plants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la planta"
// @Param        body  body  dto.UpdatePlantRequest  true  "Campos a actualizar (el stock no se toca por acá)"
// @Success      200   {object}  dto.PlantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plants/{id} [put]
func (h *PlantHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdatePlantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plant, err := h.uc.UpdatePlant(c.Context(), id, &in)
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "planta no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toPlantResponse(plant))
}

func toPlantResponse(p *entity.Plant) dto.PlantResponse {
	return dto.PlantResponse{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Description:      p.Description,
		Price:            p.Price,
		Quantity:         p.Quantity,
		ReorderThreshold: p.ReorderThreshold,
		TotalSold:        p.TotalSold,
		StockStatus:      p.StockStatus(),
		ImageURL:         p.ImageURL,
		IsAvailable:      p.IsAvailable,
		CreatedAt:        p.CreatedAt,
	}
}

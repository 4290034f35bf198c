package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/application/review"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// ReviewHandler maneja las peticiones HTTP de reseñas. El listado por planta
// es público; crear y editar requieren Bearer Token (lo protege el router).
type ReviewHandler struct {
	uc *review.ReviewUseCase
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *review.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reseña
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "plant_id, rating (1-5), title, comment; order_id opcional para compra verificada"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rev, err := h.uc.CreateReview(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toReviewResponse(rev))
}

// ListByPlant godoc
// @Summary      Listar reseñas de una planta
// @Description  Solo reseñas aprobadas, con promedio y distribución de calificaciones.
// @Tags         reviews
// @Produce      json
// @Param        id      path   string  true   "ID de la planta"
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PlantReviewsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plants/{id}/reviews [get]
func (h *ReviewHandler) ListByPlant(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	reviews, total, summary, err := h.uc.PlantReviews(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return c.JSON(dto.PlantReviewsResponse{
		Reviews: out,
		Summary: summary,
		Pagination: dto.Pagination{
			Page:  offset/limit + 1,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// ListMine godoc
// @Summary      Listar mis reseñas
// @Tags         reviews
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/reviews/mine [get]
func (h *ReviewHandler) ListMine(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	reviews, total, err := h.uc.UserReviews(c.Context(), GetUserID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return c.JSON(fiber.Map{
		"reviews": out,
		"total":   total,
	})
}

// Update godoc
// @Summary      Editar mi reseña
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reseña"
// @Param        body  body  dto.UpdateReviewRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ReviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reviews/{id} [put]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rev, err := h.uc.UpdateReview(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toReviewResponse(rev))
}

func toReviewResponse(r *entity.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:                 r.ID,
		PlantID:            r.PlantID,
		UserID:             r.UserID,
		UserName:           r.UserName,
		OrderID:            r.OrderID,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		Status:             r.Status,
		AdminResponse:      r.AdminResponse,
		CreatedAt:          r.CreatedAt,
	}
}

// Package review implementa las reseñas de clientes sobre las plantas del
// catálogo: creación con verificación de compra, listado público con resumen
// de calificaciones y edición por el autor.
package review

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// ReviewUseCase casos de uso de reseñas.
type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	plantRepo  repository.PlantRepository
	orderRepo  repository.OrderRepository
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	plantRepo repository.PlantRepository,
	orderRepo repository.OrderRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		plantRepo:  plantRepo,
		orderRepo:  orderRepo,
	}
}

// CreateReview crea la reseña del usuario sobre una planta. Un usuario solo
// puede reseñar cada planta una vez (ErrDuplicate). La compra queda verificada
// si la reseña referencia un pedido entregado del usuario que incluye la planta.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, userID string, in dto.CreateReviewRequest) (*entity.Review, error) {
	now := time.Now()
	rev := &entity.Review{
		ID:        uuid.New().String(),
		PlantID:   in.PlantID,
		UserID:    userID,
		OrderID:   in.OrderID,
		Rating:    in.Rating,
		Title:     strings.TrimSpace(in.Title),
		Comment:   strings.TrimSpace(in.Comment),
		Status:    entity.ReviewStatusApproved,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := rev.Validate(); err != nil {
		return nil, err
	}

	plant, err := uc.plantRepo.GetByID(in.PlantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlantNotFound, in.PlantID)
	}

	existing, err := uc.reviewRepo.GetByPlantAndUser(in.PlantID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya reseñaste esta planta", domain.ErrDuplicate)
	}

	if in.OrderID != "" {
		verified, err := uc.isVerifiedPurchase(userID, in.PlantID, in.OrderID)
		if err != nil {
			return nil, err
		}
		rev.IsVerifiedPurchase = verified
	}

	// El índice único planta+usuario respalda la verificación de duplicado
	// ante reseñas simultáneas.
	if err := uc.reviewRepo.Create(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// isVerifiedPurchase verifica que el pedido exista, sea del usuario, esté
// entregado e incluya la planta.
func (uc *ReviewUseCase) isVerifiedPurchase(userID, plantID, orderID string) (bool, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return false, err
	}
	if ord == nil || ord.UserID != userID || ord.Status != entity.OrderStatusDelivered {
		return false, nil
	}
	for _, item := range ord.Items {
		if item.PlantID == plantID {
			return true, nil
		}
	}
	return false, nil
}

// PlantReviews lista las reseñas aprobadas de una planta (las pendientes y
// rechazadas no se publican) con el resumen de calificaciones.
func (uc *ReviewUseCase) PlantReviews(ctx context.Context, plantID string, limit, offset int) ([]*entity.Review, int64, dto.RatingSummary, error) {
	var summary dto.RatingSummary
	plant, err := uc.plantRepo.GetByID(plantID)
	if err != nil {
		return nil, 0, summary, err
	}
	if plant == nil {
		return nil, 0, summary, fmt.Errorf("%w: %s", domain.ErrPlantNotFound, plantID)
	}

	filter := repository.ReviewFilter{
		PlantID: plantID,
		Status:  entity.ReviewStatusApproved,
		Limit:   limit,
		Offset:  offset,
	}
	reviews, err := uc.reviewRepo.List(filter)
	if err != nil {
		return nil, 0, summary, err
	}
	total, err := uc.reviewRepo.Count(filter)
	if err != nil {
		return nil, 0, summary, err
	}
	dist, err := uc.reviewRepo.RatingDistribution(plantID)
	if err != nil {
		return nil, 0, summary, err
	}
	summary = buildRatingSummary(dist)
	return reviews, total, summary, nil
}

// buildRatingSummary arma promedio (1 decimal), total y distribución 1 a 5.
func buildRatingSummary(dist map[int]int64) dto.RatingSummary {
	summary := dto.RatingSummary{Distribution: make(map[string]int64, 5)}
	var sum int64
	for star := 1; star <= 5; star++ {
		n := dist[star]
		summary.Distribution[strconv.Itoa(star)] = n
		summary.Count += n
		sum += int64(star) * n
	}
	if summary.Count > 0 {
		summary.Average = math.Round(float64(sum)/float64(summary.Count)*10) / 10
	}
	return summary
}

// UserReviews lista las reseñas del usuario, incluidas las no publicadas.
func (uc *ReviewUseCase) UserReviews(ctx context.Context, userID string, limit, offset int) ([]*entity.Review, int64, error) {
	filter := repository.ReviewFilter{UserID: userID, Limit: limit, Offset: offset}
	reviews, err := uc.reviewRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.reviewRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// UpdateReview actualiza calificación, título o comentario. Solo el autor puede
// editar su reseña (ErrForbidden).
func (uc *ReviewUseCase) UpdateReview(ctx context.Context, userID, reviewID string, in dto.UpdateReviewRequest) (*entity.Review, error) {
	rev, err := uc.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, domain.ErrNotFound
	}
	if rev.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if in.Rating != nil {
		rev.Rating = *in.Rating
	}
	if in.Title != nil {
		rev.Title = strings.TrimSpace(*in.Title)
	}
	if in.Comment != nil {
		rev.Comment = strings.TrimSpace(*in.Comment)
	}
	if err := rev.Validate(); err != nil {
		return nil, err
	}
	rev.UpdatedAt = time.Now()
	if err := uc.reviewRepo.Update(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

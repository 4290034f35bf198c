package dto

import "time"

// CreateReviewRequest body para POST /api/reviews. OrderID es opcional: si
// referencia un pedido entregado del usuario que incluye la planta, la reseña
// queda marcada como compra verificada.
type CreateReviewRequest struct {
	PlantID string `json:"plant_id"`
	OrderID string `json:"order_id,omitempty"`
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// UpdateReviewRequest body para PUT /api/reviews/:id. Solo los campos enviados
// se actualizan.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Title   *string `json:"title,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewResponse representación JSON de una reseña.
type ReviewResponse struct {
	ID                 string    `json:"id"`
	PlantID            string    `json:"plant_id"`
	UserID             string    `json:"user_id"`
	UserName           string    `json:"user_name,omitempty"`
	OrderID            string    `json:"order_id,omitempty"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	Status             string    `json:"status"`
	AdminResponse      string    `json:"admin_response,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// RatingSummary resumen de calificaciones de una planta: promedio, total y
// distribución por estrella (claves "1" a "5").
type RatingSummary struct {
	Average      float64          `json:"average"`
	Count        int64            `json:"count"`
	Distribution map[string]int64 `json:"distribution"`
}

// PlantReviewsResponse respuesta de GET /api/plants/:id/reviews.
type PlantReviewsResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Summary    RatingSummary    `json:"summary"`
	Pagination Pagination       `json:"pagination"`
}

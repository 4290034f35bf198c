package entity

import (
	"time"
	"unicode/utf8"

	"github.com/jhoicas/Vivero-api/internal/domain"
)

// Estados de moderación de reseña.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Límites de contenido de la reseña.
const (
	ReviewTitleMaxLen   = 100
	ReviewCommentMinLen = 10
	ReviewCommentMaxLen = 1000
)

// ValidReviewStatus verifica que el estado sea uno de los conocidos.
func ValidReviewStatus(s string) bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// Review es la reseña de un cliente sobre una planta. Cada usuario puede
// reseñar una planta una sola vez; la compra se considera verificada cuando
// la reseña referencia un pedido entregado del mismo usuario que incluye la planta.
type Review struct {
	ID                 string
	PlantID            string
	UserID             string
	UserName           string // denormalizado para listados públicos
	OrderID            string // opcional: pedido que acredita la compra
	Rating             int    // 1 a 5
	Title              string
	Comment            string
	IsVerifiedPurchase bool
	Status             string
	AdminResponse      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate verifica calificación y contenido: rating 1 a 5, título obligatorio
// de hasta 100 caracteres y comentario entre 10 y 1000.
func (r *Review) Validate() error {
	if r.PlantID == "" || r.UserID == "" {
		return domain.ErrInvalidInput
	}
	if r.Rating < 1 || r.Rating > 5 {
		return domain.ErrInvalidInput
	}
	if r.Title == "" || utf8.RuneCountInString(r.Title) > ReviewTitleMaxLen {
		return domain.ErrInvalidInput
	}
	if n := utf8.RuneCountInString(r.Comment); n < ReviewCommentMinLen || n > ReviewCommentMaxLen {
		return domain.ErrInvalidInput
	}
	return nil
}

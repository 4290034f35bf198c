package repository

import (
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// ReviewFilter parámetros de listado de reseñas.
type ReviewFilter struct {
	PlantID string
	UserID  string
	Status  string
	Limit   int
	Offset  int
}

// ReviewRepository define el puerto de persistencia para reseñas.
type ReviewRepository interface {
	// Create persiste la reseña. Devuelve ErrDuplicate si el usuario ya
	// reseñó la planta (índice único planta+usuario).
	Create(review *entity.Review) error
	GetByID(id string) (*entity.Review, error)
	GetByPlantAndUser(plantID, userID string) (*entity.Review, error)
	// List lista reseñas con filtros, más recientes primero. Count usa el
	// mismo predicado.
	List(filter ReviewFilter) ([]*entity.Review, error)
	Count(filter ReviewFilter) (int64, error)
	// RatingDistribution cuenta las reseñas aprobadas de una planta por
	// calificación (claves 1 a 5).
	RatingDistribution(plantID string) (map[int]int64, error)
	Update(review *entity.Review) error
}

package repository

import (
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// ServiceRequestFilter parámetros de listado de solicitudes (admin).
type ServiceRequestFilter struct {
	Status   string
	Type     string
	Priority string
	Limit    int
	Offset   int
}

// ServiceRequestRepository define el puerto de persistencia para solicitudes
// de servicio.
type ServiceRequestRepository interface {
	Create(req *entity.ServiceRequest) error
	GetByID(id string) (*entity.ServiceRequest, error)
	// List lista solicitudes con filtros, más recientes primero. Count usa
	// el mismo predicado.
	List(filter ServiceRequestFilter) ([]*entity.ServiceRequest, error)
	Count(filter ServiceRequestFilter) (int64, error)
	ListByUser(userID string) ([]*entity.ServiceRequest, error)
	Update(req *entity.ServiceRequest) error
	Delete(id string) error
}

package repository

import (
	"time"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// OrderFilter parámetros de listado de pedidos (admin).
type OrderFilter struct {
	Status string
	Type   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para pedidos.
// No expone Delete: los asientos del libro referencian pedidos y la historia no se borra.
type OrderRepository interface {
	// Create persiste cabecera y líneas del pedido.
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List(filter OrderFilter) ([]*entity.Order, error)
	Count(filter OrderFilter) (int64, error)
	ListByUser(userID string) ([]*entity.Order, error)
	// Update escribe estados y fechas de entrega; las líneas son inmutables.
	Update(order *entity.Order) error
	// CountCreatedSince cuenta pedidos creados desde el instante dado
	// (consecutivo diario para el número de pedido).
	CountCreatedSince(t time.Time) (int64, error)
}

package repository

import "github.com/jhoicas/Vivero-api/internal/domain/entity"

// PlantFilter parámetros de listado del catálogo.
type PlantFilter struct {
	Category      string
	Search        string // busca en nombre y descripción
	OnlyAvailable bool
	Limit         int
	Offset        int
}

// PlantRepository define el puerto de persistencia para Plant (DIP).
// Quantity y TotalSold solo se escriben vía UpdateStock, dentro de la transacción
// que registra el asiento correspondiente en el libro.
type PlantRepository interface {
	Create(plant *entity.Plant) error
	GetByID(id string) (*entity.Plant, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Usar solo dentro de una tx.
	GetForUpdate(id string) (*entity.Plant, error)
	// Update escribe los campos de catálogo; nunca toca Quantity ni TotalSold.
	Update(plant *entity.Plant) error
	// UpdateStock escribe stock y acumulado de ventas. Reservado al motor de inventario.
	UpdateStock(plantID string, quantity, totalSold int64) error
	List(filter PlantFilter) ([]*entity.Plant, error)
	Count(filter PlantFilter) (int64, error)
	// ListBelowThreshold devuelve las plantas con Quantity <= ReorderThreshold,
	// ordenadas por Quantity ascendente (mayor urgencia primero).
	ListBelowThreshold(limit int) ([]*entity.Plant, error)
}

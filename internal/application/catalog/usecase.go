package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// PlantUseCase gestiona el catálogo de plantas. Nunca escribe Quantity ni
// TotalSold: esos campos los maneja exclusivamente el caso de uso de inventario.
type PlantUseCase struct {
	plantRepo repository.PlantRepository
}

// NewPlantUseCase construye el caso de uso del catálogo.
func NewPlantUseCase(plantRepo repository.PlantRepository) *PlantUseCase {
	return &PlantUseCase{plantRepo: plantRepo}
}

// CreatePlant da de alta una planta en el catálogo con stock cero.
// El stock inicial se registra después como movimiento "purchased".
func (uc *PlantUseCase) CreatePlant(ctx context.Context, req *dto.CreatePlantRequest) (*entity.Plant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, req.Category)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if req.ReorderThreshold < 0 {
		return nil, fmt.Errorf("%w: el punto de reorden no puede ser negativo", domain.ErrInvalidInput)
	}

	now := time.Now()
	plant := &entity.Plant{
		ID:               uuid.NewString(),
		Name:             name,
		Category:         req.Category,
		Description:      strings.TrimSpace(req.Description),
		Price:            req.Price,
		Quantity:         0,
		ReorderThreshold: req.ReorderThreshold,
		TotalSold:        0,
		ImageURL:         req.ImageURL,
		IsAvailable:      true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.plantRepo.Create(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// GetPlant devuelve una planta por ID.
func (uc *PlantUseCase) GetPlant(ctx context.Context, id string) (*entity.Plant, error) {
	plant, err := uc.plantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, domain.ErrPlantNotFound
	}
	return plant, nil
}

// ListPlants devuelve el catálogo paginado con el total para la paginación.
func (uc *PlantUseCase) ListPlants(ctx context.Context, filter repository.PlantFilter) ([]*entity.Plant, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Category != "" && !entity.ValidCategory(filter.Category) {
		return nil, 0, fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, filter.Category)
	}

	plants, err := uc.plantRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.plantRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return plants, total, nil
}

// UpdatePlant actualiza los campos del catálogo presentes en la petición.
// El stock no se toca por acá: cualquier cambio de cantidad pasa por el
// libro de movimientos.
func (uc *PlantUseCase) UpdatePlant(ctx context.Context, id string, req *dto.UpdatePlantRequest) (*entity.Plant, error) {
	plant, err := uc.plantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, domain.ErrPlantNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
		}
		plant.Name = name
	}
	if req.Category != nil {
		if !entity.ValidCategory(*req.Category) {
			return nil, fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, *req.Category)
		}
		plant.Category = *req.Category
	}
	if req.Description != nil {
		plant.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		plant.Price = *req.Price
	}
	if req.ReorderThreshold != nil {
		if *req.ReorderThreshold < 0 {
			return nil, fmt.Errorf("%w: el punto de reorden no puede ser negativo", domain.ErrInvalidInput)
		}
		plant.ReorderThreshold = *req.ReorderThreshold
	}
	if req.ImageURL != nil {
		plant.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		plant.IsAvailable = *req.IsAvailable
	}

	plant.UpdatedAt = time.Now()
	if err := uc.plantRepo.Update(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

package inventory

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// Heurísticas de reposición por defecto. Son supuestos de negocio, no garantías:
// se repone hasta el 120% del punto de reorden y se asume que el costo mayorista
// es el 60% del precio de venta. Ambos son configurables (config.InventoryConfig).
const (
	DefaultSafetyBufferFactor = 1.2
	DefaultAssumedCostRatio   = 0.6
)

// ReplenishmentOptions parámetros de las heurísticas de reposición.
type ReplenishmentOptions struct {
	SafetyBufferFactor float64
	AssumedCostRatio   float64
}

// ReplenishmentUseCase genera la lista de compra sugerida: plantas en o bajo su
// punto de reorden con cantidad y costo estimados. Solo lectura, no muta nada.
type ReplenishmentUseCase struct {
	plantRepo repository.PlantRepository
	opts      ReplenishmentOptions
}

// NewReplenishmentUseCase construye el caso de uso. Los factores en cero toman su valor por defecto.
func NewReplenishmentUseCase(plantRepo repository.PlantRepository, opts ReplenishmentOptions) *ReplenishmentUseCase {
	if opts.SafetyBufferFactor <= 0 {
		opts.SafetyBufferFactor = DefaultSafetyBufferFactor
	}
	if opts.AssumedCostRatio <= 0 {
		opts.AssumedCostRatio = DefaultAssumedCostRatio
	}
	return &ReplenishmentUseCase{plantRepo: plantRepo, opts: opts}
}

// GenerateReplenishmentList devuelve las plantas con stock en o bajo el punto de
// reorden, ordenadas por stock ascendente, con la cantidad sugerida
// ceil(umbral*factor - stock) y el costo estimado precio*cantidad*ratio.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	plants, err := uc.plantRepo.ListBelowThreshold(0)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestion, 0, len(plants))
	for _, p := range plants {
		qty := suggestedQuantity(p.ReorderThreshold, p.Quantity, uc.opts.SafetyBufferFactor)
		if qty <= 0 {
			continue
		}
		cost := p.Price.
			Mul(decimal.NewFromInt(qty)).
			Mul(decimal.NewFromFloat(uc.opts.AssumedCostRatio)).
			Round(2)
		suggestions = append(suggestions, dto.ReplenishmentSuggestion{
			PlantID:           p.ID,
			PlantName:         p.Name,
			Category:          p.Category,
			CurrentStock:      p.Quantity,
			ReorderThreshold:  p.ReorderThreshold,
			SuggestedQuantity: qty,
			EstimatedCost:     cost,
		})
	}
	return suggestions, nil
}

// suggestedQuantity calcula ceil(umbral*factor - stock).
func suggestedQuantity(threshold, current int64, factor float64) int64 {
	return int64(math.Ceil(float64(threshold)*factor - float64(current)))
}

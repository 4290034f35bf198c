package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// LedgerQueryUseCase consultas de solo lectura sobre el libro de inventario.
// Consultar dos veces sin mutaciones intermedias devuelve exactamente lo mismo.
type LedgerQueryUseCase struct {
	ledgerRepo repository.LedgerRepository
	plantRepo  repository.PlantRepository
}

// NewLedgerQueryUseCase construye el caso de uso.
func NewLedgerQueryUseCase(ledgerRepo repository.LedgerRepository, plantRepo repository.PlantRepository) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{ledgerRepo: ledgerRepo, plantRepo: plantRepo}
}

// ListTransactions lista asientos filtrando por tipo y/o planta en un rango de
// fechas, más recientes primero. Devuelve también el total para paginación.
func (uc *LedgerQueryUseCase) ListTransactions(
	ctx context.Context,
	kind, plantID string,
	from, to *time.Time,
	limit, offset int,
) ([]*entity.LedgerEntry, int64, error) {
	if kind != "" && !entity.ValidKind(kind) {
		return nil, 0, domain.ErrInvalidInput
	}
	// El repo combina tipo y planta en un solo predicado: la página y el total
	// salen del mismo filtro.
	entries, err := uc.ledgerRepo.List(kind, plantID, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.ledgerRepo.Count(kind, plantID, from, to)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// PlantHistory devuelve la planta y todos sus asientos, más recientes primero.
func (uc *LedgerQueryUseCase) PlantHistory(ctx context.Context, plantID string) (*entity.Plant, []*entity.LedgerEntry, error) {
	plant, err := uc.plantRepo.GetByID(plantID)
	if err != nil {
		return nil, nil, err
	}
	if plant == nil {
		return nil, nil, domain.ErrPlantNotFound
	}
	entries, err := uc.ledgerRepo.List("", plantID, nil, nil, 0, 0)
	if err != nil {
		return nil, nil, err
	}
	return plant, entries, nil
}

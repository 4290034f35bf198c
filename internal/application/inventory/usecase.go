package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// StockMutationUseCase es la única autoridad para cambiar el stock de una planta.
// Cada mutación bloquea la fila de la planta (SELECT FOR UPDATE), recalcula el
// stock y registra exactamente un asiento en el libro, todo en una transacción.
// Mutaciones sobre plantas distintas avanzan en paralelo; sobre la misma planta
// se serializan por el bloqueo de fila.
type StockMutationUseCase struct {
	txRunner TxRunner
}

// NewStockMutationUseCase construye el caso de uso.
func NewStockMutationUseCase(txRunner TxRunner) *StockMutationUseCase {
	return &StockMutationUseCase{txRunner: txRunner}
}

// MutationInput entrada para ApplyMutation.
// Quantity es magnitud positiva; el signo lo deriva el caso de uso según Kind.
// En adjustment la cantidad viaja con signo (puede subir o bajar el stock).
// OccurredAt solo se respeta en ventas (sold); el resto se fecha al momento actual.
type MutationInput struct {
	PlantID     string
	Kind        string
	Quantity    int64
	UnitCost    decimal.Decimal
	Note        string
	PerformedBy string
	OccurredAt  *time.Time
}

// deltaFor deriva el delta con signo según el tipo de movimiento.
func deltaFor(kind string, quantity int64) (int64, error) {
	switch kind {
	case entity.KindPurchased, entity.KindReturned:
		if quantity <= 0 {
			return 0, domain.ErrInvalidInput
		}
		return quantity, nil
	case entity.KindSold, entity.KindDamaged:
		if quantity <= 0 {
			return 0, domain.ErrInvalidInput
		}
		return -quantity, nil
	case entity.KindAdjustment:
		// El ajuste trae el signo puesto por el operador
		if quantity == 0 {
			return 0, domain.ErrInvalidInput
		}
		return quantity, nil
	default:
		return 0, domain.ErrInvalidInput
	}
}

// ApplyMutation aplica un cambio de stock: lee el stock actual con bloqueo de fila,
// calcula el nuevo valor, falla con ErrInsufficientStock si quedaría negativo y
// registra el asiento. Devuelve el asiento creado.
func (uc *StockMutationUseCase) ApplyMutation(ctx context.Context, input MutationInput) (*entity.LedgerEntry, error) {
	if input.PlantID == "" {
		return nil, domain.ErrInvalidInput
	}
	delta, err := deltaFor(input.Kind, input.Quantity)
	if err != nil {
		return nil, err
	}
	if input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(
		plantRepo repository.PlantRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		// Bloquea la fila de la planta para serializar lecturas-modificaciones concurrentes
		plant, err := plantRepo.GetForUpdate(input.PlantID)
		if err != nil {
			return err
		}
		if plant == nil {
			return domain.ErrPlantNotFound
		}

		before := plant.Quantity
		after := before + delta
		if after < 0 {
			return fmt.Errorf("%w: %s quedaría en %d unidades", domain.ErrInsufficientStock, plant.Name, after)
		}

		totalSold := plant.TotalSold
		if input.Kind == entity.KindSold {
			totalSold += input.Quantity
		}
		if err := plantRepo.UpdateStock(plant.ID, after, totalSold); err != nil {
			return err
		}

		now := time.Now()
		occurredAt := now
		if input.Kind == entity.KindSold && input.OccurredAt != nil {
			occurredAt = *input.OccurredAt
		}
		magnitude := delta
		if magnitude < 0 {
			magnitude = -magnitude
		}
		entry = &entity.LedgerEntry{
			ID:             uuid.New().String(),
			PlantID:        plant.ID,
			Kind:           input.Kind,
			QuantityDelta:  delta,
			QuantityBefore: before,
			QuantityAfter:  after,
			UnitCost:       input.UnitCost,
			TotalCost:      input.UnitCost.Mul(decimal.NewFromInt(magnitude)),
			OccurredAt:     occurredAt,
			Note:           input.Note,
			PerformedBy:    input.PerformedBy,
			CreatedAt:      now,
		}
		return ledgerRepo.Append(entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplySaleInTx ejecuta una venta usando los repositorios de la transacción del
// caller (integración pedidos-inventario: el pedido y sus asientos comparten tx).
// El precio unitario es SIEMPRE el precio vigente de la planta, nunca uno externo.
// orderID queda como referencia del asiento al pedido.
func (uc *StockMutationUseCase) ApplySaleInTx(
	plantRepo repository.PlantRepository,
	ledgerRepo repository.LedgerRepository,
	plantID string,
	quantity int64,
	now time.Time,
	performedBy, orderID string,
) (*entity.LedgerEntry, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	plant, err := plantRepo.GetForUpdate(plantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, domain.ErrPlantNotFound
	}
	before := plant.Quantity
	after := before - quantity
	if after < 0 {
		return nil, fmt.Errorf("%w: %s disponible %d, solicitado %d",
			domain.ErrInsufficientStock, plant.Name, before, quantity)
	}
	if err := plantRepo.UpdateStock(plant.ID, after, plant.TotalSold+quantity); err != nil {
		return nil, err
	}
	entry := &entity.LedgerEntry{
		ID:             uuid.New().String(),
		PlantID:        plant.ID,
		Kind:           entity.KindSold,
		QuantityDelta:  -quantity,
		QuantityBefore: before,
		QuantityAfter:  after,
		UnitCost:       plant.Price,
		TotalCost:      plant.Price.Mul(decimal.NewFromInt(quantity)),
		OccurredAt:     now,
		Note:           "venta por pedido",
		PerformedBy:    performedBy,
		OrderID:        orderID,
		CreatedAt:      now,
	}
	if err := ledgerRepo.Append(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

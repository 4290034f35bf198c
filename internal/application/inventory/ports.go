package inventory

import (
	"context"

	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la actualización de stock y el asiento del libro
// se apliquen como una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		plantRepo repository.PlantRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

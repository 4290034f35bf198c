package order

import (
	"context"
	"time"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción con los repositorios
// de plantas, libro y pedidos atados a esa tx. El pedido y sus ventas de inventario
// se confirman o revierten juntos.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		plantRepo repository.PlantRepository,
		ledgerRepo repository.LedgerRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// SaleApplier aplica una venta dentro de la transacción del caller.
// Implementado por inventory.StockMutationUseCase (integración pedidos-inventario).
type SaleApplier interface {
	ApplySaleInTx(
		plantRepo repository.PlantRepository,
		ledgerRepo repository.LedgerRepository,
		plantID string,
		quantity int64,
		now time.Time,
		performedBy, orderID string,
	) (*entity.LedgerEntry, error)
}

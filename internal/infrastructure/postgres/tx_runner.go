package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Vivero-api/internal/application/inventory"
	"github.com/jhoicas/Vivero-api/internal/application/order"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and order.OrderTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ order.OrderTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	plantRepo repository.PlantRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	plantRepo := NewPlantRepository(tx)
	ledgerRepo := NewLedgerRepository(tx)

	if err := fn(plantRepo, ledgerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder inicia una transacción con repos de inventario y pedidos (para CreateOrder).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	plantRepo repository.PlantRepository,
	ledgerRepo repository.LedgerRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	plantRepo := NewPlantRepository(tx)
	ledgerRepo := NewLedgerRepository(tx)
	orderRepo := NewOrderRepository(tx)

	if err := fn(plantRepo, ledgerRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

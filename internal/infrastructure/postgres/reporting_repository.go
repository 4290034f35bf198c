package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo consultas de agregación de solo lectura sobre pedidos, libro y usuarios.
// Alimenta el informe mensual y los exports; nunca escribe.
type ReportingRepo struct {
	pool *pgxpool.Pool
}

// NewReportingRepository construye el adaptador de agregaciones.
func NewReportingRepository(pool *pgxpool.Pool) *ReportingRepo {
	return &ReportingRepo{pool: pool}
}

// GetSalesTotals suma TotalAmount y cuenta los pedidos no cancelados del período.
// COALESCE devuelve cero si el período no tiene ventas.
func (r *ReportingRepo) GetSalesTotals(ctx context.Context, start, end time.Time) (repository.SalesTotals, error) {
	const query = `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE order_date BETWEEN $1 AND $2
		  AND status <> 'cancelled'`
	var totals repository.SalesTotals
	err := r.pool.QueryRow(ctx, query, start, end).Scan(&totals.TotalSales, &totals.TotalOrders)
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("reporting.GetSalesTotals: %w", err)
	}
	return totals, nil
}

// GetPurchasesTotal suma TotalCost de los asientos purchased del período.
func (r *ReportingRepo) GetPurchasesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(total_cost), 0)
		FROM ledger_entries
		WHERE kind = 'purchased'
		  AND occurred_at BETWEEN $1 AND $2`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("reporting.GetPurchasesTotal: %w", err)
	}
	return total, nil
}

// GetTopSellers devuelve las plantas más vendidas del período por unidades.
// Se calcula desde el libro (asientos sold), no desde los pedidos: las ventas de
// mostrador también cuentan.
func (r *ReportingRepo) GetTopSellers(ctx context.Context, start, end time.Time, limit int) ([]entity.PlantSalesSummary, error) {
	const query = `
		SELECT l.plant_id, p.name,
		       SUM(-l.quantity_delta)            AS units_sold,
		       COALESCE(SUM(l.total_cost), 0)    AS revenue
		FROM ledger_entries l
		JOIN plants p ON p.id = l.plant_id
		WHERE l.kind = 'sold'
		  AND l.occurred_at BETWEEN $1 AND $2
		GROUP BY l.plant_id, p.name
		ORDER BY units_sold DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("reporting.GetTopSellers: %w", err)
	}
	defer rows.Close()
	var results []entity.PlantSalesSummary
	for rows.Next() {
		var row entity.PlantSalesSummary
		if err := rows.Scan(&row.PlantID, &row.PlantName, &row.QuantitySold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reporting.GetTopSellers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetShopSales lista los asientos sold del período con datos de planta, más recientes primero.
func (r *ReportingRepo) GetShopSales(ctx context.Context, start, end time.Time) ([]repository.ShopSaleRow, error) {
	const query = `
		SELECT l.occurred_at, p.name, p.category,
		       -l.quantity_delta, l.unit_cost, l.total_cost, COALESCE(l.note, '')
		FROM ledger_entries l
		JOIN plants p ON p.id = l.plant_id
		WHERE l.kind = 'sold'
		  AND l.occurred_at BETWEEN $1 AND $2
		ORDER BY l.occurred_at DESC`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporting.GetShopSales: %w", err)
	}
	defer rows.Close()
	var results []repository.ShopSaleRow
	for rows.Next() {
		var row repository.ShopSaleRow
		if err := rows.Scan(&row.Date, &row.PlantName, &row.Category,
			&row.Quantity, &row.SalePrice, &row.Total, &row.Note); err != nil {
			return nil, fmt.Errorf("reporting.GetShopSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountNewCustomers cuenta usuarios con rol cliente creados en el período.
func (r *ReportingRepo) CountNewCustomers(ctx context.Context, start, end time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM users
		WHERE role = 'cliente' AND created_at BETWEEN $1 AND $2`
	var total int64
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("reporting.CountNewCustomers: %w", err)
	}
	return total, nil
}

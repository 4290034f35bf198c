package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación de ReportRepository sobre PostgreSQL.
// Los detalles (top ventas, stock bajo, proyección) se guardan como JSONB.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de informes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create persiste un informe mensual. ErrDuplicate si ya existe para ese (mes, año).
func (r *ReportRepo) Create(report *entity.MonthlyReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	topJSON, err := json.Marshal(report.TopSellingPlants)
	if err != nil {
		return fmt.Errorf("marshal top selling: %w", err)
	}
	lowJSON, err := json.Marshal(report.LowStockItems)
	if err != nil {
		return fmt.Errorf("marshal low stock: %w", err)
	}
	forecastJSON, err := json.Marshal(report.ForecastedDemand)
	if err != nil {
		return fmt.Errorf("marshal forecast: %w", err)
	}
	query := `
		INSERT INTO monthly_reports (id, month, year, total_sales, total_orders, total_purchases, profit, top_selling_plants, low_stock_items, forecasted_demand, new_customers, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		report.ID, int(report.Month), report.Year,
		report.TotalSales, report.TotalOrders, report.TotalPurchases, report.Profit,
		topJSON, lowJSON, forecastJSON, report.NewCustomers, report.GeneratedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert monthly report: %w", err)
	}
	return nil
}

// Get obtiene el informe de un (mes, año). nil si no se ha generado.
func (r *ReportRepo) Get(month time.Month, year int) (*entity.MonthlyReport, error) {
	query := `
		SELECT id, month, year, total_sales, total_orders, total_purchases, profit, top_selling_plants, low_stock_items, forecasted_demand, new_customers, generated_at
		FROM monthly_reports WHERE month = $1 AND year = $2`
	rep, err := scanReportRow(r.q.QueryRow(context.Background(), query, int(month), year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get monthly report: %w", err)
	}
	return rep, nil
}

// List devuelve los informes más recientes primero.
func (r *ReportRepo) List(limit int) ([]*entity.MonthlyReport, error) {
	query := `
		SELECT id, month, year, total_sales, total_orders, total_purchases, profit, top_selling_plants, low_stock_items, forecasted_demand, new_customers, generated_at
		FROM monthly_reports ORDER BY year DESC, month DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list monthly reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.MonthlyReport
	for rows.Next() {
		rep, err := scanReportRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan monthly report: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

func scanReportRow(row pgx.Row) (*entity.MonthlyReport, error) {
	var rep entity.MonthlyReport
	var month int
	var topJSON, lowJSON, forecastJSON []byte
	err := row.Scan(
		&rep.ID, &month, &rep.Year,
		&rep.TotalSales, &rep.TotalOrders, &rep.TotalPurchases, &rep.Profit,
		&topJSON, &lowJSON, &forecastJSON, &rep.NewCustomers, &rep.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	rep.Month = time.Month(month)
	if err := json.Unmarshal(topJSON, &rep.TopSellingPlants); err != nil {
		return nil, fmt.Errorf("unmarshal top selling: %w", err)
	}
	if err := json.Unmarshal(lowJSON, &rep.LowStockItems); err != nil {
		return nil, fmt.Errorf("unmarshal low stock: %w", err)
	}
	if err := json.Unmarshal(forecastJSON, &rep.ForecastedDemand); err != nil {
		return nil, fmt.Errorf("unmarshal forecast: %w", err)
	}
	return &rep, nil
}

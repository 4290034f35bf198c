package report

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// Parámetros del informe: cuántas filas por sección y el factor de la proyección
// ingenua de demanda (vendido * 1.1 del mes anterior).
const (
	topSellersLimit    = 10
	lowStockLimit      = 20
	forecastLimit      = 5
	forecastGrowthRate = 1.1
)

// ReportUseCase genera y consulta informes mensuales. La generación es
// idempotente: si el informe del período ya existe se devuelve tal cual.
// Todo es lectura agregada sobre pedidos, libro y usuarios; el informe resultante
// es el único escrito.
type ReportUseCase struct {
	reportRepo    repository.ReportRepository
	reportingRepo repository.ReportingRepository
	plantRepo     repository.PlantRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	reportingRepo repository.ReportingRepository,
	plantRepo repository.PlantRepository,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:    reportRepo,
		reportingRepo: reportingRepo,
		plantRepo:     plantRepo,
	}
}

// Generate genera (o devuelve, si ya existe) el informe del mes indicado.
func (uc *ReportUseCase) Generate(ctx context.Context, month time.Month, year int) (*entity.MonthlyReport, error) {
	if month < time.January || month > time.December || year < 2000 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.reportRepo.Get(month, year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	sales, err := uc.reportingRepo.GetSalesTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	purchases, err := uc.reportingRepo.GetPurchasesTotal(ctx, start, end)
	if err != nil {
		return nil, err
	}
	topSellers, err := uc.reportingRepo.GetTopSellers(ctx, start, end, topSellersLimit)
	if err != nil {
		return nil, err
	}
	newCustomers, err := uc.reportingRepo.CountNewCustomers(ctx, start, end)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.plantRepo.ListBelowThreshold(lowStockLimit)
	if err != nil {
		return nil, err
	}

	lowStockItems := make([]entity.LowStockItem, 0, len(lowStock))
	for _, p := range lowStock {
		lowStockItems = append(lowStockItems, entity.LowStockItem{
			PlantID:      p.ID,
			PlantName:    p.Name,
			CurrentStock: p.Quantity,
		})
	}

	// Proyección ingenua: top 5 vendidos * factor de crecimiento
	n := len(topSellers)
	if n > forecastLimit {
		n = forecastLimit
	}
	forecast := make([]entity.DemandForecast, 0, n)
	for _, s := range topSellers[:n] {
		forecast = append(forecast, entity.DemandForecast{
			PlantID:           s.PlantID,
			PlantName:         s.PlantName,
			PredictedQuantity: int64(math.Ceil(float64(s.QuantitySold) * forecastGrowthRate)),
		})
	}

	rep := &entity.MonthlyReport{
		ID:               uuid.New().String(),
		Month:            month,
		Year:             year,
		TotalSales:       sales.TotalSales,
		TotalOrders:      sales.TotalOrders,
		TotalPurchases:   purchases,
		Profit:           sales.TotalSales.Sub(purchases),
		TopSellingPlants: topSellers,
		LowStockItems:    lowStockItems,
		ForecastedDemand: forecast,
		NewCustomers:     newCustomers,
		GeneratedAt:      time.Now(),
	}
	if err := uc.reportRepo.Create(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// Get devuelve el informe del período o ErrNotFound.
func (uc *ReportUseCase) Get(ctx context.Context, month time.Month, year int) (*entity.MonthlyReport, error) {
	rep, err := uc.reportRepo.Get(month, year)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, domain.ErrNotFound
	}
	return rep, nil
}

// List devuelve los informes más recientes (máximo 12).
func (uc *ReportUseCase) List(ctx context.Context) ([]*entity.MonthlyReport, error) {
	return uc.reportRepo.List(12)
}

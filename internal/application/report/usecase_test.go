package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/application/report"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// memReportRepo persistencia de informes en memoria, clave (mes, año).
type memReportRepo struct {
	reports map[[2]int]*entity.MonthlyReport
	creates int
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: make(map[[2]int]*entity.MonthlyReport)}
}

func (r *memReportRepo) Create(rep *entity.MonthlyReport) error {
	key := [2]int{int(rep.Month), rep.Year}
	if _, ok := r.reports[key]; ok {
		return domain.ErrDuplicate
	}
	r.creates++
	cp := *rep
	r.reports[key] = &cp
	return nil
}

func (r *memReportRepo) Get(month time.Month, year int) (*entity.MonthlyReport, error) {
	rep, ok := r.reports[[2]int{int(month), year}]
	if !ok {
		return nil, nil
	}
	cp := *rep
	return &cp, nil
}

func (r *memReportRepo) List(limit int) ([]*entity.MonthlyReport, error) {
	var out []*entity.MonthlyReport
	for _, rep := range r.reports {
		cp := *rep
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// stubReportingRepo devuelve agregados fijos para el período.
type stubReportingRepo struct {
	sales        repository.SalesTotals
	purchases    decimal.Decimal
	topSellers   []entity.PlantSalesSummary
	newCustomers int64
}

func (r *stubReportingRepo) GetSalesTotals(ctx context.Context, start, end time.Time) (repository.SalesTotals, error) {
	return r.sales, nil
}

func (r *stubReportingRepo) GetPurchasesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	return r.purchases, nil
}

func (r *stubReportingRepo) GetTopSellers(ctx context.Context, start, end time.Time, limit int) ([]entity.PlantSalesSummary, error) {
	if limit > 0 && len(r.topSellers) > limit {
		return r.topSellers[:limit], nil
	}
	return r.topSellers, nil
}

func (r *stubReportingRepo) GetShopSales(ctx context.Context, start, end time.Time) ([]repository.ShopSaleRow, error) {
	return nil, nil
}

func (r *stubReportingRepo) CountNewCustomers(ctx context.Context, start, end time.Time) (int64, error) {
	return r.newCustomers, nil
}

// stubPlantRepo solo responde ListBelowThreshold; el resto no se usa aquí.
type stubPlantRepo struct {
	lowStock []*entity.Plant
}

func (r *stubPlantRepo) Create(*entity.Plant) error                 { return nil }
func (r *stubPlantRepo) GetByID(string) (*entity.Plant, error)      { return nil, nil }
func (r *stubPlantRepo) GetForUpdate(string) (*entity.Plant, error) { return nil, nil }
func (r *stubPlantRepo) Update(*entity.Plant) error                 { return nil }
func (r *stubPlantRepo) UpdateStock(string, int64, int64) error     { return nil }
func (r *stubPlantRepo) List(repository.PlantFilter) ([]*entity.Plant, error) {
	return nil, nil
}
func (r *stubPlantRepo) Count(repository.PlantFilter) (int64, error) { return 0, nil }
func (r *stubPlantRepo) ListBelowThreshold(limit int) ([]*entity.Plant, error) {
	if limit > 0 && len(r.lowStock) > limit {
		return r.lowStock[:limit], nil
	}
	return r.lowStock, nil
}

func buildReportUC() (*report.ReportUseCase, *memReportRepo) {
	reportRepo := newMemReportRepo()
	reporting := &stubReportingRepo{
		sales: repository.SalesTotals{
			TotalSales:  decimal.NewFromInt(1_500_000),
			TotalOrders: 42,
		},
		purchases: decimal.NewFromInt(600_000),
		topSellers: []entity.PlantSalesSummary{
			{PlantID: "p1", PlantName: "Orquídea cattleya", QuantitySold: 30, Revenue: decimal.NewFromInt(750_000)},
			{PlantID: "p2", PlantName: "Suculenta echeveria", QuantitySold: 25, Revenue: decimal.NewFromInt(200_000)},
		},
		newCustomers: 7,
	}
	plants := &stubPlantRepo{lowStock: []*entity.Plant{
		{ID: "p3", Name: "Helecho de Boston", Quantity: 1, ReorderThreshold: 5},
	}}
	return report.NewReportUseCase(reportRepo, reporting, plants), reportRepo
}

func TestGenerate_AgregaVentasComprasYUtilidad(t *testing.T) {
	uc, _ := buildReportUC()

	rep, err := uc.Generate(context.Background(), time.July, 2026)
	require.NoError(t, err)

	assert.Equal(t, time.July, rep.Month)
	assert.Equal(t, 2026, rep.Year)
	assert.True(t, rep.TotalSales.Equal(decimal.NewFromInt(1_500_000)))
	assert.Equal(t, int64(42), rep.TotalOrders)
	assert.True(t, rep.TotalPurchases.Equal(decimal.NewFromInt(600_000)))
	assert.True(t, rep.Profit.Equal(decimal.NewFromInt(900_000)),
		"utilidad = ventas - compras, fue %s", rep.Profit)
	assert.Equal(t, int64(7), rep.NewCustomers)

	require.Len(t, rep.TopSellingPlants, 2)
	assert.Equal(t, "p1", rep.TopSellingPlants[0].PlantID)

	require.Len(t, rep.LowStockItems, 1)
	assert.Equal(t, "Helecho de Boston", rep.LowStockItems[0].PlantName)
	assert.Equal(t, int64(1), rep.LowStockItems[0].CurrentStock)
}

func TestGenerate_ProyeccionDeDemanda(t *testing.T) {
	uc, _ := buildReportUC()

	rep, err := uc.Generate(context.Background(), time.July, 2026)
	require.NoError(t, err)

	// ceil(vendido * 1.1): 30 -> 33, 25 -> 28
	require.Len(t, rep.ForecastedDemand, 2)
	assert.Equal(t, int64(33), rep.ForecastedDemand[0].PredictedQuantity)
	assert.Equal(t, int64(28), rep.ForecastedDemand[1].PredictedQuantity)
}

func TestGenerate_IdempotentePorPeriodo(t *testing.T) {
	uc, reportRepo := buildReportUC()
	ctx := context.Background()

	primero, err := uc.Generate(ctx, time.July, 2026)
	require.NoError(t, err)
	segundo, err := uc.Generate(ctx, time.July, 2026)
	require.NoError(t, err)

	assert.Equal(t, primero.ID, segundo.ID, "regenerar devuelve el informe existente")
	assert.Equal(t, 1, reportRepo.creates, "solo se persiste una vez")
}

func TestGenerate_PeriodoInvalido(t *testing.T) {
	uc, _ := buildReportUC()
	ctx := context.Background()

	_, err := uc.Generate(ctx, time.Month(13), 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Generate(ctx, time.July, 1995)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_InformeInexistente(t *testing.T) {
	uc, _ := buildReportUC()

	_, err := uc.Get(context.Background(), time.January, 2026)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Generate(context.Background(), time.January, 2026)
	require.NoError(t, err)
	rep, err := uc.Get(context.Background(), time.January, 2026)
	require.NoError(t, err)
	assert.Equal(t, time.January, rep.Month)
}

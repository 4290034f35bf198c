package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/application/inventory"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

func testPlant(id string, stock, threshold int64, price float64) *entity.Plant {
	now := time.Now()
	return &entity.Plant{
		ID:               id,
		Name:             "Orquídea " + id,
		Category:         entity.CategoryFlowering,
		Price:            decimal.NewFromFloat(price),
		Quantity:         stock,
		ReorderThreshold: threshold,
		IsAvailable:      true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func buildMutationUC(plants ...*entity.Plant) (*inventory.StockMutationUseCase, *memPlantRepo, *memLedgerRepo) {
	plantRepo := newMemPlantRepo(plants...)
	ledgerRepo := newMemLedgerRepo()
	uc := inventory.NewStockMutationUseCase(newMemTxRunner(plantRepo, ledgerRepo))
	return uc, plantRepo, ledgerRepo
}

func TestApplyMutation_VentaDescuentaStockYRegistraAsiento(t *testing.T) {
	uc, plantRepo, ledgerRepo := buildMutationUC(testPlant("p1", 10, 3, 25_000))

	entry, err := uc.ApplyMutation(context.Background(), inventory.MutationInput{
		PlantID:     "p1",
		Kind:        entity.KindSold,
		Quantity:    4,
		UnitCost:    decimal.NewFromInt(25_000),
		PerformedBy: "admin-1",
	})
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, int64(-4), entry.QuantityDelta, "la venta resta stock")
	assert.Equal(t, int64(10), entry.QuantityBefore)
	assert.Equal(t, int64(6), entry.QuantityAfter)
	assert.True(t, entry.TotalCost.Equal(decimal.NewFromInt(100_000)),
		"TotalCost = UnitCost * |delta|")

	plant, err := plantRepo.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), plant.Quantity)
	assert.Equal(t, int64(4), plant.TotalSold, "la venta acumula TotalSold")
	assert.Len(t, ledgerRepo.all(), 1, "exactamente un asiento por mutación")
}

func TestApplyMutation_CompraSumaStockSinTocarVentas(t *testing.T) {
	uc, plantRepo, _ := buildMutationUC(testPlant("p1", 2, 3, 25_000))

	entry, err := uc.ApplyMutation(context.Background(), inventory.MutationInput{
		PlantID:     "p1",
		Kind:        entity.KindPurchased,
		Quantity:    10,
		UnitCost:    decimal.NewFromInt(15_000),
		PerformedBy: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), entry.QuantityDelta)

	plant, _ := plantRepo.GetByID("p1")
	assert.Equal(t, int64(12), plant.Quantity)
	assert.Equal(t, int64(0), plant.TotalSold, "la compra no toca TotalSold")
}

func TestApplyMutation_StockInsuficiente_NoDejaRastro(t *testing.T) {
	uc, plantRepo, ledgerRepo := buildMutationUC(testPlant("p1", 3, 2, 25_000))

	_, err := uc.ApplyMutation(context.Background(), inventory.MutationInput{
		PlantID:  "p1",
		Kind:     entity.KindSold,
		Quantity: 5,
		UnitCost: decimal.NewFromInt(25_000),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	plant, _ := plantRepo.GetByID("p1")
	assert.Equal(t, int64(3), plant.Quantity, "el rechazo no cambia el stock")
	assert.Empty(t, ledgerRepo.all(), "el rechazo no escribe asientos")
}

func TestApplyMutation_AjusteConSigno(t *testing.T) {
	uc, plantRepo, _ := buildMutationUC(testPlant("p1", 8, 2, 25_000))
	ctx := context.Background()

	// El ajuste negativo baja stock
	entry, err := uc.ApplyMutation(ctx, inventory.MutationInput{
		PlantID:  "p1",
		Kind:     entity.KindAdjustment,
		Quantity: -3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), entry.QuantityDelta)
	plant, _ := plantRepo.GetByID("p1")
	assert.Equal(t, int64(5), plant.Quantity)

	// El ajuste positivo lo sube
	_, err = uc.ApplyMutation(ctx, inventory.MutationInput{
		PlantID:  "p1",
		Kind:     entity.KindAdjustment,
		Quantity: 2,
	})
	require.NoError(t, err)
	plant, _ = plantRepo.GetByID("p1")
	assert.Equal(t, int64(7), plant.Quantity)

	// Ajuste en cero no es un movimiento
	_, err = uc.ApplyMutation(ctx, inventory.MutationInput{
		PlantID:  "p1",
		Kind:     entity.KindAdjustment,
		Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMutation_EntradaInvalida(t *testing.T) {
	uc, _, _ := buildMutationUC(testPlant("p1", 10, 2, 25_000))
	ctx := context.Background()

	cases := []struct {
		name  string
		input inventory.MutationInput
	}{
		{"sin planta", inventory.MutationInput{Kind: entity.KindSold, Quantity: 1}},
		{"tipo desconocido", inventory.MutationInput{PlantID: "p1", Kind: "regalado", Quantity: 1}},
		{"venta con cantidad negativa", inventory.MutationInput{PlantID: "p1", Kind: entity.KindSold, Quantity: -2}},
		{"compra en cero", inventory.MutationInput{PlantID: "p1", Kind: entity.KindPurchased, Quantity: 0}},
		{"costo negativo", inventory.MutationInput{
			PlantID: "p1", Kind: entity.KindSold, Quantity: 1,
			UnitCost: decimal.NewFromInt(-100),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ApplyMutation(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestApplyMutation_PlantaInexistente(t *testing.T) {
	uc, _, _ := buildMutationUC()

	_, err := uc.ApplyMutation(context.Background(), inventory.MutationInput{
		PlantID:  "no-existe",
		Kind:     entity.KindSold,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrPlantNotFound)
}

func TestApplyMutation_FechaRetrodatadaSoloEnVentas(t *testing.T) {
	uc, _, _ := buildMutationUC(testPlant("p1", 20, 2, 25_000))
	ctx := context.Background()
	ayer := time.Now().AddDate(0, 0, -1)

	venta, err := uc.ApplyMutation(ctx, inventory.MutationInput{
		PlantID:    "p1",
		Kind:       entity.KindSold,
		Quantity:   1,
		OccurredAt: &ayer,
	})
	require.NoError(t, err)
	assert.True(t, venta.OccurredAt.Equal(ayer), "la venta respeta la fecha retrodatada")

	compra, err := uc.ApplyMutation(ctx, inventory.MutationInput{
		PlantID:    "p1",
		Kind:       entity.KindPurchased,
		Quantity:   5,
		OccurredAt: &ayer,
	})
	require.NoError(t, err)
	assert.False(t, compra.OccurredAt.Equal(ayer), "la compra ignora OccurredAt")
}

// TestApplyMutation_LibroReproduceElStock verifica que el stock final es siempre
// la suma de los deltas del libro sobre el stock inicial, tras una mezcla de
// movimientos de todos los tipos.
func TestApplyMutation_LibroReproduceElStock(t *testing.T) {
	const stockInicial = 50
	uc, plantRepo, ledgerRepo := buildMutationUC(testPlant("p1", stockInicial, 5, 25_000))
	ctx := context.Background()

	movimientos := []inventory.MutationInput{
		{PlantID: "p1", Kind: entity.KindSold, Quantity: 12},
		{PlantID: "p1", Kind: entity.KindPurchased, Quantity: 30},
		{PlantID: "p1", Kind: entity.KindDamaged, Quantity: 4},
		{PlantID: "p1", Kind: entity.KindReturned, Quantity: 2},
		{PlantID: "p1", Kind: entity.KindAdjustment, Quantity: -7},
		{PlantID: "p1", Kind: entity.KindSold, Quantity: 9},
	}
	for _, m := range movimientos {
		_, err := uc.ApplyMutation(ctx, m)
		require.NoError(t, err)
	}

	var sumaDeltas int64
	for _, e := range ledgerRepo.all() {
		sumaDeltas += e.QuantityDelta
	}
	plant, _ := plantRepo.GetByID("p1")
	assert.Equal(t, int64(stockInicial)+sumaDeltas, plant.Quantity,
		"stock = stock inicial + suma de deltas del libro")
	assert.Len(t, ledgerRepo.all(), len(movimientos))
}

// TestApplyMutation_VentasConcurrentes reproduce dos ventas de 6 unidades sobre un
// stock de 10: la serialización por transacción debe dejar pasar exactamente una
// y rechazar la otra con ErrInsufficientStock.
func TestApplyMutation_VentasConcurrentes(t *testing.T) {
	uc, plantRepo, ledgerRepo := buildMutationUC(testPlant("p1", 10, 2, 25_000))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.ApplyMutation(context.Background(), inventory.MutationInput{
				PlantID:  "p1",
				Kind:     entity.KindSold,
				Quantity: 6,
				UnitCost: decimal.NewFromInt(25_000),
			})
		}(i)
	}
	wg.Wait()

	var oks, insuficientes int
	for _, err := range errs {
		switch {
		case err == nil:
			oks++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			insuficientes++
		}
	}
	assert.Equal(t, 1, oks, "exactamente una venta gana")
	assert.Equal(t, 1, insuficientes, "la otra se rechaza por stock")

	plant, _ := plantRepo.GetByID("p1")
	assert.Equal(t, int64(4), plant.Quantity)
	assert.Len(t, ledgerRepo.all(), 1, "solo la venta ganadora deja asiento")
}

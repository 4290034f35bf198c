package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/application/catalog"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// memPlantRepo catálogo en memoria, suficiente para el caso de uso.
type memPlantRepo struct {
	plants     map[string]*entity.Plant
	lastFilter repository.PlantFilter
}

func newMemPlantRepo() *memPlantRepo {
	return &memPlantRepo{plants: make(map[string]*entity.Plant)}
}

func (r *memPlantRepo) Create(plant *entity.Plant) error {
	cp := *plant
	r.plants[plant.ID] = &cp
	return nil
}

func (r *memPlantRepo) GetByID(id string) (*entity.Plant, error) {
	p, ok := r.plants[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPlantRepo) GetForUpdate(id string) (*entity.Plant, error) { return r.GetByID(id) }

func (r *memPlantRepo) Update(plant *entity.Plant) error {
	existing, ok := r.plants[plant.ID]
	if !ok {
		return domain.ErrPlantNotFound
	}
	cp := *plant
	// El repositorio real nunca escribe stock desde Update
	cp.Quantity = existing.Quantity
	cp.TotalSold = existing.TotalSold
	r.plants[plant.ID] = &cp
	return nil
}

func (r *memPlantRepo) UpdateStock(plantID string, quantity, totalSold int64) error {
	p, ok := r.plants[plantID]
	if !ok {
		return domain.ErrPlantNotFound
	}
	p.Quantity = quantity
	p.TotalSold = totalSold
	return nil
}

func (r *memPlantRepo) List(filter repository.PlantFilter) ([]*entity.Plant, error) {
	r.lastFilter = filter
	var out []*entity.Plant
	for _, p := range r.plants {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPlantRepo) Count(filter repository.PlantFilter) (int64, error) {
	return int64(len(r.plants)), nil
}

func (r *memPlantRepo) ListBelowThreshold(limit int) ([]*entity.Plant, error) { return nil, nil }

func TestCreatePlant_AltaConStockCero(t *testing.T) {
	repo := newMemPlantRepo()
	uc := catalog.NewPlantUseCase(repo)

	plant, err := uc.CreatePlant(context.Background(), &dto.CreatePlantRequest{
		Name:             "  Orquídea cattleya  ",
		Category:         entity.CategoryFlowering,
		Description:      "Flor nacional de Colombia",
		Price:            decimal.NewFromInt(45_000),
		ReorderThreshold: 5,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, plant.ID)
	assert.Equal(t, "Orquídea cattleya", plant.Name, "el nombre llega recortado")
	assert.Equal(t, int64(0), plant.Quantity, "el alta nunca trae stock")
	assert.Equal(t, int64(0), plant.TotalSold)
	assert.True(t, plant.IsAvailable)
	assert.Equal(t, "out-of-stock", plant.StockStatus())
}

func TestCreatePlant_Validaciones(t *testing.T) {
	uc := catalog.NewPlantUseCase(newMemPlantRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreatePlantRequest
	}{
		{"sin nombre", dto.CreatePlantRequest{
			Category: entity.CategoryIndoor, Price: decimal.NewFromInt(10)}},
		{"categoría desconocida", dto.CreatePlantRequest{
			Name: "Ficus", Category: "carnívora", Price: decimal.NewFromInt(10)}},
		{"precio negativo", dto.CreatePlantRequest{
			Name: "Ficus", Category: entity.CategoryIndoor, Price: decimal.NewFromInt(-10)}},
		{"umbral negativo", dto.CreatePlantRequest{
			Name: "Ficus", Category: entity.CategoryIndoor, Price: decimal.NewFromInt(10),
			ReorderThreshold: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreatePlant(ctx, &tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetPlant_Inexistente(t *testing.T) {
	uc := catalog.NewPlantUseCase(newMemPlantRepo())
	_, err := uc.GetPlant(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrPlantNotFound)
}

func TestListPlants_LimitesDePaginacion(t *testing.T) {
	repo := newMemPlantRepo()
	uc := catalog.NewPlantUseCase(repo)
	ctx := context.Background()

	_, _, err := uc.ListPlants(ctx, repository.PlantFilter{Limit: 0, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastFilter.Limit, "límite por defecto")
	assert.Equal(t, 0, repo.lastFilter.Offset, "offset negativo se normaliza")

	_, _, err = uc.ListPlants(ctx, repository.PlantFilter{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastFilter.Limit, "límite excesivo se recorta")

	_, _, err = uc.ListPlants(ctx, repository.PlantFilter{Category: "carnívora"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePlant_ParcheParcialSinTocarStock(t *testing.T) {
	repo := newMemPlantRepo()
	uc := catalog.NewPlantUseCase(repo)
	ctx := context.Background()

	plant, err := uc.CreatePlant(ctx, &dto.CreatePlantRequest{
		Name:     "Ficus lyrata",
		Category: entity.CategoryIndoor,
		Price:    decimal.NewFromInt(80_000),
	})
	require.NoError(t, err)
	// Simula stock cargado por el motor de inventario
	require.NoError(t, repo.UpdateStock(plant.ID, 15, 3))

	nuevoPrecio := decimal.NewFromInt(95_000)
	oculta := false
	updated, err := uc.UpdatePlant(ctx, plant.ID, &dto.UpdatePlantRequest{
		Price:       &nuevoPrecio,
		IsAvailable: &oculta,
	})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(nuevoPrecio))
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "Ficus lyrata", updated.Name, "los campos no enviados no cambian")

	saved, _ := repo.GetByID(plant.ID)
	assert.Equal(t, int64(15), saved.Quantity, "el catálogo no toca el stock")
	assert.Equal(t, int64(3), saved.TotalSold)
}

func TestUpdatePlant_Validaciones(t *testing.T) {
	repo := newMemPlantRepo()
	uc := catalog.NewPlantUseCase(repo)
	ctx := context.Background()

	plant, err := uc.CreatePlant(ctx, &dto.CreatePlantRequest{
		Name:     "Ficus lyrata",
		Category: entity.CategoryIndoor,
		Price:    decimal.NewFromInt(80_000),
	})
	require.NoError(t, err)

	vacio := "   "
	_, err = uc.UpdatePlant(ctx, plant.ID, &dto.UpdatePlantRequest{Name: &vacio})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rara := "carnívora"
	_, err = uc.UpdatePlant(ctx, plant.ID, &dto.UpdatePlantRequest{Category: &rara})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdatePlant(ctx, "no-existe", &dto.UpdatePlantRequest{})
	assert.ErrorIs(t, err, domain.ErrPlantNotFound)
}

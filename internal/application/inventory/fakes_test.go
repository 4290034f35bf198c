package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// memPlantRepo repositorio de plantas en memoria para tests.
type memPlantRepo struct {
	mu     sync.Mutex
	plants map[string]*entity.Plant
}

func newMemPlantRepo(plants ...*entity.Plant) *memPlantRepo {
	r := &memPlantRepo{plants: make(map[string]*entity.Plant)}
	for _, p := range plants {
		cp := *p
		r.plants[p.ID] = &cp
	}
	return r
}

func (r *memPlantRepo) Create(plant *entity.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plants[plant.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *plant
	r.plants[plant.ID] = &cp
	return nil
}

func (r *memPlantRepo) GetByID(id string) (*entity.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plants[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPlantRepo) GetForUpdate(id string) (*entity.Plant, error) {
	return r.GetByID(id)
}

func (r *memPlantRepo) Update(plant *entity.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.plants[plant.ID]
	if !ok {
		return domain.ErrPlantNotFound
	}
	cp := *plant
	cp.Quantity = existing.Quantity
	cp.TotalSold = existing.TotalSold
	r.plants[plant.ID] = &cp
	return nil
}

func (r *memPlantRepo) UpdateStock(plantID string, quantity, totalSold int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plants[plantID]
	if !ok {
		return domain.ErrPlantNotFound
	}
	p.Quantity = quantity
	p.TotalSold = totalSold
	return nil
}

func (r *memPlantRepo) List(filter repository.PlantFilter) ([]*entity.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Plant
	for _, p := range r.plants {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPlantRepo) Count(filter repository.PlantFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.plants)), nil
}

func (r *memPlantRepo) ListBelowThreshold(limit int) ([]*entity.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Plant
	for _, p := range r.plants {
		if p.Quantity <= p.ReorderThreshold {
			cp := *p
			out = append(out, &cp)
		}
	}
	// Orden por stock ascendente, como el repositorio real
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Quantity < out[j-1].Quantity; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPlantRepo) snapshot() map[string]*entity.Plant {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Plant, len(r.plants))
	for id, p := range r.plants {
		cp := *p
		snap[id] = &cp
	}
	return snap
}

func (r *memPlantRepo) restore(snap map[string]*entity.Plant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plants = snap
}

// memLedgerRepo libro de inventario en memoria, solo-apéndice como el real.
type memLedgerRepo struct {
	mu      sync.Mutex
	entries []*entity.LedgerEntry
}

func newMemLedgerRepo() *memLedgerRepo {
	return &memLedgerRepo{}
}

func (r *memLedgerRepo) Append(entry *entity.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memLedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

// List replica el contrato del repo real: filtra por tipo, planta y rango,
// ordena más recientes primero y pagina con limit/offset.
func (r *memLedgerRepo) List(kind, plantID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.entries {
		if ledgerMatches(e, kind, plantID, from, to) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if limit > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
		if len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}

func (r *memLedgerRepo) Count(kind, plantID string, from, to *time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if ledgerMatches(e, kind, plantID, from, to) {
			n++
		}
	}
	return n, nil
}

func ledgerMatches(e *entity.LedgerEntry, kind, plantID string, from, to *time.Time) bool {
	if kind != "" && e.Kind != kind {
		return false
	}
	if plantID != "" && e.PlantID != plantID {
		return false
	}
	if from != nil && e.OccurredAt.Before(*from) {
		return false
	}
	if to != nil && e.OccurredAt.After(*to) {
		return false
	}
	return true
}

func (r *memLedgerRepo) all() []*entity.LedgerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.LedgerEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *memLedgerRepo) snapshot() []*entity.LedgerEntry {
	return r.all()
}

func (r *memLedgerRepo) restore(snap []*entity.LedgerEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = snap
}

// memTxRunner emula la transacción: serializa las ejecuciones (como el bloqueo de
// fila) y revierte plantas y libro al estado previo si fn devuelve error.
type memTxRunner struct {
	mu         sync.Mutex
	plantRepo  *memPlantRepo
	ledgerRepo *memLedgerRepo
}

func newMemTxRunner(plantRepo *memPlantRepo, ledgerRepo *memLedgerRepo) *memTxRunner {
	return &memTxRunner{plantRepo: plantRepo, ledgerRepo: ledgerRepo}
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	plantRepo repository.PlantRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plantSnap := r.plantRepo.snapshot()
	ledgerSnap := r.ledgerRepo.snapshot()
	if err := fn(r.plantRepo, r.ledgerRepo); err != nil {
		r.plantRepo.restore(plantSnap)
		r.ledgerRepo.restore(ledgerSnap)
		return err
	}
	return nil
}

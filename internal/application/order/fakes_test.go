package order_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

// memPlantRepo repositorio de plantas en memoria para tests de pedidos.
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

func (r *memPlantRepo) Update(plant *entity.Plant) error { return nil }

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
	return nil, nil
}

func (r *memPlantRepo) Count(filter repository.PlantFilter) (int64, error) { return 0, nil }

func (r *memPlantRepo) ListBelowThreshold(limit int) ([]*entity.Plant, error) { return nil, nil }

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

// memLedgerRepo libro solo-apéndice en memoria.
type memLedgerRepo struct {
	mu      sync.Mutex
	entries []*entity.LedgerEntry
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

func (r *memLedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) { return nil, nil }

func (r *memLedgerRepo) List(kind, plantID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

func (r *memLedgerRepo) Count(kind, plantID string, from, to *time.Time) (int64, error) {
	return 0, nil
}

func (r *memLedgerRepo) all() []*entity.LedgerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.LedgerEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *memLedgerRepo) snapshot() []*entity.LedgerEntry { return r.all() }

func (r *memLedgerRepo) restore(snap []*entity.LedgerEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = snap
}

// memOrderRepo repositorio de pedidos en memoria.
type memOrderRepo struct {
	mu         sync.Mutex
	orders     map[string]*entity.Order
	createErrs []error
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *memOrderRepo) Create(ord *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}
	cp := *ord
	r.orders[ord.ID] = &cp
	return nil
}

// failNextCreate encola un error para el próximo Create, emulando por ejemplo
// el rechazo del índice único de number.
func (r *memOrderRepo) failNextCreate(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createErrs = append(r.createErrs, err)
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) Count(filter repository.OrderFilter) (int64, error) {
	list, _ := r.List(filter)
	return int64(len(list)), nil
}

func (r *memOrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) Update(ord *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[ord.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *ord
	r.orders[ord.ID] = &cp
	return nil
}

func (r *memOrderRepo) CountCreatedSince(t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, o := range r.orders {
		if !o.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

func (r *memOrderRepo) snapshot() map[string]*entity.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Order, len(r.orders))
	for id, o := range r.orders {
		cp := *o
		snap[id] = &cp
	}
	return snap
}

func (r *memOrderRepo) restore(snap map[string]*entity.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = snap
}

// memOrderTxRunner emula la transacción del pedido: serializa ejecuciones y
// revierte los tres repositorios si fn falla.
type memOrderTxRunner struct {
	mu         sync.Mutex
	plantRepo  *memPlantRepo
	ledgerRepo *memLedgerRepo
	orderRepo  *memOrderRepo
}

func (r *memOrderTxRunner) RunOrder(ctx context.Context, fn func(
	plantRepo repository.PlantRepository,
	ledgerRepo repository.LedgerRepository,
	orderRepo repository.OrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plantSnap := r.plantRepo.snapshot()
	ledgerSnap := r.ledgerRepo.snapshot()
	orderSnap := r.orderRepo.snapshot()
	if err := fn(r.plantRepo, r.ledgerRepo, r.orderRepo); err != nil {
		r.plantRepo.restore(plantSnap)
		r.ledgerRepo.restore(ledgerSnap)
		r.orderRepo.restore(orderSnap)
		return err
	}
	return nil
}

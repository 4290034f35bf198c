package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.PlantRepository = (*PlantRepo)(nil)

const plantColumns = `id, name, category, description, price, quantity, reorder_threshold, total_sold, image_url, is_available, created_at, updated_at`

// PlantRepo implementación del puerto PlantRepository sobre PostgreSQL (usable con pool o tx).
type PlantRepo struct {
	q Querier
}

// NewPlantRepository construye el adaptador de persistencia para plantas. Pasar pool o tx (Querier).
func NewPlantRepository(q Querier) *PlantRepo {
	return &PlantRepo{q: q}
}

// Create persiste una nueva planta. Quantity y TotalSold inician en 0.
func (r *PlantRepo) Create(plant *entity.Plant) error {
	query := `
		INSERT INTO plants (id, name, category, description, price, quantity, reorder_threshold, total_sold, image_url, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		plant.ID, plant.Name, plant.Category, plant.Description, plant.Price,
		plant.Quantity, plant.ReorderThreshold, plant.TotalSold,
		nullIfEmpty(plant.ImageURL), plant.IsAvailable, plant.CreatedAt, plant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plant: %w", err)
	}
	return nil
}

// GetByID obtiene una planta por ID.
func (r *PlantRepo) GetByID(id string) (*entity.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get plant")
}

// GetForUpdate obtiene la planta y bloquea la fila (SELECT FOR UPDATE). Usar solo dentro de una tx.
func (r *PlantRepo) GetForUpdate(id string) (*entity.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get plant for update")
}

// Update actualiza los campos de catálogo. No toca Quantity ni TotalSold (se manejan vía movimientos).
func (r *PlantRepo) Update(plant *entity.Plant) error {
	query := `
		UPDATE plants
		SET name = $2, category = $3, description = $4, price = $5,
		    reorder_threshold = $6, image_url = $7, is_available = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		plant.ID, plant.Name, plant.Category, plant.Description, plant.Price,
		plant.ReorderThreshold, nullIfEmpty(plant.ImageURL), plant.IsAvailable, plant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plant: %w", err)
	}
	return nil
}

// UpdateStock escribe stock y acumulado de ventas. Reservado al motor de inventario (dentro de tx).
func (r *PlantRepo) UpdateStock(plantID string, quantity, totalSold int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE plants SET quantity = $2, total_sold = $3, updated_at = now() WHERE id = $1`,
		plantID, quantity, totalSold,
	)
	if err != nil {
		return fmt.Errorf("update plant stock: %w", err)
	}
	return nil
}

// List lista el catálogo con filtros y paginación.
func (r *PlantRepo) List(filter repository.PlantFilter) ([]*entity.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants`
	where, args := plantFilterClauses(filter)
	query += where
	pos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Count cuenta las plantas que cumplen el filtro (para paginación).
func (r *PlantRepo) Count(filter repository.PlantFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM plants`
	where, args := plantFilterClauses(filter)
	query += where
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count plants: %w", err)
	}
	return total, nil
}

// ListBelowThreshold devuelve las plantas con stock en o bajo su punto de reorden,
// las más urgentes (menos stock) primero. limit <= 0 trae todas.
func (r *PlantRepo) ListBelowThreshold(limit int) ([]*entity.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE quantity <= reorder_threshold ORDER BY quantity ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plants below threshold: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func plantFilterClauses(filter repository.PlantFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if filter.OnlyAvailable {
		conds = append(conds, "is_available = true")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PlantRepo) scanOne(row pgx.Row, op string) (*entity.Plant, error) {
	var p entity.Plant
	var imageURL *string
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.Price,
		&p.Quantity, &p.ReorderThreshold, &p.TotalSold,
		&imageURL, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if imageURL != nil {
		p.ImageURL = *imageURL
	}
	return &p, nil
}

func (r *PlantRepo) scanMany(rows pgx.Rows) ([]*entity.Plant, error) {
	var list []*entity.Plant
	for rows.Next() {
		var p entity.Plant
		var imageURL *string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Description, &p.Price,
			&p.Quantity, &p.ReorderThreshold, &p.TotalSold,
			&imageURL, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		if imageURL != nil {
			p.ImageURL = *imageURL
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerColumns = `id, plant_id, kind, quantity_delta, quantity_before, quantity_after, unit_cost, total_cost, occurred_at, note, performed_by, order_id, created_at`

// LedgerRepo implementación del libro de inventario sobre PostgreSQL (usable con pool o tx).
// La tabla no recibe UPDATE ni DELETE desde la aplicación: el libro es solo-apéndice.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append persiste un asiento después de validar su aritmética.
func (r *LedgerRepo) Append(entry *entity.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_entries (id, plant_id, kind, quantity_delta, quantity_before, quantity_after, unit_cost, total_cost, occurred_at, note, performed_by, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.PlantID, entry.Kind, entry.QuantityDelta,
		entry.QuantityBefore, entry.QuantityAfter, entry.UnitCost, entry.TotalCost,
		entry.OccurredAt, nullIfEmpty(entry.Note), nullIfEmpty(entry.PerformedBy),
		nullIfEmpty(entry.OrderID), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	e, err := scanLedgerRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// List lista asientos filtrando por tipo, planta y rango de fechas, más recientes
// primero. limit <= 0 trae todos. Comparte el predicado con Count para que el
// total de paginación siempre corresponda a lo listado.
func (r *LedgerRepo) List(kind, plantID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE 1=1`
	var args []any
	query, args = ledgerFilters(query, args, kind, plantID, from, to)
	query += " ORDER BY occurred_at DESC, created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.list(query, args, "list ledger entries")
}

// Count cuenta asientos por tipo, planta y rango de fechas (cualquiera puede ir vacío).
func (r *LedgerRepo) Count(kind, plantID string, from, to *time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM ledger_entries WHERE 1=1`
	var args []any
	query, args = ledgerFilters(query, args, kind, plantID, from, to)
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	return total, nil
}

func ledgerFilters(query string, args []any, kind, plantID string, from, to *time.Time) (string, []any) {
	if kind != "" {
		args = append(args, kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if plantID != "" {
		args = append(args, plantID)
		query += fmt.Sprintf(" AND plant_id = $%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND occurred_at <= $%d", len(args))
	}
	return query, args
}

func (r *LedgerRepo) list(query string, args []any, op string) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanLedgerRow(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	var note, performedBy, orderID *string
	err := row.Scan(
		&e.ID, &e.PlantID, &e.Kind, &e.QuantityDelta,
		&e.QuantityBefore, &e.QuantityAfter, &e.UnitCost, &e.TotalCost,
		&e.OccurredAt, &note, &performedBy, &orderID, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if note != nil {
		e.Note = *note
	}
	if performedBy != nil {
		e.PerformedBy = *performedBy
	}
	if orderID != nil {
		e.OrderID = *orderID
	}
	return &e, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, number, user_id, total_amount, payment_status, status, type, contact_number, delivery_address, notes, order_date, expected_delivery_date, delivery_date, created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido y sus líneas.
func (r *OrderRepo) Create(order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, number, user_id, total_amount, payment_status, status, type, contact_number, delivery_address, notes, order_date, expected_delivery_date, delivery_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.UserID, order.TotalAmount,
		order.PaymentStatus, order.Status, order.Type, order.ContactNumber,
		nullIfEmpty(order.DeliveryAddress), nullIfEmpty(order.Notes),
		order.OrderDate, order.ExpectedDeliveryDate, order.DeliveryDate,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de pedido ya usado", domain.ErrConflict)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range order.Items {
		item := &order.Items[i]
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO order_items (id, order_id, plant_id, plant_name, quantity, unit_price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New().String(), order.ID, item.PlantID, item.PlantName,
			item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido completo (cabecera + líneas).
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	ord, err := scanOrderRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ord); err != nil {
		return nil, err
	}
	return ord, nil
}

// List lista pedidos con filtros (admin), más recientes primero.
func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	where, args := orderFilterClauses(filter)
	query += where
	query += " ORDER BY order_date DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.listWithItems(query, args, "list orders")
}

// Count cuenta los pedidos que cumplen el filtro.
func (r *OrderRepo) Count(filter repository.OrderFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM orders`
	where, args := orderFilterClauses(filter)
	query += where
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

// ListByUser lista los pedidos de un cliente, más recientes primero.
func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`
	return r.listWithItems(query, []any{userID}, "list orders by user")
}

// Update escribe estados y fechas de entrega. Las líneas no se tocan.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders
		SET payment_status = $2, status = $3, expected_delivery_date = $4, delivery_date = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.PaymentStatus, order.Status,
		order.ExpectedDeliveryDate, order.DeliveryDate, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// CountCreatedSince cuenta pedidos creados desde el instante dado (consecutivo diario).
func (r *OrderRepo) CountCreatedSince(t time.Time) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1`, t,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count orders since: %w", err)
	}
	return total, nil
}

func orderFilterClauses(filter repository.OrderFilter) (string, []any) {
	where := ""
	var args []any
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		and(fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		and(fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		and(fmt.Sprintf("order_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		and(fmt.Sprintf("order_date <= $%d", len(args)))
	}
	return where, args
}

func (r *OrderRepo) listWithItems(query string, args []any, op string) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		ord, err := scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, ord := range list {
		if err := r.loadItems(ord); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *OrderRepo) loadItems(ord *entity.Order) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT plant_id, plant_name, quantity, unit_price, subtotal
		 FROM order_items WHERE order_id = $1 ORDER BY id`, ord.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.PlantID, &it.PlantName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		ord.Items = append(ord.Items, it)
	}
	return rows.Err()
}

func scanOrderRow(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var deliveryAddr, notes *string
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &o.TotalAmount,
		&o.PaymentStatus, &o.Status, &o.Type, &o.ContactNumber,
		&deliveryAddr, &notes, &o.OrderDate, &o.ExpectedDeliveryDate,
		&o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if deliveryAddr != nil {
		o.DeliveryAddress = *deliveryAddr
	}
	if notes != nil {
		o.Notes = *notes
	}
	return &o, nil
}
